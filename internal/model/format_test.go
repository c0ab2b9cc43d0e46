package model

import "testing"

func TestFormatChoice_RoundTrip(t *testing.T) {
	for _, fc := range AllFormatChoices() {
		if !fc.Valid() {
			t.Errorf("FormatChoice %d should be valid", int(fc))
		}

		parsed, err := ParseFormatChoice(fc.String())
		if err != nil {
			t.Fatalf("ParseFormatChoice(%q) returned error: %v", fc.String(), err)
		}
		if parsed != fc {
			t.Errorf("ParseFormatChoice(%q) = %s, expected %s", fc.String(), parsed, fc)
		}
	}
}

func TestFormatChoice_Invalid(t *testing.T) {
	if FormatChoice(-1).Valid() || FormatChoice(3).Valid() {
		t.Error("Out of range choices should be invalid")
	}

	if _, err := ParseFormatChoice("mkv"); err == nil {
		t.Error("Expected error for unknown identifier")
	}
}

func TestResult_Status(t *testing.T) {
	if Succeeded("ok").Status() != WorkerStatusCompleted {
		t.Error("Succeeded result should map to Completed")
	}

	failed := Failed("network unreachable")
	if failed.Success {
		t.Error("Failed result should not be successful")
	}
	if failed.Status() != WorkerStatusError {
		t.Error("Failed result should map to Error")
	}
	if failed.Message != "network unreachable" {
		t.Errorf("Expected message to be preserved, got %q", failed.Message)
	}
}

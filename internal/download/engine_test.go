package download

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ytget/quickdl/internal/config"
	"github.com/ytget/quickdl/internal/model"
)

func TestNewEngine(t *testing.T) {
	tests := []struct {
		engine   string
		expected string
		wantErr  bool
	}{
		{config.EngineYTDLP, YTDLPEngineName, false},
		{config.EngineNative, NativeEngineName, false},
		{"curl", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			cfg := config.Default()
			cfg.Engine = tt.engine

			engine, err := NewEngine(cfg, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEngine(%q) error = %v, wantErr %v", tt.engine, err, tt.wantErr)
			}
			if err == nil && engine.Name() != tt.expected {
				t.Errorf("expected engine %s, got %s", tt.expected, engine.Name())
			}
		})
	}
}

func TestNewEngine_MissingYTDLPExecutable(t *testing.T) {
	cfg := config.Default()
	cfg.Engine = config.EngineYTDLP
	cfg.YTDLP.Path = filepath.Join(t.TempDir(), "no-such-yt-dlp")

	if _, err := NewEngine(cfg, nil); err == nil {
		t.Error("expected an error for a configured yt-dlp that does not exist")
	}
}

func TestNewEngine_NativeWithoutFFmpeg(t *testing.T) {
	cfg := config.Default()
	cfg.Engine = config.EngineNative
	cfg.Native.FFmpegPath = filepath.Join(t.TempDir(), "no-such-ffmpeg")

	engine, err := NewEngine(cfg, nil)
	if err != nil {
		t.Fatalf("missing ffmpeg should not fail engine creation: %v", err)
	}
	if engine.Name() != NativeEngineName {
		t.Errorf("expected %s, got %s", NativeEngineName, engine.Name())
	}
}

func TestNewYTDLPEngine_Defaults(t *testing.T) {
	engine := NewYTDLPEngine("", false, 0, nil)

	if engine.interval != DefaultProgressInterval {
		t.Errorf("expected interval %v, got %v", DefaultProgressInterval, engine.interval)
	}
	if engine.logger == nil {
		t.Error("expected a no-op logger")
	}

	engine = NewYTDLPEngine("/opt/yt-dlp", true, time.Second, nil)
	if engine.interval != time.Second {
		t.Errorf("expected interval 1s, got %v", engine.interval)
	}
}

func TestYTDLPEngine_PrepareSkipsInstall(t *testing.T) {
	// Neither case may reach the network
	for _, engine := range []*YTDLPEngine{
		NewYTDLPEngine("", false, 0, nil),
		NewYTDLPEngine("/opt/yt-dlp", true, 0, nil),
	} {
		if err := engine.Prepare(context.Background()); err != nil {
			t.Errorf("expected no install, got %v", err)
		}
	}
}

func TestYTDLPEngine_Command(t *testing.T) {
	dest := t.TempDir()
	output := filepath.Join(dest, FilenameTemplate)

	tests := []struct {
		name         string
		choice       model.FormatChoice
		format       string
		extractAudio bool
	}{
		{"muxed best", model.FormatMuxedBest, FormatSelectorMuxed, false},
		{"audio only", model.FormatAudioOnly, FormatSelectorAudio, true},
		{"video only", model.FormatVideoOnly, FormatSelectorVideo, false},
	}

	engine := NewYTDLPEngine("", false, 0, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := BuildOptions(model.DownloadRequest{URL: "https://example.com/video", Destination: dest, Format: tt.choice})
			flags := engine.command(opts).GetFlagConfig()

			if got := flags.VideoFormat.Format; got == nil || *got != tt.format {
				t.Errorf("format = %v, expected %q", got, tt.format)
			}
			if got := flags.Filesystem.Output; got == nil || *got != output {
				t.Errorf("output = %v, expected %q", got, output)
			}
			if got := flags.VideoSelection.NoPlaylist; got == nil || !*got {
				t.Errorf("no playlist = %v, expected true", got)
			}

			pp := flags.PostProcessing
			if !tt.extractAudio {
				if pp.ExtractAudio != nil || pp.AudioFormat != nil || pp.AudioQuality != nil {
					t.Errorf("unexpected audio post-processing: %+v", pp)
				}
				return
			}
			if pp.ExtractAudio == nil || !*pp.ExtractAudio {
				t.Errorf("extract audio = %v, expected true", pp.ExtractAudio)
			}
			if pp.AudioFormat == nil || *pp.AudioFormat != AudioCodec {
				t.Errorf("audio format = %v, expected %q", pp.AudioFormat, AudioCodec)
			}
			if pp.AudioQuality == nil || *pp.AudioQuality != AudioQuality {
				t.Errorf("audio quality = %v, expected %q", pp.AudioQuality, AudioQuality)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Simple Title", "Simple Title"},
		{"AC/DC: Live?", "AC_DC_ Live_"},
		{"  spaced\ttitle\n", "spaced title"},
		{`a<b>c|d"e*f\g`, "a_b_c_d_e_f_g"},
		{"...", FallbackTitle},
		{"", FallbackTitle},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.input); got != tt.expected {
			t.Errorf("SanitizeFilename(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

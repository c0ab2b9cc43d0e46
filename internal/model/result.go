package model

// Result is the terminal outcome of one download: success with a message,
// or failure with the error description.
type Result struct {
	Success bool
	Message string
}

// Succeeded builds a success result
func Succeeded(message string) Result {
	return Result{Success: true, Message: message}
}

// Failed builds a failure result carrying the error description
func Failed(description string) Result {
	return Result{Success: false, Message: description}
}

// Status maps the result to the worker status shown after completion
func (r Result) Status() WorkerStatus {
	if r.Success {
		return WorkerStatusCompleted
	}
	return WorkerStatusError
}

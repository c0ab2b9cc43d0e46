package model

// WorkerStatus represents the lifecycle state of the single in-flight download
type WorkerStatus string

const (
	// WorkerStatusIdle means no download is running
	WorkerStatusIdle WorkerStatus = "Idle"

	// WorkerStatusStarting means a request was accepted and the engine is starting
	WorkerStatusStarting WorkerStatus = "Starting"

	// WorkerStatusDownloading means the engine reported transfer progress
	WorkerStatusDownloading WorkerStatus = "Downloading"

	// WorkerStatusCancelled means the user cancelled the download
	WorkerStatusCancelled WorkerStatus = "Cancelled"

	// WorkerStatusCompleted means the download finished successfully
	WorkerStatusCompleted WorkerStatus = "Completed"

	// WorkerStatusError means the download failed
	WorkerStatusError WorkerStatus = "Error"
)

// String returns the string representation of WorkerStatus
func (ws WorkerStatus) String() string {
	return string(ws)
}

// IsActive returns true while a worker owns the request
func (ws WorkerStatus) IsActive() bool {
	return ws == WorkerStatusStarting || ws == WorkerStatusDownloading
}

// IsFinished returns true if the last download reached a terminal state
func (ws WorkerStatus) IsFinished() bool {
	return ws == WorkerStatusCompleted || ws == WorkerStatusCancelled || ws == WorkerStatusError
}

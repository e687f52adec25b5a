package export

import "errors"

var (
	// ErrNotReady means OneSignal has not finished generating the file yet.
	ErrNotReady       = errors.New("export file is not ready")
	ErrDownloadFailed = errors.New("export download failed")
	ErrInvalidCSV     = errors.New("invalid export csv")

	ErrInvalidPath        = errors.New("invalid path")
	ErrFailedToCreateFile = errors.New("failed to create file")
	ErrFailedToWriteFile  = errors.New("failed to write file")

	// S3
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrUploadFailed       = errors.New("upload failed")

	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")
)

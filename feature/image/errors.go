package image

import "fmt"

// InvalidExtensionError is returned when a filename does not carry one of
// the allowed image extensions. It is raised before any backing-store call.
type InvalidExtensionError struct {
	// Ext is the rejected extension without the leading dot; empty when the
	// filename has no extension at all.
	Ext string
}

func (e *InvalidExtensionError) Error() string {
	if e.Ext == "" {
		return "missing file extension"
	}
	return fmt.Sprintf("invalid file extension: .%s", e.Ext)
}

// StorageUnavailableError is returned when the backing store rejects or
// fails a bucket, upload, list or fetch operation.
type StorageUnavailableError struct {
	Op  string
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable during %s: %v", e.Op, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error { return e.Err }

// PresignError is returned when the backing store fails to issue a
// presigned URL.
type PresignError struct {
	Object string
	Err    error
}

func (e *PresignError) Error() string {
	return fmt.Sprintf("presign failed for %q: %v", e.Object, e.Err)
}

func (e *PresignError) Unwrap() error { return e.Err }

package apperror

import (
	"errors"
	"fmt"
)

// ProcessingError reports a codec invocation that failed or produced no output.
type ProcessingError struct {
	Message string
	Path    string
	Err     error
}

func (e *ProcessingError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// StorageError reports a filesystem failure while creating, writing or listing store files.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func Processing(message, path string, err error) *ProcessingError {
	return &ProcessingError{
		Message: message,
		Path:    path,
		Err:     err,
	}
}

func Storage(op, path string, err error) *StorageError {
	return &StorageError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

func IsProcessing(err error) bool {
	var procErr *ProcessingError
	return errors.As(err, &procErr)
}

func IsStorage(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

// SourcePath returns the offending source path of a processing error, if any.
func SourcePath(err error) string {
	var procErr *ProcessingError
	if errors.As(err, &procErr) {
		return procErr.Path
	}
	return ""
}

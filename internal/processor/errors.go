package processor

import "errors"

var (
	// ErrNoMedia means a bundle contained no video files at all.
	ErrNoMedia = errors.New("no video files in bundle")

	// ErrDestinationExists means the target path is already occupied.
	ErrDestinationExists = errors.New("destination file already exists")

	// ErrCopyFailed wraps filesystem failures during delivery.
	ErrCopyFailed = errors.New("copy failed")

	// ErrPathTraversal means a computed path escaped its library root.
	ErrPathTraversal = errors.New("path escapes library root")
)

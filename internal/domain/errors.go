package domain

import "errors"

var (
	ErrPathRequired     = errors.New("storage path is required")
	ErrInvalidImageID   = errors.New("invalid image id")
	ErrImageNotFound    = errors.New("image not found")
	ErrMetadataNotFound = errors.New("image metadata not found")
	ErrCacheMiss        = errors.New("cache miss")
	ErrInvalidThumbnail = errors.New("invalid thumbnail spec")
	ErrMirrorDisabled   = errors.New("remote mirror is not configured")
	ErrImageExists      = errors.New("image already exists")
)

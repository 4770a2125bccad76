package domain

import "errors"

var (
	ErrNotFound         = errors.New("resource not found")
	ErrAlreadyExists    = errors.New("resource already exists")
	ErrInvalidOperation = errors.New("invalid batch operation")
	ErrInvalidPath      = errors.New("invalid path")
	ErrNotAFolder       = errors.New("is not a folder.")
)

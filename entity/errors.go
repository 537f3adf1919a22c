package entity

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrDocumentValidation = errors.New("document validation failed")
)

package types

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUnknownColumn  = errors.New("unknown column")
	ErrInvalidUpload  = errors.New("invalid upload")
)

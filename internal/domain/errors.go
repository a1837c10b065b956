package domain

import "errors"

var (
	ErrNotFound   = errors.New("dataset: not found")
	ErrUnreadable = errors.New("dataset: unreadable")
	ErrParse      = errors.New("dataset: malformed")
)

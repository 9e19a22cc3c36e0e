package contract

import "errors"

var (
	ErrValidation     = errors.New("validation failed")
	ErrInvalidQuery   = errors.New("query is empty")
	ErrInvalidUser    = errors.New("user id is empty")
	ErrLookup         = errors.New("record lookup failed")
	ErrDispatch       = errors.New("dispatch failed")
	ErrProcessTimeout = errors.New("responder timed out")
	ErrResponderPanic = errors.New("responder panicked")
)

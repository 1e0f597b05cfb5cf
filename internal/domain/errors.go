package domain

import "errors"

const (
	MsgNotFound       = "Developer not found"
	MsgDuplicateEmail = "Developer with defined email is already exists"
)

var (
	ErrNotFound       = errors.New(MsgNotFound)
	ErrDuplicateEmail = errors.New(MsgDuplicateEmail)
)

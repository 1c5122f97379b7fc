package domain

import "errors"

var (
	ErrParse        = errors.New("parse web app data")
	ErrFileRead     = errors.New("read accounts file")
	ErrRequest      = errors.New("task request failed")
	ErrUnauthorized = errors.New("task request unauthorized")
)

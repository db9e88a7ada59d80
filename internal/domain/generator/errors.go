package generator

import (
	"errors"
)

// Messages committed through UpdateError
const (
	MsgInvalidURL = "Please provide a URL."
	MsgEmptyURL   = "Url is empty"
)

var (
	// ErrNoManifest is returned by actions that need a generated manifest
	ErrNoManifest = errors.New("no manifest has been generated")
	// ErrNoFile is returned when an action needs a file and got none
	ErrNoFile = errors.New("file is required")
)

// userMessager is implemented by transport errors that carry a message
// meant for the user (e.g. the backend's "error" field)
type userMessager interface {
	UserMessage() string
}

// ErrorMessage extracts the text committed to state.error for err
func ErrorMessage(err error) string {
	var um userMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return err.Error()
}

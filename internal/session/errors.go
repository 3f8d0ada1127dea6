package session

import "errors"

var (
	// ErrInvalidFile means no speaker in the uploaded log reached the
	// message threshold.
	ErrInvalidFile = errors.New("no speaker has enough messages")

	ErrEmptySelection = errors.New("no speakers selected")
	ErrUnknownSpeaker = errors.New("speaker not in transcript")
	ErrNoTranscript   = errors.New("no chat log uploaded")
	ErrNoAnalysis     = errors.New("no analysis has been run")
	ErrEmptyMessage   = errors.New("message is empty")
	ErrNotFound       = errors.New("session not found")
)

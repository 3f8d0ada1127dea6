package api

import (
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/typecast/internal/analysis"
	"github.com/MikeSquared-Agency/typecast/internal/llm"
	"github.com/MikeSquared-Agency/typecast/internal/session"
)

// statusFor maps an operation error to an HTTP status and the message shown
// to the user.
func statusFor(err error) (int, string) {
	var maxBytes *http.MaxBytesError
	var failed *analysis.AnalysisFailedError
	var transport *llm.TransportError

	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, "session not found"
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, "chat log is too large"
	case errors.Is(err, session.ErrInvalidFile):
		return http.StatusUnprocessableEntity, "Invalid file: no participant has at least 3 messages in this log."
	case errors.Is(err, session.ErrEmptySelection):
		return http.StatusBadRequest, "Select at least one participant."
	case errors.Is(err, session.ErrUnknownSpeaker):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, session.ErrEmptyMessage):
		return http.StatusBadRequest, "Message is empty."
	case errors.Is(err, session.ErrNoTranscript):
		return http.StatusConflict, "Upload a chat log first."
	case errors.Is(err, session.ErrNoAnalysis):
		return http.StatusConflict, "Run an analysis first."
	case errors.As(err, &transport) && transport.Timeout():
		return http.StatusGatewayTimeout, "The model did not answer in time."
	case errors.As(err, &failed):
		return http.StatusBadGateway, "Analysis failed. Please try again."
	case errors.As(err, &transport):
		return http.StatusBadGateway, "The model could not be reached."
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

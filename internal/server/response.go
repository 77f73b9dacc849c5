package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	tgerrors "github.com/benjaminghys/Tile-Generator-Maya/pkg/errors"
)

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Error string        `json:"error"`
	Code  tgerrors.Code `json:"code,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case tgerrors.Is(err, tgerrors.ErrCodeNotFound), tgerrors.Is(err, tgerrors.ErrCodePresetNotFound):
		return http.StatusNotFound
	case tgerrors.Is(err, tgerrors.ErrCodeInvalidRange),
		tgerrors.Is(err, tgerrors.ErrCodeInvalidDimension),
		tgerrors.Is(err, tgerrors.ErrCodeInvalidPreset),
		tgerrors.Is(err, tgerrors.ErrCodeInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error: tgerrors.UserMessage(err),
		Code:  tgerrors.GetCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func formatSeed(seed uint64) string {
	return strconv.FormatUint(seed, 10)
}

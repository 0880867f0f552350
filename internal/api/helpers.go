package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hyerin/tinywords/internal/errors"
	"github.com/hyerin/tinywords/internal/logger"
)

// meta accompanies every response body.
type meta struct {
	RequestID string `json:"request_id"`
	Timestamp string `json:"timestamp"`
}

func newMeta(r *http.Request) meta {
	return meta{
		RequestID: requestIDFromContext(r.Context()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// respondJSON writes a success envelope: {"data": ..., "meta": ...}.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	body := map[string]any{
		"data": data,
		"meta": newMeta(r),
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// decodeJSON parses the request body into dst, limited to 1 MiB.
func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid request body: " + err.Error())
	}
	return nil
}

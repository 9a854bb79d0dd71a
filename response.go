package tramline

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/theoremus-urban-solutions/tramline/formatter"
	"github.com/theoremus-urban-solutions/tramline/routing"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeGeoJSON = "application/geo+json"
)

type errorPayload struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	writeBody(w, status, contentTypeJSON, v)
}

func writeBody(w http.ResponseWriter, status int, contentType string, v any) {
	b, err := formatter.NewResponseBuilder().BuildJSON(v)
	if err != nil {
		log.Printf("Failed to encode response: %v", err)
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, errorPayload{Error: msg, Kind: kind})
}

// journeyErrorStatus maps a Service.Journey error to its HTTP status and kind.
func journeyErrorStatus(err error) (int, string) {
	var qe *QueryError
	switch {
	case errors.As(err, &qe), errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, ErrUnknownStation):
		return http.StatusNotFound, "unknown_station"
	}
	if kind := routing.KindOf(err); kind != routing.KindUnknown {
		return http.StatusUnprocessableEntity, string(kind)
	}
	return http.StatusInternalServerError, string(routing.KindUnknown)
}

// buildErrorPayload renders msg as a SIRI ErrorCondition.
func buildErrorPayload(msg string) []byte {
	type siriErr struct {
		Siri struct {
			ServiceDelivery struct {
				ErrorCondition struct {
					Description string `json:"Description"`
				} `json:"ErrorCondition"`
			} `json:"ServiceDelivery"`
		} `json:"Siri"`
	}
	var e siriErr
	e.Siri.ServiceDelivery.ErrorCondition.Description = msg
	b, _ := json.Marshal(e)
	return b
}

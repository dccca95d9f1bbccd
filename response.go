package pandalhopper

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/festival-transit/pandal-hopper/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), errorResponse{Error: err.Error()})
}

// statusForError maps the domain failure taxonomy onto HTTP statuses for
// the UI shell. Everything here is recoverable; nothing maps to a crash.
func statusForError(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidCoordinate):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound),
		errors.Is(err, model.ErrUnknownStation):
		return http.StatusNotFound
	case errors.Is(err, model.ErrNoFacilities),
		errors.Is(err, model.ErrZoneUnscoped),
		errors.Is(err, model.ErrLocationSet):
		return http.StatusConflict
	case errors.Is(err, model.ErrPlanningRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrNetwork):
		return http.StatusBadGateway
	case errors.Is(err, model.ErrPermissionDenied),
		errors.Is(err, model.ErrUnsupported),
		errors.Is(err, model.ErrUnavailable):
		return http.StatusFailedDependency
	default:
		return http.StatusBadRequest
	}
}

// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"hotel_match/internal/adapters/observability"
	"hotel_match/internal/app"
	"hotel_match/internal/domain"
	"hotel_match/internal/validation"
)

const apiVersion = "1.0.0"

type Handlers struct {
	Roster   *app.UserRoster
	Registry *app.HotelRegistry
}

type problem struct {
	Type   string                  `json:"type"`
	Title  string                  `json:"title"`
	Status int                     `json:"status"`
	Detail string                  `json:"detail,omitempty"`
	Errors []validation.FieldError `json:"errors,omitempty"`
}

type message struct {
	Message string `json:"message"`
}

// nearestRequest wraps the zipped query so each hotel goes through the
// same rules as a booking body.
type nearestRequest struct {
	Hotels []domain.Hotel `json:"hotels" validate:"dive"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/", h.index)
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api/users", func(r chi.Router) {
		r.Use(s.limit)
		r.Get("/", h.listUsers)
		r.Post("/", h.createUser)
		r.Get("/nearest", h.nearest)
		r.Post("/book", h.book)
		r.Get("/hotels", h.listHotels)
		r.Get("/{id}", h.getUser)
		r.Put("/{id}", h.updateUser)
		r.Delete("/{id}", h.deleteUser)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemBody(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	var ve *validation.Error
	var ie *domain.InvalidInputError
	switch {
	case errors.As(err, &ve):
		writeProblemBody(w, problem{
			Type: "about:blank", Title: "Validation Failed", Status: http.StatusBadRequest,
			Detail: ve.Error(), Errors: ve.Fields,
		})
	case errors.As(err, &ie):
		writeProblem(w, http.StatusBadRequest, "Invalid Input", ie.Reason)
	case errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Invalid Input", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "user not found")
	default:
		log.Error().Err(err).Msg("user directory unavailable")
		writeProblem(w, http.StatusBadGateway, "Upstream Unavailable", "user directory could not be loaded")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "response could not be encoded")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Hotel match API",
		"version": apiVersion,
		"endpoints": []string{
			"GET /api/users",
			"GET /api/users/{id}",
			"POST /api/users",
			"PUT /api/users/{id}",
			"DELETE /api/users/{id}",
			"GET /api/users/nearest?names=..&latitudes=..&longitudes=..",
			"POST /api/users/book",
			"GET /api/users/hotels",
		},
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		var ie *domain.InvalidInputError
		if errors.As(err, &ie) {
			writeProblem(w, http.StatusBadRequest, "Invalid Input", ie.Error())
			return false
		}
		writeProblem(w, http.StatusBadRequest, "Malformed Body", "request body must be valid JSON")
		return false
	}
	return true
}

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Roster.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeWithETag(w, r, users)
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	u, err := h.Roster.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handlers) createUser(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if !decodeBody(w, r, &u) {
		return
	}
	if err := validation.ValidateStruct(&u); err != nil {
		writeError(w, err)
		return
	}
	created, err := h.Roster.Add(r.Context(), u)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/users/%d", created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handlers) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var u domain.User
	if !decodeBody(w, r, &u) {
		return
	}
	if u.ID != 0 && u.ID != id {
		writeProblem(w, http.StatusBadRequest, "ID Mismatch", "body id must match the path id")
		return
	}
	u.ID = id
	if err := validation.ValidateStruct(&u); err != nil {
		writeError(w, err)
		return
	}
	if _, err := h.Roster.Update(r.Context(), u); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Roster.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// queryValues accepts both names=a&names=b and names[]=a&names[]=b.
func queryValues(r *http.Request, key string) []string {
	q := r.URL.Query()
	return append(q[key], q[key+"[]"]...)
}

func parseFloats(field string, raw []string) ([]float64, error) {
	out := make([]float64, len(raw))
	for i, s := range raw {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &domain.InvalidInputError{Field: field, Reason: fmt.Sprintf("%q is not a number", s)}
		}
		out[i] = f
	}
	return out, nil
}

func (h *Handlers) nearest(w http.ResponseWriter, r *http.Request) {
	lats, err := parseFloats("latitudes", queryValues(r, "latitudes"))
	if err != nil {
		writeError(w, err)
		return
	}
	lngs, err := parseFloats("longitudes", queryValues(r, "longitudes"))
	if err != nil {
		writeError(w, err)
		return
	}
	hotels, err := domain.HotelsFromParallel(queryValues(r, "names"), lats, lngs)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := validation.ValidateStruct(&nearestRequest{Hotels: hotels}); err != nil {
		writeError(w, err)
		return
	}

	results, err := h.Roster.Nearest(r.Context(), hotels)
	if err != nil {
		writeError(w, err)
		return
	}
	for _, res := range results {
		observability.ObserveMatch(res.NearestUser != nil)
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handlers) book(w http.ResponseWriter, r *http.Request) {
	var hotel domain.Hotel
	if !decodeBody(w, r, &hotel) {
		return
	}
	if err := validation.ValidateStruct(&hotel); err != nil {
		writeError(w, err)
		return
	}
	booked := h.Registry.Book(hotel)
	observability.ObserveBooking(booked)
	if !booked {
		writeProblem(w, http.StatusConflict, "Hotel booking failed.", fmt.Sprintf("%s is already booked", hotel.Name))
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "Hotel booked successfully."})
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	writeWithETag(w, r, h.Registry.List())
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"mosque/internal/listing"
	"mosque/internal/locate"
	"mosque/internal/presentation"
	"mosque/internal/proximity"
	"mosque/pkg/directions"
	"mosque/pkg/geo"
)

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func (s *Server) listMosques(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, listing.Filter(s.engine.Mosques(), r.URL.Query().Get("district")))
}

func (s *Server) listDistricts(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, listing.Districts(s.engine.Mosques()))
}

func (s *Server) nearby(w http.ResponseWriter, r *http.Request) {
	ref, err := parseCoordinate(r)
	if err != nil {
		respondWithError(w, err, nil)
		return
	}

	radius := s.engine.State().RadiusKm
	if v := r.URL.Query().Get("radius"); v != "" {
		radius, err = strconv.ParseFloat(v, 64)
		if err != nil || !(radius > 0) {
			respondWithError(w, fmt.Errorf("%w: %q", presentation.ErrInvalidRadius, v), nil)
			return
		}
	}

	points := proximity.Classify(&ref, radius, s.engine.Mosques())
	if r.URL.Query().Get("within") == "true" {
		points = proximity.Within(points)
	}
	respondWithJSON(w, http.StatusOK, points)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		respondWithError(w, locate.ErrEmptyQuery, nil)
		return
	}
	places, err := s.geocoder.Search(r.Context(), q, 1)
	if err != nil {
		respondWithError(w, fmt.Errorf("%w: %v", locate.ErrNetwork, err), nil)
		return
	}
	if len(places) == 0 {
		respondWithError(w, locate.ErrNotFound, nil)
		return
	}
	respondWithJSON(w, http.StatusOK, places[0])
}

func (s *Server) suggest(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.suggester.Query(r.Context(), clientKey(r), r.URL.Query().Get("q"))
	if err != nil {
		respondWithError(w, err, nil)
		return
	}
	respondWithJSON(w, http.StatusOK, suggestions)
}

// clientKey identifies the browser behind a request for autocomplete
// debouncing. Clients may name themselves with X-Client-ID; otherwise the
// remote address is used, which middleware.RealIP fills from proxy headers.
func clientKey(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get("X-Client-ID")); id != "" {
		return id
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (s *Server) directions(w http.ResponseWriter, r *http.Request) {
	dest, err := parseCoordinate(r)
	if err != nil {
		respondWithError(w, err, nil)
		return
	}
	platform := directions.DetectPlatform(r.UserAgent())
	respondWithJSON(w, http.StatusOK, map[string]string{
		"platform": platform.String(),
		"url":      directions.URL(dest, platform),
	})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) applyEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		respondWithError(w, badRequest("reading body: %v", err), nil)
		return
	}
	ev, err := presentation.DecodeEvent(body)
	if err != nil {
		if !errors.Is(err, presentation.ErrUnknownEvent) {
			err = badRequest("%v", err)
		}
		respondWithError(w, err, nil)
		return
	}
	state, err := s.engine.HandleEvent(ev)
	s.reply(w, state, err)
}

type locateRequest struct {
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Error string   `json:"error"`
}

// locate applies a device fix, or the failure the device reported, such as
// {"error":"permission_denied"}.
func (s *Server) locate(w http.ResponseWriter, r *http.Request) {
	var req locateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, badRequest("invalid body: %v", err), nil)
		return
	}

	var loc locate.Locator
	switch {
	case req.Error != "":
		loc = locate.Failing(locate.ParseFailure(req.Error))
	case req.Lat != nil && req.Lng != nil:
		loc = locate.Fixed(geo.Coordinate{Lat: *req.Lat, Lng: *req.Lng})
	default:
		respondWithError(w, badRequest("lat and lng or error required"), nil)
		return
	}
	state, err := s.controller.Locate(r.Context(), loc)
	s.reply(w, state, err)
}

type searchRequest struct {
	Query string `json:"query"`
}

func (s *Server) sessionSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, badRequest("invalid body: %v", err), nil)
		return
	}
	state, err := s.controller.Search(r.Context(), req.Query)
	s.reply(w, state, err)
}

func (s *Server) selectSuggestion(w http.ResponseWriter, r *http.Request) {
	var sug locate.Suggestion
	if err := json.NewDecoder(r.Body).Decode(&sug); err != nil {
		respondWithError(w, badRequest("invalid body: %v", err), nil)
		return
	}
	if !(geo.Coordinate{Lat: sug.Lat, Lng: sug.Lng}).Valid() {
		respondWithError(w, badRequest("invalid coordinate"), nil)
		return
	}
	state, err := s.controller.Apply(sug)
	s.reply(w, state, err)
}

func (s *Server) focus(w http.ResponseWriter, r *http.Request) {
	state, err := s.engine.Focus(chi.URLParam(r, "id"))
	s.reply(w, state, err)
}

func (s *Server) reply(w http.ResponseWriter, state presentation.SessionState, err error) {
	if err != nil {
		respondWithError(w, err, &state)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

func parseCoordinate(r *http.Request) (geo.Coordinate, error) {
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")
	if latStr == "" || lngStr == "" {
		return geo.Coordinate{}, badRequest("missing location parameters")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return geo.Coordinate{}, badRequest("invalid latitude %q", latStr)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return geo.Coordinate{}, badRequest("invalid longitude %q", lngStr)
	}
	c := geo.Coordinate{Lat: lat, Lng: lng}
	if !c.Valid() {
		return geo.Coordinate{}, badRequest("coordinate out of range")
	}
	return c, nil
}

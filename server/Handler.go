// Package server exposes a route.Router over HTTP with a JSON API
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/samuelfneumann/warehouse/agent/tabular/qlearning"
	"github.com/samuelfneumann/warehouse/route"
)

// RouteRequest is the body of a route query. Via is optional.
type RouteRequest struct {
	Start string `json:"start"`
	Via   string `json:"via,omitempty"`
	End   string `json:"end"`
}

// RouteResponse is the body returned for a successful route query
type RouteResponse struct {
	Route []string `json:"route"`
	Steps int      `json:"steps"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// RoutingHandler serves route queries
type RoutingHandler struct {
	router *route.Router
}

// NewRoutingHandler returns a new RoutingHandler answering queries with
// router
func NewRoutingHandler(router *route.Router) *RoutingHandler {
	return &RoutingHandler{router: router}
}

// RegisterRoutes registers the handler's endpoints with router
func (h *RoutingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/routes", h.CalculateRoute).Methods("POST")
	router.HandleFunc("/api/locations", h.GetLocations).Methods("GET")
}

// CalculateRoute answers a RouteRequest
func (h *RoutingHandler) CalculateRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest,
			errorResponse{"invalid request body"})
		return
	}

	var (
		path []string
		err  error
	)
	if req.Via == "" {
		path, err = h.router.Route(req.Start, req.End)
	} else {
		path, err = h.router.BestRoute(req.Start, req.Via, req.End)
	}

	switch {
	case errors.Is(err, route.ErrUnknownLocation):
		writeJSON(w, http.StatusNotFound, errorResponse{err.Error()})
	case errors.Is(err, qlearning.ErrRouteStalled):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{err.Error()})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{err.Error()})
	default:
		writeJSON(w, http.StatusOK, RouteResponse{path, len(path) - 1})
	}
}

// GetLocations lists the known locations
func (h *RoutingHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"locations": h.router.Locations(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/samuelfneumann/warehouse/agent/tabular/qlearning"
	"github.com/samuelfneumann/warehouse/environment/warehouse"
	"github.com/samuelfneumann/warehouse/route"
)

func newServer(t *testing.T, episodes int) *mux.Router {
	t.Helper()

	c := qlearning.DefaultConfig()
	c.Episodes = episodes
	r, err := route.New(warehouse.Reference(), c, 7)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	router := mux.NewRouter()
	NewRoutingHandler(r).RegisterRoutes(router)
	return router
}

func post(t *testing.T, router *mux.Router, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/routes",
		bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCalculateRoute(t *testing.T) {
	router := newServer(t, 10000)

	tests := []struct {
		name  string
		body  string
		start string
		end   string
	}{
		{"Direct", `{"start": "E", "end": "G"}`, "E", "G"},
		{"Via", `{"start": "E", "via": "K", "end": "G"}`, "E", "G"},
		{"Same", `{"start": "D", "end": "D"}`, "D", "D"},
	}

	for _, test := range tests {
		rec := post(t, router, test.body)
		if rec.Code != http.StatusOK {
			t.Errorf("%v: expected status 200, got %v (%v)", test.name,
				rec.Code, rec.Body.String())
			continue
		}

		var resp RouteResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("%v: could not decode response: %v", test.name, err)
		}
		if len(resp.Route) == 0 || resp.Route[0] != test.start ||
			resp.Route[len(resp.Route)-1] != test.end {
			t.Errorf("%v: expected %v ... %v, got %v", test.name, test.start,
				test.end, resp.Route)
		}
		if resp.Steps != len(resp.Route)-1 {
			t.Errorf("%v: expected %v steps, got %v", test.name,
				len(resp.Route)-1, resp.Steps)
		}
	}
}

func TestCalculateRouteErrors(t *testing.T) {
	router := newServer(t, 1)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"BadBody", `{"start": `, http.StatusBadRequest},
		{"Unknown", `{"start": "Z", "end": "G"}`, http.StatusNotFound},
		{"Stalled", `{"start": "E", "end": "L"}`,
			http.StatusUnprocessableEntity},
	}

	for _, test := range tests {
		rec := post(t, router, test.body)
		if rec.Code != test.status {
			t.Errorf("%v: expected status %v, got %v", test.name,
				test.status, rec.Code)
		}
	}
}

func TestGetLocations(t *testing.T) {
	router := newServer(t, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/locations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("getLocations: expected status 200, got %v", rec.Code)
	}

	var resp struct {
		Locations []string `json:"locations"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("getLocations: could not decode response: %v", err)
	}
	if len(resp.Locations) != 12 || resp.Locations[0] != "A" {
		t.Errorf("getLocations: unexpected locations %v", resp.Locations)
	}
}

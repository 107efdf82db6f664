package health

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

var ready atomic.Bool

func init() { ready.Store(true) }

// SetReady toggles the process-wide readiness flag. Shutdown flips it to
// false so load balancers drain the instance before the listener closes.
func SetReady(value bool) { ready.Store(value) }

// Checker reports whether the in-memory data the API serves was loaded.
type Checker interface {
	CatalogLoaded() bool
	CustomersLoaded() bool
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checker Checker
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on the loaded stores and the shutdown flag.
func (h Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	status := map[string]string{
		"catalog":   "ok",
		"customers": "ok",
	}
	healthy := ready.Load()
	if h.Checker == nil {
		healthy = false
		status["catalog"] = "not configured"
		status["customers"] = "not configured"
	} else {
		if !h.Checker.CatalogLoaded() {
			healthy = false
			status["catalog"] = "not loaded"
		}
		if !h.Checker.CustomersLoaded() {
			healthy = false
			status["customers"] = "not loaded"
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if !healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}

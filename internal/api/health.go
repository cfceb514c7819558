package api

import "net/http"

type indexResponse struct {
	Service  string `json:"service"`
	Hostname string `json:"hostname"`
	Status   string `json:"status"`
	Database string `json:"database"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Hostname string `json:"hostname"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, indexResponse{
		Service:  s.serviceName,
		Hostname: s.hostname,
		Status:   "running",
		Database: "connected",
	})
}

// handleHealth probes the database with a trivial query and reports
// liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, healthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Hostname: s.hostname,
			Error:    err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "healthy",
		Database: "connected",
		Hostname: s.hostname,
	})
}

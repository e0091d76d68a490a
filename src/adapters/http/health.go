package http

import (
	"context"
	"net/http"
	"time"
)

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if s.healthChecker != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.healthChecker.Ping(ctx); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

package http

import (
	"net/http"
)

func (s *Server) ListColaboradores(w http.ResponseWriter, r *http.Request) {
	colaboradores, err := s.colaboradorService.ListAll(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, colaboradores)
}

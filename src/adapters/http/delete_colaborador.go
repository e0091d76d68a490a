package http

import (
	"net/http"
)

func (s *Server) DeleteColaborador(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.colaboradorService.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: MessageColaboradorDeleted})
}

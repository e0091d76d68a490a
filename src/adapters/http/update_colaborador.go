package http

import (
	"net/http"
)

// UpdateColaborador sobrescreve a linha inteira; id inexistente também responde 200.
func (s *Server) UpdateColaborador(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	request, err := decodeColaborador(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.colaboradorService.Update(r.Context(), id, request.ToEntity()); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: MessageColaboradorUpdated})
}

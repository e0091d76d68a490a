package http

import (
	"net/http"
)

func (s *Server) CreateColaborador(w http.ResponseWriter, r *http.Request) {
	request, err := decodeColaborador(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	created, err := s.colaboradorService.Create(r.Context(), request.ToEntity())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{
		Message: MessageColaboradorCreated,
		ID:      created.ID,
	})
}

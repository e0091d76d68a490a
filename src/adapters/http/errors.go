package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"colaboradores/src/domain"
)

// writeError traduz o erro do serviço para status e corpo estruturado.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, response := errorResponse(err)

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err)
	} else {
		s.logger.Warn("request rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err)
	}

	writeJSON(w, status, response)
}

func errorResponse(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrInvalidPayload), errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, ErrorResponse{
			Success: false,
			Message: "Requisição inválida",
			Error:   err.Error(),
		}
	case errors.Is(err, domain.ErrConnection):
		return http.StatusServiceUnavailable, ErrorResponse{
			Success: false,
			Message: "Banco de dados indisponível",
			Error:   domain.ErrUnavailableServer.Error(),
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Message: "Erro ao processar a requisição",
			Error:   domain.ErrUnavailableServer.Error(),
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// o status já foi enviado, falha aqui é conexão fechada pelo cliente
	_ = json.NewEncoder(w).Encode(body)
}

func parseID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer, got %q", domain.ErrInvalidID, raw)
	}
	return id, nil
}

func decodeColaborador(r *http.Request) (ColaboradorRequest, error) {
	var request ColaboradorRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return ColaboradorRequest{}, fmt.Errorf("%w: %w", domain.ErrInvalidPayload, err)
	}
	return request, nil
}

package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"colaboradores/src/services/colaborador"
)

// HealthChecker é satisfeito pelo postgres.ConnectionPool.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Server representa o servidor HTTP da API
type Server struct {
	logger             *slog.Logger
	server             *http.Server
	mux                *http.ServeMux
	port               int
	allowedOrigin      string
	colaboradorService *colaborador.ColaboradorService
	healthChecker      HealthChecker
}

// NewServer cria uma nova instância do servidor
func NewServer(
	logger *slog.Logger,
	port int,
	allowedOrigin string,
	colaboradorService *colaborador.ColaboradorService,
	healthChecker HealthChecker,
) *Server {
	server := &Server{
		mux:                http.NewServeMux(),
		port:               port,
		allowedOrigin:      allowedOrigin,
		logger:             logger,
		colaboradorService: colaboradorService,
		healthChecker:      healthChecker,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Rotas de Leitura
	server.mux.HandleFunc("GET /api/colaboradores", server.ListColaboradores)

	// Rotas de Escritas
	server.mux.HandleFunc("POST /api/colaboradores", server.CreateColaborador)
	server.mux.HandleFunc("PUT /api/colaboradores/{id}", server.UpdateColaborador)
	server.mux.HandleFunc("DELETE /api/colaboradores/{id}", server.DeleteColaborador)

	server.mux.HandleFunc("GET /health", server.Health)

	return server
}

// Handler devolve o mux com os middlewares aplicados.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.cors(s.mux))
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

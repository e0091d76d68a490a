package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"colaboradores/src/domain/entities"
)

// APIError é devolvido para qualquer resposta fora da faixa 2xx.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("colaboradores api: status %d: %s", e.Status, e.Message)
}

type ColaboradoresClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewColaboradoresClient recebe a URL base da API, com ou sem o sufixo /api.
func NewColaboradoresClient(baseURL string, httpClient *http.Client) *ColaboradoresClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(baseURL, "/api") {
		baseURL += "/api"
	}

	return &ColaboradoresClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type messageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *ColaboradoresClient) List(ctx context.Context) ([]entities.Colaborador, error) {
	var colaboradores []entities.Colaborador
	if err := c.do(ctx, http.MethodGet, "/colaboradores", nil, &colaboradores); err != nil {
		return nil, err
	}

	if colaboradores == nil {
		colaboradores = make([]entities.Colaborador, 0)
	}

	return colaboradores, nil
}

// Create devolve o id atribuído pelo servidor.
func (c *ColaboradoresClient) Create(ctx context.Context, colaborador entities.Colaborador) (int64, error) {
	var response messageResponse
	if err := c.do(ctx, http.MethodPost, "/colaboradores", colaborador.WithoutID(), &response); err != nil {
		return 0, err
	}

	return response.ID, nil
}

func (c *ColaboradoresClient) Update(ctx context.Context, id int64, colaborador entities.Colaborador) error {
	path := fmt.Sprintf("/colaboradores/%d", id)
	return c.do(ctx, http.MethodPut, path, colaborador.WithoutID(), &messageResponse{})
}

func (c *ColaboradoresClient) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/colaboradores/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, &messageResponse{})
}

func (c *ColaboradoresClient) do(ctx context.Context, method string, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("ColaboradoresClient.%s - failed to marshal body: %w", method, err)
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("ColaboradoresClient.%s - failed to build request: %w", method, err)
	}

	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("ColaboradoresClient.%s - request failed: %w", method, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("ColaboradoresClient.%s - failed to read response: %w", method, err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return newAPIError(response.StatusCode, payload)
	}

	if out == nil || len(payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("ColaboradoresClient.%s - failed to decode response: %w", method, err)
	}

	return nil
}

func newAPIError(status int, payload []byte) *APIError {
	var body errorResponse
	if err := json.Unmarshal(payload, &body); err == nil && body.Message != "" {
		return &APIError{Status: status, Message: body.Message}
	}

	message := strings.TrimSpace(string(payload))
	if message == "" {
		message = http.StatusText(status)
	}

	return &APIError{Status: status, Message: message}
}

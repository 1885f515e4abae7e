package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

// SpecHandler отдаёт OpenAPI-документ в JSON (GET /api/openapi.json).
type SpecHandler struct {
	body []byte
}

// NewSpecHandler сериализует документ один раз при создании.
func NewSpecHandler(doc *openapi3.T) (*SpecHandler, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("сериализация OpenAPI-документа: %w", err)
	}
	return &SpecHandler{body: body}, nil
}

func (h *SpecHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.body)
}

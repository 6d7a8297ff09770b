package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Phaneesh28/project-backend/internal/service"
	"github.com/Phaneesh28/project-backend/pkg/config"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	authService    service.AuthService
	catalogService service.CatalogService
	config         *config.Config
}

func New(
	authService service.AuthService,
	catalogService service.CatalogService,
	config *config.Config,
) *Handlers {
	return &Handlers{
		authService:    authService,
		catalogService: catalogService,
		config:         config,
	}
}

// Welcome answers the root path.
func (h *Handlers) Welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "Welcome to the Backend!")
}

// decodeJSON reads exactly one JSON object into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}

package handlers

import (
	"github.com/fitcheckapp/backend/internal/collections"
	"github.com/fitcheckapp/backend/internal/storage"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	images      storage.ImageStore
	collections *collections.Store
}

// NewHandlers creates a new handlers instance
func NewHandlers(images storage.ImageStore, cols *collections.Store) *Handlers {
	return &Handlers{
		images:      images,
		collections: cols,
	}
}

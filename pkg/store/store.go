// Package store persists diagrams for the HTTP server.
//
// This package defines the Store interface with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for persistent deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "asciigram")
//
// Save and retrieve diagrams:
//
//	d := store.NewDiagram("deploy flow", source)
//	if err := st.Put(ctx, d); err != nil {
//	    return err
//	}
//	d, err := st.Get(ctx, d.ID)
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Diagram is a stored flowchart source with metadata.
type Diagram struct {
	ID        string    `json:"id" bson:"_id"`
	Title     string    `json:"title,omitempty" bson:"title,omitempty"`
	Source    string    `json:"source" bson:"source"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewDiagram creates a diagram with a fresh ID and timestamps.
func NewDiagram(title, source string) *Diagram {
	now := time.Now().UTC()
	return &Diagram{
		ID:        uuid.NewString(),
		Title:     title,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store persists diagrams.
type Store interface {
	// Put inserts or replaces a diagram by ID.
	Put(ctx context.Context, d *Diagram) error

	// Get retrieves a diagram by ID. Returns a DIAGRAM_NOT_FOUND error
	// when no diagram has that ID.
	Get(ctx context.Context, id string) (*Diagram, error)

	// List returns all diagrams ordered by creation time.
	List(ctx context.Context) ([]*Diagram, error)

	// Delete removes a diagram. Deleting a missing diagram is not an
	// error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

package apitypes

import "time"

// Entity is a knowledge-graph node managed through the console.
type Entity struct {
	ID         string         `json:"id"`
	ClassIRI   string         `json:"class_iri"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties,omitempty"`
	SourceID   string         `json:"source_id,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// CreateEntityRequest is the payload for creating a knowledge-graph entity.
type CreateEntityRequest struct {
	ClassIRI   string         `json:"class_iri"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties,omitempty"`
	SourceID   string         `json:"source_id,omitempty"`
}

// UpdateEntityRequest is the payload for updating a knowledge-graph entity.
type UpdateEntityRequest struct {
	Label      *string         `json:"label,omitempty"`
	Properties *map[string]any `json:"properties,omitempty"`
}

package apitypes

import "time"

// Visualization is a saved graph/chart configuration rendered by the console.
type Visualization struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Kind      string         `json:"kind"`
	Query     string         `json:"query"`
	Options   map[string]any `json:"options,omitempty"`
	OwnerID   string         `json:"owner_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CreateVisualizationRequest is the payload for saving a visualization.
type CreateVisualizationRequest struct {
	Name    string         `json:"name"`
	Kind    string         `json:"kind"`
	Query   string         `json:"query"`
	Options map[string]any `json:"options,omitempty"`
}

// UpdateVisualizationRequest is the payload for updating a visualization.
type UpdateVisualizationRequest struct {
	Name    *string         `json:"name,omitempty"`
	Query   *string         `json:"query,omitempty"`
	Options *map[string]any `json:"options,omitempty"`
}

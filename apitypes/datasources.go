package apitypes

import "time"

// Datasource is an ingested data source (CSV upload, database connection,
// API feed) the console manages.
type Datasource struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Kind        string    `json:"kind"`
	Status      string    `json:"status"`
	RecordCount int       `json:"record_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DatasourceStats is the aggregate served under the datasources stats scope.
type DatasourceStats struct {
	Total        int            `json:"total"`
	ByKind       map[string]int `json:"by_kind"`
	ByStatus     map[string]int `json:"by_status"`
	TotalRecords int            `json:"total_records"`
}

// DatasourceActivity is one entry of a datasource's ingestion history.
type DatasourceActivity struct {
	ID           string    `json:"id"`
	DatasourceID string    `json:"datasource_id"`
	Event        string    `json:"event"`
	Detail       string    `json:"detail,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// CreateDatasourceRequest is the payload for registering a datasource.
type CreateDatasourceRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	URI  string `json:"uri,omitempty"`
}

// UploadDatasourceRequest registers a datasource from an uploaded file.
// Content is base64-encoded on the wire.
type UploadDatasourceRequest struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
	Content  []byte `json:"content"`
}

// UpdateDatasourceRequest is the payload for updating a datasource.
type UpdateDatasourceRequest struct {
	Name   *string `json:"name,omitempty"`
	Status *string `json:"status,omitempty"`
}

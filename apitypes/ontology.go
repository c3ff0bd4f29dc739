package apitypes

import "time"

// OntologyClass is a class definition imported from the FIBO ontology.
type OntologyClass struct {
	IRI        string    `json:"iri"`
	Label      string    `json:"label"`
	ParentIRI  string    `json:"parent_iri,omitempty"`
	Definition string    `json:"definition,omitempty"`
	Deprecated bool      `json:"deprecated"`
	ImportedAt time.Time `json:"imported_at"`
}

// OntologyProperty is a property definition imported from the FIBO ontology.
type OntologyProperty struct {
	IRI        string    `json:"iri"`
	Label      string    `json:"label"`
	DomainIRI  string    `json:"domain_iri,omitempty"`
	RangeIRI   string    `json:"range_iri,omitempty"`
	Functional bool      `json:"functional"`
	ImportedAt time.Time `json:"imported_at"`
}

// OntologyImportRequest starts an ontology import from a source URL or an
// already-uploaded file.
type OntologyImportRequest struct {
	SourceURL string `json:"source_url,omitempty"`
	UploadID  string `json:"upload_id,omitempty"`
	Replace   bool   `json:"replace"`
}

// OntologyImportReport summarizes a completed ontology import.
type OntologyImportReport struct {
	ImportID   string    `json:"import_id"`
	Classes    int       `json:"classes"`
	Properties int       `json:"properties"`
	Skipped    int       `json:"skipped"`
	FinishedAt time.Time `json:"finished_at"`
}

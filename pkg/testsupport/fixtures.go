// Package testsupport provides the fake console backend and fixture
// builders shared by integration tests.
package testsupport

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ontoops/go-console-cache/apitypes"
)

// NewUser builds an active user fixture for the given email address.
func NewUser(email string) apitypes.User {
	now := time.Now().UTC().Truncate(time.Second)
	name := strings.SplitN(email, "@", 2)[0]
	return apitypes.User{
		ID:        uuid.NewString(),
		Email:     email,
		FullName:  titleCase(strings.ReplaceAll(name, ".", " ")),
		Roles:     []string{"viewer"},
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// NewRole builds a role fixture with a couple of read permissions.
func NewRole(name string) apitypes.Role {
	return apitypes.Role{
		ID:          uuid.NewString(),
		Name:        name,
		Permissions: []string{name + ":read", name + ":list"},
	}
}

// NewDatasource builds a ready CSV datasource fixture.
func NewDatasource(name string) apitypes.Datasource {
	now := time.Now().UTC().Truncate(time.Second)
	return apitypes.Datasource{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      "csv",
		Status:    "ready",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewRule builds an enabled validation rule fixture.
func NewRule(name, severity string) apitypes.ValidationRule {
	now := time.Now().UTC().Truncate(time.Second)
	return apitypes.ValidationRule{
		ID:         uuid.NewString(),
		Name:       name,
		Severity:   severity,
		Expression: "label != ''",
		Enabled:    true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewWorker builds an idle worker fixture on the default queue.
func NewWorker(name string) apitypes.Worker {
	return apitypes.Worker{
		ID:            uuid.NewString(),
		Name:          name,
		Queue:         "default",
		Status:        "idle",
		LastHeartbeat: time.Now().UTC().Truncate(time.Second),
	}
}

// NewEntity builds a knowledge-graph entity fixture of the given class.
func NewEntity(classIRI, label string) apitypes.Entity {
	now := time.Now().UTC().Truncate(time.Second)
	return apitypes.Entity{
		ID:        uuid.NewString(),
		ClassIRI:  classIRI,
		Label:     label,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewVisualization builds a saved graph visualization fixture.
func NewVisualization(name, ownerID string) apitypes.Visualization {
	now := time.Now().UTC().Truncate(time.Second)
	return apitypes.Visualization{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      "graph",
		Query:     "MATCH (n) RETURN n LIMIT 50",
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

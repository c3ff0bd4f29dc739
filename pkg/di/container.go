// Package di wires the cache store, the backend client, and the typed
// resource accessors into one container so applications construct the whole
// console data layer in a single call.
package di

import (
	"fmt"
	"log/slog"

	"github.com/ontoops/go-console-cache/apitypes"
	"github.com/ontoops/go-console-cache/cache"
	"github.com/ontoops/go-console-cache/consolecache"
	"github.com/ontoops/go-console-cache/resources"
	"github.com/ontoops/go-console-cache/restapi"
)

// Config aggregates the configuration of every component the container owns.
type Config struct {
	Cache  cache.Config
	API    restapi.Config
	Logger *slog.Logger
}

// Container manages singleton instances of the cache store, the API client,
// the invalidation executor, and one accessor per console namespace.
type Container struct {
	config   Config
	store    cache.Store
	client   *restapi.Client
	registry *consolecache.Registry
	executor *consolecache.Executor

	users          *resources.Users
	roles          *resources.Roles
	datasources    *resources.Datasources
	rules          *resources.Rules
	ontology       *resources.Ontology
	entities       *resources.Entities
	workers        *resources.Workers
	visualizations *resources.Visualizations
}

// NewContainer builds the full console data layer: store, client, manifest
// registry, executor, and all namespace accessors. The token pair is the
// session the client starts from.
func NewContainer(cfg Config, tokens apitypes.TokenPair) (*Container, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.API.Logger == nil {
		cfg.API.Logger = cfg.Logger
	}

	store, err := cache.NewStore(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("build cache store: %w", err)
	}

	registry, err := resources.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("build manifest registry: %w", err)
	}

	client := restapi.NewClient(cfg.API, tokens)
	executor := consolecache.NewExecutor(registry, store, cfg.Logger)

	return &Container{
		config:         cfg,
		store:          store,
		client:         client,
		registry:       registry,
		executor:       executor,
		users:          resources.NewUsers(client, store, executor),
		roles:          resources.NewRoles(client, store, executor),
		datasources:    resources.NewDatasources(client, store, executor),
		rules:          resources.NewRules(client, store, executor),
		ontology:       resources.NewOntology(client, store, executor),
		entities:       resources.NewEntities(client, store, executor),
		workers:        resources.NewWorkers(client, store, executor),
		visualizations: resources.NewVisualizations(client, store, executor),
	}, nil
}

// NewContainerWithDefaults builds a container with the default cache
// configuration against the given backend URL.
func NewContainerWithDefaults(baseURL string, tokens apitypes.TokenPair) (*Container, error) {
	return NewContainer(Config{
		Cache: cache.DefaultConfig(),
		API:   restapi.Config{BaseURL: baseURL},
	}, tokens)
}

// Close releases the API client's transport resources.
func (c *Container) Close() error {
	return c.client.Close()
}

// Store returns the shared cache store. Useful for advanced callers that
// invalidate prefixes directly.
func (c *Container) Store() cache.Store { return c.store }

// Client returns the authenticated backend client.
func (c *Container) Client() *restapi.Client { return c.client }

// Registry returns the manifest registry covering every namespace.
func (c *Container) Registry() *consolecache.Registry { return c.registry }

// Executor returns the invalidation executor shared by all accessors.
func (c *Container) Executor() *consolecache.Executor { return c.executor }

// Config returns a copy of the configuration the container was built with.
func (c *Container) Config() Config { return c.config }

func (c *Container) Users() *resources.Users                   { return c.users }
func (c *Container) Roles() *resources.Roles                   { return c.roles }
func (c *Container) Datasources() *resources.Datasources       { return c.datasources }
func (c *Container) Rules() *resources.Rules                   { return c.rules }
func (c *Container) Ontology() *resources.Ontology             { return c.ontology }
func (c *Container) Entities() *resources.Entities             { return c.entities }
func (c *Container) Workers() *resources.Workers               { return c.workers }
func (c *Container) Visualizations() *resources.Visualizations { return c.visualizations }

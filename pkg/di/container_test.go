package di_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontoops/go-console-cache/apitypes"
	"github.com/ontoops/go-console-cache/cache"
	"github.com/ontoops/go-console-cache/pkg/di"
	"github.com/ontoops/go-console-cache/pkg/testsupport"
	"github.com/ontoops/go-console-cache/restapi"
)

func newTestContainer(t *testing.T, backend *testsupport.FakeConsole) *di.Container {
	t.Helper()

	cacheCfg := cache.DefaultConfig()
	// deterministic fetch counts: no background refreshes during the test
	cacheCfg.EarlyRefresh = nil

	c, err := di.NewContainer(di.Config{
		Cache: cacheCfg,
		API:   restapi.Config{BaseURL: backend.Server.URL},
	}, backend.Tokens())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestContainer_CreateDatasourceRefreshesList(t *testing.T) {
	backend := testsupport.NewFakeConsole(nil, nil, []apitypes.Datasource{
		testsupport.NewDatasource("Orders DB"),
	})
	defer backend.Close()

	c := newTestContainer(t, backend)
	ctx := context.Background()

	items, page, err := c.Datasources().List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, page.Total)

	// cache hit, no second round trip
	_, _, err = c.Datasources().List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, backend.Requests("GET /datasources"))

	created, err := c.Datasources().Create(ctx, apitypes.CreateDatasourceRequest{Name: "Sales CSV", Kind: "csv"})
	require.NoError(t, err)
	assert.Equal(t, "Sales CSV", created.Name)

	items, _, err = c.Datasources().List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, backend.Requests("GET /datasources"))

	names := []string{items[0].Name, items[1].Name}
	assert.Contains(t, names, "Sales CSV")
}

func TestContainer_AssignRoleFansOutAcrossNamespaces(t *testing.T) {
	admin := testsupport.NewRole("admin")
	user := testsupport.NewUser("ada@example.com")
	backend := testsupport.NewFakeConsole(
		[]apitypes.User{user},
		[]apitypes.Role{admin},
		[]apitypes.Datasource{testsupport.NewDatasource("Orders DB")},
	)
	defer backend.Close()

	c := newTestContainer(t, backend)
	ctx := context.Background()

	// warm every view role assignment is expected to touch, plus one it is not
	_, _, err := c.Users().List(ctx, nil)
	require.NoError(t, err)
	_, err = c.Users().Get(ctx, user.ID)
	require.NoError(t, err)
	_, err = c.Users().Stats(ctx)
	require.NoError(t, err)
	_, _, err = c.Roles().List(ctx, nil)
	require.NoError(t, err)
	_, _, err = c.Datasources().List(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, c.Users().AssignRole(ctx, user.ID, admin.ID))

	got, err := c.Users().Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Contains(t, got.Roles, admin.ID)

	_, _, err = c.Users().List(ctx, nil)
	require.NoError(t, err)
	_, err = c.Users().Stats(ctx)
	require.NoError(t, err)
	_, _, err = c.Roles().List(ctx, nil)
	require.NoError(t, err)
	_, _, err = c.Datasources().List(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, backend.Requests("GET /users"))
	assert.Equal(t, 2, backend.Requests("GET /users/"+user.ID))
	assert.Equal(t, 2, backend.Requests("GET /users/stats"))
	assert.Equal(t, 2, backend.Requests("GET /roles"))
	// untouched namespace stays cached
	assert.Equal(t, 1, backend.Requests("GET /datasources"))
}

func TestContainer_DeleteDatasourceRemovesDetailEntry(t *testing.T) {
	ds := testsupport.NewDatasource("Orders DB")
	backend := testsupport.NewFakeConsole(nil, nil, []apitypes.Datasource{ds})
	defer backend.Close()

	c := newTestContainer(t, backend)
	ctx := context.Background()

	_, err := c.Datasources().Get(ctx, ds.ID)
	require.NoError(t, err)

	key := c.Datasources().DetailKey(ds.ID)
	_, ok := cache.Peek[apitypes.Datasource](c.Store(), key)
	require.True(t, ok)

	require.NoError(t, c.Datasources().Delete(ctx, ds.ID))

	_, ok = cache.Peek[apitypes.Datasource](c.Store(), key)
	assert.False(t, ok, "detail entry must be removed, not just staled")

	_, err = c.Datasources().Get(ctx, ds.ID)
	require.Error(t, err)
	assert.True(t, restapi.IsNotFound(err))
}

func TestContainer_RecoversFromRotatedAccessToken(t *testing.T) {
	backend := testsupport.NewFakeConsole(
		[]apitypes.User{testsupport.NewUser("ada@example.com")},
		nil, nil,
	)
	defer backend.Close()

	c := newTestContainer(t, backend)
	ctx := context.Background()

	backend.RotateAccessToken()

	users, _, err := c.Users().List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 1, backend.Requests("POST /auth/refresh"))
}

func TestContainerWithDefaults(t *testing.T) {
	backend := testsupport.NewFakeConsole(nil, nil, nil)
	defer backend.Close()

	c, err := di.NewContainerWithDefaults(backend.Server.URL, backend.Tokens())
	require.NoError(t, err)
	defer c.Close()

	require.NotNil(t, c.Store())
	require.NotNil(t, c.Executor())
	assert.ElementsMatch(t, c.Registry().Namespaces(), []string{
		"users", "roles", "datasources", "rules",
		"ontology", "entities", "workers", "visualizations",
	})
}

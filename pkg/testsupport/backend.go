package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/ontoops/go-console-cache/apitypes"
)

// FakeConsole is an in-memory stand-in for the console backend: resource
// endpoints under the standard envelope contract, bearer auth, and a
// refresh endpoint that rotates the token pair. Integration tests point a
// real restapi.Client at Server.URL.
type FakeConsole struct {
	Server *httptest.Server

	mu           sync.Mutex
	users        []apitypes.User
	roles        []apitypes.Role
	datasources  []apitypes.Datasource
	accessToken  string
	refreshToken string
	counts       map[string]int
}

// NewFakeConsole starts the fake backend with the given seed data. Callers
// own shutting it down via Close.
func NewFakeConsole(users []apitypes.User, roles []apitypes.Role, datasources []apitypes.Datasource) *FakeConsole {
	fc := &FakeConsole{
		users:        users,
		roles:        roles,
		datasources:  datasources,
		accessToken:  "access-" + uuid.NewString(),
		refreshToken: "refresh-" + uuid.NewString(),
		counts:       map[string]int{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/refresh", fc.handleRefresh)
	mux.HandleFunc("GET /users", fc.authed(fc.listUsers))
	mux.HandleFunc("POST /users", fc.authed(fc.createUser))
	mux.HandleFunc("GET /users/stats", fc.authed(fc.userStats))
	mux.HandleFunc("GET /users/{id}", fc.authed(fc.getUser))
	mux.HandleFunc("PUT /users/{id}", fc.authed(fc.updateUser))
	mux.HandleFunc("DELETE /users/{id}", fc.authed(fc.deleteUser))
	mux.HandleFunc("POST /users/{id}/roles", fc.authed(fc.assignRole))
	mux.HandleFunc("GET /roles", fc.authed(fc.listRoles))
	mux.HandleFunc("GET /datasources", fc.authed(fc.listDatasources))
	mux.HandleFunc("POST /datasources", fc.authed(fc.createDatasource))
	mux.HandleFunc("GET /datasources/stats", fc.authed(fc.datasourceStats))
	mux.HandleFunc("GET /datasources/{id}", fc.authed(fc.getDatasource))
	mux.HandleFunc("DELETE /datasources/{id}", fc.authed(fc.deleteDatasource))

	fc.Server = httptest.NewServer(mux)
	return fc
}

// Close shuts the backend down.
func (fc *FakeConsole) Close() { fc.Server.Close() }

// Tokens returns a pair currently accepted by the backend.
func (fc *FakeConsole) Tokens() apitypes.TokenPair {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return apitypes.TokenPair{AccessToken: fc.accessToken, RefreshToken: fc.refreshToken}
}

// RotateAccessToken invalidates the current access token while keeping the
// refresh token valid, forcing clients through the refresh path.
func (fc *FakeConsole) RotateAccessToken() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.accessToken = "access-" + uuid.NewString()
}

// Requests reports how often a route was served, e.g. "GET /users".
func (fc *FakeConsole) Requests(route string) int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.counts[route]
}

func (fc *FakeConsole) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fc.mu.Lock()
		ok := r.Header.Get("Authorization") == "Bearer "+fc.accessToken
		fc.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "token_expired", "access token rejected")
			return
		}
		fc.count(r)
		next(w, r)
	}
}

func (fc *FakeConsole) count(r *http.Request) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.counts[r.Method+" "+r.URL.Path]++
}

func (fc *FakeConsole) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req apitypes.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.counts["POST /auth/refresh"]++
	if req.RefreshToken != fc.refreshToken {
		writeError(w, http.StatusUnauthorized, "refresh_invalid", "refresh token rejected")
		return
	}
	fc.accessToken = "access-" + uuid.NewString()
	fc.refreshToken = "refresh-" + uuid.NewString()
	writeData(w, apitypes.TokenPair{AccessToken: fc.accessToken, RefreshToken: fc.refreshToken})
}

func (fc *FakeConsole) listUsers(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	writeList(w, fc.users)
}

func (fc *FakeConsole) createUser(w http.ResponseWriter, r *http.Request) {
	var req apitypes.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	user := NewUser(req.Email)
	user.FullName = req.FullName
	user.Roles = req.Roles
	fc.users = append(fc.users, user)
	writeData(w, user)
}

func (fc *FakeConsole) userStats(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	stats := apitypes.UserStats{Total: len(fc.users), ByRole: map[string]int{}}
	for _, u := range fc.users {
		if u.Active {
			stats.Active++
		}
		for _, role := range u.Roles {
			stats.ByRole[role]++
		}
	}
	writeData(w, stats)
}

func (fc *FakeConsole) getUser(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if i := indexByID(fc.users, r.PathValue("id"), userID); i >= 0 {
		writeData(w, fc.users[i])
		return
	}
	writeError(w, http.StatusNotFound, "not_found", "no such user")
}

func (fc *FakeConsole) updateUser(w http.ResponseWriter, r *http.Request) {
	var req apitypes.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	i := indexByID(fc.users, r.PathValue("id"), userID)
	if i < 0 {
		writeError(w, http.StatusNotFound, "not_found", "no such user")
		return
	}
	if req.Email != nil {
		fc.users[i].Email = *req.Email
	}
	if req.FullName != nil {
		fc.users[i].FullName = *req.FullName
	}
	if req.Active != nil {
		fc.users[i].Active = *req.Active
	}
	if req.Roles != nil {
		fc.users[i].Roles = *req.Roles
	}
	writeData(w, fc.users[i])
}

func (fc *FakeConsole) deleteUser(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	i := indexByID(fc.users, r.PathValue("id"), userID)
	if i < 0 {
		writeError(w, http.StatusNotFound, "not_found", "no such user")
		return
	}
	fc.users = append(fc.users[:i], fc.users[i+1:]...)
	writeData(w, struct{}{})
}

func (fc *FakeConsole) assignRole(w http.ResponseWriter, r *http.Request) {
	var req apitypes.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	i := indexByID(fc.users, r.PathValue("id"), userID)
	if i < 0 {
		writeError(w, http.StatusNotFound, "not_found", "no such user")
		return
	}
	fc.users[i].Roles = append(fc.users[i].Roles, req.RoleID)
	writeData(w, fc.users[i])
}

func (fc *FakeConsole) listRoles(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	writeList(w, fc.roles)
}

func (fc *FakeConsole) listDatasources(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	writeList(w, fc.datasources)
}

func (fc *FakeConsole) createDatasource(w http.ResponseWriter, r *http.Request) {
	var req apitypes.CreateDatasourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	ds := NewDatasource(req.Name)
	if req.Kind != "" {
		ds.Kind = req.Kind
	}
	fc.datasources = append(fc.datasources, ds)
	writeData(w, ds)
}

func (fc *FakeConsole) datasourceStats(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	stats := apitypes.DatasourceStats{
		Total:    len(fc.datasources),
		ByKind:   map[string]int{},
		ByStatus: map[string]int{},
	}
	for _, ds := range fc.datasources {
		stats.ByKind[ds.Kind]++
		stats.ByStatus[ds.Status]++
		stats.TotalRecords += ds.RecordCount
	}
	writeData(w, stats)
}

func (fc *FakeConsole) getDatasource(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if i := indexByID(fc.datasources, r.PathValue("id"), datasourceID); i >= 0 {
		writeData(w, fc.datasources[i])
		return
	}
	writeError(w, http.StatusNotFound, "not_found", "no such datasource")
}

func (fc *FakeConsole) deleteDatasource(w http.ResponseWriter, r *http.Request) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	i := indexByID(fc.datasources, r.PathValue("id"), datasourceID)
	if i < 0 {
		writeError(w, http.StatusNotFound, "not_found", "no such datasource")
		return
	}
	fc.datasources = append(fc.datasources[:i], fc.datasources[i+1:]...)
	writeData(w, struct{}{})
}

func userID(u apitypes.User) string             { return u.ID }
func datasourceID(d apitypes.Datasource) string { return d.ID }

func indexByID[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"data": items,
		"pagination": apitypes.Page{
			Page: 1, PerPage: len(items), Total: len(items), TotalPages: 1,
		},
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": strings.TrimSpace(message),
	})
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crudkit/items-api/internal/core/ports"
	"github.com/crudkit/items-api/internal/core/service"
	"github.com/crudkit/items-api/internal/infrastructure/db/memory"
	rediscache "github.com/crudkit/items-api/internal/infrastructure/db/redis"
)

const testSecret = "router-test-secret-0123456789abcdef"

type testApp struct {
	e     *echo.Echo
	store *memory.Store
}

func newTestApp(t *testing.T, revoker ports.TokenRevoker) *testApp {
	t.Helper()

	store := memory.NewStore()
	log := zerolog.Nop()
	authService := service.NewAuthService(store.Users(), revoker, testSecret, 30*time.Minute, log)
	reg := prometheus.NewRegistry()

	e := NewRouter(Deps{
		AuthService:    authService,
		ItemService:    service.NewItemService(store.Items(), log),
		UserService:    service.NewUserService(store.Users(), log),
		Logger:         log,
		AllowedOrigins: []string{"http://localhost:3000"},
		LogoutEnabled:  authService.CanRevoke(),
		Checkers:       []ports.HealthChecker{memory.Checker{}},
		Registerer:     reg,
		Gatherer:       reg,
	})
	return &testApp{e: e, store: store}
}

func (a *testApp) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) register(t *testing.T, email, password string) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/auth/register", "",
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/auth/login", "",
		fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	assert.Equal(t, "bearer", strings.ToLower(tok.TokenType))
	assert.Equal(t, int64(1800), tok.ExpiresIn)
	require.NotEmpty(t, tok.AccessToken)
	return tok.AccessToken
}

func (a *testApp) signup(t *testing.T, email string) string {
	t.Helper()
	a.register(t, email, "password123")
	return a.login(t, email, "password123")
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type itemBody struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsCompleted bool    `json:"is_completed"`
}

func TestRouter_RegisterLoginMe(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.signup(t, "Alice@Example.com")

	rec := app.do(t, http.MethodGet, "/auth/me", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	me := decode[map[string]any](t, rec)
	assert.Equal(t, "alice@example.com", me["email"])
	assert.Equal(t, true, me["is_active"])
	assert.Equal(t, false, me["is_superuser"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRouter_LoginWithFormEncoding(t *testing.T) {
	app := newTestApp(t, nil)
	app.register(t, "form@example.com", "password123")

	form := url.Values{"username": {"form@example.com"}, "password": {"password123"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "access_token")
}

func TestRouter_RegisterDuplicateAndInvalid(t *testing.T) {
	app := newTestApp(t, nil)
	app.register(t, "dup@example.com", "password123")

	rec := app.do(t, http.MethodPost, "/auth/register", "", `{"email":"DUP@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = app.do(t, http.MethodPost, "/auth/register", "", `{"email":"not-an-email","password":"short"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode[struct {
		Error   string `json:"error"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	}](t, rec)
	assert.Equal(t, "validation failed", body.Error)
	fields := make([]string, 0, len(body.Details))
	for _, d := range body.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"email", "password"}, fields)

	rec = app.do(t, http.MethodPost, "/auth/register", "", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_LoginRejectsWrongPassword(t *testing.T) {
	app := newTestApp(t, nil)
	app.register(t, "bob@example.com", "password123")

	rec := app.do(t, http.MethodPost, "/auth/login", "", `{"email":"bob@example.com","password":"nope-nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodPost, "/auth/login", "", `{"email":"ghost@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_UnauthenticatedRequestsGetChallenge(t *testing.T) {
	app := newTestApp(t, nil)

	for _, tc := range []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.jwt"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/items", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			app.e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
		})
	}
}

func TestRouter_ItemLifecycle(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.signup(t, "owner@example.com")

	rec := app.do(t, http.MethodPost, "/items", token, `{"title":"buy milk","description":"2 litres"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[itemBody](t, rec)
	assert.Equal(t, "buy milk", created.Title)
	assert.False(t, created.IsCompleted)

	path := fmt.Sprintf("/items/%d", created.ID)

	rec = app.do(t, http.MethodPatch, path, token, `{"is_completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	patched := decode[itemBody](t, rec)
	assert.True(t, patched.IsCompleted)
	assert.Equal(t, "buy milk", patched.Title)
	require.NotNil(t, patched.Description)
	assert.Equal(t, "2 litres", *patched.Description)

	rec = app.do(t, http.MethodPut, path, token, `{"description":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, decode[itemBody](t, rec).Description)

	rec = app.do(t, http.MethodPatch, path, token, `{"title":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = app.do(t, http.MethodGet, "/items?skip=0&limit=10", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]itemBody](t, rec), 1)

	rec = app.do(t, http.MethodDelete, path, token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodGet, path, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodGet, "/items", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_ItemsAreOwnerScoped(t *testing.T) {
	app := newTestApp(t, nil)
	tokenA := app.signup(t, "a@example.com")
	tokenB := app.signup(t, "b@example.com")

	rec := app.do(t, http.MethodPost, "/items", tokenA, `{"title":"a's item"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	item := decode[itemBody](t, rec)
	path := fmt.Sprintf("/items/%d", item.ID)

	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodGet, path, tokenB, "").Code)
	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodPatch, path, tokenB, `{"title":"mine"}`).Code)
	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodDelete, path, tokenB, "").Code)

	rec = app.do(t, http.MethodGet, "/items", tokenB, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]itemBody](t, rec))

	rec = app.do(t, http.MethodGet, path, tokenA, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a's item", decode[itemBody](t, rec).Title)

	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/items/999", tokenA, "").Code)
	assert.Equal(t, http.StatusBadRequest, app.do(t, http.MethodGet, "/items/abc", tokenA, "").Code)
}

func TestRouter_ListPaginationBounds(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.signup(t, "pager@example.com")
	for i := 0; i < 3; i++ {
		rec := app.do(t, http.MethodPost, "/items", token, fmt.Sprintf(`{"title":"item %d"}`, i))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := app.do(t, http.MethodGet, "/items?skip=1&limit=1", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[[]itemBody](t, rec)
	require.Len(t, page, 1)
	assert.Equal(t, "item 1", page[0].Title)

	assert.Equal(t, http.StatusUnprocessableEntity, app.do(t, http.MethodGet, "/items?limit=5000", token, "").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, app.do(t, http.MethodGet, "/items?skip=-1", token, "").Code)
}

func TestRouter_AdminRequiresSuperuser(t *testing.T) {
	app := newTestApp(t, nil)
	seeded, err := service.NewSeeder(app.store.Users(), app.store.Items(), zerolog.Nop()).Seed(context.Background())
	require.NoError(t, err)
	require.True(t, seeded)

	userToken := app.login(t, service.SeedUserEmail, service.SeedUserPassword)
	adminToken := app.login(t, service.SeedAdminEmail, service.SeedAdminPassword)

	rec := app.do(t, http.MethodGet, "/admin/users", userToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"not enough permissions"}`, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/admin/users", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 2)

	user, err := app.store.Users().FindByEmail(context.Background(), service.SeedUserEmail)
	require.NoError(t, err)

	rec = app.do(t, http.MethodDelete, fmt.Sprintf("/admin/users/%d", user.ID), adminToken, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.do(t, http.MethodDelete, fmt.Sprintf("/admin/users/%d", user.ID), adminToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodGet, "/items", userToken, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_DeleteMeCascadesItems(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.signup(t, "leaving@example.com")
	other := app.signup(t, "staying@example.com")

	rec := app.do(t, http.MethodPost, "/items", token, `{"title":"doomed"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	doomed := decode[itemBody](t, rec)

	rec = app.do(t, http.MethodPost, "/items", other, `{"title":"kept"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, http.StatusNoContent, app.do(t, http.MethodDelete, "/auth/me", token, "").Code)
	assert.Equal(t, http.StatusUnauthorized, app.do(t, http.MethodGet, "/auth/me", token, "").Code)

	_, err := app.store.Items().FindByID(context.Background(), doomed.ID)
	assert.Error(t, err)

	rec = app.do(t, http.MethodGet, "/items", other, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]itemBody](t, rec), 1)
}

func TestRouter_LogoutRequiresRevocationStore(t *testing.T) {
	app := newTestApp(t, nil)
	token := app.signup(t, "nolog@example.com")

	rec := app.do(t, http.MethodPost, "/auth/logout", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	app := newTestApp(t, rediscache.NewRevocationStore(client))
	token := app.signup(t, "logout@example.com")

	require.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/auth/me", token, "").Code)
	assert.Equal(t, http.StatusNoContent, app.do(t, http.MethodPost, "/auth/logout", token, "").Code)

	rec := app.do(t, http.MethodGet, "/auth/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))

	fresh := app.login(t, "logout@example.com", "password123")
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodGet, "/auth/me", fresh, "").Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(t, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[map[string]any](t, rec)["status"])

	rec = app.do(t, http.MethodGet, "/health/ready", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "memory")

	rec = app.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestRouter_RegisterRejectsOverlongPassword(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(t, http.MethodPost, "/auth/register", "",
		fmt.Sprintf(`{"email":"long@example.com","password":%q}`, strings.Repeat("a", 80)))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "validation failed", body["error"])
	assert.Contains(t, rec.Body.String(), `"field":"password"`)
}

func TestRouter_UpdateIgnoresOwnerInBody(t *testing.T) {
	app := newTestApp(t, nil)
	tokenA := app.signup(t, "keeper@example.com")
	tokenB := app.signup(t, "taker@example.com")

	rec := app.do(t, http.MethodGet, "/auth/me", tokenB, "")
	require.Equal(t, http.StatusOK, rec.Code)
	takerID := int64(decode[map[string]any](t, rec)["id"].(float64))

	rec = app.do(t, http.MethodPost, "/items", tokenA, `{"title":"mine","user_id":`+fmt.Sprint(takerID)+`}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decode[itemBody](t, rec)
	require.NotEqual(t, takerID, item.UserID)
	ownerID := item.UserID
	path := fmt.Sprintf("/items/%d", item.ID)

	for _, method := range []string{http.MethodPatch, http.MethodPut} {
		rec = app.do(t, method, path, tokenA, fmt.Sprintf(`{"title":"still mine","user_id":%d}`, takerID))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, ownerID, decode[itemBody](t, rec).UserID, method)
	}

	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodGet, path, tokenB, "").Code)
	rec = app.do(t, http.MethodGet, "/items", tokenB, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]itemBody](t, rec))
}

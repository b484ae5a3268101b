package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookmarks/internal/cryptox"
	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/dmitrijs2005/bookmarks/internal/server/auth"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/memory"
	"github.com/dmitrijs2005/bookmarks/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("super-secret")

type testAPI struct {
	t      *testing.T
	store  *memory.Store
	router http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.New()
	hasher := cryptox.NewArgon2Hasher(cryptox.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	h := NewHandler(logging.Nop(),
		services.NewAuthService(nil, store, hasher, testSecret),
		services.NewUserService(nil, store),
		services.NewBookmarkService(nil, store),
	)
	return &testAPI{t: t, store: store, router: NewRouter(h, testSecret, logging.Nop())}
}

func (a *testAPI) do(method, path, body, token string) *httptest.ResponseRecorder {
	a.t.Helper()
	var rdr *bytes.Reader
	if body != "" {
		rdr = bytes.NewReader([]byte(body))
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) signup(email, password string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/auth/signup", `{"email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var tok struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &tok))
	require.NotEmpty(a.t, tok.AccessToken)
	return tok.AccessToken
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decodeBody[errorResponse](t, rec)
	assert.Equal(t, status, body.StatusCode)
	assert.Equal(t, http.StatusText(status), body.Error)
	if message != "" {
		assert.Equal(t, message, body.Message)
	}
}

func TestScenario_SignupSigninProfileBookmarks(t *testing.T) {
	api := newTestAPI(t)

	token := api.signup("ken@gmail.com", "wewe")

	rec := api.do(http.MethodPost, "/auth/signin", `{"email":"ken@gmail.com","password":"wewe"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	signin := decodeBody[map[string]string](t, rec)
	claims, err := auth.ParseToken(signin["accessToken"], testSecret)
	require.NoError(t, err)
	assert.Equal(t, "ken@gmail.com", claims.Email)

	rec = api.do(http.MethodGet, "/users/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "ken@gmail.com", me["email"])
	assert.NotContains(t, me, "hash")
	assert.NotContains(t, rec.Body.String(), "argon2")

	rec = api.do(http.MethodPatch, "/users", `{"firstName":"ken","lastName":"john"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	edited := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "ken", edited["firstName"])
	assert.Equal(t, "john", edited["lastName"])
	assert.Equal(t, "ken@gmail.com", edited["email"])

	rec = api.do(http.MethodGet, "/bookmarks", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = api.do(http.MethodPost, "/bookmarks", `{"title":"Go","link":"https://go.dev"}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Go", created["title"])
	assert.Nil(t, created["description"])
	assert.EqualValues(t, claims.UserID, created["userId"])
	id := int64(created["id"].(float64))

	rec = api.do(http.MethodPatch, "/bookmarks/"+itoa(id), `{"description":"the language"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	patched := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Go", patched["title"])
	assert.Equal(t, "the language", patched["description"])

	rec = api.do(http.MethodGet, "/bookmarks/"+itoa(id), "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/bookmarks", "", token)
	list := decodeBody[[]map[string]any](t, rec)
	require.Len(t, list, 1)

	rec = api.do(http.MethodDelete, "/bookmarks/"+itoa(id), "", token)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = api.do(http.MethodGet, "/bookmarks/"+itoa(id), "", token)
	assertError(t, rec, http.StatusNotFound, "")
}

func TestSignup_DuplicateEmail(t *testing.T) {
	api := newTestAPI(t)
	api.signup("ken@gmail.com", "wewe")

	rec := api.do(http.MethodPost, "/auth/signup", `{"email":"ken@gmail.com","password":"other"}`, "")
	assertError(t, rec, http.StatusForbidden, "Credentials taken")
}

func TestSignin_RejectionsLookTheSame(t *testing.T) {
	api := newTestAPI(t)
	api.signup("ken@gmail.com", "wewe")

	wrongPassword := api.do(http.MethodPost, "/auth/signin", `{"email":"ken@gmail.com","password":"nope"}`, "")
	unknownEmail := api.do(http.MethodPost, "/auth/signin", `{"email":"nobody@gmail.com","password":"wewe"}`, "")

	assertError(t, wrongPassword, http.StatusForbidden, "Credentials incorrect")
	assertError(t, unknownEmail, http.StatusForbidden, "Credentials incorrect")
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestValidation(t *testing.T) {
	api := newTestAPI(t)
	token := api.signup("ken@gmail.com", "wewe")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		token  string
	}{
		{name: "signup empty body", method: http.MethodPost, path: "/auth/signup"},
		{name: "signup malformed", method: http.MethodPost, path: "/auth/signup", body: `{"email":`},
		{name: "signup bad email", method: http.MethodPost, path: "/auth/signup", body: `{"email":"not-an-email","password":"x"}`},
		{name: "signup missing password", method: http.MethodPost, path: "/auth/signup", body: `{"email":"a@b.io"}`},
		{name: "signup empty password", method: http.MethodPost, path: "/auth/signup", body: `{"email":"a@b.io","password":""}`},
		{name: "signup trailing garbage", method: http.MethodPost, path: "/auth/signup", body: `{"email":"a@b.io","password":"x"}garbage`},
		{name: "signup two documents", method: http.MethodPost, path: "/auth/signup", body: `{"email":"a@b.io","password":"x"} {}`},
		{name: "signup wrong type", method: http.MethodPost, path: "/auth/signup", body: `{"email":5,"password":"x"}`},
		{name: "signin missing email", method: http.MethodPost, path: "/auth/signin", body: `{"password":"x"}`},
		{name: "edit user bad email", method: http.MethodPatch, path: "/users", body: `{"email":"nope"}`, token: token},
		{name: "edit user empty email", method: http.MethodPatch, path: "/users", body: `{"email":""}`, token: token},
		{name: "create bookmark no title", method: http.MethodPost, path: "/bookmarks", body: `{"link":"l"}`, token: token},
		{name: "create bookmark no link", method: http.MethodPost, path: "/bookmarks", body: `{"title":"t"}`, token: token},
		{name: "edit bookmark empty title", method: http.MethodPatch, path: "/bookmarks/1", body: `{"title":""}`, token: token},
		{name: "non numeric id", method: http.MethodGet, path: "/bookmarks/abc", token: token},
		{name: "zero id", method: http.MethodGet, path: "/bookmarks/0", token: token},
		{name: "negative id", method: http.MethodDelete, path: "/bookmarks/-3", token: token},
		{name: "edit with bad id", method: http.MethodPatch, path: "/bookmarks/x", body: `{"title":"t"}`, token: token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(tt.method, tt.path, tt.body, tt.token)
			assertError(t, rec, http.StatusBadRequest, "")
		})
	}
}

func TestValidation_MessagesUseJSONNames(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/auth/signup", `{"email":"nope","password":""}`, "")
	assertError(t, rec, http.StatusBadRequest, "email must be an email; password should not be empty")
}

func TestTrailingDataRejected(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/auth/signup", `{"email":"a@b.io","password":"x"}garbage`, "")
	assertError(t, rec, http.StatusBadRequest, "request body must contain a single JSON value")

	rec = api.do(http.MethodPost, "/auth/signup", "{\"email\":\"a@b.io\",\"password\":\"x\"}\n", "")
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUnknownFieldsIgnored(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/auth/signup", `{"email":"a@b.io","password":"x","role":"admin"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestIdentityGuard(t *testing.T) {
	api := newTestAPI(t)
	api.signup("ken@gmail.com", "wewe")

	expired, err := auth.GenerateToken(1, "ken@gmail.com", testSecret, time.Now().Add(-16*time.Minute))
	require.NoError(t, err)
	foreign, err := auth.GenerateToken(1, "ken@gmail.com", []byte("other-secret"), time.Now())
	require.NoError(t, err)
	valid, err := auth.GenerateToken(1, "ken@gmail.com", testSecret, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header"},
		{name: "wrong scheme", header: "Basic " + valid},
		{name: "no token", header: "Bearer "},
		{name: "malformed", header: "Bearer not.a.jwt"},
		{name: "expired", header: "Bearer " + expired},
		{name: "bad signature", header: "Bearer " + foreign},
	}

	for _, tt := range tests {
		for _, path := range []string{"/users/me", "/bookmarks"} {
			t.Run(tt.name+" "+path, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodGet, path, nil)
				if tt.header != "" {
					req.Header.Set("Authorization", tt.header)
				}
				rec := httptest.NewRecorder()
				api.router.ServeHTTP(rec, req)

				assertError(t, rec, http.StatusUnauthorized, "Unauthorized")
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			})
		}
	}

	rec := api.do(http.MethodGet, "/users/me", "", valid)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBookmarks_OtherUsersAreInvisible(t *testing.T) {
	api := newTestAPI(t)
	owner := api.signup("owner@x.io", "pw")
	other := api.signup("other@x.io", "pw")

	rec := api.do(http.MethodPost, "/bookmarks", `{"title":"mine","link":"https://x.io"}`, owner)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := itoa(int64(decodeBody[map[string]any](t, rec)["id"].(float64)))

	assertError(t, api.do(http.MethodGet, "/bookmarks/"+id, "", other), http.StatusNotFound, "")
	assertError(t, api.do(http.MethodPatch, "/bookmarks/"+id, `{"title":"stolen"}`, other), http.StatusForbidden, "Access to resources denied")
	assertError(t, api.do(http.MethodDelete, "/bookmarks/"+id, "", other), http.StatusForbidden, "Access to resources denied")
	assertError(t, api.do(http.MethodDelete, "/bookmarks/999", "", owner), http.StatusForbidden, "Access to resources denied")

	rec = api.do(http.MethodGet, "/bookmarks", "", other)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = api.do(http.MethodGet, "/bookmarks/"+id, "", owner)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mine", decodeBody[map[string]any](t, rec)["title"])
}

func TestEditUser_EmailTaken(t *testing.T) {
	api := newTestAPI(t)
	api.signup("taken@x.io", "pw")
	token := api.signup("me@x.io", "pw")

	rec := api.do(http.MethodPatch, "/users", `{"email":"taken@x.io"}`, token)
	assertError(t, rec, http.StatusForbidden, "Credentials taken")
}

func TestDeletedUser_TokenNoLongerWorks(t *testing.T) {
	api := newTestAPI(t)
	token := api.signup("gone@x.io", "pw")
	claims, err := auth.ParseToken(token, testSecret)
	require.NoError(t, err)

	api.store.DeleteUser(claims.UserID)

	assertError(t, api.do(http.MethodGet, "/users/me", "", token), http.StatusUnauthorized, "Unauthorized")
	assertError(t, api.do(http.MethodPatch, "/users", `{"firstName":"x"}`, token), http.StatusUnauthorized, "Unauthorized")
	assertError(t, api.do(http.MethodPost, "/bookmarks", `{"title":"t","link":"l"}`, token), http.StatusUnauthorized, "Unauthorized")
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)
	assertError(t, api.do(http.MethodGet, "/nope", "", ""), http.StatusNotFound, "Cannot GET /nope")
	assertError(t, api.do(http.MethodPut, "/auth/signup", "", ""), http.StatusMethodNotAllowed, "")
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"client-service/internal/repository"
	"client-service/internal/service"
	"client-service/internal/testutil"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	e  *echo.Echo
	db *sql.DB
}

// newTestServer builds the full handler stack over a fresh SQLite database.
// keys may be nil to disable idempotent keys.
func newTestServer(t *testing.T, keys service.KeyStore) *testServer {
	t.Helper()
	db := testutil.NewDB(t)

	userService := service.NewUserService(repository.NewUserRepository(db))
	clientService := service.NewClientService(repository.NewClientRepository(db), keys, nil)

	return &testServer{
		e:  NewRouter(NewUserHandler(userService), NewClientHandler(clientService), nil),
		db: db,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["message"]
}

type memKeyStore struct {
	keys map[string]bool
}

func (k *memKeyStore) SetNX(_ context.Context, key string, _ interface{}, _ time.Duration) *redis.BoolCmd {
	if k.keys[key] {
		return redis.NewBoolResult(false, nil)
	}
	k.keys[key] = true
	return redis.NewBoolResult(true, nil)
}

func (k *memKeyStore) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(k.keys, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	spec, err := BuildSpec("Items API", "1.0.0")
	require.NoError(t, err)
	return New(spec, nil)
}

func TestCreateItemEchoesNameAndPrice(t *testing.T) {
	srv := newTestServer(t)

	body := `{"name":"widget","description":"a widget","price":19.99,"tax":1.2}`
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items/", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "widget", resp.Name)
	assert.Equal(t, 19.99, resp.Price)
}

func TestCreateItemOptionalFieldsMayBeOmitted(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items/", strings.NewReader(`{"name":"x","price":1}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateItemValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantHint string
	}{
		{"missing name", `{"price":5}`, "name is required"},
		{"negative price", `{"name":"x","price":-1}`, "price must be greater than 0"},
		{"malformed json", `{"name":`, "invalid request body"},
		{"unknown field", `{"name":"x","price":1,"color":"red"}`, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items/", strings.NewReader(tt.body)))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tt.wantHint)
		})
	}
}

func TestOpenAPIEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var spec map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))
	assert.Equal(t, "3.1.0", spec["openapi"])

	paths, ok := spec["paths"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, paths, "/items/")
}

func TestDocsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "swagger-ui")
	assert.Contains(t, rec.Body.String(), "/openapi.json")
	assert.Contains(t, rec.Body.String(), "<title>Items API</title>")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRunShutsDownOnContextCancel(t *testing.T) {
	srv := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestBuildSpecSchemas(t *testing.T) {
	spec, err := BuildSpec("Items API", "1.0.0")
	require.NoError(t, err)

	req, ok := spec.Components.Schemas["ItemRequest"]
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"name", "price"}, req.Required)

	price := req.Properties["price"]
	require.NotNil(t, price)
	require.NotNil(t, price.ExclusiveMinimum)
	assert.Equal(t, 0.0, *price.ExclusiveMinimum)
}

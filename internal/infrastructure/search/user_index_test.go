package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   map[string]any
}

func newTestIndex(t *testing.T, status int, reply string) (*UserIndex, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		calls = append(calls, rec)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewUserIndex(es, "users"), &calls
}

func TestIndexUser(t *testing.T) {
	idx, calls := newTestIndex(t, http.StatusCreated, `{"result":"created"}`)
	u := &entity.User{ID: "u1", Name: "Ana", Email: "ana@udistrital.edu.co", Major: "Sistemas", CreatedAt: time.Now()}

	require.NoError(t, idx.IndexUser(context.Background(), u))
	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPut, call.method)
	assert.Equal(t, "/users/_doc/u1", call.path)
	assert.Equal(t, "Ana", call.body["name"])
	assert.Equal(t, "Sistemas", call.body["major"])
	assert.NotContains(t, call.body, "password")
}

func TestIndexUser_ErrorStatus(t *testing.T) {
	idx, _ := newTestIndex(t, http.StatusBadRequest, `{"error":"mapper_parsing_exception"}`)
	err := idx.IndexUser(context.Background(), &entity.User{ID: "u1"})
	assert.Error(t, err)
}

func TestSearchUsers(t *testing.T) {
	reply := `{"hits":{"hits":[{"_id":"u2"},{"_id":"u1"}]}}`
	idx, calls := newTestIndex(t, http.StatusOK, reply)

	ids, err := idx.SearchUsers(context.Background(), "ana", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2", "u1"}, ids)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.True(t, strings.HasSuffix(call.path, "/users/_search"))
	assert.EqualValues(t, 5, call.body["size"])
}

func TestSearchUsers_ErrorStatus(t *testing.T) {
	idx, _ := newTestIndex(t, http.StatusServiceUnavailable, `{}`)
	_, err := idx.SearchUsers(context.Background(), "ana", 5)
	assert.Error(t, err)
}

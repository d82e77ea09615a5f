// Package search keeps the user directory in Elasticsearch.
package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// NewClient creates an Elasticsearch client with short timeouts and optional basic auth.
func NewClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	})
}

// UserIndex stores searchable user profiles, keyed by user id.
type UserIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewUserIndex(es *elasticsearch.Client, index string) *UserIndex {
	return &UserIndex{ES: es, Index: index}
}

type userDoc struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Major     string `json:"major,omitempty"`
	IGUser    string `json:"ig_user,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (x *UserIndex) IndexUser(ctx context.Context, u *entity.User) error {
	b, err := json.Marshal(userDoc{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Major:     u.Major,
		IGUser:    u.IGUser,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index user %s: %s", u.ID, res.Status())
	}
	return nil
}

// SearchUsers runs a multi_match over name, email and major and returns the hit ids.
func (x *UserIndex) SearchUsers(ctx context.Context, q string, size int) ([]string, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^2", "email", "major"},
				"fuzziness": "AUTO",
			},
		},
		"size":    size,
		"_source": false,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.ES.Search(
		x.ES.Search.WithContext(c),
		x.ES.Search.WithIndex(x.Index),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search users: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

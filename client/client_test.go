package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lumenhq/lumen-go/assets"
	"github.com/lumenhq/lumen-go/errors"
	"github.com/lumenhq/lumen-go/search"
)

// newTestClient wires a client against a mock tenant server
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(Config{
		BaseURL:           server.URL,
		APIKey:            "test-key",
		MaxRetries:        1,
		RequestsPerSecond: 1000,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.SetHTTPClient(server.Client())
	return c, server
}

func TestNewClient_Validation(t *testing.T) {
	t.Run("requires base URL", func(t *testing.T) {
		_, err := NewClient(Config{APIKey: "k"})
		if err == nil || !strings.Contains(err.Error(), "base_url is required") {
			t.Errorf("expected base_url error, got %v", err)
		}
	})

	t.Run("requires API key", func(t *testing.T) {
		_, err := NewClient(Config{BaseURL: "https://tenant.lumenhq.com"})
		if err == nil || !strings.Contains(err.Error(), "api_key is required") {
			t.Errorf("expected api_key error, got %v", err)
		}
	})

	t.Run("applies defaults", func(t *testing.T) {
		c, err := NewClient(Config{BaseURL: "https://tenant.lumenhq.com", APIKey: "k"})
		if err != nil {
			t.Fatalf("NewClient: %v", err)
		}
		if c.config.Timeout != DefaultTimeout {
			t.Errorf("expected default timeout, got %v", c.config.Timeout)
		}
		if c.config.MaxRetries != DefaultMaxRetries {
			t.Errorf("expected default retries, got %d", c.config.MaxRetries)
		}
		if c.baseURL != "https://tenant.lumenhq.com" {
			t.Errorf("unexpected base URL %s", c.baseURL)
		}
	})
}

func TestClient_Save(t *testing.T) {
	t.Run("posts bulk entities and decodes mutation", func(t *testing.T) {
		var gotPath, gotReplaceTags string
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotReplaceTags = r.URL.Query().Get("replaceTags")
			if r.Header.Get("Authorization") != "Bearer test-key" {
				t.Error("expected authorization header")
			}
			if r.Header.Get("X-Request-Id") == "" {
				t.Error("expected request id header")
			}

			var body bulkEntityRequest
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decoding request: %v", err)
			}
			if len(body.Entities) != 1 {
				t.Fatalf("expected 1 entity, got %d", len(body.Entities))
			}

			json.NewEncoder(w).Encode(map[string]interface{}{
				"guidAssignments": map[string]string{"-1": "real-guid"},
				"mutatedEntities": map[string]interface{}{
					"CREATE": []map[string]interface{}{
						{"typeName": "Table", "guid": "real-guid",
							"attributes": map[string]interface{}{"name": "ORDERS"}},
					},
				},
			})
		})
		c, _ := newTestClient(t, handler)

		tbl, err := assets.NewTable("ORDERS", "default/snowflake/1700000000/DB/SCH")
		if err != nil {
			t.Fatalf("NewTable: %v", err)
		}

		resp, err := c.Save(context.Background(), []assets.Asset{tbl}, WithReplaceTags())
		if err != nil {
			t.Fatalf("Save: %v", err)
		}

		if gotPath != "/api/meta/entity/bulk" {
			t.Errorf("unexpected path %s", gotPath)
		}
		if gotReplaceTags != "true" {
			t.Errorf("expected replaceTags=true, got %s", gotReplaceTags)
		}
		if resp.AssignedGuid("-1") != "real-guid" {
			t.Errorf("expected guid assignment, got %s", resp.AssignedGuid("-1"))
		}
		created, err := resp.AssetsCreated()
		if err != nil {
			t.Fatalf("AssetsCreated: %v", err)
		}
		if len(created) != 1 || assets.Name(created[0]) != "ORDERS" {
			t.Errorf("unexpected created assets %v", created)
		}
	})

	t.Run("rejects empty save", func(t *testing.T) {
		c, _ := newTestClient(t, http.NotFoundHandler())
		_, err := c.Save(context.Background(), nil)
		if !errors.IsInvalidRequestError(err) {
			t.Errorf("expected invalid request, got %v", err)
		}
	})
}

func TestClient_GetByGuid(t *testing.T) {
	t.Run("decodes entity envelope", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/meta/entity/guid/guid-1" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"entity": map[string]interface{}{
					"typeName": "Column", "guid": "guid-1",
					"attributes": map[string]interface{}{"name": "ORDER_ID"},
				},
			})
		})
		c, _ := newTestClient(t, handler)

		a, err := c.GetByGuid(context.Background(), "guid-1")
		if err != nil {
			t.Fatalf("GetByGuid: %v", err)
		}
		if _, ok := a.(*assets.Column); !ok {
			t.Errorf("expected *assets.Column, got %T", a)
		}
		if assets.Name(a) != "ORDER_ID" {
			t.Errorf("unexpected name %s", assets.Name(a))
		}
	})

	t.Run("maps 404 to not-found sentinel", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{
				"errorCode": "LUMEN-404-00-005", "errorMessage": "no entity with guid",
			})
		})
		c, _ := newTestClient(t, handler)

		_, err := c.GetByGuid(context.Background(), "missing")
		if !errors.IsNotFoundError(err) {
			t.Errorf("expected not-found, got %v", err)
		}
		if !strings.Contains(err.Error(), "no entity with guid") {
			t.Errorf("expected server message preserved, got %v", err)
		}
	})
}

func TestClient_GetByQualifiedName(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/meta/entity/uniqueAttribute/type/Table" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("attr:qualifiedName"); got != "default/snowflake/1/DB/SCH/T" {
			t.Errorf("unexpected qualified name %s", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"entity": map[string]interface{}{
				"typeName": "Table",
				"attributes": map[string]interface{}{
					"name": "T", "qualifiedName": "default/snowflake/1/DB/SCH/T",
				},
			},
		})
	})
	c, _ := newTestClient(t, handler)

	a, err := c.GetByQualifiedName(context.Background(), "Table", "default/snowflake/1/DB/SCH/T")
	if err != nil {
		t.Fatalf("GetByQualifiedName: %v", err)
	}
	if assets.QualifiedName(a) != "default/snowflake/1/DB/SCH/T" {
		t.Errorf("unexpected qualified name %s", assets.QualifiedName(a))
	}
}

func TestClient_Delete(t *testing.T) {
	var gotDeleteType string
	var gotGuids []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "DELETE" {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		gotDeleteType = r.URL.Query().Get("deleteType")
		gotGuids = r.URL.Query()["guid"]
		json.NewEncoder(w).Encode(map[string]interface{}{"mutatedEntities": map[string]interface{}{}})
	})
	c, _ := newTestClient(t, handler)

	if _, err := c.Delete(context.Background(), "g1", "g2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotDeleteType != "SOFT" {
		t.Errorf("expected SOFT, got %s", gotDeleteType)
	}
	if len(gotGuids) != 2 {
		t.Errorf("expected 2 guids, got %v", gotGuids)
	}

	if _, err := c.Purge(context.Background(), "g1"); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if gotDeleteType != "PURGE" {
		t.Errorf("expected PURGE, got %s", gotDeleteType)
	}
}

func TestClient_Search(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/meta/search/indexsearch" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"approximateCount": 1,
			"entities": []map[string]interface{}{
				{"typeName": "Table", "attributes": map[string]interface{}{"name": "T"}},
			},
		})
	})
	c, _ := newTestClient(t, handler)

	resp, err := search.NewFluentSearch().
		Where(search.ActiveAssets()).
		Execute(context.Background(), c)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resp.ApproximateCount != 1 {
		t.Errorf("expected count 1, got %d", resp.ApproximateCount)
	}
	list, err := resp.Assets()
	if err != nil {
		t.Fatalf("Assets: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 asset, got %d", len(list))
	}
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"version": "2.5.0"})
	})
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(Config{
		BaseURL: server.URL, APIKey: "k",
		MaxRetries: 3, RequestsPerSecond: 1000,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	c.SetHTTPClient(server.Client())

	if _, err := c.Healthcheck(context.Background()); err != nil {
		t.Fatalf("Healthcheck: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	})
	c, _ := newTestClient(t, handler)

	_, err := c.GetByGuid(context.Background(), "g")
	if !errors.IsInvalidRequestError(err) {
		t.Errorf("expected invalid request, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestHealthcheck_VersionGate(t *testing.T) {
	t.Run("rejects tenants older than minimum", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"version": "1.9.3"})
		})
		c, _ := newTestClient(t, handler)

		_, err := c.Healthcheck(context.Background())
		if err == nil || !strings.Contains(err.Error(), "older than minimum") {
			t.Errorf("expected version gate error, got %v", err)
		}
	})

	t.Run("rejects unparseable versions", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"version": "not-semver"})
		})
		c, _ := newTestClient(t, handler)

		_, err := c.Healthcheck(context.Background())
		if err == nil || !strings.Contains(err.Error(), "unparseable version") {
			t.Errorf("expected parse error, got %v", err)
		}
	})
}

func TestStatusError_Mapping(t *testing.T) {
	tests := []struct {
		status   int
		sentinel error
	}{
		{http.StatusBadRequest, errors.ErrInvalidRequest},
		{http.StatusUnauthorized, errors.ErrUnauthorized},
		{http.StatusForbidden, errors.ErrForbidden},
		{http.StatusNotFound, errors.ErrNotFound},
		{http.StatusConflict, errors.ErrConflict},
		{http.StatusTooManyRequests, errors.ErrRateLimited},
		{http.StatusGatewayTimeout, errors.ErrTimeout},
		{http.StatusInternalServerError, errors.ErrServiceUnavailable},
	}

	for _, tt := range tests {
		err := statusError(tt.status, []byte(`{"errorMessage":"boom"}`))
		if !errors.Is(err, tt.sentinel) {
			t.Errorf("status %d: expected %v, got %v", tt.status, tt.sentinel, err)
		}
	}
}

func TestClient_ContextCancellation(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})
	c, _ := newTestClient(t, handler)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.GetByGuid(ctx, "g")
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

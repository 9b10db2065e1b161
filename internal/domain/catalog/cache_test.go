package catalog

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestServer(t *testing.T, fail *atomic.Bool) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var requests atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if fail != nil && fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		// Bodies mirror the platform API's {"success": ..., "data": ...}
		// envelope verbatim rather than round-tripping the client's own
		// structs.
		switch r.URL.Path {
		case "/api/resources":
			io.WriteString(w, `{"success": true, "data": [
				{"id": "r1", "topic": "Gravity", "subject": "Physics", "content": "Things fall down."},
				{"id": "r2", "topic": "Cells", "subject": "Biology", "content": "Cells are small."}
			]}`)
		case "/api/resource/r1":
			io.WriteString(w, `{"success": true,
				"data": {"id": "r1", "topic": "Gravity", "content": "Things fall down."}}`)
		case "/api/learner/l1/path":
			io.WriteString(w, `{"success": true, "data": {
				"learner_id": "l1",
				"current_position": 1,
				"total_resources": 2,
				"completed_resources": 1,
				"completion_percentage": 50.0,
				"current_resource": {"id": "r2", "topic": "Cells", "subject": "Biology", "content": "Cells are small."},
				"all_resources": ["r1", "r2"],
				"progress": {}
			}}`)
		case "/api/learner/l2/path":
			io.WriteString(w, `{"success": true, "data": {
				"learner_id": "l2",
				"current_position": 2,
				"total_resources": 2,
				"completed_resources": 2,
				"completion_percentage": 100.0,
				"current_resource": null,
				"all_resources": ["r1", "r2"],
				"progress": {}
			}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	return server, &requests
}

func TestClientGetResource(t *testing.T) {
	server, _ := newTestServer(t, nil)
	client := NewClient(server.URL)

	item, err := client.GetResource("r1")
	if err != nil {
		t.Fatalf("GetResource: %v", err)
	}
	if item.Topic != "Gravity" || item.Content == "" {
		t.Errorf("unexpected resource: %+v", item)
	}

	if _, err := client.GetResource("missing"); err == nil {
		t.Error("GetResource for unknown id returned no error")
	}
}

func TestClientGetPath(t *testing.T) {
	server, _ := newTestServer(t, nil)
	client := NewClient(server.URL)

	path, err := client.GetPath("l1")
	if err != nil {
		t.Fatalf("GetPath: %v", err)
	}
	if path.Position != 1 || len(path.ResourceIDs) != 2 {
		t.Errorf("unexpected path: %+v", path)
	}
	if path.Current == nil || path.Current.ID != "r2" {
		t.Errorf("current resource = %+v, want r2", path.Current)
	}
	if path.TotalResources != 2 || path.CompletedResources != 1 {
		t.Errorf("progress counts = %d/%d, want 1/2",
			path.CompletedResources, path.TotalResources)
	}

	done, err := client.GetPath("l2")
	if err != nil {
		t.Fatalf("GetPath for finished learner: %v", err)
	}
	if done.Current != nil {
		t.Errorf("finished path still has a current resource: %+v", done.Current)
	}
}

func TestCacheAvoidsRefetch(t *testing.T) {
	server, requests := newTestServer(t, nil)
	cache := NewCache(NewClient(server.URL), t.TempDir(), time.Hour)

	first, err := cache.GetCollection()
	if err != nil {
		t.Fatalf("first GetCollection: %v", err)
	}
	if len(first.Resources) != 2 {
		t.Fatalf("got %d resources, want 2", len(first.Resources))
	}

	second, err := cache.GetCollection()
	if err != nil {
		t.Fatalf("second GetCollection: %v", err)
	}
	if len(second.Resources) != 2 {
		t.Errorf("got %d resources from cache, want 2", len(second.Resources))
	}

	if n := requests.Load(); n != 1 {
		t.Errorf("API hit %d times, want 1 (second read served from cache)", n)
	}
}

func TestCacheStaleFallback(t *testing.T) {
	var fail atomic.Bool
	server, _ := newTestServer(t, &fail)

	// maxAge 0 keeps the cache permanently stale, forcing a fetch attempt
	// on every call.
	cache := NewCache(NewClient(server.URL), t.TempDir(), 0)

	if _, err := cache.GetCollection(); err != nil {
		t.Fatalf("initial GetCollection: %v", err)
	}

	fail.Store(true)
	collection, err := cache.GetCollection()
	if err != nil {
		t.Fatalf("GetCollection with failing API: %v", err)
	}
	if len(collection.Resources) != 2 {
		t.Errorf("stale fallback returned %d resources, want 2", len(collection.Resources))
	}
}

func TestCacheClearAndInfo(t *testing.T) {
	server, _ := newTestServer(t, nil)
	cache := NewCache(NewClient(server.URL), t.TempDir(), time.Hour)

	if info := cache.CacheInfo(); info["exists"].(bool) {
		t.Error("cache reported existing before first fetch")
	}

	if _, err := cache.GetCollection(); err != nil {
		t.Fatalf("GetCollection: %v", err)
	}

	info := cache.CacheInfo()
	if !info["exists"].(bool) {
		t.Fatal("cache missing after fetch")
	}
	if !info["is_fresh"].(bool) {
		t.Error("fresh cache reported stale")
	}

	if err := cache.ClearCache(); err != nil {
		t.Fatalf("ClearCache: %v", err)
	}
	if info := cache.CacheInfo(); info["exists"].(bool) {
		t.Error("cache still exists after ClearCache")
	}

	// Clearing an already-clear cache is fine.
	if err := cache.ClearCache(); err != nil {
		t.Errorf("second ClearCache: %v", err)
	}
}

package router

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"filmorate/internal/config"
	"filmorate/internal/constants"
	"filmorate/internal/database"
	"filmorate/internal/middleware"
	"filmorate/internal/service"
	"filmorate/internal/storage"
	"filmorate/internal/storage/dbstore"
	"filmorate/internal/storage/memory"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type backendFactory func(t *testing.T, cfg *config.Config) storage.Storage

func backends() map[string]backendFactory {
	return map[string]backendFactory{
		constants.StorageMemory: func(t *testing.T, cfg *config.Config) storage.Storage {
			return memory.NewStorage()
		},
		constants.StorageDatabase: func(t *testing.T, cfg *config.Config) storage.Storage {
			cfg.Database.Driver = constants.DriverSQLite
			cfg.Database.DSN = ":memory:"
			db, err := database.InitDB(cfg)
			if err != nil {
				t.Fatalf("InitDB: %v", err)
			}
			t.Cleanup(func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			})
			return dbstore.New(db)
		},
	}
}

func newServer(t *testing.T, backend string, factory backendFactory) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.Storage.Backend = backend

	r, err := SetupRouter(cfg, service.NewManager(backend, factory(t, cfg)))
	if err != nil {
		t.Fatalf("SetupRouter: %v", err)
	}
	return r
}

func call(t *testing.T, r *gin.Engine, method, path, body string, wantStatus int) []byte {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != wantStatus {
		t.Fatalf("%s %s status = %d, want %d: %s", method, path, w.Code, wantStatus, w.Body.String())
	}
	return w.Body.Bytes()
}

type idOnly struct {
	ID int64 `json:"id"`
}

func ids(t *testing.T, body []byte) []int64 {
	t.Helper()
	var items []idOnly
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestScenario 两个后端跑同一套 HTTP 场景
func TestScenario(t *testing.T) {
	for backend, factory := range backends() {
		t.Run(backend, func(t *testing.T) {
			r := newServer(t, backend, factory)

			for _, login := range []string{"a", "b", "c"} {
				call(t, r, http.MethodPost, "/users", `{"email":"`+login+`@mail.ru","login":"`+login+`","birthday":"1990-01-01"}`, http.StatusOK)
			}
			if got := ids(t, call(t, r, http.MethodGet, "/users", "", http.StatusOK)); !sameIDs(got, []int64{1, 2, 3}) {
				t.Errorf("users = %v", got)
			}

			call(t, r, http.MethodPut, "/users/1/friends/3", "", http.StatusOK)
			call(t, r, http.MethodPut, "/users/1/friends/3", "", http.StatusOK)
			call(t, r, http.MethodPut, "/users/2/friends/3", "", http.StatusOK)
			call(t, r, http.MethodPut, "/users/1/friends/99", "", http.StatusNotFound)

			if got := ids(t, call(t, r, http.MethodGet, "/users/3/friends", "", http.StatusOK)); len(got) != 0 {
				t.Errorf("friends of 3 = %v, want none", got)
			}
			if got := ids(t, call(t, r, http.MethodGet, "/users/1/friends/common/2", "", http.StatusOK)); !sameIDs(got, []int64{3}) {
				t.Errorf("common = %v", got)
			}

			film := `{"name":"F","description":"d","releaseDate":"2000-01-01","duration":90,"mpa":{"id":1},"genres":[{"id":2},{"id":1}]}`
			for i := 0; i < 3; i++ {
				call(t, r, http.MethodPost, "/films", film, http.StatusOK)
			}
			call(t, r, http.MethodPut, "/films/1/like/1", "", http.StatusOK)
			call(t, r, http.MethodPut, "/films/1/like/2", "", http.StatusOK)
			call(t, r, http.MethodPut, "/films/3/like/1", "", http.StatusOK)
			call(t, r, http.MethodPut, "/films/3/like/1", "", http.StatusOK)

			if got := ids(t, call(t, r, http.MethodGet, "/films/popular?count=2", "", http.StatusOK)); !sameIDs(got, []int64{1, 3}) {
				t.Errorf("popular = %v, want [1 3]", got)
			}
			call(t, r, http.MethodGet, "/films/popular?count=0", "", http.StatusBadRequest)

			body := call(t, r, http.MethodPut, "/films", `{"id":2,"name":"G","genres":[{"id":3}]}`, http.StatusOK)
			var updated struct {
				Name        string   `json:"name"`
				Description string   `json:"description"`
				Genres      []idOnly `json:"genres"`
				Mpa         struct {
					Name string `json:"name"`
				} `json:"mpa"`
			}
			if err := json.Unmarshal(body, &updated); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if updated.Name != "G" || updated.Description != "d" || updated.Mpa.Name != "G" {
				t.Errorf("updated = %+v", updated)
			}
			if len(updated.Genres) != 1 || updated.Genres[0].ID != 3 {
				t.Errorf("genres = %+v", updated.Genres)
			}

			if got := ids(t, call(t, r, http.MethodGet, "/genres", "", http.StatusOK)); len(got) != 6 {
				t.Errorf("genres = %v", got)
			}
			call(t, r, http.MethodGet, "/mpa/5", "", http.StatusOK)
			call(t, r, http.MethodGet, "/mpa/6", "", http.StatusNotFound)
		})
	}
}

func TestErrorBodyShape(t *testing.T) {
	r := newServer(t, constants.StorageMemory, backends()[constants.StorageMemory])

	body := call(t, r, http.MethodGet, "/users/42", "", http.StatusNotFound)
	var resp middleware.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "not found" || !strings.Contains(resp.Description, "42") {
		t.Errorf("error body = %+v", resp)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	r := newServer(t, constants.StorageMemory, backends()[constants.StorageMemory])

	var health map[string]string
	if err := json.Unmarshal(call(t, r, http.MethodGet, "/health", "", http.StatusOK), &health); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if health["status"] != "ok" || health["storage"] != constants.StorageMemory {
		t.Errorf("health = %v", health)
	}

	call(t, r, http.MethodGet, "/films", "", http.StatusOK)
	metrics := string(call(t, r, http.MethodGet, "/metrics", "", http.StatusOK))
	if !strings.Contains(metrics, "filmorate_api_requests_total") {
		t.Error("metrics output lacks filmorate_api_requests_total")
	}
}

func TestRequestIDHeader(t *testing.T) {
	r := newServer(t, constants.StorageMemory, backends()[constants.StorageMemory])

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mpa", nil))
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
}

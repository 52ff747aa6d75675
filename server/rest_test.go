package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newswatcher/pkg/control"
	"github.com/umputun/newswatcher/pkg/domain"
	"github.com/umputun/newswatcher/pkg/repository"
	"github.com/umputun/newswatcher/pkg/scheduler"
	"github.com/umputun/newswatcher/pkg/service"
	"github.com/umputun/newswatcher/server/mocks"
)

func testServer(engine Engine) *Server {
	cfg := &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return ":8080", 30 * time.Second },
	}
	return New(cfg, engine, "test", false)
}

func serve(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	return rec
}

func TestServer_ControlHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		enqueueErr error
		wantCode   int
		wantCalls  int
	}{
		{name: "accepted", body: `{"kind":"REFRESH_SUBSCRIBER","subscriber":{"id":3,"newsFilters":[{"name":"f","keyWords":["apple"]}]}}`,
			wantCode: http.StatusAccepted, wantCalls: 1},
		{name: "unknown kind", body: `{"kind":"REFRESH_STORIES"}`, enqueueErr: control.ErrUnknownKind,
			wantCode: http.StatusBadRequest, wantCalls: 1},
		{name: "mailbox full", body: `{"kind":"REFRESH_SUBSCRIBER","subscriber":{"id":3}}`, enqueueErr: control.ErrMailboxFull,
			wantCode: http.StatusServiceUnavailable, wantCalls: 1},
		{name: "bad json", body: `{"kind":`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mocks.EngineMock{
				EnqueueFunc: func(control.Message) error { return tt.enqueueErr },
			}
			rec := serve(testServer(engine), http.MethodPost, "/api/v1/control", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code)
			require.Len(t, engine.EnqueueCalls(), tt.wantCalls)
			if tt.wantCode == http.StatusAccepted {
				msg := engine.EnqueueCalls()[0].Msg
				assert.Equal(t, control.KindRefreshSubscriber, msg.Kind)
				assert.Equal(t, int64(3), msg.Subscriber.ID)
				assert.Equal(t, []string{"apple"}, msg.Subscriber.Filters[0].KeyWords)
			}
		})
	}
}

func TestServer_RefreshSubscriberHandler(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		err      error
		wantCode int
	}{
		{name: "accepted", path: "/api/v1/subscribers/12/refresh", wantCode: http.StatusAccepted},
		{name: "not found", path: "/api/v1/subscribers/12/refresh", err: fmt.Errorf("get subscriber 12: %w", repository.ErrNotFound),
			wantCode: http.StatusNotFound},
		{name: "full", path: "/api/v1/subscribers/12/refresh", err: control.ErrMailboxFull, wantCode: http.StatusServiceUnavailable},
		{name: "store error", path: "/api/v1/subscribers/12/refresh", err: errors.New("db down"), wantCode: http.StatusInternalServerError},
		{name: "bad id", path: "/api/v1/subscribers/abc/refresh", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mocks.EngineMock{
				RefreshSubscriberFunc: func(_ context.Context, id int64) error {
					assert.Equal(t, int64(12), id)
					return tt.err
				},
			}
			rec := serve(testServer(engine), http.MethodPost, tt.path, "")
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestServer_HomeNewsHandler(t *testing.T) {
	t.Run("stories", func(t *testing.T) {
		engine := &mocks.EngineMock{
			HomeNewsFunc: func(context.Context) ([]domain.Story, int64, error) {
				return []domain.Story{{StoryID: "id1", Title: "title", Link: "https://example.com/1"}}, 4, nil
			},
		}
		rec := serve(testServer(engine), http.MethodGet, "/api/v1/homenews", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Version         int64          `json:"version"`
			HomeNewsStories []domain.Story `json:"homeNewsStories"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, int64(4), resp.Version)
		require.Len(t, resp.HomeNewsStories, 1)
		assert.Equal(t, "id1", resp.HomeNewsStories[0].StoryID)
	})

	t.Run("empty catalog", func(t *testing.T) {
		engine := &mocks.EngineMock{
			HomeNewsFunc: func(context.Context) ([]domain.Story, int64, error) { return nil, 0, nil },
		}
		rec := serve(testServer(engine), http.MethodGet, "/api/v1/homenews", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"homeNewsStories":[]`)
	})

	t.Run("error", func(t *testing.T) {
		engine := &mocks.EngineMock{
			HomeNewsFunc: func(context.Context) ([]domain.Story, int64, error) { return nil, 0, errors.New("db down") },
		}
		rec := serve(testServer(engine), http.MethodGet, "/api/v1/homenews", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestServer_FetchHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "ok", wantCode: http.StatusOK},
		{name: "fatal", err: scheduler.ErrSystemic, wantCode: http.StatusConflict},
		{name: "upstream", err: errors.New("fetch catalog: no category returned stories"), wantCode: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mocks.EngineMock{
				FetchNowFunc: func(context.Context) (scheduler.RefreshStats, error) {
					if tt.err != nil {
						return scheduler.RefreshStats{}, tt.err
					}
					return scheduler.RefreshStats{Version: 2, Refreshed: 5}, nil
				},
			}
			rec := serve(testServer(engine), http.MethodPost, "/api/v1/fetch", "")
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.JSONEq(t, `{"version":2,"refreshed":5,"failed":0}`, rec.Body.String())
			}
		})
	}
}

func TestServer_StatusHandler(t *testing.T) {
	t.Run("fatal", func(t *testing.T) {
		engine := &mocks.EngineMock{
			StatusFunc: func(context.Context) (service.EngineStatus, error) {
				st := service.EngineStatus{Subscribers: 3}
				st.Fatal = true
				st.CatalogVersion = 7
				return st, nil
			},
		}
		rec := serve(testServer(engine), http.MethodGet, "/api/v1/status", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "fatal", resp["status"])
		assert.Equal(t, "test", resp["version"])
		eng, ok := resp["engine"].(map[string]any)
		require.True(t, ok)
		assert.InDelta(t, 7, eng["catalogVersion"], 0.001)
		assert.InDelta(t, 3, eng["subscribers"], 0.001)
	})

	t.Run("error", func(t *testing.T) {
		engine := &mocks.EngineMock{
			StatusFunc: func(context.Context) (service.EngineStatus, error) {
				return service.EngineStatus{}, errors.New("db down")
			},
		}
		rec := serve(testServer(engine), http.MethodGet, "/api/v1/status", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "db down")
	})
}

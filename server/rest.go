package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newswatcher/pkg/control"
	"github.com/umputun/newswatcher/pkg/domain"
	"github.com/umputun/newswatcher/pkg/repository"
	"github.com/umputun/newswatcher/pkg/scheduler"
)

// statusHandler returns engine status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.Status(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get status: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	status := "ok"
	if st.Fatal {
		status = "fatal"
	}
	renderJSON(w, r, http.StatusOK, struct {
		Status  string    `json:"status"`
		Version string    `json:"version"`
		Time    time.Time `json:"time"`
		Engine  any       `json:"engine"`
	}{Status: status, Version: s.version, Time: time.Now().UTC(), Engine: st})
}

// homeNewsHandler returns home stories of the current catalog snapshot
func (s *Server) homeNewsHandler(w http.ResponseWriter, r *http.Request) {
	stories, version, err := s.engine.HomeNews(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get home news: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if stories == nil {
		stories = []domain.Story{}
	}
	renderJSON(w, r, http.StatusOK, struct {
		Version         int64          `json:"version"`
		HomeNewsStories []domain.Story `json:"homeNewsStories"`
	}{Version: version, HomeNewsStories: stories})
}

// controlHandler accepts a control message and passes it to the engine without waiting
func (s *Server) controlHandler(w http.ResponseWriter, r *http.Request) {
	var msg control.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		renderError(w, r, fmt.Errorf("invalid message: %w", err), http.StatusBadRequest)
		return
	}
	s.enqueue(w, r, msg)
}

// refreshSubscriberHandler enqueues refresh of a stored subscriber
func (s *Server) refreshSubscriberHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, errors.New("invalid subscriber ID"), http.StatusBadRequest)
		return
	}

	err = s.engine.RefreshSubscriber(r.Context(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		renderError(w, r, err, http.StatusNotFound)
	case errors.Is(err, control.ErrMailboxFull):
		renderError(w, r, err, http.StatusServiceUnavailable)
	case err != nil:
		lgr.Printf("[ERROR] failed to enqueue refresh of subscriber %d: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
	default:
		renderJSON(w, r, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}

// fetchHandler runs a fetch cycle immediately and returns its stats
func (s *Server) fetchHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.engine.FetchNow(r.Context())
	switch {
	case errors.Is(err, scheduler.ErrSystemic):
		renderError(w, r, err, http.StatusConflict)
	case err != nil:
		lgr.Printf("[WARN] immediate fetch failed: %v", err)
		renderError(w, r, err, http.StatusBadGateway)
	default:
		renderJSON(w, r, http.StatusOK, stats)
	}
}

func (s *Server) enqueue(w http.ResponseWriter, r *http.Request, msg control.Message) {
	err := s.engine.Enqueue(msg)
	switch {
	case errors.Is(err, control.ErrMailboxFull):
		renderError(w, r, err, http.StatusServiceUnavailable)
	case err != nil:
		renderError(w, r, err, http.StatusBadRequest)
	default:
		renderJSON(w, r, http.StatusAccepted, map[string]string{"status": "accepted"})
	}
}

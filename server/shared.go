package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newswatcher/pkg/domain"
	"github.com/umputun/newswatcher/pkg/repository"
)

type shareRequest struct {
	Story   domain.Story   `json:"story"`
	Comment domain.Comment `json:"comment"`
}

// listSharedHandler returns all shared items
func (s *Server) listSharedHandler(w http.ResponseWriter, r *http.Request) {
	items, err := s.engine.SharedItems(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to list shared items: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []domain.SharedItem{}
	}
	renderJSON(w, r, http.StatusOK, items)
}

// shareStoryHandler opens a shared discussion for a story
func (s *Server) shareStoryHandler(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	if req.Story.StoryID == "" || req.Comment.Comment == "" {
		renderError(w, r, errors.New("story id and comment are required"), http.StatusBadRequest)
		return
	}

	item, err := s.engine.ShareStory(r.Context(), req.Story, req.Comment)
	switch {
	case errors.Is(err, repository.ErrAlreadyShared), errors.Is(err, repository.ErrSharedLimit):
		renderError(w, r, err, http.StatusConflict)
	case err != nil:
		lgr.Printf("[ERROR] failed to share story %s: %v", req.Story.StoryID, err)
		renderError(w, r, err, http.StatusInternalServerError)
	default:
		renderJSON(w, r, http.StatusCreated, item)
	}
}

// addCommentHandler appends a comment to a shared item
func (s *Server) addCommentHandler(w http.ResponseWriter, r *http.Request) {
	var comment domain.Comment
	if err := json.NewDecoder(r.Body).Decode(&comment); err != nil {
		renderError(w, r, fmt.Errorf("invalid comment: %w", err), http.StatusBadRequest)
		return
	}
	if comment.Comment == "" {
		renderError(w, r, errors.New("comment is required"), http.StatusBadRequest)
		return
	}

	item, err := s.engine.AddComment(r.Context(), r.PathValue("id"), comment)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		renderError(w, r, err, http.StatusNotFound)
	case err != nil:
		lgr.Printf("[ERROR] failed to add comment: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
	default:
		renderJSON(w, r, http.StatusOK, item)
	}
}

// Package service provides the engine facade used by the HTTP layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/umputun/newswatcher/pkg/control"
	"github.com/umputun/newswatcher/pkg/domain"
	"github.com/umputun/newswatcher/pkg/repository"
	"github.com/umputun/newswatcher/pkg/scheduler"
)

// EngineService gives unified access to the engine state, the mailbox and the repositories
type EngineService struct {
	subscribers *repository.SubscriberRepository
	shared      *repository.SharedRepository
	coordinator *scheduler.Coordinator
	scheduler   *scheduler.Scheduler
	mailbox     *control.Mailbox
	maxShared   int
}

// EngineStatus combines scheduler state with store counters
type EngineStatus struct {
	scheduler.Status
	Subscribers     int64 `json:"subscribers"`
	SharedItems     int64 `json:"sharedItems"`
	PendingMessages int   `json:"pendingMessages"`
}

// NewEngineService creates a new engine service, maxShared limits the number of shared items
func NewEngineService(repos *repository.Repositories, coordinator *scheduler.Coordinator,
	sched *scheduler.Scheduler, mailbox *control.Mailbox, maxShared int) *EngineService {
	return &EngineService{
		subscribers: repos.Subscriber,
		shared:      repos.Shared,
		coordinator: coordinator,
		scheduler:   sched,
		mailbox:     mailbox,
		maxShared:   maxShared,
	}
}

// Enqueue passes a control message to the engine without waiting for it
func (s *EngineService) Enqueue(msg control.Message) error {
	return s.mailbox.Send(msg)
}

// RefreshSubscriber loads the subscriber record and enqueues its refresh
func (s *EngineService) RefreshSubscriber(ctx context.Context, id int64) error {
	sub, err := s.subscribers.GetSubscriber(ctx, id)
	if err != nil {
		return fmt.Errorf("get subscriber %d: %w", id, err)
	}
	return s.mailbox.Send(control.RefreshSubscriber(*sub))
}

// HomeNews returns home stories of the current snapshot and its version
func (s *EngineService) HomeNews(ctx context.Context) ([]domain.Story, int64, error) {
	snap, err := s.coordinator.Snapshot(ctx)
	if err != nil {
		return nil, 0, err
	}
	return domain.CopyStories(snap.HomeNewsStories), snap.Version, nil
}

// FetchNow runs a fetch cycle immediately
func (s *EngineService) FetchNow(ctx context.Context) (scheduler.RefreshStats, error) {
	return s.scheduler.FetchNow(ctx)
}

// Status returns the engine state with subscriber and shared item counts
func (s *EngineService) Status(ctx context.Context) (EngineStatus, error) {
	res := EngineStatus{Status: s.scheduler.Status(), PendingMessages: s.mailbox.Pending()}
	var err error
	if res.Subscribers, err = s.subscribers.CountSubscribers(ctx); err != nil {
		return EngineStatus{}, fmt.Errorf("count subscribers: %w", err)
	}
	if res.SharedItems, err = s.shared.CountSharedItems(ctx); err != nil {
		return EngineStatus{}, fmt.Errorf("count shared items: %w", err)
	}
	return res, nil
}

// ShareStory opens a shared discussion for the story with the first comment.
// The story id becomes the shared item id.
func (s *EngineService) ShareStory(ctx context.Context, story domain.Story, comment domain.Comment) (*domain.SharedItem, error) {
	if story.StoryID == "" {
		return nil, errors.New("story id is required")
	}
	if comment.DateTime.IsZero() {
		comment.DateTime = time.Now()
	}
	item := domain.SharedItem{ID: story.StoryID, Story: story, Comments: []domain.Comment{comment}}
	if err := s.shared.CreateSharedItem(ctx, item, s.maxShared); err != nil {
		return nil, err
	}
	return &item, nil
}

// AddComment appends a comment to the shared item
func (s *EngineService) AddComment(ctx context.Context, id string, comment domain.Comment) (*domain.SharedItem, error) {
	if comment.DateTime.IsZero() {
		comment.DateTime = time.Now()
	}
	return s.shared.AddComment(ctx, id, comment)
}

// SharedItems returns all shared items, oldest first
func (s *EngineService) SharedItems(ctx context.Context) ([]domain.SharedItem, error) {
	return s.shared.ListSharedItems(ctx)
}

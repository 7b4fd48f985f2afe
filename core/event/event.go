// Package event manages the school calendar. Events are append-only and
// always listed chronologically.
package event

import (
	"context"
	"errors"
	"time"

	"github.com/mbizohigh/chikoro/core"
)

var ErrNotFound = errors.New("event not found")

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	CreatorID   string    `json:"creator_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC

	// joined from the creator's account on reads
	CreatorName string `json:"creator_name,omitempty"`
}

type NewEvent struct {
	Title       string    `json:"title" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
	Type        string    `json:"type" validate:"required"`
	Description string    `json:"description"`
}

func (ne *NewEvent) Validate() error {
	ne.Title = core.CleanString(ne.Title)
	ne.Type = core.CleanString(ne.Type)
	ne.Description = core.CleanString(ne.Description)
	return core.Validate.Struct(ne)
}

type (
	Repository interface {
		CreateEvent(ctx context.Context, e Event) (Event, error)
		// QueryAllEvents returns events by date ascending with CreatorName joined.
		QueryAllEvents(ctx context.Context) ([]Event, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ne NewEvent, creatorID string) (Event, error) {
	e := Event{
		Title:       ne.Title,
		Date:        ne.Date,
		Type:        ne.Type,
		Description: ne.Description,
		CreatorID:   creatorID,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateEvent(ctx, e)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Event, error) {
	return svc.repo.QueryAllEvents(ctx)
}

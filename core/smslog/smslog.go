// Package smslog keeps the append-only history of text messages sent through
// the school's SMS gateway.
package smslog

import (
	"context"
	"errors"
	"time"

	"github.com/mbizohigh/chikoro/core"
)

// Delivery statuses
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

var ErrNotFound = errors.New("sms log entry not found")

// historyLimit caps how far back the history listing goes.
const historyLimit = 50

type Entry struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Type      string    `json:"type"` // category: absence, fees, general, ...
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

type NewEntry struct {
	Recipient string `json:"recipient" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

func (ne *NewEntry) Validate() error {
	ne.Recipient = core.CleanString(ne.Recipient)
	ne.Type = core.CleanString(ne.Type)
	ne.Message = core.CleanString(ne.Message)
	return core.Validate.Struct(ne)
}

type (
	Repository interface {
		CreateEntry(ctx context.Context, e Entry) (Entry, error)
		// QueryEntries returns entries newest-first, capped at limit.
		QueryEntries(ctx context.Context, limit int) ([]Entry, error)
	}

	Service struct {
		repo    Repository
		gateway core.SMSService
	}
)

func NewService(repo Repository, gateway core.SMSService) *Service {
	return &Service{repo: repo, gateway: gateway}
}

// Send logs the message and hands it to the gateway. A gateway failure is
// recorded on the entry, not surfaced to the caller.
func (svc *Service) Send(ctx context.Context, ne NewEntry) (Entry, error) {
	e := Entry{
		Recipient: ne.Recipient,
		Type:      ne.Type,
		Message:   ne.Message,
		Status:    StatusSent,
		CreatedAt: time.Now().UTC(),
	}
	if err := svc.gateway.Send(ctx, core.SMSMessage{Recipient: e.Recipient, Body: e.Message}); err != nil {
		e.Status = StatusFailed
	}
	return svc.repo.CreateEntry(ctx, e)
}

func (svc *Service) History(ctx context.Context) ([]Entry, error) {
	return svc.repo.QueryEntries(ctx, historyLimit)
}

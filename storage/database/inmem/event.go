package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mbizohigh/chikoro/core/event"
)

type eventRepository struct {
	db *DB
}

var _ event.Repository = (*eventRepository)(nil)

func NewEventRepository(db *DB) *eventRepository {
	return &eventRepository{db: db}
}

func (repo *eventRepository) join(e event.Event) event.Event {
	if e.CreatorID == "" {
		return e
	}
	repo.db.user.mutex.RLock()
	defer repo.db.user.mutex.RUnlock()

	if usr, ok := repo.db.user.table[e.CreatorID]; ok {
		e.CreatorName = usr.Name
	}
	return e
}

func (repo *eventRepository) CreateEvent(ctx context.Context, e event.Event) (event.Event, error) {
	repo.db.event.mutex.Lock()
	defer repo.db.event.mutex.Unlock()

	e.ID = uuid.New().String()
	repo.db.event.table[e.ID] = &e
	return e, nil
}

func (repo *eventRepository) QueryAllEvents(ctx context.Context) ([]event.Event, error) {
	repo.db.event.mutex.RLock()
	defer repo.db.event.mutex.RUnlock()

	events := make([]event.Event, 0, len(repo.db.event.table))
	for _, e := range repo.db.event.table {
		events = append(events, repo.join(*e))
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mbizohigh/chikoro/core/event"
)

type eventRepository struct {
	db *sqlx.DB
}

var _ event.Repository = (*eventRepository)(nil)

func NewEventRepository(db *sqlx.DB) *eventRepository {
	return &eventRepository{db: db}
}

type eventRow struct {
	ID          string      `db:"id"`
	Title       string      `db:"title"`
	Date        time.Time   `db:"date"`
	Type        string      `db:"type"`
	Description null.String `db:"description"`
	CreatorID   null.String `db:"creator_id"`
	CreatedAt   time.Time   `db:"created_at"`
	CreatorName null.String `db:"creator_name"`
}

func (repo eventRepository) unrow(row eventRow) event.Event {
	return event.Event{
		ID:          row.ID,
		Title:       row.Title,
		Date:        row.Date,
		Type:        row.Type,
		Description: row.Description.String,
		CreatorID:   row.CreatorID.String,
		CreatedAt:   row.CreatedAt,
		CreatorName: row.CreatorName.String,
	}
}

func (repo eventRepository) CreateEvent(ctx context.Context, e event.Event) (event.Event, error) {
	e.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO event (id, title, date, type, description, creator_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Title, e.Date, e.Type, null.NewString(e.Description, e.Description != ""),
		null.NewString(e.CreatorID, e.CreatorID != ""), e.CreatedAt)
	if err != nil {
		return event.Event{}, errors.Wrap(err, "inserting event")
	}
	return e, nil
}

func (repo eventRepository) QueryAllEvents(ctx context.Context) ([]event.Event, error) {
	var rows []eventRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT e.id, e.title, e.date, e.type, e.description, e.creator_id, e.created_at,
		       u.name AS creator_name
		FROM event e
		LEFT JOIN "user" u ON u.id = e.creator_id
		ORDER BY e.date`)
	if err != nil {
		return nil, errors.Wrap(err, "querying events")
	}
	events := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, repo.unrow(row))
	}
	return events, nil
}

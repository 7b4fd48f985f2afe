package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mbizohigh/chikoro/core/smslog"
)

type smsLogRepository struct {
	db *sqlx.DB
}

var _ smslog.Repository = (*smsLogRepository)(nil)

func NewSMSLogRepository(db *sqlx.DB) *smsLogRepository {
	return &smsLogRepository{db: db}
}

type smsLogRow struct {
	ID        string    `db:"id"`
	Recipient string    `db:"recipient"`
	Type      string    `db:"type"`
	Message   string    `db:"message"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
}

func (repo smsLogRepository) unrow(row smsLogRow) smslog.Entry {
	return smslog.Entry{
		ID:        row.ID,
		Recipient: row.Recipient,
		Type:      row.Type,
		Message:   row.Message,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
	}
}

func (repo smsLogRepository) CreateEntry(ctx context.Context, e smslog.Entry) (smslog.Entry, error) {
	e.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO sms_log (id, recipient, type, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.Recipient, e.Type, e.Message, e.Status, e.CreatedAt)
	if err != nil {
		return smslog.Entry{}, errors.Wrap(err, "inserting sms log entry")
	}
	return e, nil
}

func (repo smsLogRepository) QueryEntries(ctx context.Context, limit int) ([]smslog.Entry, error) {
	var rows []smsLogRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM sms_log ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "querying sms log")
	}
	entries := make([]smslog.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, repo.unrow(row))
	}
	return entries, nil
}

package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mbizohigh/chikoro/core/notice"
)

type noticeRepository struct {
	db *sqlx.DB
}

var _ notice.Repository = (*noticeRepository)(nil)

func NewNoticeRepository(db *sqlx.DB) *noticeRepository {
	return &noticeRepository{db: db}
}

type noticeRow struct {
	ID         string      `db:"id"`
	Title      string      `db:"title"`
	Content    string      `db:"content"`
	AuthorID   null.String `db:"author_id"`
	CreatedAt  time.Time   `db:"created_at"`
	AuthorName null.String `db:"author_name"`
}

func (repo noticeRepository) unrow(row noticeRow) notice.Notice {
	return notice.Notice{
		ID:         row.ID,
		Title:      row.Title,
		Content:    row.Content,
		AuthorID:   row.AuthorID.String,
		CreatedAt:  row.CreatedAt,
		AuthorName: row.AuthorName.String,
	}
}

func (repo noticeRepository) CreateNotice(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	n.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO notice (id, title, content, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.Title, n.Content, null.NewString(n.AuthorID, n.AuthorID != ""), n.CreatedAt)
	if err != nil {
		return notice.Notice{}, errors.Wrap(err, "inserting notice")
	}
	return n, nil
}

func (repo noticeRepository) QueryAllNotices(ctx context.Context) ([]notice.Notice, error) {
	var rows []noticeRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT n.id, n.title, n.content, n.author_id, n.created_at, u.name AS author_name
		FROM notice n
		LEFT JOIN "user" u ON u.id = n.author_id
		ORDER BY n.created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying notices")
	}
	notices := make([]notice.Notice, 0, len(rows))
	for _, row := range rows {
		notices = append(notices, repo.unrow(row))
	}
	return notices, nil
}

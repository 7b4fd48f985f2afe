package sqlxrepos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mbizohigh/chikoro/core/resource"
)

type resourceRepository struct {
	db *sqlx.DB
}

var _ resource.Repository = (*resourceRepository)(nil)

func NewResourceRepository(db *sqlx.DB) *resourceRepository {
	return &resourceRepository{db: db}
}

type resourceRow struct {
	ID           string      `db:"id"`
	Title        string      `db:"title"`
	Type         string      `db:"type"`
	Category     string      `db:"category"`
	Subject      string      `db:"subject"`
	Year         int         `db:"year"`
	FileURL      null.String `db:"file_url"`
	UploaderID   null.String `db:"uploader_id"`
	CreatedAt    time.Time   `db:"created_at"`
	UploaderName null.String `db:"uploader_name"`
}

func (repo resourceRepository) unrow(row resourceRow) resource.Resource {
	return resource.Resource{
		ID:           row.ID,
		Title:        row.Title,
		Type:         row.Type,
		Category:     row.Category,
		Subject:      row.Subject,
		Year:         row.Year,
		FileURL:      row.FileURL.String,
		UploaderID:   row.UploaderID.String,
		CreatedAt:    row.CreatedAt,
		UploaderName: row.UploaderName.String,
	}
}

func (repo resourceRepository) CreateResource(ctx context.Context, r resource.Resource) (resource.Resource, error) {
	r.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO resource (id, title, type, category, subject, year, file_url, uploader_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID, r.Title, r.Type, r.Category, r.Subject, r.Year,
		null.NewString(r.FileURL, r.FileURL != ""), null.NewString(r.UploaderID, r.UploaderID != ""), r.CreatedAt)
	if err != nil {
		return resource.Resource{}, errors.Wrap(err, "inserting resource")
	}
	return r, nil
}

func (repo resourceRepository) FilterResources(ctx context.Context, filter resource.QueryFilter) ([]resource.Resource, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT r.id, r.title, r.type, r.category, r.subject, r.year, r.file_url, r.uploader_id, r.created_at,
		       u.name AS uploader_name
		FROM resource r
		LEFT JOIN "user" u ON u.id = r.uploader_id`)
	var args []interface{}
	switch filter.Category {
	case "":
	case "papers":
		sb.WriteString(` WHERE r.type = $1`)
		args = append(args, resource.TypePastPaper)
	case "notes":
		sb.WriteString(` WHERE r.type = $1`)
		args = append(args, resource.TypeStudyNotes)
	default:
		sb.WriteString(` WHERE LOWER(r.category) = $1`)
		args = append(args, filter.Category)
	}
	sb.WriteString(` ORDER BY r.created_at DESC`)

	var rows []resourceRow
	if err := repo.db.SelectContext(ctx, &rows, sb.String(), args...); err != nil {
		return nil, errors.Wrap(err, "querying resources")
	}
	resources := make([]resource.Resource, 0, len(rows))
	for _, row := range rows {
		resources = append(resources, repo.unrow(row))
	}
	return resources, nil
}

package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mbizohigh/chikoro/core/portfolio"
)

type portfolioRepository struct {
	db *sqlx.DB
}

var _ portfolio.Repository = (*portfolioRepository)(nil)

func NewPortfolioRepository(db *sqlx.DB) *portfolioRepository {
	return &portfolioRepository{db: db}
}

type portfolioRow struct {
	ID          string      `db:"id"`
	AuthorID    null.String `db:"author_id"`
	AuthorType  string      `db:"author_type"`
	Title       string      `db:"title"`
	Description string      `db:"description"`
	Category    string      `db:"category"`
	FileURL     null.String `db:"file_url"`
	CreatedAt   time.Time   `db:"created_at"`
	AuthorName  null.String `db:"author_name"`
}

func (repo portfolioRepository) unrow(row portfolioRow) portfolio.Portfolio {
	return portfolio.Portfolio{
		ID:          row.ID,
		AuthorID:    row.AuthorID.String,
		AuthorType:  row.AuthorType,
		Title:       row.Title,
		Description: row.Description,
		Category:    row.Category,
		FileURL:     row.FileURL.String,
		CreatedAt:   row.CreatedAt,
		AuthorName:  row.AuthorName.String,
	}
}

func (repo portfolioRepository) CreatePortfolio(ctx context.Context, p portfolio.Portfolio) (portfolio.Portfolio, error) {
	p.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO portfolio (id, author_id, author_type, title, description, category, file_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, null.NewString(p.AuthorID, p.AuthorID != ""), p.AuthorType, p.Title, p.Description,
		p.Category, null.NewString(p.FileURL, p.FileURL != ""), p.CreatedAt)
	if err != nil {
		return portfolio.Portfolio{}, errors.Wrap(err, "inserting portfolio")
	}
	return p, nil
}

func (repo portfolioRepository) FilterPortfolios(ctx context.Context, filter portfolio.QueryFilter) ([]portfolio.Portfolio, error) {
	query := `
		SELECT p.id, p.author_id, p.author_type, p.title, p.description, p.category, p.file_url, p.created_at,
		       u.name AS author_name
		FROM portfolio p
		LEFT JOIN "user" u ON u.id = p.author_id`
	var args []interface{}
	if filter.Category != "" {
		query += ` WHERE p.author_type = $1`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY p.created_at DESC`

	var rows []portfolioRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying portfolios")
	}
	portfolios := make([]portfolio.Portfolio, 0, len(rows))
	for _, row := range rows {
		portfolios = append(portfolios, repo.unrow(row))
	}
	return portfolios, nil
}

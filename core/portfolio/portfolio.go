// Package portfolio manages student and teacher showcase entries.
package portfolio

import (
	"context"
	"errors"
	"time"

	"github.com/mbizohigh/chikoro/core"
	"github.com/mbizohigh/chikoro/core/user"
)

// Author types
const (
	AuthorStudent = "student"
	AuthorTeacher = "teacher"
)

var ErrNotFound = errors.New("portfolio not found")

type Portfolio struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id,omitempty"`
	AuthorType  string    `json:"author_type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	FileURL     string    `json:"file_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC

	// joined from the author's account on reads
	AuthorName string `json:"author_name,omitempty"`
}

type NewPortfolio struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	FileURL     string `json:"file_url" validate:"omitempty,url"`
}

func (np *NewPortfolio) Validate() error {
	np.Title = core.CleanString(np.Title)
	np.Description = core.CleanString(np.Description)
	np.Category = core.CleanString(np.Category)
	return core.Validate.Struct(np)
}

// QueryFilter narrows portfolio listings by author type; "all"/empty matches everything.
type QueryFilter struct {
	Category string `query:"category"`
}

func (qf *QueryFilter) Clean() {
	qf.Category = core.CleanString(qf.Category, true /* lower */)
	if qf.Category == "all" {
		qf.Category = ""
	}
}

type (
	Repository interface {
		CreatePortfolio(ctx context.Context, p Portfolio) (Portfolio, error)
		// FilterPortfolios returns matches newest-first with AuthorName joined.
		FilterPortfolios(ctx context.Context, filter QueryFilter) ([]Portfolio, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create adds an entry on behalf of the author; anyone who isn't a student
// publishes under the teacher showcase.
func (svc *Service) Create(ctx context.Context, np NewPortfolio, author user.User) (Portfolio, error) {
	authorType := AuthorTeacher
	if author.IsStudent() {
		authorType = AuthorStudent
	}
	p := Portfolio{
		AuthorID:    author.ID,
		AuthorType:  authorType,
		Title:       np.Title,
		Description: np.Description,
		Category:    np.Category,
		FileURL:     np.FileURL,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreatePortfolio(ctx, p)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Portfolio, error) {
	filter.Clean()
	return svc.repo.FilterPortfolios(ctx, filter)
}

// Package notice holds the school notice board: staff post, everyone reads,
// nothing is ever edited or taken down.
package notice

import (
	"context"
	"errors"
	"time"

	"github.com/mbizohigh/chikoro/core"
)

var ErrNotFound = errors.New("notice not found")

type Notice struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id,omitempty"`
	CreatedAt time.Time `json:"created_at"` // UTC

	// joined from the author's account on reads
	AuthorName string `json:"author_name,omitempty"`
}

type NewNotice struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (nn *NewNotice) Validate() error {
	nn.Title = core.CleanString(nn.Title)
	nn.Content = core.CleanString(nn.Content)
	return core.Validate.Struct(nn)
}

type (
	Repository interface {
		CreateNotice(ctx context.Context, n Notice) (Notice, error)
		// QueryAllNotices returns notices newest-first with AuthorName joined.
		QueryAllNotices(ctx context.Context) ([]Notice, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nn NewNotice, authorID string) (Notice, error) {
	n := Notice{
		Title:     nn.Title,
		Content:   nn.Content,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateNotice(ctx, n)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Notice, error) {
	return svc.repo.QueryAllNotices(ctx)
}

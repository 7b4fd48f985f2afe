// Package resource manages ZIMSEC learning material: past papers, study notes
// and revision guides uploaded by staff.
package resource

import (
	"context"
	"errors"
	"time"

	"github.com/mbizohigh/chikoro/core"
)

// Well-known resource types the category filter maps onto.
const (
	TypePastPaper  = "Past Paper"
	TypeStudyNotes = "Study Notes"
)

var ErrNotFound = errors.New("resource not found")

type Resource struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Type       string    `json:"type"`
	Category   string    `json:"category"`
	Subject    string    `json:"subject"`
	Year       int       `json:"year"`
	FileURL    string    `json:"file_url,omitempty"`
	UploaderID string    `json:"uploader_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"` // UTC

	// joined from the uploader's account on reads
	UploaderName string `json:"uploader_name,omitempty"`
}

type NewResource struct {
	Title    string `json:"title" validate:"required"`
	Type     string `json:"type" validate:"required"`
	Category string `json:"category" validate:"required"`
	Subject  string `json:"subject" validate:"required"`
	Year     int    `json:"year" validate:"required"`
	FileURL  string `json:"file_url" validate:"omitempty,url"`
}

func (nr *NewResource) Validate() error {
	nr.Title = core.CleanString(nr.Title)
	nr.Type = core.CleanString(nr.Type)
	nr.Category = core.CleanString(nr.Category)
	nr.Subject = core.CleanString(nr.Subject)
	return core.Validate.Struct(nr)
}

// QueryFilter narrows resource listings. The shorthand categories "papers" and
// "notes" match on Type; anything else matches on Category; "all"/empty matches
// everything.
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
		CreateResource(ctx context.Context, r Resource) (Resource, error)
		// FilterResources returns matches newest-first with UploaderName joined.
		FilterResources(ctx context.Context, filter QueryFilter) ([]Resource, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nr NewResource, uploaderID string) (Resource, error) {
	r := Resource{
		Title:      nr.Title,
		Type:       nr.Type,
		Category:   nr.Category,
		Subject:    nr.Subject,
		Year:       nr.Year,
		FileURL:    nr.FileURL,
		UploaderID: uploaderID,
		CreatedAt:  time.Now().UTC(),
	}
	return svc.repo.CreateResource(ctx, r)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Resource, error) {
	filter.Clean()
	return svc.repo.FilterResources(ctx, filter)
}

// MatchesFilter reports whether a resource satisfies the category shorthand.
// Shared by store implementations so the filter rule lives in one place.
func MatchesFilter(r Resource, filter QueryFilter) bool {
	switch filter.Category {
	case "":
		return true
	case "papers":
		return r.Type == TypePastPaper
	case "notes":
		return r.Type == TypeStudyNotes
	default:
		return core.CleanString(r.Category, true) == filter.Category
	}
}

package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mbizohigh/chikoro/core/resource"
)

type resourceRepository struct {
	db *DB
}

var _ resource.Repository = (*resourceRepository)(nil)

func NewResourceRepository(db *DB) *resourceRepository {
	return &resourceRepository{db: db}
}

func (repo *resourceRepository) join(r resource.Resource) resource.Resource {
	if r.UploaderID == "" {
		return r
	}
	repo.db.user.mutex.RLock()
	defer repo.db.user.mutex.RUnlock()

	if usr, ok := repo.db.user.table[r.UploaderID]; ok {
		r.UploaderName = usr.Name
	}
	return r
}

func (repo *resourceRepository) CreateResource(ctx context.Context, r resource.Resource) (resource.Resource, error) {
	repo.db.resource.mutex.Lock()
	defer repo.db.resource.mutex.Unlock()

	r.ID = uuid.New().String()
	repo.db.resource.table[r.ID] = &r
	return r, nil
}

func (repo *resourceRepository) FilterResources(ctx context.Context, filter resource.QueryFilter) ([]resource.Resource, error) {
	repo.db.resource.mutex.RLock()
	defer repo.db.resource.mutex.RUnlock()

	resources := make([]resource.Resource, 0, len(repo.db.resource.table))
	for _, r := range repo.db.resource.table {
		if resource.MatchesFilter(*r, filter) {
			resources = append(resources, repo.join(*r))
		}
	}
	sort.Slice(resources, func(i, j int) bool { return resources[i].CreatedAt.After(resources[j].CreatedAt) })
	return resources, nil
}

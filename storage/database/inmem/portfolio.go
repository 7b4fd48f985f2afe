package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mbizohigh/chikoro/core/portfolio"
)

type portfolioRepository struct {
	db *DB
}

var _ portfolio.Repository = (*portfolioRepository)(nil)

func NewPortfolioRepository(db *DB) *portfolioRepository {
	return &portfolioRepository{db: db}
}

func (repo *portfolioRepository) join(p portfolio.Portfolio) portfolio.Portfolio {
	if p.AuthorID == "" {
		return p
	}
	repo.db.user.mutex.RLock()
	defer repo.db.user.mutex.RUnlock()

	if usr, ok := repo.db.user.table[p.AuthorID]; ok {
		p.AuthorName = usr.Name
	}
	return p
}

func (repo *portfolioRepository) CreatePortfolio(ctx context.Context, p portfolio.Portfolio) (portfolio.Portfolio, error) {
	repo.db.portfolio.mutex.Lock()
	defer repo.db.portfolio.mutex.Unlock()

	p.ID = uuid.New().String()
	repo.db.portfolio.table[p.ID] = &p
	return p, nil
}

func (repo *portfolioRepository) FilterPortfolios(ctx context.Context, filter portfolio.QueryFilter) ([]portfolio.Portfolio, error) {
	repo.db.portfolio.mutex.RLock()
	defer repo.db.portfolio.mutex.RUnlock()

	portfolios := make([]portfolio.Portfolio, 0, len(repo.db.portfolio.table))
	for _, p := range repo.db.portfolio.table {
		if filter.Category != "" && p.AuthorType != filter.Category {
			continue
		}
		portfolios = append(portfolios, repo.join(*p))
	}
	sort.Slice(portfolios, func(i, j int) bool { return portfolios[i].CreatedAt.After(portfolios[j].CreatedAt) })
	return portfolios, nil
}

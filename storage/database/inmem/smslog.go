package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mbizohigh/chikoro/core/smslog"
)

type smsLogRepository struct {
	db *smsLogTable
}

var _ smslog.Repository = (*smsLogRepository)(nil)

func NewSMSLogRepository(db *DB) *smsLogRepository {
	return &smsLogRepository{db: db.smsLog}
}

func (repo *smsLogRepository) CreateEntry(ctx context.Context, e smslog.Entry) (smslog.Entry, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	e.ID = uuid.New().String()
	repo.db.table[e.ID] = &e
	return e, nil
}

func (repo *smsLogRepository) QueryEntries(ctx context.Context, limit int) ([]smslog.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	entries := make([]smslog.Entry, 0, len(repo.db.table))
	for _, e := range repo.db.table {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

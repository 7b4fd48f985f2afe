package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mbizohigh/chikoro/core/notice"
)

type noticeRepository struct {
	db *DB
}

var _ notice.Repository = (*noticeRepository)(nil)

func NewNoticeRepository(db *DB) *noticeRepository {
	return &noticeRepository{db: db}
}

func (repo *noticeRepository) join(n notice.Notice) notice.Notice {
	if n.AuthorID == "" {
		return n
	}
	repo.db.user.mutex.RLock()
	defer repo.db.user.mutex.RUnlock()

	if usr, ok := repo.db.user.table[n.AuthorID]; ok {
		n.AuthorName = usr.Name
	}
	return n
}

func (repo *noticeRepository) CreateNotice(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	repo.db.notice.mutex.Lock()
	defer repo.db.notice.mutex.Unlock()

	n.ID = uuid.New().String()
	repo.db.notice.table[n.ID] = &n
	return n, nil
}

func (repo *noticeRepository) QueryAllNotices(ctx context.Context) ([]notice.Notice, error) {
	repo.db.notice.mutex.RLock()
	defer repo.db.notice.mutex.RUnlock()

	notices := make([]notice.Notice, 0, len(repo.db.notice.table))
	for _, n := range repo.db.notice.table {
		notices = append(notices, repo.join(*n))
	}
	sort.Slice(notices, func(i, j int) bool { return notices[i].CreatedAt.After(notices[j].CreatedAt) })
	return notices, nil
}

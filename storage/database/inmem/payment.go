package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/mbizohigh/chikoro/core/payment"
)

type paymentRepository struct {
	db *DB
}

var _ payment.Repository = (*paymentRepository)(nil)

func NewPaymentRepository(db *DB) *paymentRepository {
	return &paymentRepository{db: db}
}

func (repo *paymentRepository) join(p payment.Payment) payment.Payment {
	if p.PayerID == "" {
		return p
	}
	repo.db.user.mutex.RLock()
	defer repo.db.user.mutex.RUnlock()

	if usr, ok := repo.db.user.table[p.PayerID]; ok {
		p.PayerName = usr.Name
	}
	return p
}

func sortNewestFirst(payments []payment.Payment) {
	sort.Slice(payments, func(i, j int) bool { return payments[i].CreatedAt.After(payments[j].CreatedAt) })
}

func (repo *paymentRepository) CreatePayment(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	repo.db.payment.mutex.Lock()
	defer repo.db.payment.mutex.Unlock()

	p.ID = uuid.New().String()
	repo.db.payment.table[p.ID] = &p
	return p, nil
}

func (repo *paymentRepository) QueryAllPayments(ctx context.Context) ([]payment.Payment, error) {
	repo.db.payment.mutex.RLock()
	defer repo.db.payment.mutex.RUnlock()

	payments := make([]payment.Payment, 0, len(repo.db.payment.table))
	for _, p := range repo.db.payment.table {
		payments = append(payments, repo.join(*p))
	}
	sortNewestFirst(payments)
	return payments, nil
}

func (repo *paymentRepository) QueryPaymentsByPayer(ctx context.Context, payerID string) ([]payment.Payment, error) {
	repo.db.payment.mutex.RLock()
	defer repo.db.payment.mutex.RUnlock()

	payments := make([]payment.Payment, 0)
	for _, p := range repo.db.payment.table {
		if p.PayerID == payerID {
			payments = append(payments, *p)
		}
	}
	sortNewestFirst(payments)
	return payments, nil
}

func (repo *paymentRepository) UpdatePayment(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	repo.db.payment.mutex.Lock()
	defer repo.db.payment.mutex.Unlock()

	if _, ok := repo.db.payment.table[p.ID]; !ok {
		return payment.Payment{}, payment.ErrNotFound
	}
	repo.db.payment.table[p.ID] = &p
	return p, nil
}

// Package payment handles school-fee payments settled through a mobile-money
// gateway (EcoCash/OneMoney).
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mbizohigh/chikoro/core"
)

// Settlement statuses. A payment starts pending and transitions at most once.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

var ErrNotFound = errors.New("payment not found")

type Payment struct {
	ID            string    `json:"id"`
	PayerID       string    `json:"payer_id,omitempty"`
	StudentName   string    `json:"student_name"`
	StudentID     string    `json:"student_id"`
	PaymentType   string    `json:"payment_type"`
	Amount        float64   `json:"amount"`
	Phone         string    `json:"phone"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"` // UTC

	// joined from the payer's account on reads
	PayerName string `json:"payer_name,omitempty"`
}

type NewPayment struct {
	StudentName string  `json:"student_name" validate:"required"`
	StudentID   string  `json:"student_id" validate:"required"`
	PaymentType string  `json:"payment_type" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Phone       string  `json:"phone" validate:"required"`
}

func (np *NewPayment) Validate() error {
	np.StudentName = core.CleanString(np.StudentName)
	np.StudentID = core.CleanString(np.StudentID)
	np.PaymentType = core.CleanString(np.PaymentType)
	np.Phone = core.CleanString(np.Phone)
	return core.Validate.Struct(np)
}

type (
	// ProcessResult is the gateway's verdict on a settlement attempt.
	ProcessResult struct {
		Success       bool
		TransactionID string
	}

	// Processor is the external mobile-money collaborator.
	Processor interface {
		Process(ctx context.Context, p Payment) (ProcessResult, error)
	}

	Repository interface {
		CreatePayment(ctx context.Context, p Payment) (Payment, error)
		// QueryAllPayments returns payments newest-first with PayerName joined.
		QueryAllPayments(ctx context.Context) ([]Payment, error)
		QueryPaymentsByPayer(ctx context.Context, payerID string) ([]Payment, error)
		UpdatePayment(ctx context.Context, p Payment) (Payment, error)
	}

	Service struct {
		repo      Repository
		processor Processor
		logger    core.Logger
	}
)

func NewService(repo Repository, processor Processor, logger core.Logger) *Service {
	return &Service{repo: repo, processor: processor, logger: logger}
}

// Create persists the payment as pending, then asks the gateway to settle it.
// A successful settlement marks the stored record completed with the gateway's
// transaction id; an unsuccessful one leaves it pending (the gateway offers no
// usable failure receipt yet, so nothing is ever marked failed). The caller
// gets back the payment as initially persisted.
func (svc *Service) Create(ctx context.Context, np NewPayment, payerID string) (Payment, error) {
	p := Payment{
		PayerID:     payerID,
		StudentName: np.StudentName,
		StudentID:   np.StudentID,
		PaymentType: np.PaymentType,
		Amount:      np.Amount,
		Phone:       np.Phone,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	created, err := svc.repo.CreatePayment(ctx, p)
	if err != nil {
		return Payment{}, err
	}

	res, err := svc.processor.Process(ctx, created)
	if err != nil {
		// degraded, not fatal: the record stays pending
		svc.logger.Error(fmt.Sprintf("processing payment %s: %v", created.ID, err), err)
		return created, nil
	}
	if res.Success {
		settled := created
		settled.Status = StatusCompleted
		settled.TransactionID = res.TransactionID
		if _, err := svc.repo.UpdatePayment(ctx, settled); err != nil {
			svc.logger.Error(fmt.Sprintf("recording settlement of payment %s: %v", created.ID, err), err)
		}
	}
	return created, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Payment, error) {
	return svc.repo.QueryAllPayments(ctx)
}

func (svc *Service) QueryByPayer(ctx context.Context, payerID string) ([]Payment, error) {
	return svc.repo.QueryPaymentsByPayer(ctx, payerID)
}

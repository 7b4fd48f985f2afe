package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mbizohigh/chikoro/core/payment"
)

type paymentRepository struct {
	db *sqlx.DB
}

var _ payment.Repository = (*paymentRepository)(nil)

func NewPaymentRepository(db *sqlx.DB) *paymentRepository {
	return &paymentRepository{db: db}
}

type paymentRow struct {
	ID            string      `db:"id"`
	PayerID       null.String `db:"payer_id"`
	StudentName   string      `db:"student_name"`
	StudentID     string      `db:"student_id"`
	PaymentType   string      `db:"payment_type"`
	Amount        float64     `db:"amount"`
	Phone         string      `db:"phone"`
	Status        string      `db:"status"`
	TransactionID null.String `db:"transaction_id"`
	CreatedAt     time.Time   `db:"created_at"`
	PayerName     null.String `db:"payer_name"`
}

func (repo paymentRepository) unrow(row paymentRow) payment.Payment {
	return payment.Payment{
		ID:            row.ID,
		PayerID:       row.PayerID.String,
		StudentName:   row.StudentName,
		StudentID:     row.StudentID,
		PaymentType:   row.PaymentType,
		Amount:        row.Amount,
		Phone:         row.Phone,
		Status:        row.Status,
		TransactionID: row.TransactionID.String,
		CreatedAt:     row.CreatedAt,
		PayerName:     row.PayerName.String,
	}
}

func (repo paymentRepository) unrowSlice(rows []paymentRow) []payment.Payment {
	payments := make([]payment.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, repo.unrow(row))
	}
	return payments
}

func (repo paymentRepository) CreatePayment(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	p.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO payment (id, payer_id, student_name, student_id, payment_type, amount, phone, status, transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, null.NewString(p.PayerID, p.PayerID != ""), p.StudentName, p.StudentID, p.PaymentType,
		p.Amount, p.Phone, p.Status, null.NewString(p.TransactionID, p.TransactionID != ""), p.CreatedAt)
	if err != nil {
		return payment.Payment{}, errors.Wrap(err, "inserting payment")
	}
	return p, nil
}

func (repo paymentRepository) QueryAllPayments(ctx context.Context) ([]payment.Payment, error) {
	var rows []paymentRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT p.*, u.name AS payer_name
		FROM payment p
		LEFT JOIN "user" u ON u.id = p.payer_id
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying payments")
	}
	return repo.unrowSlice(rows), nil
}

func (repo paymentRepository) QueryPaymentsByPayer(ctx context.Context, payerID string) ([]payment.Payment, error) {
	if _, err := uuid.Parse(payerID); err != nil {
		return []payment.Payment{}, nil
	}
	var rows []paymentRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT p.*, NULL AS payer_name
		FROM payment p
		WHERE p.payer_id = $1
		ORDER BY p.created_at DESC`, payerID)
	if err != nil {
		return nil, errors.Wrap(err, "querying payments by payer")
	}
	return repo.unrowSlice(rows), nil
}

func (repo paymentRepository) UpdatePayment(ctx context.Context, p payment.Payment) (payment.Payment, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE payment
		SET status = $2, transaction_id = $3
		WHERE id = $1`,
		p.ID, p.Status, null.NewString(p.TransactionID, p.TransactionID != ""))
	if err != nil {
		return payment.Payment{}, errors.Wrap(err, "updating payment")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return payment.Payment{}, payment.ErrNotFound
	}
	return p, nil
}

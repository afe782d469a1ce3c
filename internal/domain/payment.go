package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GatewayName identifies this gateway in persisted payment records.
const GatewayName = "paystack"

// PaymentStatus is the transaction status reported by the processor.
type PaymentStatus string

const (
	PaymentStatusSuccess   PaymentStatus = "success"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusAbandoned PaymentStatus = "abandoned"
)

// SettlementKey is the tuple that identifies a logical settlement. At most
// one payment record may exist per key; this is the idempotency boundary.
type SettlementKey struct {
	Component   string
	PaymentArea string
	ItemID      int64
	UserID      int64
	Amount      decimal.Decimal
	Currency    string
	Gateway     string
	AccountID   int64
}

// PaymentRecord is the durable ledger entry for a settled payment. The
// ledger table is owned by the host platform; this service only inserts.
type PaymentRecord struct {
	ID          string
	Component   string
	PaymentArea string
	ItemID      int64
	UserID      int64
	Amount      decimal.Decimal
	Currency    string
	Gateway     string
	AccountID   int64
	CreatedAt   time.Time
}

// Key returns the settlement key for this record.
func (p *PaymentRecord) Key() SettlementKey {
	return SettlementKey{
		Component:   p.Component,
		PaymentArea: p.PaymentArea,
		ItemID:      p.ItemID,
		UserID:      p.UserID,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Gateway:     p.Gateway,
		AccountID:   p.AccountID,
	}
}

// GatewayTransaction is the diagnostic record kept alongside a settlement:
// what the notification claimed, what the processor reported, and when.
type GatewayTransaction struct {
	ID            string
	Reference     string
	Component     string
	PaymentArea   string
	ItemID        int64
	UserID        int64
	PaymentGross  decimal.Decimal
	Currency      string
	Tax           decimal.Decimal
	Memo          string
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
}

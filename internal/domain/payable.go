package domain

import "github.com/shopspring/decimal"

// Payable is the host platform's pricing record for a payable item: the
// expected cost, its currency and the receiving account. Read-only here.
type Payable struct {
	Component   string
	PaymentArea string
	ItemID      int64
	Amount      decimal.Decimal
	Currency    string
	AccountID   int64
}

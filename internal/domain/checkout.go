package domain

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidIdentifier reports whether a component or payment-area name stays
// within the restricted alphanumeric-plus-underscore alphabet. Hyphens are
// excluded: they are the correlation token's segment separator.
func ValidIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// CheckoutRequest describes a single payment attempt, produced by the host
// platform. It is never persisted by this service.
type CheckoutRequest struct {
	Component   string
	PaymentArea string
	ItemID      int64
	Description string
	UserID      int64
}

// CorrelationToken carries the checkout's identifying fields through the
// processor's metadata and back in the notification.
type CorrelationToken struct {
	UserID      int64
	ItemID      int64
	Component   string
	PaymentArea string
}

// String renders the token in its wire format.
func (t CorrelationToken) String() string {
	return fmt.Sprintf("%d-%d-%s-%s", t.UserID, t.ItemID, t.Component, t.PaymentArea)
}

// CheckoutSession holds everything the hosted widget needs to collect a
// payment: the public key, the per-attempt reference and the echoed metadata.
type CheckoutSession struct {
	Reference   string
	PublicKey   string
	Email       string
	FullName    string
	Currency    string
	AmountMinor int64
	Description string
	Custom      string
}

// supportedCurrencies are the ISO-4217 codes the gateway accepts.
var supportedCurrencies = map[string]struct{}{
	"NGN": {}, "USD": {}, "GHS": {}, "KES": {}, "XOF": {}, "ZAR": {}, "EGP": {},
}

// CurrencySupported reports whether the gateway accepts the given code.
func CurrencySupported(code string) bool {
	_, ok := supportedCurrencies[code]
	return ok
}

// ToMinorUnits converts a major-unit cost to the processor's minor units
// (kobo, cents), rounding to two decimal places first.
func ToMinorUnits(cost decimal.Decimal) int64 {
	return cost.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
}

// FromMinorUnits converts a minor-unit amount back to major units.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(100))
}

// Package notification normalizes inbound payment notifications, either the
// browser redirect form post or the server-to-server webhook body, into a
// validated Notification before any side effect occurs.
package notification

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidField is returned for a field name outside the allowed
	// charset or a field whose value is not a scalar.
	ErrInvalidField = errors.New("invalid notification field")

	// ErrMissingField is returned when a required field is absent or empty.
	ErrMissingField = errors.New("missing notification field")

	// ErrMalformedToken is returned when the correlation token cannot be
	// decomposed into its four segments.
	ErrMalformedToken = errors.New("malformed correlation token")
)

// trxrefField is the marker field Paystack appends to the redirect callback.
const trxrefField = "paystack-trxref"

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Notification is a validated inbound payment notification.
type Notification struct {
	Reference   string
	UserID      int64
	ItemID      int64
	Component   string
	PaymentArea string

	// PaymentGross and CurrencyCode echo what the client claimed at
	// checkout. Kept for diagnostics; never trusted for settlement.
	PaymentGross decimal.Decimal
	CurrencyCode string

	// Fields holds every accepted raw field for admin reporting.
	Fields map[string]string
}

// ParseForm validates the redirect callback's form fields. Parsing is pure:
// no side effects, no lookups.
func ParseForm(form url.Values) (*Notification, error) {
	fields := make(map[string]string, len(form))
	for name, values := range form {
		if !fieldNamePattern.MatchString(name) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidField, name)
		}
		if len(values) != 1 {
			return nil, fmt.Errorf("%w: repeated field %s", ErrInvalidField, name)
		}
		fields[name] = values[0]
	}

	if fields[trxrefField] == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, trxrefField)
	}

	return parseFields(fields)
}

// webhookBody mirrors the webhook envelope; only the fields this service
// consumes are decoded.
type webhookBody struct {
	Event string `json:"event"`
	Data  struct {
		Reference string                 `json:"reference"`
		Metadata  map[string]interface{} `json:"metadata"`
	} `json:"data"`
}

// ParseWebhook validates the webhook JSON body's metadata object. Signature
// validation is the caller's responsibility and must happen first.
func ParseWebhook(body []byte) (*Notification, error) {
	var envelope webhookBody
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: invalid json body", ErrInvalidField)
	}
	if len(envelope.Data.Metadata) == 0 {
		return nil, fmt.Errorf("%w: data.metadata", ErrMissingField)
	}

	fields := make(map[string]string, len(envelope.Data.Metadata))
	for name, value := range envelope.Data.Metadata {
		if !fieldNamePattern.MatchString(name) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidField, name)
		}
		scalar, ok := scalarString(value)
		if !ok {
			return nil, fmt.Errorf("%w: non-scalar field %s", ErrInvalidField, name)
		}
		fields[name] = scalar
	}

	if fields["reference"] == "" {
		fields["reference"] = envelope.Data.Reference
	}

	return parseFields(fields)
}

// parseFields extracts the correlation token and claimed amount/currency
// from an already charset-checked field set.
func parseFields(fields map[string]string) (*Notification, error) {
	custom := fields["custom"]
	if custom == "" {
		return nil, fmt.Errorf("%w: custom", ErrMissingField)
	}
	delete(fields, "custom")

	segments := strings.Split(custom, "-")
	if len(segments) < 4 {
		return nil, fmt.Errorf("%w: expected 4 segments, got %d", ErrMalformedToken, len(segments))
	}

	// Only the first four segments are consumed; trailing ones are ignored.
	userID, err := strconv.ParseInt(segments[0], 10, 64)
	if err != nil || userID < 0 {
		return nil, fmt.Errorf("%w: user id %q", ErrMalformedToken, segments[0])
	}
	itemID, err := strconv.ParseInt(segments[1], 10, 64)
	if err != nil || itemID < 0 {
		return nil, fmt.Errorf("%w: item id %q", ErrMalformedToken, segments[1])
	}

	n := &Notification{
		Reference:    fields["reference"],
		UserID:       userID,
		ItemID:       itemID,
		Component:    strings.TrimSpace(segments[2]),
		PaymentArea:  strings.TrimSpace(segments[3]),
		CurrencyCode: fields["currency_code"],
		Fields:       fields,
	}
	if n.Reference == "" {
		n.Reference = fields[trxrefField]
	}
	if n.Reference == "" {
		return nil, fmt.Errorf("%w: reference", ErrMissingField)
	}

	if raw := fields["amount"]; raw != "" {
		gross, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: amount %q", ErrInvalidField, raw)
		}
		n.PaymentGross = gross
	}

	return n, nil
}

// scalarString renders a JSON scalar as a string; nested structures are
// rejected.
func scalarString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

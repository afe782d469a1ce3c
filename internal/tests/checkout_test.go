package tests

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"paygate/internal/config"
	"paygate/internal/domain"
	"paygate/internal/service"
)

// ──────────────────────────────────────────────
// 2. CHECKOUT SESSION CREATION
// ──────────────────────────────────────────────

func newCheckoutFixture() (*service.CheckoutService, *MockUserRepository, *MockPayableRepository) {
	users := NewMockUserRepository()
	payables := NewMockPayableRepository()

	users.AddUser(&domain.User{
		ID:        42,
		FirstName: "Ada",
		LastName:  "Obi",
		Email:     "ada@example.com",
	})
	payables.AddPayable(&domain.Payable{
		Component:   "enrol_fee",
		PaymentArea: "fee",
		ItemID:      7,
		Amount:      decimal.RequireFromString("50.00"),
		Currency:    "NGN",
		AccountID:   3,
	})

	gateway := config.PaystackConfig{
		LiveMode:      false,
		TestPublicKey: "pk_test_abc",
		TestSecretKey: "sk_test_abc",
	}
	return service.NewCheckoutService(users, payables, gateway), users, payables
}

func validCheckoutRequest() domain.CheckoutRequest {
	return domain.CheckoutRequest{
		Component:   "enrol_fee",
		PaymentArea: "fee",
		ItemID:      7,
		Description: "Course enrolment fee",
		UserID:      42,
	}
}

func TestCheckout_SessionFields(t *testing.T) {
	t.Parallel()

	svc, _, _ := newCheckoutFixture()

	session, err := svc.CreateSession(context.Background(), validCheckoutRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if session.AmountMinor != 5000 {
		t.Errorf("expected 5000 minor units for 50.00, got %d", session.AmountMinor)
	}
	if session.Currency != "NGN" {
		t.Errorf("expected currency NGN, got %s", session.Currency)
	}
	if session.Email != "ada@example.com" {
		t.Errorf("expected the payer's email, got %s", session.Email)
	}
	if session.FullName != "Ada Obi" {
		t.Errorf("expected full name 'Ada Obi', got %q", session.FullName)
	}
	if session.PublicKey != "pk_test_abc" {
		t.Errorf("expected the test public key in test mode, got %q", session.PublicKey)
	}
	if session.Custom != "42-7-enrol_fee-fee" {
		t.Errorf("unexpected correlation token: %q", session.Custom)
	}
}

func TestCheckout_ReferenceFormat(t *testing.T) {
	t.Parallel()

	svc, _, _ := newCheckoutFixture()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		session, err := svc.CreateSession(ctx, validCheckoutRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ref := session.Reference
		if len(ref) != 25 {
			t.Fatalf("expected 25-character reference, got %d: %q", len(ref), ref)
		}
		for _, r := range ref {
			alnum := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			if !alnum {
				t.Fatalf("reference contains character outside alphabet: %q", ref)
			}
		}
		if seen[ref] {
			t.Fatalf("reference %q repeated across sessions", ref)
		}
		seen[ref] = true
	}
}

func TestCheckout_LiveModeSelectsLiveKey(t *testing.T) {
	t.Parallel()

	users := NewMockUserRepository()
	payables := NewMockPayableRepository()
	users.AddUser(&domain.User{ID: 42, FirstName: "Ada", LastName: "Obi", Email: "ada@example.com"})
	payables.AddPayable(&domain.Payable{
		Component: "enrol_fee", PaymentArea: "fee", ItemID: 7,
		Amount: decimal.NewFromInt(50), Currency: "NGN", AccountID: 3,
	})

	gateway := config.PaystackConfig{
		LiveMode:      true,
		LivePublicKey: "pk_live_xyz",
		TestPublicKey: "pk_test_abc",
	}
	svc := service.NewCheckoutService(users, payables, gateway)

	session, err := svc.CreateSession(context.Background(), validCheckoutRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.PublicKey != "pk_live_xyz" {
		t.Errorf("expected the live public key in live mode, got %q", session.PublicKey)
	}
}

func TestCheckout_InvalidRequests(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mutate func(*domain.CheckoutRequest)
	}{
		{
			name:   "component with hyphen",
			mutate: func(r *domain.CheckoutRequest) { r.Component = "enrol-fee" },
		},
		{
			name:   "empty component",
			mutate: func(r *domain.CheckoutRequest) { r.Component = "" },
		},
		{
			name:   "payment area with space",
			mutate: func(r *domain.CheckoutRequest) { r.PaymentArea = "unit fee" },
		},
		{
			name:   "negative item id",
			mutate: func(r *domain.CheckoutRequest) { r.ItemID = -1 },
		},
		{
			name:   "empty description",
			mutate: func(r *domain.CheckoutRequest) { r.Description = "" },
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, _, _ := newCheckoutFixture()
			req := validCheckoutRequest()
			tc.mutate(&req)

			_, err := svc.CreateSession(context.Background(), req)
			if !errors.Is(err, service.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestCheckout_UnknownUserAndPayable(t *testing.T) {
	t.Parallel()

	svc, _, _ := newCheckoutFixture()
	ctx := context.Background()

	req := validCheckoutRequest()
	req.UserID = 999
	if _, err := svc.CreateSession(ctx, req); !errors.Is(err, service.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	req = validCheckoutRequest()
	req.ItemID = 12345
	if _, err := svc.CreateSession(ctx, req); !errors.Is(err, service.ErrUnknownPayable) {
		t.Errorf("expected ErrUnknownPayable, got %v", err)
	}
}

func TestCheckout_UnsupportedCurrency(t *testing.T) {
	t.Parallel()

	users := NewMockUserRepository()
	payables := NewMockPayableRepository()
	users.AddUser(&domain.User{ID: 42, FirstName: "Ada", LastName: "Obi", Email: "ada@example.com"})
	payables.AddPayable(&domain.Payable{
		Component: "enrol_fee", PaymentArea: "fee", ItemID: 7,
		Amount: decimal.NewFromInt(50), Currency: "EUR", AccountID: 3,
	})
	svc := service.NewCheckoutService(users, payables, config.PaystackConfig{TestPublicKey: "pk_test_abc"})

	_, err := svc.CreateSession(context.Background(), validCheckoutRequest())
	if !errors.Is(err, service.ErrUnsupportedCurrency) {
		t.Fatalf("expected ErrUnsupportedCurrency, got %v", err)
	}
	if !strings.Contains(err.Error(), "EUR") {
		t.Errorf("error should name the rejected currency, got %q", err.Error())
	}
}

func TestCheckout_FractionalAmountConversion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		amount string
		want   int64
	}{
		{amount: "50.00", want: 5000},
		{amount: "0.01", want: 1},
		{amount: "19.999", want: 2000}, // rounds before converting
		{amount: "1234.56", want: 123456},
	}

	for _, tc := range testCases {
		got := domain.ToMinorUnits(decimal.RequireFromString(tc.amount))
		if got != tc.want {
			t.Errorf("ToMinorUnits(%s) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"paygate/internal/domain"
	"paygate/internal/notification"
	"paygate/internal/paystack"
	"paygate/internal/redis"
	"paygate/internal/repository"
)

// settlementLockTTL bounds how long a crashed settlement can keep its
// reference locked before the webhook retry can take over.
const settlementLockTTL = 30 * time.Second

// Path identifies which channel delivered the notification. The engine runs
// the same pipeline for both; only the admin-alerting on verification
// failure differs.
type Path int

const (
	// PathRedirect is the browser redirect callback.
	PathRedirect Path = iota
	// PathWebhook is the server-to-server webhook delivery.
	PathWebhook
)

// Outcome is the terminal state a notification reached.
type Outcome int

const (
	// OutcomeSettled means the payment was recorded and the order delivered.
	OutcomeSettled Outcome = iota
	// OutcomeAlreadySettled means an equivalent payment record already
	// existed; nothing was inserted or delivered.
	OutcomeAlreadySettled
	// OutcomeDeliveryFailed means the payment was recorded but order
	// delivery did not complete. Manual operator follow-up, never retried.
	OutcomeDeliveryFailed
)

// ReconcileResult reports the terminal state of a processed notification.
type ReconcileResult struct {
	Outcome   Outcome
	PaymentID string
}

// ProcessorClient is the subset of the Paystack client the engine uses.
type ProcessorClient interface {
	VerifyTransaction(ctx context.Context, reference string) (*paystack.VerificationResult, error)
	LogTransactionSuccess(ctx context.Context, reference string)
}

// OrderDeliverer triggers entitlement delivery after settlement. Owned by
// the host platform.
type OrderDeliverer interface {
	DeliverOrder(ctx context.Context, component, paymentArea string, itemID int64, paymentID string, userID int64) (bool, error)
}

// ReconcileService verifies inbound notifications against the processor and
// settles them into the host ledger exactly once per reference.
type ReconcileService struct {
	userRepo    repository.UserRepository
	payableRepo repository.PayableRepository
	paymentRepo repository.PaymentRepository
	txRepo      repository.TransactionRepository
	locks       redis.LockStoreInterface
	processor   ProcessorClient
	deliverer   OrderDeliverer
	admin       AdminNotifier
}

// NewReconcileService creates a new ReconcileService.
func NewReconcileService(
	userRepo repository.UserRepository,
	payableRepo repository.PayableRepository,
	paymentRepo repository.PaymentRepository,
	txRepo repository.TransactionRepository,
	locks redis.LockStoreInterface,
	processor ProcessorClient,
	deliverer OrderDeliverer,
	admin AdminNotifier,
) *ReconcileService {
	return &ReconcileService{
		userRepo:    userRepo,
		payableRepo: payableRepo,
		paymentRepo: paymentRepo,
		txRepo:      txRepo,
		locks:       locks,
		processor:   processor,
		deliverer:   deliverer,
		admin:       admin,
	}
}

// Reconcile runs a parsed notification through the verification pipeline.
// Stages run strictly in order; a failed check halts the pipeline and no
// later stage's side effects occur.
func (s *ReconcileService) Reconcile(ctx context.Context, path Path, n *notification.Notification) (*ReconcileResult, error) {
	// UserResolved: a non-existent account means forged input or a severe
	// host-state mismatch.
	user, err := s.userRepo.GetByID(ctx, n.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrUserNotFound, n.UserID)
		}
		return nil, err
	}

	payable, err := s.payableRepo.Get(ctx, n.Component, n.PaymentArea, n.ItemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s/%s/%d", ErrUnknownPayable, n.Component, n.PaymentArea, n.ItemID)
		}
		return nil, err
	}

	// Verified: exactly one call to the processor's authority. Client-
	// supplied status fields are never trusted for the credit decision.
	res, err := s.processor.VerifyTransaction(ctx, n.Reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessorUnavailable, err)
	}
	if !res.Status {
		if path == PathWebhook {
			s.admin.NotifyAdmin(ctx, "Transaction could not be verified", s.adminContext(n, res))
		}
		return nil, fmt.Errorf("%w: %s", ErrVerificationFailed, res.GatewayResponse)
	}

	cost := payable.Amount.Round(2)
	key := domain.SettlementKey{
		Component:   payable.Component,
		PaymentArea: payable.PaymentArea,
		ItemID:      payable.ItemID,
		UserID:      user.ID,
		Amount:      cost,
		Currency:    payable.Currency,
		Gateway:     domain.GatewayName,
		AccountID:   payable.AccountID,
	}

	// The lock serializes redirect and webhook for the same reference
	// through the settle phase. The unique index on the settlement key is
	// the backstop if the lock is lost.
	acquired, err := s.locks.AcquireSettlementLock(ctx, n.Reference, settlementLockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		// Another notification for this reference is mid-settlement. Only an
		// existing ledger record makes this delivery a no-op; the holder may
		// still crash before settling, so anything else must be retried.
		exists, err := s.paymentRepo.Exists(ctx, key)
		if err != nil {
			return nil, err
		}
		if exists {
			return &ReconcileResult{Outcome: OutcomeAlreadySettled}, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrSettlementInProgress, n.Reference)
	}
	defer func() {
		// The release must go through even when the request context was
		// cancelled mid-settlement; a skipped release pins the reference for
		// the full lock TTL.
		releaseCtx := context.WithoutCancel(ctx)
		if err := s.locks.ReleaseSettlementLock(releaseCtx, n.Reference); err != nil {
			log.Printf("reconcile: failed to release lock for %s: %v", n.Reference, err)
		}
	}()

	// AlreadySettled: a duplicate delivery (processor retried the webhook,
	// or the user re-triggered the redirect) short-circuits to success.
	exists, err := s.paymentRepo.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if exists {
		return &ReconcileResult{Outcome: OutcomeAlreadySettled}, nil
	}

	// CurrencyConsistent: a tampered client resubmitting under a different
	// currency would otherwise exploit exchange-rate differences.
	if n.CurrencyCode != payable.Currency || res.Currency != payable.Currency {
		s.admin.NotifyAdmin(ctx,
			fmt.Sprintf("Currency does not match payment settings, received: %s", n.CurrencyCode),
			s.adminContext(n, res))
		return nil, fmt.Errorf("%w: got %s, want %s", ErrCurrencyMismatch, n.CurrencyCode, payable.Currency)
	}

	// AmountSufficient: the processor-verified amount is authoritative.
	// Both sides rounded to the same precision before comparing.
	paid := domain.FromMinorUnits(res.AmountMinor).Round(2)
	if paid.LessThan(cost) {
		s.admin.NotifyAdmin(ctx,
			fmt.Sprintf("Amount paid is not enough (%s < %s)", paid, cost),
			s.adminContext(n, res))
		return nil, fmt.Errorf("%w: paid %s, cost %s", ErrAmountMismatch, paid, cost)
	}

	// StatusSuccess.
	if res.PaymentStatus != domain.PaymentStatusSuccess {
		s.admin.NotifyAdmin(ctx,
			fmt.Sprintf("Payment status not successful: %s", res.GatewayResponse),
			s.adminContext(n, res))
		return nil, fmt.Errorf("%w: %s", ErrPaymentNotSuccessful, res.PaymentStatus)
	}

	return s.settle(ctx, n, user, payable, key, res)
}

// settle records the diagnostic transaction, inserts the ledger entry and
// requests order delivery. Runs at most once per settlement key.
func (s *ReconcileService) settle(
	ctx context.Context,
	n *notification.Notification,
	user *domain.User,
	payable *domain.Payable,
	key domain.SettlementKey,
	res *paystack.VerificationResult,
) (*ReconcileResult, error) {
	gatewayTx := &domain.GatewayTransaction{
		ID:            uuid.New().String(),
		Reference:     n.Reference,
		Component:     payable.Component,
		PaymentArea:   payable.PaymentArea,
		ItemID:        payable.ItemID,
		UserID:        user.ID,
		PaymentGross:  n.PaymentGross,
		Currency:      n.CurrencyCode,
		Tax:           domain.FromMinorUnits(res.AmountMinor),
		Memo:          res.GatewayResponse,
		PaymentStatus: res.PaymentStatus,
	}
	if err := s.txRepo.Insert(ctx, gatewayTx); err != nil {
		// Diagnostic only; a failed insert must not block settlement.
		log.Printf("reconcile: failed to record gateway transaction %s: %v", n.Reference, err)
	}

	payment := &domain.PaymentRecord{
		ID:          uuid.New().String(),
		Component:   key.Component,
		PaymentArea: key.PaymentArea,
		ItemID:      key.ItemID,
		UserID:      key.UserID,
		Amount:      key.Amount,
		Currency:    key.Currency,
		Gateway:     key.Gateway,
		AccountID:   key.AccountID,
	}
	if err := s.paymentRepo.Insert(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the race despite the lock; the other side settled.
			return &ReconcileResult{Outcome: OutcomeAlreadySettled}, nil
		}
		return nil, err
	}

	s.processor.LogTransactionSuccess(ctx, n.Reference)

	done, err := s.deliverer.DeliverOrder(ctx, key.Component, key.PaymentArea, key.ItemID, payment.ID, key.UserID)
	if err != nil || !done {
		if err != nil {
			log.Printf("reconcile: order delivery failed for payment %s: %v", payment.ID, err)
		}
		// Payment is recorded but entitlement was not granted; reported,
		// never auto-retried.
		return &ReconcileResult{Outcome: OutcomeDeliveryFailed, PaymentID: payment.ID}, nil
	}

	return &ReconcileResult{Outcome: OutcomeSettled, PaymentID: payment.ID}, nil
}

// adminContext assembles the full structured context for an admin alert:
// every accepted notification field plus the parsed and verified values.
func (s *ReconcileService) adminContext(n *notification.Notification, res *paystack.VerificationResult) map[string]string {
	fields := make(map[string]string, len(n.Fields)+8)
	for k, v := range n.Fields {
		fields[k] = v
	}
	fields["userid"] = strconv.FormatInt(n.UserID, 10)
	fields["itemid"] = strconv.FormatInt(n.ItemID, 10)
	fields["component"] = n.Component
	fields["paymentarea"] = n.PaymentArea
	fields["payment_gross"] = n.PaymentGross.String()
	if res != nil {
		fields["verified_amount"] = domain.FromMinorUnits(res.AmountMinor).String()
		fields["verified_currency"] = res.Currency
		fields["payment_status"] = string(res.PaymentStatus)
		fields["memo"] = res.GatewayResponse
	}
	return fields
}

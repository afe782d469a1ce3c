package tests

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"paygate/internal/domain"
	"paygate/internal/paystack"
	"paygate/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[int64]*domain.User

	// Error injection
	GetError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[int64]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *user
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK PAYABLE REPOSITORY
// ──────────────────────────────────────────────

// MockPayableRepository is a mock implementation of PayableRepository.
type MockPayableRepository struct {
	mu       sync.RWMutex
	payables map[string]*domain.Payable
}

// NewMockPayableRepository creates a new mock payable repository.
func NewMockPayableRepository() *MockPayableRepository {
	return &MockPayableRepository{
		payables: make(map[string]*domain.Payable),
	}
}

func payableKey(component, paymentArea string, itemID int64) string {
	return fmt.Sprintf("%s/%s/%d", component, paymentArea, itemID)
}

// AddPayable adds a payable to the mock repository.
func (m *MockPayableRepository) AddPayable(p *domain.Payable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payables[payableKey(p.Component, p.PaymentArea, p.ItemID)] = p
}

func (m *MockPayableRepository) Get(ctx context.Context, component, paymentArea string, itemID int64) (*domain.Payable, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.payables[payableKey(component, paymentArea, itemID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *p
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository. It
// enforces settlement-key uniqueness the way the real table's unique index
// does: a second insert with an equal key returns ErrDuplicate.
type MockPaymentRepository struct {
	mu       sync.Mutex
	payments []*domain.PaymentRecord

	// Counters
	InsertCallCount int32
	ExistsCallCount int32

	// Error injection
	InsertError error
	ExistsError error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{}
}

func settlementKeysEqual(a, b domain.SettlementKey) bool {
	return a.Component == b.Component &&
		a.PaymentArea == b.PaymentArea &&
		a.ItemID == b.ItemID &&
		a.UserID == b.UserID &&
		a.Amount.Equal(b.Amount) &&
		a.Currency == b.Currency &&
		a.Gateway == b.Gateway &&
		a.AccountID == b.AccountID
}

func (m *MockPaymentRepository) Insert(ctx context.Context, payment *domain.PaymentRecord) error {
	atomic.AddInt32(&m.InsertCallCount, 1)
	if m.InsertError != nil {
		return m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if settlementKeysEqual(p.Key(), payment.Key()) {
			return repository.ErrDuplicate
		}
	}
	copy := *payment
	m.payments = append(m.payments, &copy)
	return nil
}

func (m *MockPaymentRepository) Exists(ctx context.Context, key domain.SettlementKey) (bool, error) {
	atomic.AddInt32(&m.ExistsCallCount, 1)
	if m.ExistsError != nil {
		return false, m.ExistsError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if settlementKeysEqual(p.Key(), key) {
			return true, nil
		}
	}
	return false, nil
}

// CountPayments returns the number of payment records.
func (m *MockPaymentRepository) CountPayments() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payments)
}

// GetPayments returns all payment records for assertions.
func (m *MockPaymentRepository) GetPayments() []*domain.PaymentRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*domain.PaymentRecord, len(m.payments))
	copy(result, m.payments)
	return result
}

// ──────────────────────────────────────────────
// MOCK TRANSACTION REPOSITORY
// ──────────────────────────────────────────────

// MockTransactionRepository is a mock implementation of
// TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.Mutex
	transactions []*domain.GatewayTransaction

	// Counters
	InsertCallCount int32

	// Error injection
	InsertError error
}

// NewMockTransactionRepository creates a new mock transaction repository.
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Insert(ctx context.Context, tx *domain.GatewayTransaction) error {
	atomic.AddInt32(&m.InsertCallCount, 1)
	if m.InsertError != nil {
		return m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *tx
	m.transactions = append(m.transactions, &copy)
	return nil
}

// CountTransactions returns the number of diagnostic records.
func (m *MockTransactionRepository) CountTransactions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transactions)
}

// ──────────────────────────────────────────────
// MOCK DELIVERY REPOSITORY
// ──────────────────────────────────────────────

// MockDeliveryRepository is a mock implementation of DeliveryRepository.
type MockDeliveryRepository struct {
	mu         sync.Mutex
	deliveries []*domain.OrderDelivery

	// Counters
	InsertCallCount int32

	// Error injection
	InsertError error
}

// NewMockDeliveryRepository creates a new mock delivery repository.
func NewMockDeliveryRepository() *MockDeliveryRepository {
	return &MockDeliveryRepository{}
}

func (m *MockDeliveryRepository) Insert(ctx context.Context, delivery *domain.OrderDelivery) error {
	atomic.AddInt32(&m.InsertCallCount, 1)
	if m.InsertError != nil {
		return m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *delivery
	m.deliveries = append(m.deliveries, &copy)
	return nil
}

// CountDeliveries returns the number of recorded deliveries.
func (m *MockDeliveryRepository) CountDeliveries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.deliveries)
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]time.Time),
	}
}

func (m *MockLockStore) AcquireSettlementLock(ctx context.Context, reference string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if expiry, exists := m.locks[reference]; exists {
		if time.Now().Before(expiry) {
			return false, nil // Lock still held.
		}
	}

	m.locks[reference] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) ReleaseSettlementLock(ctx context.Context, reference string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	// The real client refuses cancelled contexts.
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, reference)
	return nil
}

// IsLocked checks whether a reference is locked (for test assertions).
func (m *MockLockStore) IsLocked(reference string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, exists := m.locks[reference]
	return exists && time.Now().Before(expiry)
}

// ──────────────────────────────────────────────
// MOCK PROCESSOR CLIENT
// ──────────────────────────────────────────────

// MockProcessor is a mock Paystack client for the reconciliation engine.
type MockProcessor struct {
	mu sync.Mutex

	// Result returned by VerifyTransaction.
	Result *paystack.VerificationResult

	// Error injection
	VerifyError error

	// Counters
	VerifyCallCount int32
	LogCallCount    int32
}

// NewMockProcessor creates a mock processor reporting a successful
// transaction with the given amount and currency.
func NewMockProcessor(amountMinor int64, currency string) *MockProcessor {
	return &MockProcessor{
		Result: &paystack.VerificationResult{
			Status:          true,
			AmountMinor:     amountMinor,
			Currency:        currency,
			GatewayResponse: "Successful",
			PaymentStatus:   domain.PaymentStatusSuccess,
		},
	}
}

func (m *MockProcessor) VerifyTransaction(ctx context.Context, reference string) (*paystack.VerificationResult, error) {
	atomic.AddInt32(&m.VerifyCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.VerifyError != nil {
		return nil, m.VerifyError
	}
	result := *m.Result
	return &result, nil
}

func (m *MockProcessor) LogTransactionSuccess(ctx context.Context, reference string) {
	atomic.AddInt32(&m.LogCallCount, 1)
}

// SetResult replaces the verification result.
func (m *MockProcessor) SetResult(result *paystack.VerificationResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Result = result
}

// ──────────────────────────────────────────────
// MOCK ORDER DELIVERER
// ──────────────────────────────────────────────

// MockDeliverer is a mock implementation of OrderDeliverer.
type MockDeliverer struct {
	mu         sync.Mutex
	deliveries []string // payment IDs delivered

	// Counters
	DeliverCallCount int32

	// Error injection
	DeliverError error

	// Force an unsuccessful delivery without an error.
	ForceDeliveryFailure bool

	// OnDeliver runs before each delivery when set.
	OnDeliver func()
}

// NewMockDeliverer creates a new mock order deliverer.
func NewMockDeliverer() *MockDeliverer {
	return &MockDeliverer{}
}

func (m *MockDeliverer) DeliverOrder(ctx context.Context, component, paymentArea string, itemID int64, paymentID string, userID int64) (bool, error) {
	atomic.AddInt32(&m.DeliverCallCount, 1)
	if m.OnDeliver != nil {
		m.OnDeliver()
	}
	if m.DeliverError != nil {
		return false, m.DeliverError
	}
	if m.ForceDeliveryFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deliveries = append(m.deliveries, paymentID)
	return true, nil
}

// CountDeliveries returns the number of successful deliveries.
func (m *MockDeliverer) CountDeliveries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.deliveries)
}

// ──────────────────────────────────────────────
// MOCK ADMIN NOTIFIER
// ──────────────────────────────────────────────

// MockAdminNotifier records admin notifications for assertions.
type MockAdminNotifier struct {
	mu       sync.Mutex
	Subjects []string
	Contexts []map[string]string
}

// NewMockAdminNotifier creates a new mock admin notifier.
func NewMockAdminNotifier() *MockAdminNotifier {
	return &MockAdminNotifier{}
}

func (m *MockAdminNotifier) NotifyAdmin(ctx context.Context, subject string, fields map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Subjects = append(m.Subjects, subject)
	m.Contexts = append(m.Contexts, fields)
}

// CountNotifications returns the number of notifications sent.
func (m *MockAdminNotifier) CountNotifications() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Subjects)
}

// LastSubject returns the most recent notification subject, or "".
func (m *MockAdminNotifier) LastSubject() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Subjects) == 0 {
		return ""
	}
	return m.Subjects[len(m.Subjects)-1]
}

package service

import "errors"

var (
	// ErrInvalidRequest is returned for malformed or unauthenticated input.
	// Always a fast-fail with a client-error status; never admin-alerted.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUserNotFound is returned when the user in the correlation token has
	// no account. A hard invariant violation: it implies forged input or a
	// severe host-state mismatch.
	ErrUserNotFound = errors.New("user account does not exist")

	// ErrUnknownPayable is returned when no pricing record exists for the
	// component, payment area and item named by the notification.
	ErrUnknownPayable = errors.New("unknown payable item")

	// ErrProcessorUnavailable is returned on network or timeout failure
	// talking to the processor. Propagated upward; never retried here.
	ErrProcessorUnavailable = errors.New("payment processor unavailable")

	// ErrVerificationFailed is returned when the processor does not confirm
	// the transaction.
	ErrVerificationFailed = errors.New("transaction verification failed")

	// ErrCurrencyMismatch is returned when the notification's currency does
	// not match the payable's. Fraud-flagged and admin-alerted.
	ErrCurrencyMismatch = errors.New("currency does not match payment settings")

	// ErrAmountMismatch is returned when the verified amount is below the
	// expected cost. Fraud-flagged and admin-alerted.
	ErrAmountMismatch = errors.New("amount paid is not enough")

	// ErrPaymentNotSuccessful is returned when the verified payment status
	// is anything but success.
	ErrPaymentNotSuccessful = errors.New("payment status not successful")

	// ErrSettlementInProgress is returned when another notification holds
	// the settlement lock for the reference and no ledger record exists yet.
	// Retryable: the holder may still fail, so the sender must redeliver.
	ErrSettlementInProgress = errors.New("settlement in progress for reference")

	// ErrUnsupportedCurrency is returned at checkout for a currency the
	// gateway does not accept.
	ErrUnsupportedCurrency = errors.New("currency not supported by gateway")
)

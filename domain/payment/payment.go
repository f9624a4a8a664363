package payment

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/infrastructure/logger"
)

// Failure variants. Handlers distinguish client errors (invalid amount,
// missing fields) from remote failures (order creation) and from the
// explicit verification-failed case.
var (
	ErrNotConfigured        = errors.New(constant.ErrPaymentNotConfigured)
	ErrInvalidAmount        = errors.New(constant.ErrInvalidAmount)
	ErrOrderCreation        = errors.New(constant.ErrOrderCreation)
	ErrMissingPaymentFields = errors.New(constant.ErrMissingFields)
	ErrVerificationFailed   = errors.New(constant.ErrVerifyFailed)
)

// Order is a gateway-issued order, transient to one checkout attempt.
// Amount is in minor units (paise).
type Order struct {
	ID       string
	Amount   int64
	Currency string
}

// Gateway abstracts the remote payment gateway.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// Service wraps order creation and payment verification.
// A nil gateway means credentials were not configured; every operation
// then fails with ErrNotConfigured.
type Service struct {
	gateway  Gateway
	priceINR float64
}

// NewService creates a payment service with the configured fixed price.
func NewService(gateway Gateway, priceINR float64) *Service {
	return &Service{
		gateway:  gateway,
		priceINR: priceINR,
	}
}

// Price returns the configured fixed price in rupees.
func (s *Service) Price() float64 {
	return s.priceINR
}

// Configured reports whether a gateway is available.
func (s *Service) Configured() bool {
	return s.gateway != nil
}

// CreateOrder validates the amount, converts it to paise and creates a
// gateway order under a fresh receipt id.
func (s *Service) CreateOrder(ctx context.Context, amountINR float64) (*Order, error) {
	if s.gateway == nil {
		return nil, ErrNotConfigured
	}

	if amountINR <= 0 || math.IsNaN(amountINR) || math.IsInf(amountINR, 0) {
		logger.CtxWarn(ctx, "Rejected order amount", logger.LoggerInfo{
			ContextFunction: constant.CtxCreateOrder,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeInvalidAmount,
				Message: constant.ErrInvalidAmount,
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataAmount: amountINR,
			},
		})
		return nil, ErrInvalidAmount
	}

	amountPaise := int64(math.Round(amountINR * 100))
	receipt := "rcpt_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:10]

	order, err := s.gateway.CreateOrder(ctx, amountPaise, "INR", receipt)
	if err != nil {
		logger.CtxError(ctx, "Order creation failed", logger.LoggerInfo{
			ContextFunction: constant.CtxCreateOrder,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeOrderCreation,
				Message: err.Error(),
				Type:    constant.ErrTypePayment,
			},
			Data: map[string]interface{}{
				constant.DataAmount:  amountPaise,
				constant.DataReceipt: receipt,
			},
		})
		return nil, ErrOrderCreation
	}

	logger.CtxInfo(ctx, "Order created", logger.LoggerInfo{
		ContextFunction: constant.CtxCreateOrder,
		Data: map[string]interface{}{
			constant.DataOrderID:  order.ID,
			constant.DataAmount:   order.Amount,
			constant.DataCurrency: order.Currency,
		},
	})

	return order, nil
}

// VerifyPayment checks the gateway signature for a completed checkout.
// All three fields must be present before the gateway is consulted.
// Replay protection is delegated to the gateway's signature scheme.
func (s *Service) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) error {
	if s.gateway == nil {
		return ErrNotConfigured
	}

	if orderID == "" || paymentID == "" || signature == "" {
		logger.CtxWarn(ctx, "Incomplete payment callback", logger.LoggerInfo{
			ContextFunction: constant.CtxVerifyPayment,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeMissingFields,
				Message: constant.ErrMissingFields,
				Type:    constant.ErrTypeValidation,
			},
		})
		return ErrMissingPaymentFields
	}

	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		logger.CtxWarn(ctx, "Payment signature verification failed", logger.LoggerInfo{
			ContextFunction: constant.CtxVerifyPayment,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeVerifyFailed,
				Message: constant.ErrVerifyFailed,
				Type:    constant.ErrTypePayment,
			},
			Data: map[string]interface{}{
				constant.DataOrderID:   orderID,
				constant.DataPaymentID: paymentID,
			},
		})
		return ErrVerificationFailed
	}

	logger.CtxInfo(ctx, "Payment verified", logger.LoggerInfo{
		ContextFunction: constant.CtxVerifyPayment,
		Data: map[string]interface{}{
			constant.DataOrderID:   orderID,
			constant.DataPaymentID: paymentID,
		},
	})

	return nil
}

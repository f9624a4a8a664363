package payment

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock gateway for testing
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	args := m.Called(ctx, amount, currency, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockGateway) VerifySignature(orderID, paymentID, signature string) bool {
	args := m.Called(orderID, paymentID, signature)
	return args.Bool(0)
}

func TestCreateOrder_InvalidAmount(t *testing.T) {
	gateway := new(MockGateway)
	service := NewService(gateway, 1)

	for _, amount := range []float64{0, -5} {
		order, err := service.CreateOrder(context.Background(), amount)

		assert.ErrorIs(t, err, ErrInvalidAmount)
		assert.Nil(t, order)
	}
	gateway.AssertNotCalled(t, "CreateOrder")
}

func TestCreateOrder_ConvertsToPaise(t *testing.T) {
	// Arrange
	gateway := new(MockGateway)
	service := NewService(gateway, 1)
	receiptPattern := regexp.MustCompile(`^rcpt_[0-9a-f]{10}$`)

	gateway.On("CreateOrder", mock.Anything, int64(1000), "INR", mock.MatchedBy(func(receipt string) bool {
		return receiptPattern.MatchString(receipt)
	})).Return(&Order{ID: "order_123", Amount: 1000, Currency: "INR"}, nil)

	// Act
	order, err := service.CreateOrder(context.Background(), 10)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "order_123", order.ID)
	assert.Equal(t, int64(1000), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	gateway.AssertExpectations(t)
}

func TestCreateOrder_RoundsFractionalPaise(t *testing.T) {
	gateway := new(MockGateway)
	service := NewService(gateway, 1)

	gateway.On("CreateOrder", mock.Anything, int64(1050), "INR", mock.Anything).
		Return(&Order{ID: "order_1", Amount: 1050, Currency: "INR"}, nil)

	_, err := service.CreateOrder(context.Background(), 10.495)

	assert.NoError(t, err)
	gateway.AssertExpectations(t)
}

func TestCreateOrder_RemoteFailure(t *testing.T) {
	gateway := new(MockGateway)
	service := NewService(gateway, 1)

	gateway.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	order, err := service.CreateOrder(context.Background(), 10)

	// Remote failures surface as the generic order-creation error
	assert.ErrorIs(t, err, ErrOrderCreation)
	assert.Nil(t, order)
}

func TestCreateOrder_NotConfigured(t *testing.T) {
	service := NewService(nil, 1)

	order, err := service.CreateOrder(context.Background(), 10)

	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Nil(t, order)
	assert.False(t, service.Configured())
}

func TestVerifyPayment_MissingFields(t *testing.T) {
	gateway := new(MockGateway)
	service := NewService(gateway, 1)

	tests := []struct {
		name                           string
		orderID, paymentID, signature string
	}{
		{"missing order id", "", "pay_1", "sig"},
		{"missing payment id", "order_1", "", "sig"},
		{"missing signature", "order_1", "pay_1", ""},
		{"all missing", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.VerifyPayment(context.Background(), tt.orderID, tt.paymentID, tt.signature)
			assert.ErrorIs(t, err, ErrMissingPaymentFields)
		})
	}

	// The gateway is never consulted when fields are missing
	gateway.AssertNotCalled(t, "VerifySignature")
}

func TestVerifyPayment_InvalidSignature(t *testing.T) {
	gateway := new(MockGateway)
	service := NewService(gateway, 1)

	gateway.On("VerifySignature", "order_1", "pay_1", "bad-sig").Return(false)

	err := service.VerifyPayment(context.Background(), "order_1", "pay_1", "bad-sig")

	assert.ErrorIs(t, err, ErrVerificationFailed)
	gateway.AssertExpectations(t)
}

func TestVerifyPayment_Success(t *testing.T) {
	gateway := new(MockGateway)
	service := NewService(gateway, 1)

	gateway.On("VerifySignature", "order_1", "pay_1", "good-sig").Return(true)

	err := service.VerifyPayment(context.Background(), "order_1", "pay_1", "good-sig")

	assert.NoError(t, err)
	gateway.AssertExpectations(t)
}

func TestVerifyPayment_NotConfigured(t *testing.T) {
	service := NewService(nil, 1)

	err := service.VerifyPayment(context.Background(), "order_1", "pay_1", "sig")

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPrice(t *testing.T) {
	service := NewService(nil, 49.5)
	assert.Equal(t, 49.5, service.Price())
}

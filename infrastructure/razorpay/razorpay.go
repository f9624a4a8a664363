package razorpay

import (
	"context"

	razorpaygo "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/prasetyowira/qrgen/domain/payment"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
)

// Client implements payment.Gateway on top of the Razorpay SDK.
type Client struct {
	api       *razorpaygo.Client
	keySecret string
}

// NewClient creates a gateway client with the given credentials.
func NewClient(keyID, keySecret string) *Client {
	return &Client{
		api:       razorpaygo.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

// CreateOrder calls the Razorpay Orders API. Amount is in paise.
// payment_capture=1 makes the gateway capture automatically on success.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*payment.Order, error) {
	data := map[string]interface{}{
		"amount":          amount,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"product": "QR generator access",
		},
	}

	body, err := c.api.Order.Create(data, nil)
	if err != nil {
		appLogger.CtxError(ctx, "Razorpay order creation failed", appLogger.LoggerInfo{
			ContextFunction: constant.CtxGateway,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeOrderCreation,
				Message: err.Error(),
				Type:    constant.ErrTypePayment,
			},
			Data: map[string]interface{}{
				constant.DataReceipt: receipt,
			},
		})
		return nil, err
	}

	order := &payment.Order{
		Amount:   amount,
		Currency: currency,
	}
	if id, ok := body["id"].(string); ok {
		order.ID = id
	}
	if a, ok := body["amount"].(float64); ok {
		order.Amount = int64(a)
	}
	if cur, ok := body["currency"].(string); ok {
		order.Currency = cur
	}

	return order, nil
}

// VerifySignature checks the checkout signature against the key secret.
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, c.keySecret)
}

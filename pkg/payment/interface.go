package payment

import (
	"context"
)

// Gateway is the injected payment-provider capability. Amounts cross this
// boundary in the minor currency unit (paise for INR).
type Gateway interface {
	CreateOrder(ctx context.Context, request *OrderRequest) (*Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*Payment, error)
	Refund(ctx context.Context, request *RefundRequest) (*Refund, error)

	// VerifyPaymentSignature checks the checkout callback signature,
	// HMAC-SHA256(orderID + "|" + paymentID, key secret), hex encoded.
	VerifyPaymentSignature(orderID, paymentID, signature string) bool

	// VerifyWebhookSignature checks the whole-payload signature against the
	// webhook secret, which is distinct from the key secret.
	VerifyWebhookSignature(payload []byte, signature string) bool

	KeyID() string
}

type OrderRequest struct {
	Amount   int64             `json:"amount"` // minor currency unit
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

type Order struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

type Payment struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Method   string `json:"method"`
}

type RefundRequest struct {
	PaymentID string            `json:"payment_id"`
	Amount    int64             `json:"amount"`
	Notes     map[string]string `json:"notes"`
}

type Refund struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// Webhook event types this service reacts to.
const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"
	EventRefundCreated   = "refund.created"
)

// WebhookEvent is a verified, decoded gateway webhook notification.
type WebhookEvent struct {
	Event   string
	Payment *Payment
	Refund  *Refund
}

package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/razorpay/razorpay-go"
)

type RazorpayGateway struct {
	client        *razorpay.Client
	keyID         string
	keySecret     string
	webhookSecret string
}

func NewRazorpayGateway(keyID, keySecret, webhookSecret string) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)

	return &RazorpayGateway{
		client:        client,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

func (r *RazorpayGateway) KeyID() string {
	return r.keyID
}

func (r *RazorpayGateway) CreateOrder(ctx context.Context, request *OrderRequest) (*Order, error) {
	notes := make(map[string]interface{}, len(request.Notes))
	for k, v := range request.Notes {
		notes[k] = v
	}

	orderData := map[string]interface{}{
		"amount":   request.Amount,
		"currency": request.Currency,
		"receipt":  request.Receipt,
		"notes":    notes,
	}

	order, err := r.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &Order{
		ID:        asString(order["id"]),
		Amount:    asInt64(order["amount"]),
		Currency:  asString(order["currency"]),
		Receipt:   asString(order["receipt"]),
		Status:    asString(order["status"]),
		CreatedAt: asInt64(order["created_at"]),
	}, nil
}

func (r *RazorpayGateway) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	payment, err := r.client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment: %w", err)
	}

	return &Payment{
		ID:       asString(payment["id"]),
		OrderID:  asString(payment["order_id"]),
		Amount:   asInt64(payment["amount"]),
		Currency: asString(payment["currency"]),
		Status:   asString(payment["status"]),
		Method:   asString(payment["method"]),
	}, nil
}

func (r *RazorpayGateway) Refund(ctx context.Context, request *RefundRequest) (*Refund, error) {
	notes := make(map[string]interface{}, len(request.Notes))
	for k, v := range request.Notes {
		notes[k] = v
	}

	refundData := map[string]interface{}{
		"speed": "normal",
		"notes": notes,
	}

	refund, err := r.client.Payment.Refund(request.PaymentID, int(request.Amount), refundData, map[string]string{})
	if err != nil {
		return nil, fmt.Errorf("failed to create refund: %w", err)
	}

	return &Refund{
		ID:        asString(refund["id"]),
		PaymentID: asString(refund["payment_id"]),
		Amount:    asInt64(refund["amount"]),
		Status:    asString(refund["status"]),
		CreatedAt: asInt64(refund["created_at"]),
	}, nil
}

func (r *RazorpayGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	expected := hmacSHA256(orderID+"|"+paymentID, r.keySecret)
	return hmac.Equal([]byte(signature), []byte(expected))
}

func (r *RazorpayGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	expected := hmacSHA256(string(payload), r.webhookSecret)
	return hmac.Equal([]byte(signature), []byte(expected))
}

// ParseWebhookEvent decodes a webhook payload into the entity relevant to its
// event type. The payload must already have passed signature verification.
func ParseWebhookEvent(payload []byte) (*WebhookEvent, error) {
	var body struct {
		Event   string `json:"event"`
		Payload struct {
			Payment struct {
				Entity struct {
					ID      string `json:"id"`
					OrderID string `json:"order_id"`
					Amount  int64  `json:"amount"`
					Status  string `json:"status"`
					Method  string `json:"method"`
				} `json:"entity"`
			} `json:"payment"`
			Refund struct {
				Entity struct {
					ID        string `json:"id"`
					PaymentID string `json:"payment_id"`
					Amount    int64  `json:"amount"`
					Status    string `json:"status"`
				} `json:"entity"`
			} `json:"refund"`
		} `json:"payload"`
	}

	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("failed to unmarshal webhook payload: %w", err)
	}
	if body.Event == "" {
		return nil, fmt.Errorf("webhook payload missing event")
	}

	event := &WebhookEvent{Event: body.Event}

	switch body.Event {
	case EventRefundCreated:
		entity := body.Payload.Refund.Entity
		event.Refund = &Refund{
			ID:        entity.ID,
			PaymentID: entity.PaymentID,
			Amount:    entity.Amount,
			Status:    entity.Status,
		}
	default:
		entity := body.Payload.Payment.Entity
		event.Payment = &Payment{
			ID:      entity.ID,
			OrderID: entity.OrderID,
			Amount:  entity.Amount,
			Status:  entity.Status,
			Method:  entity.Method,
		}
	}

	return event, nil
}

func hmacSHA256(payload, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

// The razorpay client decodes responses into map[string]interface{}, so
// numbers arrive as float64 or json.Number depending on the endpoint.
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	}
	return 0
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

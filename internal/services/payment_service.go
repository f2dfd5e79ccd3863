package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/repositories/interfaces"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"
	"github.com/sshrey15/car-rental-goa-backend/pkg/logger"
	"github.com/sshrey15/car-rental-goa-backend/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentOrder is what the client needs to open the gateway checkout.
type PaymentOrder struct {
	OrderID   string             `json:"order_id"`
	BookingID primitive.ObjectID `json:"booking_id"`
	Amount    int64              `json:"amount"` // paise
	Currency  string             `json:"currency"`
	KeyID     string             `json:"key_id"`
}

type PaymentService interface {
	// CreateOrder books the car and opens a gateway order for the final
	// price, or half of it when payPartial is set. Availability is checked
	// and the price computed fresh; the new booking starts pending/pending,
	// correlated to the gateway order, with its coupon not yet consumed.
	CreateOrder(ctx context.Context, userID, carID primitive.ObjectID, pickupDate, returnDate time.Time, couponCode string, payPartial bool) (*PaymentOrder, *models.Booking, error)

	// PayRemaining opens a gateway order for whatever balance is still owed.
	PayRemaining(ctx context.Context, bookingID, userID primitive.ObjectID) (*PaymentOrder, error)

	// VerifyPayment settles the checkout callback. The signature decides the
	// outcome; once the booking's payment status leaves pending the recorded
	// outcome never changes. The credited amount comes from the gateway's
	// payment record, never from the client.
	VerifyPayment(ctx context.Context, bookingID, userID primitive.ObjectID, orderID, paymentID, signature string) (*models.Booking, error)

	// HandleWebhook authenticates and applies a gateway webhook delivery.
	// Replayed deliveries are no-ops.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error

	// RefundBooking refunds the captured amount and cancels the booking.
	RefundBooking(ctx context.Context, bookingID, actorID primitive.ObjectID, role models.UserRole) (*models.Booking, error)

	GatewayKeyID() string
}

type paymentService struct {
	bookingRepo    interfaces.BookingRepository
	bookingService BookingService
	couponService  CouponService
	gateway        payment.Gateway
	logger         *logger.Logger
}

func NewPaymentService(bookingRepo interfaces.BookingRepository, bookingService BookingService, couponService CouponService, gateway payment.Gateway, logger *logger.Logger) PaymentService {
	return &paymentService{
		bookingRepo:    bookingRepo,
		bookingService: bookingService,
		couponService:  couponService,
		gateway:        gateway,
		logger:         logger,
	}
}

func (s *paymentService) GatewayKeyID() string {
	return s.gateway.KeyID()
}

func (s *paymentService) CreateOrder(ctx context.Context, userID, carID primitive.ObjectID, pickupDate, returnDate time.Time, couponCode string, payPartial bool) (*PaymentOrder, *models.Booking, error) {
	booking, err := s.bookingService.CreatePendingBooking(ctx, userID, carID, pickupDate, returnDate, couponCode)
	if err != nil {
		return nil, nil, err
	}

	amount := booking.Price
	if payPartial {
		amount = PartialAmount(booking.Price)
	}

	order, err := s.openOrder(ctx, booking, amount)
	if err != nil {
		return nil, nil, err
	}
	booking.RazorpayOrderID = order.OrderID

	return order, booking, nil
}

func (s *paymentService) PayRemaining(ctx context.Context, bookingID, userID primitive.ObjectID) (*PaymentOrder, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}

	remaining := booking.RemainingBalance()
	if remaining <= 0 {
		return nil, ErrAlreadyPaid
	}

	return s.openOrder(ctx, booking, remaining)
}

func (s *paymentService) openOrder(ctx context.Context, booking *models.Booking, amount float64) (*PaymentOrder, error) {
	order, err := s.gateway.CreateOrder(ctx, &payment.OrderRequest{
		Amount:   ToPaise(amount),
		Currency: utils.DefaultCurrency,
		Receipt:  fmt.Sprintf("booking_%s", booking.ID.Hex()),
		Notes: map[string]string{
			"booking_id": booking.ID.Hex(),
			"car_id":     booking.CarID.Hex(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}

	updates := map[string]interface{}{
		"razorpay_order_id": order.ID,
		"payment_status":    models.PaymentStatusPending,
	}
	if err := s.bookingRepo.Update(ctx, booking.ID, updates); err != nil {
		return nil, err
	}

	s.logger.LogPaymentEvent(booking.ID, "order_created", amount, utils.DefaultCurrency)

	return &PaymentOrder{
		OrderID:   order.ID,
		BookingID: booking.ID,
		Amount:    order.Amount,
		Currency:  order.Currency,
		KeyID:     s.gateway.KeyID(),
	}, nil
}

func (s *paymentService) VerifyPayment(ctx context.Context, bookingID, userID primitive.ObjectID, orderID, paymentID, signature string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}
	if booking.RazorpayOrderID == "" || booking.RazorpayOrderID != orderID {
		return nil, ErrInvalidSignature
	}

	if !s.gateway.VerifyPaymentSignature(orderID, paymentID, signature) {
		if _, err := s.bookingRepo.MarkFailedByOrderID(ctx, orderID); err != nil {
			s.logger.WithError(err).WithBookingID(bookingID).Error("failed to record payment failure")
		}
		s.logger.LogPaymentEvent(bookingID, "signature_mismatch", 0, utils.DefaultCurrency)
		return nil, ErrInvalidSignature
	}

	// The signature checked out, so the gateway holds the authoritative
	// payment record. If it cannot be fetched the booking is left untouched
	// and the caller retries the whole verification.
	captured, err := s.gateway.FetchPayment(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment: %w", err)
	}
	amount := FromPaise(captured.Amount)

	applied, err := s.bookingRepo.MarkPaid(ctx, bookingID, paymentID, signature, time.Now())
	if err != nil {
		return nil, err
	}
	if !applied {
		if booking.PaymentStatus == models.PaymentStatusPaid {
			// Replayed verification of an already settled payment.
			return booking, nil
		}
		return nil, ErrPaymentSettled
	}

	updates := map[string]interface{}{
		"amount_paid":    booking.AmountPaid + amount,
		"payment_method": captured.Method,
	}
	if err := s.bookingRepo.Update(ctx, bookingID, updates); err != nil {
		return nil, err
	}

	if err := s.couponService.RedeemForBooking(ctx, booking); err != nil {
		s.logger.WithError(err).WithBookingID(bookingID).Error("coupon redemption failed")
	}

	s.logger.LogPaymentEvent(bookingID, "payment_captured", amount, utils.DefaultCurrency)

	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if !s.gateway.VerifyWebhookSignature(payload, signature) {
		return ErrInvalidSignature
	}

	event, err := payment.ParseWebhookEvent(payload)
	if err != nil {
		return err
	}

	switch event.Event {
	case payment.EventPaymentCaptured:
		return s.applyCaptured(ctx, event.Payment)
	case payment.EventPaymentFailed:
		return s.applyFailed(ctx, event.Payment)
	case payment.EventRefundCreated:
		return s.applyRefunded(ctx, event.Refund)
	default:
		// Unhandled event types acknowledge cleanly so the gateway stops
		// redelivering them.
		s.logger.WithField("event", event.Event).Debug("ignoring webhook event")
		return nil
	}
}

func (s *paymentService) applyCaptured(ctx context.Context, p *payment.Payment) error {
	booking, err := s.bookingRepo.GetByOrderID(ctx, p.OrderID)
	if err != nil {
		// An order this service never opened is not an error worth a retry
		// storm from the gateway.
		s.logger.WithField("order_id", p.OrderID).Warn("webhook for unknown order")
		return nil
	}

	applied, err := s.bookingRepo.MarkPaidByOrderID(ctx, p.OrderID, p.ID, time.Now())
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}

	updates := map[string]interface{}{
		"amount_paid":    booking.AmountPaid + FromPaise(p.Amount),
		"payment_method": p.Method,
	}
	if err := s.bookingRepo.Update(ctx, booking.ID, updates); err != nil {
		return err
	}

	if err := s.couponService.RedeemForBooking(ctx, booking); err != nil {
		s.logger.WithError(err).WithBookingID(booking.ID).Error("coupon redemption failed")
	}

	s.logger.LogPaymentEvent(booking.ID, "webhook_payment_captured", FromPaise(p.Amount), utils.DefaultCurrency)
	return nil
}

func (s *paymentService) applyFailed(ctx context.Context, p *payment.Payment) error {
	applied, err := s.bookingRepo.MarkFailedByOrderID(ctx, p.OrderID)
	if err != nil {
		return err
	}
	if applied {
		if booking, err := s.bookingRepo.GetByOrderID(ctx, p.OrderID); err == nil {
			s.logger.LogPaymentEvent(booking.ID, "webhook_payment_failed", FromPaise(p.Amount), utils.DefaultCurrency)
		}
	}
	return nil
}

func (s *paymentService) applyRefunded(ctx context.Context, r *payment.Refund) error {
	applied, err := s.bookingRepo.MarkRefundedByPaymentID(ctx, r.PaymentID)
	if err != nil {
		return err
	}
	if applied {
		s.logger.WithField("payment_id", r.PaymentID).Info("refund recorded from webhook")
	}
	return nil
}

func (s *paymentService) RefundBooking(ctx context.Context, bookingID, actorID primitive.ObjectID, role models.UserRole) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if role != models.UserRoleAdmin && booking.OwnerID != actorID {
		return nil, ErrBookingNotFound
	}
	if booking.RazorpayPaymentID == "" {
		return nil, ErrNothingToRefund
	}
	if booking.PaymentStatus == models.PaymentStatusRefunded {
		return nil, ErrAlreadyRefunded
	}

	_, err = s.gateway.Refund(ctx, &payment.RefundRequest{
		PaymentID: booking.RazorpayPaymentID,
		Amount:    ToPaise(booking.AmountPaid),
		Notes: map[string]string{
			"booking_id": booking.ID.Hex(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to refund payment: %w", err)
	}

	updates := map[string]interface{}{
		"payment_status": models.PaymentStatusRefunded,
		"status":         models.BookingStatusCancelled,
	}
	if err := s.bookingRepo.Update(ctx, bookingID, updates); err != nil {
		return nil, err
	}

	s.logger.LogPaymentEvent(bookingID, "refund_issued", booking.AmountPaid, utils.DefaultCurrency)

	return s.bookingRepo.GetByID(ctx, bookingID)
}

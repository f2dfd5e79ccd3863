package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/pkg/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeGateway accepts signatures of the form "sig:<order>|<payment>" and
// webhook signatures equal to "valid".
type fakeGateway struct {
	orders         int
	refunds        []*payment.RefundRequest
	refundErr      error
	capturedAmount int64
	fetchErr       error
}

var _ payment.Gateway = (*fakeGateway)(nil)

func (g *fakeGateway) CreateOrder(ctx context.Context, request *payment.OrderRequest) (*payment.Order, error) {
	g.orders++
	return &payment.Order{
		ID:       fmt.Sprintf("order_%06d", g.orders),
		Amount:   request.Amount,
		Currency: request.Currency,
		Receipt:  request.Receipt,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) FetchPayment(ctx context.Context, paymentID string) (*payment.Payment, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return &payment.Payment{ID: paymentID, Amount: g.capturedAmount, Status: "captured", Method: "upi"}, nil
}

func (g *fakeGateway) Refund(ctx context.Context, request *payment.RefundRequest) (*payment.Refund, error) {
	if g.refundErr != nil {
		return nil, g.refundErr
	}
	g.refunds = append(g.refunds, request)
	return &payment.Refund{
		ID:        fmt.Sprintf("rfnd_%06d", len(g.refunds)),
		PaymentID: request.PaymentID,
		Amount:    request.Amount,
		Status:    "processed",
	}, nil
}

func (g *fakeGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return signature == "sig:"+orderID+"|"+paymentID
}

func (g *fakeGateway) VerifyWebhookSignature(payload []byte, signature string) bool {
	return signature == "valid"
}

func (g *fakeGateway) KeyID() string {
	return "rzp_test_key"
}

type paymentFixture struct {
	svc         PaymentService
	bookingRepo *fakeBookingRepo
	couponRepo  *fakeCouponRepo
	gateway     *fakeGateway
	car         *models.Car
	userID      primitive.ObjectID
}

func newPaymentFixture(pricePerDay float64, coupons ...*models.Coupon) *paymentFixture {
	bookingRepo := newFakeBookingRepo()
	couponRepo := newFakeCouponRepo(coupons...)
	gateway := &fakeGateway{}
	car := approvedCar(pricePerDay)
	couponService := NewCouponService(couponRepo, bookingRepo, testLogger())
	bookingService := NewBookingService(bookingRepo, newFakeCarRepo(car), couponService, testLogger())
	return &paymentFixture{
		svc:         NewPaymentService(bookingRepo, bookingService, couponService, gateway, testLogger()),
		bookingRepo: bookingRepo,
		couponRepo:  couponRepo,
		gateway:     gateway,
		car:         car,
		userID:      primitive.NewObjectID(),
	}
}

func (f *paymentFixture) seedBooking(t *testing.T, price float64) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		CarID:         f.car.ID,
		UserID:        f.userID,
		OwnerID:       f.car.OwnerID,
		PickupDate:    day(20),
		ReturnDate:    day(23),
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		OriginalPrice: price,
		Price:         price,
	}
	require.NoError(t, f.bookingRepo.Create(context.Background(), booking))
	return booking
}

func capturedPayload(orderID, paymentID string, amount int64) []byte {
	return []byte(fmt.Sprintf(`{
		"event": "payment.captured",
		"payload": {"payment": {"entity": {
			"id": %q, "order_id": %q, "amount": %d, "status": "captured", "method": "upi"
		}}}
	}`, paymentID, orderID, amount))
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(1000)

	order, booking, err := f.svc.CreateOrder(ctx, f.userID, f.car.ID, day(0), day(3), "", false)
	require.NoError(t, err)

	assert.Equal(t, int64(300000), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "rzp_test_key", order.KeyID)
	assert.Equal(t, booking.ID, order.BookingID)

	// The booking is created by the order itself, pending on both machines
	// and correlated to the gateway order.
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)
	assert.Equal(t, 3000.0, booking.Price)

	stored, err := f.bookingRepo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderID, stored.RazorpayOrderID)
}

func TestCreateOrderPartial(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(917)

	order, booking, err := f.svc.CreateOrder(ctx, f.userID, f.car.ID, day(0), day(3), "", true)
	require.NoError(t, err)

	// Half of 2751 rounds up to 1376 rupees.
	assert.Equal(t, 2751.0, booking.Price)
	assert.Equal(t, int64(137600), order.Amount)
}

func TestCreateOrderChecksAvailability(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(1000)

	_, _, err := f.svc.CreateOrder(ctx, f.userID, f.car.ID, day(0), day(3), "", false)
	require.NoError(t, err)

	// The same dates cannot be ordered twice.
	_, _, err = f.svc.CreateOrder(ctx, primitive.NewObjectID(), f.car.ID, day(1), day(2), "", false)
	require.ErrorIs(t, err, ErrCarUnavailable)

	_, _, err = f.svc.CreateOrder(ctx, f.userID, primitive.NewObjectID(), day(5), day(6), "", false)
	require.ErrorIs(t, err, ErrCarNotFound)
}

func TestCreateOrderAppliesCouponWithoutConsuming(t *testing.T) {
	ctx := context.Background()
	coupon := activeCoupon("GATE10")
	f := newPaymentFixture(1000, coupon)

	_, booking, err := f.svc.CreateOrder(ctx, f.userID, f.car.ID, day(0), day(3), "GATE10", false)
	require.NoError(t, err)

	assert.Equal(t, 2700.0, booking.Price)
	require.NotNil(t, booking.AppliedCoupon)

	// A use is only consumed once the payment is verified.
	stored, err := f.couponRepo.GetByID(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.UsedCount)
}

func TestPayRemaining(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(1000)
	booking := f.seedBooking(t, 3000)

	require.NoError(t, f.bookingRepo.Update(ctx, booking.ID, map[string]interface{}{
		"amount_paid": 1500.0,
	}))

	order, err := f.svc.PayRemaining(ctx, booking.ID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, int64(150000), order.Amount)

	require.NoError(t, f.bookingRepo.Update(ctx, booking.ID, map[string]interface{}{
		"amount_paid": 3000.0,
	}))
	_, err = f.svc.PayRemaining(ctx, booking.ID, f.userID)
	require.ErrorIs(t, err, ErrAlreadyPaid)

	_, err = f.svc.PayRemaining(ctx, booking.ID, primitive.NewObjectID())
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestVerifyPayment(t *testing.T) {
	ctx := context.Background()
	coupon := activeCoupon("PAY10")
	f := newPaymentFixture(1000, coupon)

	order, booking, err := f.svc.CreateOrder(ctx, f.userID, f.car.ID, day(0), day(3), "PAY10", false)
	require.NoError(t, err)
	f.gateway.capturedAmount = 270000

	signature := "sig:" + order.OrderID + "|pay_123"
	verified, err := f.svc.VerifyPayment(ctx, booking.ID, f.userID, order.OrderID, "pay_123", signature)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, verified.PaymentStatus)
	assert.Equal(t, "pay_123", verified.RazorpayPaymentID)
	assert.Equal(t, 2700.0, verified.AmountPaid)
	assert.Equal(t, "upi", verified.PaymentMethod)
	require.NotNil(t, verified.PaidAt)

	// Coupon consumed exactly once.
	stored, err := f.couponRepo.GetByID(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.UsedCount)

	// Replay returns the settled booking without changing anything.
	again, err := f.svc.VerifyPayment(ctx, booking.ID, f.userID, order.OrderID, "pay_123", signature)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, again.PaymentStatus)

	stored, err = f.couponRepo.GetByID(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.UsedCount)

	final, err := f.bookingRepo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, 2700.0, final.AmountPaid)
}

func TestVerifyPaymentFetchFailureLeavesBookingUntouched(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(1000)

	order, booking, err := f.svc.CreateOrder(ctx, f.userID, f.car.ID, day(0), day(3), "", false)
	require.NoError(t, err)
	f.gateway.fetchErr = fmt.Errorf("gateway unreachable")

	signature := "sig:" + order.OrderID + "|pay_9"
	_, err = f.svc.VerifyPayment(ctx, booking.ID, f.userID, order.OrderID, "pay_9", signature)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidSignature)

	// Nothing was credited or transitioned, so the caller can retry.
	stored, err := f.bookingRepo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
	assert.Equal(t, 0.0, stored.AmountPaid)

	f.gateway.fetchErr = nil
	f.gateway.capturedAmount = 300000
	verified, err := f.svc.VerifyPayment(ctx, booking.ID, f.userID, order.OrderID, "pay_9", signature)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, verified.AmountPaid)
}

func TestVerifyPaymentBadSignature(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(1000)

	order, booking, err := f.svc.CreateOrder(ctx, f.userID, f.car.ID, day(0), day(3), "", false)
	require.NoError(t, err)

	_, err = f.svc.VerifyPayment(ctx, booking.ID, f.userID, order.OrderID, "pay_123", "forged")
	require.ErrorIs(t, err, ErrInvalidSignature)

	stored, err := f.bookingRepo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, stored.PaymentStatus)

	// A later attempt with a valid signature cannot rewrite the recorded
	// failure.
	signature := "sig:" + order.OrderID + "|pay_123"
	_, err = f.svc.VerifyPayment(ctx, booking.ID, f.userID, order.OrderID, "pay_123", signature)
	require.ErrorIs(t, err, ErrPaymentSettled)
}

func TestVerifyPaymentWrongOrder(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(1000)

	_, booking, err := f.svc.CreateOrder(ctx, f.userID, f.car.ID, day(0), day(3), "", false)
	require.NoError(t, err)

	_, err = f.svc.VerifyPayment(ctx, booking.ID, f.userID, "order_other", "pay_123", "sig:order_other|pay_123")
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestWebhookCaptured(t *testing.T) {
	ctx := context.Background()
	coupon := activeCoupon("HOOK10")
	f := newPaymentFixture(1000, coupon)

	order, booking, err := f.svc.CreateOrder(ctx, f.userID, f.car.ID, day(0), day(3), "HOOK10", false)
	require.NoError(t, err)

	payload := capturedPayload(order.OrderID, "pay_777", 270000)
	require.NoError(t, f.svc.HandleWebhook(ctx, payload, "valid"))

	stored, err := f.bookingRepo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
	assert.Equal(t, "pay_777", stored.RazorpayPaymentID)
	assert.Equal(t, 2700.0, stored.AmountPaid)
	assert.Equal(t, "upi", stored.PaymentMethod)

	// Redelivery is a no-op.
	require.NoError(t, f.svc.HandleWebhook(ctx, payload, "valid"))

	stored, err = f.bookingRepo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, 2700.0, stored.AmountPaid)

	couponStored, err := f.couponRepo.GetByID(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), couponStored.UsedCount)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(1000)

	err := f.svc.HandleWebhook(ctx, capturedPayload("order_x", "pay_x", 1000), "forged")
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestWebhookUnknownOrderIgnored(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(1000)

	err := f.svc.HandleWebhook(ctx, capturedPayload("order_unknown", "pay_x", 1000), "valid")
	require.NoError(t, err)
}

func TestWebhookFailedAndRefund(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(1000)

	order, booking, err := f.svc.CreateOrder(ctx, f.userID, f.car.ID, day(0), day(3), "", false)
	require.NoError(t, err)

	failed := []byte(fmt.Sprintf(`{
		"event": "payment.failed",
		"payload": {"payment": {"entity": {
			"id": "pay_f", "order_id": %q, "amount": 300000, "status": "failed"
		}}}
	}`, order.OrderID))
	require.NoError(t, f.svc.HandleWebhook(ctx, failed, "valid"))

	stored, err := f.bookingRepo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, stored.PaymentStatus)

	// Refund notification for a booking paid through a retried checkout.
	require.NoError(t, f.bookingRepo.Update(ctx, booking.ID, map[string]interface{}{
		"payment_status": models.PaymentStatusPaid,
	}))
	f.bookingRepo.bookings[booking.ID].RazorpayPaymentID = "pay_r"

	refund := []byte(`{
		"event": "refund.created",
		"payload": {"refund": {"entity": {
			"id": "rfnd_1", "payment_id": "pay_r", "amount": 300000, "status": "processed"
		}}}
	}`)
	require.NoError(t, f.svc.HandleWebhook(ctx, refund, "valid"))

	stored, err = f.bookingRepo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, stored.PaymentStatus)
}

func TestRefundBooking(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(1000)
	booking := f.seedBooking(t, 2000)

	f.bookingRepo.bookings[booking.ID].RazorpayPaymentID = "pay_refund"
	f.bookingRepo.bookings[booking.ID].PaymentStatus = models.PaymentStatusPaid
	f.bookingRepo.bookings[booking.ID].AmountPaid = 2000

	refunded, err := f.svc.RefundBooking(ctx, booking.ID, booking.OwnerID, models.UserRoleOwner)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusRefunded, refunded.PaymentStatus)
	assert.Equal(t, models.BookingStatusCancelled, refunded.Status)
	require.Len(t, f.gateway.refunds, 1)
	assert.Equal(t, "pay_refund", f.gateway.refunds[0].PaymentID)
	assert.Equal(t, int64(200000), f.gateway.refunds[0].Amount)

	// A second refund attempt is rejected.
	_, err = f.svc.RefundBooking(ctx, booking.ID, booking.OwnerID, models.UserRoleOwner)
	require.ErrorIs(t, err, ErrAlreadyRefunded)
}

func TestRefundBookingGuards(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(1000)
	booking := f.seedBooking(t, 2000)

	// Nothing captured yet.
	_, err := f.svc.RefundBooking(ctx, booking.ID, booking.OwnerID, models.UserRoleOwner)
	require.ErrorIs(t, err, ErrNothingToRefund)

	// A stranger cannot refund someone else's booking.
	f.bookingRepo.bookings[booking.ID].RazorpayPaymentID = "pay_x"
	_, err = f.svc.RefundBooking(ctx, booking.ID, primitive.NewObjectID(), models.UserRoleOwner)
	require.ErrorIs(t, err, ErrBookingNotFound)

	// Admins can.
	_, err = f.svc.RefundBooking(ctx, booking.ID, primitive.NewObjectID(), models.UserRoleAdmin)
	require.NoError(t, err)
}

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"
	"github.com/sshrey15/car-rental-goa-backend/internal/repositories/interfaces"
	"github.com/sshrey15/car-rental-goa-backend/internal/utils"
	"github.com/sshrey15/car-rental-goa-backend/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	_ interfaces.BookingRepository = (*fakeBookingRepo)(nil)
	_ interfaces.CouponRepository  = (*fakeCouponRepo)(nil)
	_ interfaces.CarRepository     = (*fakeCarRepo)(nil)
	_ interfaces.UserRepository    = (*fakeUserRepo)(nil)
)

func testLogger() *logger.Logger {
	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Format: "text",
		Output: "stdout",
	})
	if err != nil {
		panic(err)
	}
	return log
}

// In-memory booking repository with the same conditional-update semantics
// as the mongo implementation.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[primitive.ObjectID]*models.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()
	clone := *booking
	r.bookings[booking.ID] = &clone
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking not found")
	}
	clone := *b
	return &clone, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking not found")
	}
	applyBookingUpdates(b, updates)
	return nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) CountOverlapping(ctx context.Context, carID primitive.ObjectID, pickupDate, returnDate time.Time, excludeID *primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, b := range r.bookings {
		if b.CarID != carID || !b.Status.Blocks() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if !b.PickupDate.After(returnDate) && !b.ReturnDate.Before(pickupDate) {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.filter(func(b *models.Booking) bool { return b.UserID == userID })
}

func (r *fakeBookingRepo) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.filter(func(b *models.Booking) bool { return b.OwnerID == ownerID })
}

func (r *fakeBookingRepo) GetByCarID(ctx context.Context, carID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.filter(func(b *models.Booking) bool { return b.CarID == carID })
}

func (r *fakeBookingRepo) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.filter(func(b *models.Booking) bool { return true })
}

func (r *fakeBookingRepo) filter(keep func(*models.Booking) bool) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Booking
	for _, b := range r.bookings {
		if keep(b) {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.RazorpayOrderID == orderID {
			clone := *b
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("booking not found")
}

func (r *fakeBookingRepo) GetByPaymentID(ctx context.Context, paymentID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.RazorpayPaymentID == paymentID {
			clone := *b
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("booking not found")
}

func (r *fakeBookingRepo) MarkPaid(ctx context.Context, id primitive.ObjectID, paymentID, signature string, paidAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.PaymentStatus != models.PaymentStatusPending {
		return false, nil
	}
	b.PaymentStatus = models.PaymentStatusPaid
	b.RazorpayPaymentID = paymentID
	b.RazorpaySignature = signature
	b.PaidAt = &paidAt
	return true, nil
}

func (r *fakeBookingRepo) MarkPaidByOrderID(ctx context.Context, orderID, paymentID string, paidAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.RazorpayOrderID == orderID && b.PaymentStatus != models.PaymentStatusPaid {
			b.PaymentStatus = models.PaymentStatusPaid
			b.RazorpayPaymentID = paymentID
			b.PaidAt = &paidAt
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) MarkFailedByOrderID(ctx context.Context, orderID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.RazorpayOrderID == orderID && b.PaymentStatus == models.PaymentStatusPending {
			b.PaymentStatus = models.PaymentStatusFailed
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) MarkRefundedByPaymentID(ctx context.Context, paymentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.RazorpayPaymentID == paymentID && b.PaymentStatus != models.PaymentStatusRefunded {
			b.PaymentStatus = models.PaymentStatusRefunded
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) MarkCouponRedeemed(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.CouponRedeemed {
		return false, nil
	}
	b.CouponRedeemed = true
	return true, nil
}

func (r *fakeBookingRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.bookings)), nil
}

func (r *fakeBookingRepo) CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	_, n, _ := r.filter(func(b *models.Booking) bool { return b.Status == status })
	return n, nil
}

func (r *fakeBookingRepo) TotalRevenue(ctx context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	for _, b := range r.bookings {
		if b.PaymentStatus == models.PaymentStatusPaid || b.PaymentStatus == models.PaymentStatusRefunded {
			total += b.AmountPaid
		}
	}
	return total, nil
}

func applyBookingUpdates(b *models.Booking, updates map[string]interface{}) {
	for key, value := range updates {
		switch key {
		case "status":
			b.Status = value.(models.BookingStatus)
		case "payment_status":
			b.PaymentStatus = value.(models.PaymentStatus)
		case "amount_paid":
			b.AmountPaid = value.(float64)
		case "payment_method":
			b.PaymentMethod = value.(string)
		case "razorpay_order_id":
			b.RazorpayOrderID = value.(string)
		case "confirmed_at":
			t := value.(time.Time)
			b.ConfirmedAt = &t
		}
	}
	b.UpdatedAt = time.Now()
}

// In-memory coupon repository with the capped-increment behavior.
type fakeCouponRepo struct {
	mu      sync.Mutex
	coupons map[primitive.ObjectID]*models.Coupon
}

func newFakeCouponRepo(coupons ...*models.Coupon) *fakeCouponRepo {
	r := &fakeCouponRepo{coupons: make(map[primitive.ObjectID]*models.Coupon)}
	for _, c := range coupons {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		r.coupons[c.ID] = c
	}
	return r
}

func (r *fakeCouponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	coupon.ID = primitive.NewObjectID()
	clone := *coupon
	r.coupons[coupon.ID] = &clone
	return nil
}

func (r *fakeCouponRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coupons[id]
	if !ok {
		return nil, fmt.Errorf("coupon not found")
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCouponRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeCouponRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.coupons, id)
	return nil
}

func (r *fakeCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if c.Code == code {
			clone := *c
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("coupon not found")
}

func (r *fakeCouponRepo) IncrementUsage(ctx context.Context, id primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.coupons[id]
	if !ok {
		return false, nil
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return false, nil
	}
	c.UsedCount++
	return true, nil
}

func (r *fakeCouponRepo) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Coupon, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Coupon
	for _, c := range r.coupons {
		clone := *c
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCouponRepo) GetActive(ctx context.Context) ([]*models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var out []*models.Coupon
	for _, c := range r.coupons {
		if c.ValidAt(now) {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeCouponRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.coupons)), nil
}

// In-memory car repository.
type fakeCarRepo struct {
	mu   sync.Mutex
	cars map[primitive.ObjectID]*models.Car
}

func newFakeCarRepo(cars ...*models.Car) *fakeCarRepo {
	r := &fakeCarRepo{cars: make(map[primitive.ObjectID]*models.Car)}
	for _, c := range cars {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		r.cars[c.ID] = c
	}
	return r
}

func (r *fakeCarRepo) Create(ctx context.Context, car *models.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	car.ID = primitive.NewObjectID()
	clone := *car
	r.cars[car.ID] = &clone
	return nil
}

func (r *fakeCarRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cars[id]
	if !ok {
		return nil, fmt.Errorf("car not found")
	}
	clone := *c
	return &clone, nil
}

func (r *fakeCarRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}

func (r *fakeCarRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cars, id)
	return nil
}

func (r *fakeCarRepo) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Car
	for _, c := range r.cars {
		clone := *c
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCarRepo) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Car
	for _, c := range r.cars {
		if c.OwnerID == ownerID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCarRepo) GetAvailableByLocation(ctx context.Context, location string) ([]*models.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Car
	for _, c := range r.cars {
		if c.Location == location && c.IsAvailable && c.IsApproved {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeCarRepo) GetAvailable(ctx context.Context) ([]*models.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Car
	for _, c := range r.cars {
		if c.IsAvailable && c.IsApproved {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeCarRepo) SetApproval(ctx context.Context, id primitive.ObjectID, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.cars[id]; ok {
		c.IsApproved = approved
	}
	return nil
}

func (r *fakeCarRepo) GetPendingApproval(ctx context.Context, params *utils.PaginationParams) ([]*models.Car, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Car
	for _, c := range r.cars {
		if !c.IsApproved {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCarRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.cars)), nil
}

// In-memory user repository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Phone == user.Phone {
			return fmt.Errorf(utils.ErrUserExists)
		}
	}
	user.ID = primitive.NewObjectID()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf(utils.ErrUserNotFound)
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf(utils.ErrUserNotFound)
	}
	if name, ok := updates["name"].(string); ok {
		u.Name = name
	}
	if email, ok := updates["email"].(string); ok {
		u.Email = email
	}
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Phone == phone {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf(utils.ErrUserNotFound)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf(utils.ErrUserNotFound)
}

func (r *fakeUserRepo) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) GetByRole(ctx context.Context, role models.UserRole, params *utils.PaginationParams) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		if u.Role == role {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

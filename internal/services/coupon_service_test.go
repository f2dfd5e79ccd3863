package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sshrey15/car-rental-goa-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func activeCoupon(code string) *models.Coupon {
	return &models.Coupon{
		ID:            primitive.NewObjectID(),
		Code:          code,
		DiscountType:  models.DiscountTypePercentage,
		DiscountValue: 10,
		ValidFrom:     time.Now().Add(-24 * time.Hour),
		ValidUntil:    time.Now().Add(24 * time.Hour),
		IsActive:      true,
	}
}

func TestCouponResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit code wins over attached coupon", func(t *testing.T) {
		explicit := activeCoupon("SUMMER10")
		attached := activeCoupon("ATTACHED5")
		repo := newFakeCouponRepo(explicit, attached)
		svc := NewCouponService(repo, newFakeBookingRepo(), testLogger())

		got, err := svc.Resolve(ctx, "summer10", &attached.ID, 2000)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, explicit.ID, got.ID)
	})

	t.Run("unknown code falls back to attached coupon", func(t *testing.T) {
		attached := activeCoupon("ATTACHED5")
		repo := newFakeCouponRepo(attached)
		svc := NewCouponService(repo, newFakeBookingRepo(), testLogger())

		got, err := svc.Resolve(ctx, "NOSUCHCODE", &attached.ID, 2000)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, attached.ID, got.ID)
	})

	t.Run("expired code falls back silently", func(t *testing.T) {
		expired := activeCoupon("OLD10")
		expired.ValidUntil = time.Now().Add(-time.Hour)
		repo := newFakeCouponRepo(expired)
		svc := NewCouponService(repo, newFakeBookingRepo(), testLogger())

		got, err := svc.Resolve(ctx, "OLD10", nil, 2000)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("exhausted code errors", func(t *testing.T) {
		limit := int64(5)
		exhausted := activeCoupon("FULL10")
		exhausted.UsageLimit = &limit
		exhausted.UsedCount = 5
		repo := newFakeCouponRepo(exhausted)
		svc := NewCouponService(repo, newFakeBookingRepo(), testLogger())

		_, err := svc.Resolve(ctx, "FULL10", nil, 2000)
		require.ErrorIs(t, err, ErrCouponLimitReached)
	})

	t.Run("below minimum spend resolves to no coupon", func(t *testing.T) {
		coupon := activeCoupon("BIG10")
		coupon.MinBookingAmount = 5000
		repo := newFakeCouponRepo(coupon)
		svc := NewCouponService(repo, newFakeBookingRepo(), testLogger())

		got, err := svc.Resolve(ctx, "BIG10", nil, 2000)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("too small explicit code still overrides attached coupon", func(t *testing.T) {
		explicit := activeCoupon("BIG10")
		explicit.MinBookingAmount = 5000
		attached := activeCoupon("ATTACHED5")
		repo := newFakeCouponRepo(explicit, attached)
		svc := NewCouponService(repo, newFakeBookingRepo(), testLogger())

		got, err := svc.Resolve(ctx, "BIG10", &attached.ID, 2000)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("unusable attached coupon is ignored", func(t *testing.T) {
		attached := activeCoupon("ATTACHED5")
		attached.IsActive = false
		repo := newFakeCouponRepo(attached)
		svc := NewCouponService(repo, newFakeBookingRepo(), testLogger())

		got, err := svc.Resolve(ctx, "", &attached.ID, 2000)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("no code and no attachment yields no coupon", func(t *testing.T) {
		svc := NewCouponService(newFakeCouponRepo(), newFakeBookingRepo(), testLogger())

		got, err := svc.Resolve(ctx, "", nil, 2000)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRedeemForBookingAtMostOnce(t *testing.T) {
	ctx := context.Background()

	limit := int64(10)
	coupon := activeCoupon("ONCE10")
	coupon.UsageLimit = &limit
	couponRepo := newFakeCouponRepo(coupon)
	bookingRepo := newFakeBookingRepo()
	svc := NewCouponService(couponRepo, bookingRepo, testLogger())

	booking := &models.Booking{
		CarID:         primitive.NewObjectID(),
		UserID:        primitive.NewObjectID(),
		OwnerID:       primitive.NewObjectID(),
		AppliedCoupon: &coupon.ID,
	}
	require.NoError(t, bookingRepo.Create(ctx, booking))

	// Simulate verify and a replayed webhook both redeeming.
	require.NoError(t, svc.RedeemForBooking(ctx, booking))
	require.NoError(t, svc.RedeemForBooking(ctx, booking))
	require.NoError(t, svc.RedeemForBooking(ctx, booking))

	stored, err := couponRepo.GetByID(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.UsedCount)
}

func TestRedeemForBookingWithoutCoupon(t *testing.T) {
	ctx := context.Background()
	svc := NewCouponService(newFakeCouponRepo(), newFakeBookingRepo(), testLogger())

	booking := &models.Booking{ID: primitive.NewObjectID()}
	require.NoError(t, svc.RedeemForBooking(ctx, booking))
}

func TestIncrementUsageStopsAtLimit(t *testing.T) {
	ctx := context.Background()
	limit := int64(2)
	coupon := activeCoupon("CAP2")
	coupon.UsageLimit = &limit
	repo := newFakeCouponRepo(coupon)

	first, err := repo.IncrementUsage(ctx, coupon.ID)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := repo.IncrementUsage(ctx, coupon.ID)
	require.NoError(t, err)
	assert.True(t, second)

	third, err := repo.IncrementUsage(ctx, coupon.ID)
	require.NoError(t, err)
	assert.False(t, third)
}

func TestIncrementUsageConcurrentNeverExceedsLimit(t *testing.T) {
	ctx := context.Background()
	limit := int64(5)
	coupon := activeCoupon("CAP5")
	coupon.UsageLimit = &limit
	repo := newFakeCouponRepo(coupon)

	const attempts = 32
	var wg sync.WaitGroup
	granted := make(chan bool, attempts)
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.IncrementUsage(ctx, coupon.ID)
			if err != nil {
				errs <- err
				return
			}
			granted <- ok
		}()
	}
	wg.Wait()
	close(granted)
	close(errs)

	for err := range errs {
		t.Fatalf("increment failed: %v", err)
	}

	var successes int
	for ok := range granted {
		if ok {
			successes++
		}
	}
	assert.Equal(t, int(limit), successes)

	stored, err := repo.GetByID(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, limit, stored.UsedCount)
}

func TestRedeemForBookingConcurrentCapHolds(t *testing.T) {
	ctx := context.Background()
	limit := int64(3)
	coupon := activeCoupon("CAP3")
	coupon.UsageLimit = &limit
	couponRepo := newFakeCouponRepo(coupon)
	bookingRepo := newFakeBookingRepo()
	svc := NewCouponService(couponRepo, bookingRepo, testLogger())

	const bookings = 8
	var wg sync.WaitGroup
	errs := make(chan error, bookings)

	for i := 0; i < bookings; i++ {
		booking := &models.Booking{
			CarID:         primitive.NewObjectID(),
			UserID:        primitive.NewObjectID(),
			OwnerID:       primitive.NewObjectID(),
			AppliedCoupon: &coupon.ID,
		}
		require.NoError(t, bookingRepo.Create(ctx, booking))

		wg.Add(1)
		go func(b *models.Booking) {
			defer wg.Done()
			if err := svc.RedeemForBooking(ctx, b); err != nil {
				errs <- err
			}
		}(booking)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("redeem failed: %v", err)
	}

	stored, err := couponRepo.GetByID(ctx, coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, limit, stored.UsedCount)
}

package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryaseta/resto-order-api/models"
)

func TestPromisedReadyTime(t *testing.T) {
	createdAt := clockAt(12, 0)
	order := &models.Order{CreatedAt: createdAt}
	sched := &models.RestaurantSchedule{DefaultReadyMinutes: 20}

	assert.Equal(t, clockAt(12, 20), PromisedReadyTime(order, sched))
}

// Seluruh tabel transisi: pending -> ready|canceled, ready -> complete|canceled,
// complete dan canceled terminal.
func TestTransitionTable(t *testing.T) {
	db := newTestDB(t)
	seedAllDaySchedule(t, db) // default ready 0: promosi ke ready selalu due
	user := seedUser(t, db, "table@example.com", "customer")
	lc := NewOrderLifecycle(db)

	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{models.OrderStatusPending, models.OrderStatusReady, true},
		{models.OrderStatusPending, models.OrderStatusComplete, false},
		{models.OrderStatusPending, models.OrderStatusCanceled, true},
		{models.OrderStatusReady, models.OrderStatusReady, false},
		{models.OrderStatusReady, models.OrderStatusComplete, true},
		{models.OrderStatusReady, models.OrderStatusCanceled, true},
		{models.OrderStatusComplete, models.OrderStatusReady, false},
		{models.OrderStatusComplete, models.OrderStatusComplete, false},
		{models.OrderStatusComplete, models.OrderStatusCanceled, false},
		{models.OrderStatusCanceled, models.OrderStatusReady, false},
		{models.OrderStatusCanceled, models.OrderStatusComplete, false},
		{models.OrderStatusCanceled, models.OrderStatusCanceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			order := seedOrder(t, db, user.ID, tt.from, time.Now().Add(-time.Hour), "10.00")

			updated, err := lc.Apply(order.ID, tt.to, "changed my mind")
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, updated.Status)
				return
			}

			var invalid *InvalidTransitionError
			require.True(t, errors.As(err, &invalid), "expected InvalidTransitionError, got %v", err)
			assert.Equal(t, tt.from, invalid.From)
			assert.Equal(t, tt.to, invalid.To)

			// Status tersimpan tidak berubah
			var stored models.Order
			require.NoError(t, db.First(&stored, order.ID).Error)
			assert.Equal(t, tt.from, stored.Status)
		})
	}
}

func TestApplyUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	seedAllDaySchedule(t, db)
	user := seedUser(t, db, "unknown@example.com", "customer")
	lc := NewOrderLifecycle(db)

	order := seedOrder(t, db, user.ID, models.OrderStatusPending, time.Now(), "10.00")

	_, err := lc.Apply(order.ID, "delivered", "")
	var invalid *InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, models.OrderStatusPending, invalid.From)
	assert.Equal(t, "delivered", invalid.To)
}

func TestApplyOrderNotFound(t *testing.T) {
	db := newTestDB(t)
	seedAllDaySchedule(t, db)
	lc := NewOrderLifecycle(db)

	_, err := lc.MarkReady(9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

// Promosi ke ready sebelum promised ready time lewat harus ditolak tanpa
// mengubah state; order baru 15 menit dari 20 menit janjinya.
func TestMarkReadyBeforePromisedTime(t *testing.T) {
	db := newTestDB(t)
	seedSchedule(t, db, "00:00", "23:59", 20, true)
	user := seedUser(t, db, "early@example.com", "customer")
	lc := NewOrderLifecycle(db)

	order := seedOrder(t, db, user.ID, models.OrderStatusPending, time.Now().Add(-15*time.Minute), "10.00")

	_, err := lc.MarkReady(order.ID)
	var invalid *InvalidTransitionError
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Contains(t, invalid.Reason, "not due")

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
}

func TestMarkReadyAfterPromisedTime(t *testing.T) {
	db := newTestDB(t)
	seedSchedule(t, db, "00:00", "23:59", 20, true)
	user := seedUser(t, db, "due@example.com", "customer")
	lc := NewOrderLifecycle(db)

	order := seedOrder(t, db, user.ID, models.OrderStatusPending, time.Now().Add(-30*time.Minute), "10.00")

	updated, err := lc.MarkReady(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReady, updated.Status)
	assert.Nil(t, updated.CompletedAt)
	assert.Nil(t, updated.CanceledAt)
}

// Promised ready time dihitung dari jadwal yang berlaku SAAT transisi diminta:
// memperpendek default ready membuat order yang tadinya belum due jadi due.
func TestMarkReadyFollowsCurrentSchedule(t *testing.T) {
	db := newTestDB(t)
	seedSchedule(t, db, "00:00", "23:59", 30, true)
	user := seedUser(t, db, "resched@example.com", "customer")
	lc := NewOrderLifecycle(db)

	order := seedOrder(t, db, user.ID, models.OrderStatusPending, time.Now().Add(-15*time.Minute), "10.00")

	_, err := lc.MarkReady(order.ID)
	var invalid *InvalidTransitionError
	require.True(t, errors.As(err, &invalid))

	svc := NewScheduleService(db)
	sched, err := svc.Load()
	require.NoError(t, err)
	sched.DefaultReadyMinutes = 10
	require.NoError(t, svc.Save(sched))

	updated, err := lc.MarkReady(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReady, updated.Status)
}

func TestCompleteSetsTimestamps(t *testing.T) {
	db := newTestDB(t)
	seedAllDaySchedule(t, db)
	user := seedUser(t, db, "complete@example.com", "customer")
	lc := NewOrderLifecycle(db)

	createdAt := time.Now().Add(-time.Hour)
	order := seedOrder(t, db, user.ID, models.OrderStatusReady, createdAt, "10.00")

	updated, err := lc.Complete(order.ID)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusComplete, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	assert.False(t, updated.CompletedAt.Before(createdAt))
	assert.Nil(t, updated.CanceledAt)
	assert.Nil(t, updated.CancelReason)
}

func TestCancelRequiresReason(t *testing.T) {
	db := newTestDB(t)
	seedAllDaySchedule(t, db)
	user := seedUser(t, db, "noreason@example.com", "customer")
	lc := NewOrderLifecycle(db)

	order := seedOrder(t, db, user.ID, models.OrderStatusPending, time.Now(), "10.00")

	_, err := lc.Cancel(order.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyCancelReason)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	assert.Nil(t, stored.CanceledAt)
}

func TestCancelSetsReasonAndTimestamp(t *testing.T) {
	db := newTestDB(t)
	seedAllDaySchedule(t, db)
	user := seedUser(t, db, "cancel@example.com", "customer")
	lc := NewOrderLifecycle(db)

	createdAt := time.Now().Add(-10 * time.Minute)
	order := seedOrder(t, db, user.ID, models.OrderStatusPending, createdAt, "10.00")

	updated, err := lc.Cancel(order.ID, "  kitchen ran out of rice  ")
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusCanceled, updated.Status)
	require.NotNil(t, updated.CanceledAt)
	assert.False(t, updated.CanceledAt.Before(createdAt))
	require.NotNil(t, updated.CancelReason)
	assert.Equal(t, "kitchen ran out of rice", *updated.CancelReason)
	assert.Nil(t, updated.CompletedAt)
}

// Dua permintaan complete pada order yang sama: yang kedua harus kalah dan
// melihat status terkini, bukan menimpa hasil yang pertama.
func TestCompleteTwiceSecondLoses(t *testing.T) {
	db := newTestDB(t)
	seedAllDaySchedule(t, db)
	user := seedUser(t, db, "double@example.com", "customer")
	lc := NewOrderLifecycle(db)

	order := seedOrder(t, db, user.ID, models.OrderStatusReady, time.Now().Add(-time.Hour), "10.00")

	first, err := lc.Complete(order.ID)
	require.NoError(t, err)
	firstCompletedAt := *first.CompletedAt

	_, err = lc.Complete(order.ID)
	var invalid *InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, models.OrderStatusComplete, invalid.From)

	// completed_at pemenang pertama tidak tertimpa
	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	require.NotNil(t, stored.CompletedAt)
	assert.WithinDuration(t, firstCompletedAt, *stored.CompletedAt, time.Second)
}

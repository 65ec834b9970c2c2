package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aryaseta/resto-order-api/models"
)

// newTestDB -> SQLite in-memory per test. Nama database diambil dari nama
// test supaya antar test tidak saling lihat data.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.RestaurantSchedule{},
	)
	require.NoError(t, err)
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertDecimal membandingkan nilai, bukan representasi string (SQLite bisa
// menghilangkan trailing zero saat round-trip).
func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	require.True(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func seedSchedule(t *testing.T, db *gorm.DB, open, closeAt string, defaultReady int, accepting bool) *models.RestaurantSchedule {
	t.Helper()
	now := time.Now()
	sched := models.RestaurantSchedule{
		ID:                  1,
		IsAcceptingOrders:   accepting,
		MinReadyMinutes:     0,
		MaxReadyMinutes:     120,
		DefaultReadyMinutes: defaultReady,
		OpenTime:            open,
		CloseTime:           closeAt,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	require.NoError(t, db.Create(&sched).Error)
	return &sched
}

// seedAllDaySchedule -> jendela admission selebar mungkin, supaya test yang
// memakai time.Now() tidak tergantung jam berjalannya.
func seedAllDaySchedule(t *testing.T, db *gorm.DB) *models.RestaurantSchedule {
	t.Helper()
	return seedSchedule(t, db, "00:00", "23:59", 0, true)
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()
	user := models.User{
		Name:     "Test User",
		Email:    email,
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// seedCatalog -> satu kategori + tiga menu: dua tersedia, satu tidak.
func seedCatalog(t *testing.T, db *gorm.DB) (nasiGoreng, esTeh, sateAyam models.MenuItem) {
	t.Helper()
	category := models.MenuCategory{Name: "Main", SortOrder: 1}
	require.NoError(t, db.Create(&category).Error)

	nasiGoreng = models.MenuItem{CategoryID: category.ID, Name: "Nasi Goreng", Price: dec("12.50"), IsAvailable: true}
	esTeh = models.MenuItem{CategoryID: category.ID, Name: "Es Teh", Price: dec("3.25"), IsAvailable: true}
	sateAyam = models.MenuItem{CategoryID: category.ID, Name: "Sate Ayam", Price: dec("9.75"), IsAvailable: false}
	require.NoError(t, db.Create(&nasiGoreng).Error)
	require.NoError(t, db.Create(&esTeh).Error)
	require.NoError(t, db.Create(&sateAyam).Error)
	return nasiGoreng, esTeh, sateAyam
}

// seedOrder menulis order langsung ke tabel, melewati admission gate.
// Dipakai test lifecycle dan statistik yang butuh status/created_at tertentu.
func seedOrder(t *testing.T, db *gorm.DB, userID uint, status string, createdAt time.Time, total string) models.Order {
	t.Helper()
	order := models.Order{
		UserID:    userID,
		Status:    status,
		Subtotal:  dec(total),
		TaxRate:   dec("0.07"),
		Total:     dec(total),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	switch status {
	case models.OrderStatusComplete:
		done := createdAt.Add(25 * time.Minute)
		order.CompletedAt = &done
	case models.OrderStatusCanceled:
		canceled := createdAt.Add(5 * time.Minute)
		reason := "seeded cancel"
		order.CanceledAt = &canceled
		order.CancelReason = &reason
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func clockAt(hour, minute int) time.Time {
	return time.Date(2026, time.March, 14, hour, minute, 0, 0, time.Local)
}

package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/aryaseta/resto-order-api/models"
)

// OrderLifecycle menjalankan state machine status order lewat fungsi transisi
// bernama. Setiap transisi membaca status tersimpan saat ini, memvalidasinya,
// lalu menulis dengan syarat status yang diamati belum berubah (optimistic
// check-then-write): UPDATE-nya difilter "status = <yang terbaca>" dan
// RowsAffected harus 1. Dua request paralel pada order yang sama tidak
// mungkin dua-duanya sukses.
type OrderLifecycle struct {
	DB *gorm.DB
}

func NewOrderLifecycle(db *gorm.DB) *OrderLifecycle {
	return &OrderLifecycle{DB: db}
}

// Tabel transisi. Complete dan canceled terminal.
var allowedTransitions = map[string][]string{
	models.OrderStatusPending:  {models.OrderStatusReady, models.OrderStatusCanceled},
	models.OrderStatusReady:    {models.OrderStatusComplete, models.OrderStatusCanceled},
	models.OrderStatusComplete: {},
	models.OrderStatusCanceled: {},
}

func transitionAllowed(from, to string) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// PromisedReadyTime = created_at + default_ready_minutes dari jadwal yang
// berlaku SAAT transisi diminta, bukan nilai beku saat order dibuat. Tidak
// pernah disimpan.
func PromisedReadyTime(order *models.Order, sched *models.RestaurantSchedule) time.Time {
	return order.CreatedAt.Add(time.Duration(sched.DefaultReadyMinutes) * time.Minute)
}

// Apply mengarahkan request perubahan status ke fungsi transisi bernama.
// Entry point generik ini tidak menebak niat dari field yang berubah;
// semua efek samping milik masing-masing transisi.
func (l *OrderLifecycle) Apply(orderID uint, newStatus string, cancelReason string) (*models.Order, error) {
	switch newStatus {
	case models.OrderStatusReady:
		return l.MarkReady(orderID)
	case models.OrderStatusComplete:
		return l.Complete(orderID)
	case models.OrderStatusCanceled:
		return l.Cancel(orderID, cancelReason)
	default:
		order, err := l.find(l.DB, orderID)
		if err != nil {
			return nil, err
		}
		return nil, &InvalidTransitionError{From: order.Status, To: newStatus, Reason: "unknown status"}
	}
}

// MarkReady mempromosikan order pending menjadi ready. Hanya boleh setelah
// promised ready time terlewati; sebelum itu request ditolak tanpa mengubah
// state (pemanggil eksternal diharapkan mencoba lagi nanti).
func (l *OrderLifecycle) MarkReady(orderID uint) (*models.Order, error) {
	return l.transition(orderID, models.OrderStatusReady, func(tx *gorm.DB, order *models.Order) (map[string]interface{}, error) {
		sched, err := NewScheduleService(tx).Load()
		if err != nil {
			return nil, err
		}
		promised := PromisedReadyTime(order, sched)
		if time.Now().Before(promised) {
			return nil, &InvalidTransitionError{
				From:   order.Status,
				To:     models.OrderStatusReady,
				Reason: fmt.Sprintf("order is not due until %s", promised.Format("15:04")),
			}
		}
		return map[string]interface{}{
			"status": models.OrderStatusReady,
		}, nil
	})
}

// Complete menandai order ready sebagai selesai dan mencatat completed_at.
// canceled_at dan cancel_reason dikosongkan di penulisan yang sama supaya
// kedua timestamp hasil tidak pernah terisi bersamaan.
func (l *OrderLifecycle) Complete(orderID uint) (*models.Order, error) {
	return l.transition(orderID, models.OrderStatusComplete, func(tx *gorm.DB, order *models.Order) (map[string]interface{}, error) {
		return map[string]interface{}{
			"status":        models.OrderStatusComplete,
			"completed_at":  time.Now(),
			"canceled_at":   nil,
			"cancel_reason": nil,
		}, nil
	})
}

// Cancel membatalkan order pending/ready. Alasan wajib diisi.
func (l *OrderLifecycle) Cancel(orderID uint, reason string) (*models.Order, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyCancelReason
	}
	return l.transition(orderID, models.OrderStatusCanceled, func(tx *gorm.DB, order *models.Order) (map[string]interface{}, error) {
		return map[string]interface{}{
			"status":        models.OrderStatusCanceled,
			"canceled_at":   time.Now(),
			"cancel_reason": reason,
			"completed_at":  nil,
		}, nil
	})
}

// transition adalah kerangka bersama: baca status, cek tabel transisi, minta
// field yang ditulis ke fungsi transisi, lalu tulis terkondisi status yang
// terbaca tadi.
func (l *OrderLifecycle) transition(
	orderID uint,
	target string,
	prepare func(tx *gorm.DB, order *models.Order) (map[string]interface{}, error),
) (*models.Order, error) {
	var updated models.Order
	err := l.DB.Transaction(func(tx *gorm.DB) error {
		order, err := l.find(tx, orderID)
		if err != nil {
			return err
		}
		if !transitionAllowed(order.Status, target) {
			return &InvalidTransitionError{From: order.Status, To: target}
		}

		updates, err := prepare(tx, order)
		if err != nil {
			return err
		}
		updates["updated_at"] = time.Now()

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Status berubah di antara baca dan tulis (request paralel
			// menang duluan). Laporkan state terbaru apa adanya.
			current, findErr := l.find(tx, orderID)
			if findErr != nil {
				return findErr
			}
			return &InvalidTransitionError{From: current.Status, To: target}
		}

		return tx.Preload("OrderItems").First(&updated, orderID).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (l *OrderLifecycle) find(tx *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

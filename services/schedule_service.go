package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/aryaseta/resto-order-api/models"
)

// Jadwal hidup sebagai satu record dengan ID tetap. Default dipakai saat
// pertama kali diakses dan belum pernah dikonfigurasi operator.
const (
	scheduleRowID = 1

	defaultMinReadyMinutes     = 10
	defaultMaxReadyMinutes     = 75
	defaultDefaultReadyMinutes = 20
	defaultOpenTime            = "11:30"
	defaultCloseTime           = "21:30"
)

// ScheduleService memiliki record jadwal tunggal: load/save plus nilai
// turunannya (last call, buka/tutup). Nilai turunan selalu dihitung segar
// dari field tersimpan, tidak pernah di-cache, supaya langsung mencerminkan
// penulisan terakhir.
type ScheduleService struct {
	DB *gorm.DB
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{DB: db}
}

// Load mengembalikan jadwal tunggal, membuatnya dengan default kalau belum ada.
func (s *ScheduleService) Load() (*models.RestaurantSchedule, error) {
	sched, err := s.Peek()
	if err != nil {
		return nil, err
	}
	if sched != nil {
		return sched, nil
	}

	now := time.Now()
	created := models.RestaurantSchedule{
		ID:                  scheduleRowID,
		IsAcceptingOrders:   true,
		MinReadyMinutes:     defaultMinReadyMinutes,
		MaxReadyMinutes:     defaultMaxReadyMinutes,
		DefaultReadyMinutes: defaultDefaultReadyMinutes,
		OpenTime:            defaultOpenTime,
		CloseTime:           defaultCloseTime,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.DB.Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// Peek seperti Load tapi tidak membuat default; nil berarti jadwal belum
// pernah dikonfigurasi. Dipakai endpoint status publik.
func (s *ScheduleService) Peek() (*models.RestaurantSchedule, error) {
	var sched models.RestaurantSchedule
	err := s.DB.First(&sched, scheduleRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sched, nil
}

// Save memvalidasi seluruh kandidat lalu menulisnya sebagai record tunggal.
// Validasi selalu terhadap record utuh, tidak pernah per field, supaya tidak
// ada state transien yang setengah ter-apply.
func (s *ScheduleService) Save(candidate *models.RestaurantSchedule) error {
	if err := ValidateSchedule(candidate); err != nil {
		return err
	}
	candidate.ID = scheduleRowID
	candidate.UpdatedAt = time.Now()
	return s.DB.Save(candidate).Error
}

// ValidateSchedule menjalankan semua aturan jadwal. Pelanggaran ditolak
// dengan menyebut aturan yang dilanggar.
func ValidateSchedule(sched *models.RestaurantSchedule) error {
	open, err := ClockMinutes(sched.OpenTime)
	if err != nil {
		return &ScheduleValidationError{Field: "open_time", Reason: err.Error()}
	}
	closeAt, err := ClockMinutes(sched.CloseTime)
	if err != nil {
		return &ScheduleValidationError{Field: "close_time", Reason: err.Error()}
	}

	if sched.MinReadyMinutes < 0 || sched.MaxReadyMinutes < 0 || sched.DefaultReadyMinutes < 0 {
		return &ScheduleValidationError{Field: "ready_minutes", Reason: "must be non-negative"}
	}
	if open >= closeAt {
		return &ScheduleValidationError{Field: "open_time", Reason: "must be earlier than close_time (no overnight hours)"}
	}
	if sched.MinReadyMinutes > sched.MaxReadyMinutes {
		return &ScheduleValidationError{Field: "min_ready_minutes", Reason: "must be less than or equal to max_ready_minutes"}
	}
	if sched.DefaultReadyMinutes < sched.MinReadyMinutes || sched.DefaultReadyMinutes > sched.MaxReadyMinutes {
		return &ScheduleValidationError{
			Field:  "default_ready_minutes",
			Reason: fmt.Sprintf("must be in the %d-%d range", sched.MinReadyMinutes, sched.MaxReadyMinutes),
		}
	}

	lastCall := closeAt - sched.DefaultReadyMinutes
	if lastCall < open {
		return &ScheduleValidationError{
			Field: "default_ready_minutes",
			Reason: fmt.Sprintf("last call %s would fall before open time %s; reduce default_ready_minutes or extend close_time",
				MinutesClock(lastCall), sched.OpenTime),
		}
	}
	return nil
}

// ClockMinutes mengubah "HH:MM" menjadi menit sejak tengah malam.
func ClockMinutes(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesClock kebalikan dari ClockMinutes.
func MinutesClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func timeOfDayMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// LastCallMinutes = close_time - default_ready_minutes, dihitung segar
// setiap dipanggil.
func LastCallMinutes(sched *models.RestaurantSchedule) (int, error) {
	closeAt, err := ClockMinutes(sched.CloseTime)
	if err != nil {
		return 0, err
	}
	return closeAt - sched.DefaultReadyMinutes, nil
}

// LastCallClock mengembalikan last call dalam format "HH:MM".
func LastCallClock(sched *models.RestaurantSchedule) (string, error) {
	lastCall, err := LastCallMinutes(sched)
	if err != nil {
		return "", err
	}
	return MinutesClock(lastCall), nil
}

// IsOpenAt: open_time <= t < close_time.
func IsOpenAt(sched *models.RestaurantSchedule, t time.Time) (bool, error) {
	open, err := ClockMinutes(sched.OpenTime)
	if err != nil {
		return false, err
	}
	closeAt, err := ClockMinutes(sched.CloseTime)
	if err != nil {
		return false, err
	}
	now := timeOfDayMinutes(t)
	return open <= now && now < closeAt, nil
}

// IsAcceptingOrdersAt: kill switch manual masih menyala dan
// open_time <= t <= last_call.
func IsAcceptingOrdersAt(sched *models.RestaurantSchedule, t time.Time) (bool, error) {
	if !sched.IsAcceptingOrders {
		return false, nil
	}
	open, err := ClockMinutes(sched.OpenTime)
	if err != nil {
		return false, err
	}
	lastCall, err := LastCallMinutes(sched)
	if err != nil {
		return false, err
	}
	now := timeOfDayMinutes(t)
	return open <= now && now <= lastCall, nil
}

package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// AdmissionGate memutuskan apakah order baru boleh diterima pada waktu
// tertentu, berdasarkan jadwal yang berlaku saat itu. Cek ini hanya berjalan
// saat create; order yang sudah ada tidak dievaluasi ulang.
type AdmissionGate struct {
	Schedules *ScheduleService
}

func NewAdmissionGate(db *gorm.DB) *AdmissionGate {
	return &AdmissionGate{Schedules: NewScheduleService(db)}
}

// Admit menilai waktu pembuatan order kandidat. Mengembalikan nil kalau
// diterima, *AdmissionDeniedError kalau ditolak.
func (g *AdmissionGate) Admit(creationTime time.Time) error {
	sched, err := g.Schedules.Load()
	if err != nil {
		return err
	}

	// Penutupan manual oleh operator (libur, darurat, dsb.)
	if !sched.IsAcceptingOrders {
		return &AdmissionDeniedError{Reason: "restaurant is not accepting orders"}
	}

	open, err := ClockMinutes(sched.OpenTime)
	if err != nil {
		return err
	}
	closeAt, err := ClockMinutes(sched.CloseTime)
	if err != nil {
		return err
	}
	lastCall := closeAt - sched.DefaultReadyMinutes
	now := timeOfDayMinutes(creationTime)

	// Tiga cek ini sengaja redundan di tepi: pada jadwal salah konfigurasi
	// last call bisa melewati close_time, jadi cek >= close tetap dijaga.
	if now < open || now > lastCall || now >= closeAt {
		return &AdmissionDeniedError{
			Reason: fmt.Sprintf("orders are only accepted between %s and %s", sched.OpenTime, MinutesClock(lastCall)),
		}
	}
	return nil
}

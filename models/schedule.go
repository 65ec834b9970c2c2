package models

import "time"

// RestaurantSchedule adalah satu-satunya record jam operasional restoran.
// Selalu tersimpan dengan ID=1; dibaca dan ditulis lewat services.ScheduleService,
// tidak pernah dihapus.
//
// Asumsi: restoran tidak pernah buka melewati tengah malam, jadi open_time
// dan close_time selalu berada di hari kalender yang sama.
type RestaurantSchedule struct {
	ID                uint `gorm:"primaryKey" json:"id"`
	IsAcceptingOrders bool `gorm:"not null" json:"is_accepting_orders"`

	MinReadyMinutes     int `gorm:"not null;check:chk_sched_min_ready,min_ready_minutes >= 0" json:"min_ready_minutes"`
	MaxReadyMinutes     int `gorm:"not null;check:chk_sched_max_ready,max_ready_minutes >= 0" json:"max_ready_minutes"`
	DefaultReadyMinutes int `gorm:"not null;check:chk_sched_default_ready,default_ready_minutes >= 0" json:"default_ready_minutes"`

	// Format "HH:MM", divalidasi setiap kali ditulis.
	OpenTime  string `gorm:"type:varchar(5);not null" json:"open_time"`
	CloseTime string `gorm:"type:varchar(5);not null" json:"close_time"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// last_call tidak pernah disimpan; lihat services.LastCallClock.

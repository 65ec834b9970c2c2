package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryaseta/resto-order-api/models"
	"github.com/aryaseta/resto-order-api/services"
	"github.com/aryaseta/resto-order-api/utils"
)

type ScheduleController struct {
	Schedules *services.ScheduleService
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{Schedules: services.NewScheduleService(db)}
}

// scheduleView merender record jadwal plus nilai turunannya.
type scheduleView struct {
	*models.RestaurantSchedule
	LastCall             string `json:"last_call"`
	IsOpenNow            bool   `json:"is_open_now"`
	IsAcceptingOrdersNow bool   `json:"is_accepting_orders_now"`
}

func renderSchedule(sched *models.RestaurantSchedule) scheduleView {
	now := time.Now()
	lastCall, _ := services.LastCallClock(sched)
	isOpen, _ := services.IsOpenAt(sched, now)
	accepting, _ := services.IsAcceptingOrdersAt(sched, now)
	return scheduleView{
		RestaurantSchedule:   sched,
		LastCall:             lastCall,
		IsOpenNow:            isOpen,
		IsAcceptingOrdersNow: accepting,
	}
}

// GetOperatingStatus -> endpoint publik tanpa auth. Kalau jadwal belum pernah
// dikonfigurasi, jawab aman "belum buka" tanpa membuat record default.
func (sc *ScheduleController) GetOperatingStatus(c *gin.Context) {
	sched, err := sc.Schedules.Peek()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if sched == nil {
		utils.RespondJSON(c, http.StatusOK, "The restaurant is still being built", gin.H{
			"is_open":             false,
			"is_accepting_orders": false,
			"last_call":           nil,
		})
		return
	}

	now := time.Now()
	isOpen, err := services.IsOpenAt(sched, now)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	accepting, err := services.IsAcceptingOrdersAt(sched, now)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	lastCall, err := services.LastCallClock(sched)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Operating status", gin.H{
		"is_open":             isOpen,
		"is_accepting_orders": accepting,
		"last_call":           lastCall,
	})
}

// GetSchedule -> staff/admin melihat jadwal berikut nilai turunannya
func (sc *ScheduleController) GetSchedule(c *gin.Context) {
	sched, err := sc.Schedules.Load()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant schedule", renderSchedule(sched))
}

// UpdateSchedule -> admin menulis jadwal. Selalu full record (bukan patch
// parsial) dan divalidasi utuh sebelum disimpan; kalau ada aturan yang
// dilanggar, jadwal lama tetap berlaku.
func (sc *ScheduleController) UpdateSchedule(c *gin.Context) {
	var body struct {
		IsAcceptingOrders   *bool  `json:"is_accepting_orders" binding:"required"`
		MinReadyMinutes     *int   `json:"min_ready_minutes" binding:"required"`
		MaxReadyMinutes     *int   `json:"max_ready_minutes" binding:"required"`
		DefaultReadyMinutes *int   `json:"default_ready_minutes" binding:"required"`
		OpenTime            string `json:"open_time" binding:"required"`
		CloseTime           string `json:"close_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Pertahankan created_at record lama kalau sudah ada
	existing, err := sc.Schedules.Peek()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	candidate := models.RestaurantSchedule{
		IsAcceptingOrders:   *body.IsAcceptingOrders,
		MinReadyMinutes:     *body.MinReadyMinutes,
		MaxReadyMinutes:     *body.MaxReadyMinutes,
		DefaultReadyMinutes: *body.DefaultReadyMinutes,
		OpenTime:            body.OpenTime,
		CloseTime:           body.CloseTime,
	}
	if existing != nil {
		candidate.CreatedAt = existing.CreatedAt
	} else {
		candidate.CreatedAt = time.Now()
	}

	if err := sc.Schedules.Save(&candidate); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Schedule updated: open %s-%s, default ready %d min, accepting=%v",
		candidate.OpenTime, candidate.CloseTime, candidate.DefaultReadyMinutes, candidate.IsAcceptingOrders)
	utils.RespondJSON(c, http.StatusOK, "Schedule updated", renderSchedule(&candidate))
}

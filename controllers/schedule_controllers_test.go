package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryaseta/resto-order-api/models"
)

// Sebelum jadwal pernah dikonfigurasi, endpoint publik menjawab aman
// "belum buka" dan tidak membuat record apa pun.
func TestOperatingStatusUnconfigured(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(db)

	w := doRequest(t, r, http.MethodGet, "/status", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := parseBody(t, w)
	assert.Equal(t, "The restaurant is still being built", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["is_open"])
	assert.Equal(t, false, data["is_accepting_orders"])
	assert.Nil(t, data["last_call"])

	var count int64
	require.NoError(t, db.Model(&models.RestaurantSchedule{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestOperatingStatusConfigured(t *testing.T) {
	db := newTestDB(t)
	seedAllDaySchedule(t, db)
	r := newTestRouter(db)

	w := doRequest(t, r, http.MethodGet, "/status", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := dataObject(t, w)
	assert.Equal(t, true, data["is_open"])
	assert.Equal(t, true, data["is_accepting_orders"])
	assert.Equal(t, "23:59", data["last_call"])
}

func TestOperatingStatusKillSwitch(t *testing.T) {
	db := newTestDB(t)
	seedSchedule(t, db, "00:00", "23:59", 0, false)
	r := newTestRouter(db)

	w := doRequest(t, r, http.MethodGet, "/status", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := dataObject(t, w)
	assert.Equal(t, true, data["is_open"]) // tetap buka, hanya tidak terima order
	assert.Equal(t, false, data["is_accepting_orders"])
}

// GET pertama oleh staff memunculkan jadwal default.
func TestGetScheduleCreatesDefaults(t *testing.T) {
	db := newTestDB(t)
	_, staffToken := seedUser(t, db, "staff.sched@example.com", "staff")
	r := newTestRouter(db)

	w := doRequest(t, r, http.MethodGet, "/admin/schedule", staffToken, nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataObject(t, w)
	assert.Equal(t, "11:30", data["open_time"])
	assert.Equal(t, "21:30", data["close_time"])
	assert.Equal(t, float64(20), data["default_ready_minutes"])
	assert.Equal(t, "21:10", data["last_call"])
}

func TestUpdateScheduleValid(t *testing.T) {
	db := newTestDB(t)
	_, adminToken := seedUser(t, db, "admin.sched@example.com", "admin")
	r := newTestRouter(db)

	payload := map[string]interface{}{
		"is_accepting_orders":   true,
		"min_ready_minutes":     15,
		"max_ready_minutes":     60,
		"default_ready_minutes": 30,
		"open_time":             "10:00",
		"close_time":            "22:00",
	}
	w := doRequest(t, r, http.MethodPut, "/admin/schedule", adminToken, payload)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataObject(t, w)
	assert.Equal(t, "10:00", data["open_time"])
	assert.Equal(t, "21:30", data["last_call"]) // 22:00 - 30 menit

	var stored models.RestaurantSchedule
	require.NoError(t, db.First(&stored, 1).Error)
	assert.Equal(t, "22:00", stored.CloseTime)
	assert.Equal(t, 30, stored.DefaultReadyMinutes)
}

// Penulisan tidak valid ditolak utuh; jadwal lama tetap berlaku.
func TestUpdateScheduleInvalidKeepsOld(t *testing.T) {
	db := newTestDB(t)
	seedSchedule(t, db, "11:30", "21:30", 20, true)
	_, adminToken := seedUser(t, db, "admin.keep@example.com", "admin")
	r := newTestRouter(db)

	payload := map[string]interface{}{
		"is_accepting_orders":   true,
		"min_ready_minutes":     50,
		"max_ready_minutes":     40, // min > max
		"default_ready_minutes": 45,
		"open_time":             "10:00",
		"close_time":            "22:00",
	}
	w := doRequest(t, r, http.MethodPut, "/admin/schedule", adminToken, payload)

	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	var stored models.RestaurantSchedule
	require.NoError(t, db.First(&stored, 1).Error)
	assert.Equal(t, "11:30", stored.OpenTime)
	assert.Equal(t, "21:30", stored.CloseTime)
	assert.Equal(t, 20, stored.DefaultReadyMinutes)
}

func TestUpdateScheduleRejectsPartialBody(t *testing.T) {
	db := newTestDB(t)
	_, adminToken := seedUser(t, db, "admin.partial@example.com", "admin")
	r := newTestRouter(db)

	// Hanya sebagian field: bukan patch parsial, harus 400
	w := doRequest(t, r, http.MethodPut, "/admin/schedule", adminToken, map[string]interface{}{
		"open_time": "10:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateScheduleAdminOnly(t *testing.T) {
	db := newTestDB(t)
	_, staffToken := seedUser(t, db, "staff.noput@example.com", "staff")
	r := newTestRouter(db)

	payload := map[string]interface{}{
		"is_accepting_orders":   true,
		"min_ready_minutes":     10,
		"max_ready_minutes":     75,
		"default_ready_minutes": 20,
		"open_time":             "11:30",
		"close_time":            "21:30",
	}
	w := doRequest(t, r, http.MethodPut, "/admin/schedule", staffToken, payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Staff tetap boleh membaca
	w = doRequest(t, r, http.MethodGet, "/admin/schedule", staffToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

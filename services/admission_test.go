package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Jadwal 11:30-21:30 dengan default ready 20 menit -> last call 21:10.
// Order jam 21:05 masih diterima, 21:15 ditolak.
func TestAdmitAroundLastCall(t *testing.T) {
	db := newTestDB(t)
	seedSchedule(t, db, "11:30", "21:30", 20, true)
	gate := NewAdmissionGate(db)

	tests := []struct {
		hour, minute int
		wantDenied   bool
	}{
		{11, 29, true},
		{11, 30, false},
		{15, 0, false},
		{21, 5, false},
		{21, 10, false}, // tepat last call masih boleh
		{21, 11, true},
		{21, 15, true},
		{21, 30, true},
		{22, 0, true},
	}
	for _, tt := range tests {
		err := gate.Admit(clockAt(tt.hour, tt.minute))
		if tt.wantDenied {
			var denied *AdmissionDeniedError
			require.True(t, errors.As(err, &denied), "%02d:%02d should be denied, got %v", tt.hour, tt.minute, err)
			assert.Contains(t, denied.Reason, "21:10")
		} else {
			assert.NoError(t, err, "%02d:%02d", tt.hour, tt.minute)
		}
	}
}

func TestAdmitKillSwitch(t *testing.T) {
	db := newTestDB(t)
	seedSchedule(t, db, "11:30", "21:30", 20, false)
	gate := NewAdmissionGate(db)

	// Ditolak bahkan di tengah jam operasional
	err := gate.Admit(clockAt(13, 0))
	var denied *AdmissionDeniedError
	require.True(t, errors.As(err, &denied))
	assert.Contains(t, denied.Reason, "not accepting orders")
}

// Tanpa jadwal tersimpan, gate memakai default (11:30-21:30, ready 20).
func TestAdmitUnconfiguredUsesDefaults(t *testing.T) {
	db := newTestDB(t)
	gate := NewAdmissionGate(db)

	assert.NoError(t, gate.Admit(clockAt(12, 0)))

	err := gate.Admit(clockAt(22, 0))
	var denied *AdmissionDeniedError
	assert.True(t, errors.As(err, &denied))
}

// Perubahan jadwal langsung terasa di gate, tanpa cache.
func TestAdmitReflectsScheduleChanges(t *testing.T) {
	db := newTestDB(t)
	seedSchedule(t, db, "11:30", "21:30", 20, true)
	gate := NewAdmissionGate(db)

	assert.NoError(t, gate.Admit(clockAt(21, 5)))

	// Perpanjang waktu masak -> last call maju ke 20:30
	svc := NewScheduleService(db)
	sched, err := svc.Load()
	require.NoError(t, err)
	sched.DefaultReadyMinutes = 60
	require.NoError(t, svc.Save(sched))

	err = gate.Admit(clockAt(21, 5))
	var denied *AdmissionDeniedError
	require.True(t, errors.As(err, &denied))
	assert.Contains(t, denied.Reason, "20:30")
}

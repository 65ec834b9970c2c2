package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Semua error di bawah adalah input error yang bisa diperbaiki caller;
// tidak ada yang memicu retry internal.
var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrMenuItemNotFound    = errors.New("menu item not found")
	ErrMenuItemUnavailable = errors.New("menu item is not available")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrInvalidGratuity     = errors.New("gratuity must be non-negative")
	ErrDuplicateOrderItem  = errors.New("menu item appears more than once in the order")
	ErrEmptyCancelReason   = errors.New("cancel reason cannot be empty")
)

// AdmissionDeniedError berarti order baru ditolak di gerbang admission
// (restoran tutup manual atau di luar jam operasional). Order tidak dibuat.
type AdmissionDeniedError struct {
	Reason string
}

func (e *AdmissionDeniedError) Error() string {
	return "admission denied: " + e.Reason
}

// InvalidTransitionError menolak perubahan status di luar tabel transisi,
// atau promosi ke ready sebelum promised ready time lewat. State order
// tidak berubah.
type InvalidTransitionError struct {
	From   string
	To     string
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot change status from '%s' to '%s': %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("cannot change status from '%s' to '%s'", e.From, e.To)
}

// PriceMismatchError berarti unit_price yang dikirim client tidak sama
// dengan harga katalog saat validasi (harga basi atau dimanipulasi).
type PriceMismatchError struct {
	MenuItemID uint
	Submitted  decimal.Decimal
	Current    decimal.Decimal
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("price mismatch for menu item %d: submitted %s, current price is %s (refresh and try again)",
		e.MenuItemID, e.Submitted.StringFixed(2), e.Current.StringFixed(2))
}

// ScheduleValidationError menunjuk aturan jadwal mana yang dilanggar;
// jadwal lama tetap utuh karena penulisan ditolak, bukan di-clamp.
type ScheduleValidationError struct {
	Field  string
	Reason string
}

func (e *ScheduleValidationError) Error() string {
	return fmt.Sprintf("invalid schedule: %s %s", e.Field, e.Reason)
}

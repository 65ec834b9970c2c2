package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status order. Transisi yang sah diatur di services.OrderLifecycle:
// pending -> ready | canceled, ready -> complete | canceled.
const (
	OrderStatusPending  = "pending"
	OrderStatusReady    = "ready"
	OrderStatusComplete = "complete"
	OrderStatusCanceled = "canceled"
)

type Order struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Status string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	// Uang selalu decimal 2 digit. total = subtotal + tax_amount + gratuity,
	// masing-masing sudah dibulatkan sendiri sebelum dijumlah.
	Subtotal  decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0.00;check:chk_order_subtotal,subtotal >= 0" json:"subtotal"`
	TaxRate   decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0.07;check:chk_order_tax_rate,tax_rate >= 0 AND tax_rate <= 1" json:"tax_rate"`
	TaxAmount decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0.00;check:chk_order_tax_amount,tax_amount >= 0" json:"tax_amount"`
	Gratuity  decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0.00;check:chk_order_gratuity,gratuity >= 0" json:"gratuity"`
	Total     decimal.Decimal `gorm:"type:decimal(9,2);not null;default:0.00;check:chk_order_total,total >= 0" json:"total"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// completed_at dan canceled_at tidak pernah terisi bersamaan;
	// cancel_reason hanya ada kalau canceled_at ada. Aturan yang sama juga
	// dipasang sebagai CHECK di database (lihat database.ExecuteConstraints).
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CanceledAt   *time.Time `json:"canceled_at,omitempty"`
	CancelReason *string    `gorm:"type:varchar(150)" json:"cancel_reason,omitempty"`

	OrderItems []OrderItem `gorm:"foreignKey:OrderID" json:"order_items,omitempty"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem dibuat bersama order-nya dalam satu transaksi (all-or-nothing).
// Satu menu item hanya boleh muncul sekali per order.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;uniqueIndex:uniq_order_menu_item" json:"order_id"`
	// Order disembunyikan dari JSON supaya tidak nested rekursif
	Order      Order    `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint     `gorm:"not null;uniqueIndex:uniq_order_menu_item" json:"menu_item_id"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu_item"`

	Quantity int    `gorm:"not null;check:chk_item_quantity,quantity > 0" json:"quantity"`
	Note     string `gorm:"type:varchar(200)" json:"note"`

	// unit_price adalah snapshot harga katalog saat order dibuat; perubahan
	// harga menu setelahnya tidak menyentuh order lama.
	UnitPrice decimal.Decimal `gorm:"type:decimal(6,2);not null;check:chk_item_unit_price,unit_price >= 0" json:"unit_price"`
	ItemTotal decimal.Decimal `gorm:"type:decimal(8,2);not null;check:chk_item_total,item_total >= 0" json:"item_total"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

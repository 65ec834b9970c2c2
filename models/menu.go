package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem adalah item katalog. Harga di sini adalah harga "sekarang";
// order menyimpan snapshot-nya sendiri di OrderItem.UnitPrice.
type MenuItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CategoryID  uint            `gorm:"not null;uniqueIndex:uniq_menu_name_category" json:"category_id"`
	Category    MenuCategory    `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Name        string          `gorm:"type:varchar(50);not null;uniqueIndex:uniq_menu_name_category" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(6,2);not null;check:chk_menu_price,price >= 0" json:"price"`
	Description string          `gorm:"type:varchar(300)" json:"description"`
	IsAvailable bool            `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

package database

import (
	"strings"

	"gorm.io/gorm"

	"github.com/aryaseta/resto-order-api/utils"
)

// Constraint lintas-kolom yang tidak bisa dinyatakan lewat tag GORM.
// Hanya dijalankan di MySQL; sqlite (dipakai di test) melewatkannya.
var checkConstraints = []struct {
	Table string
	Name  string
	Expr  string
}{
	{
		Table: "orders",
		Name:  "chk_order_completed_after_created",
		Expr:  "completed_at IS NULL OR completed_at >= created_at",
	},
	{
		Table: "orders",
		Name:  "chk_order_canceled_after_created",
		Expr:  "canceled_at IS NULL OR canceled_at >= created_at",
	},
	{
		Table: "orders",
		Name:  "chk_order_terminal_exclusive",
		Expr:  "completed_at IS NULL OR canceled_at IS NULL",
	},
	{
		Table: "orders",
		Name:  "chk_order_cancel_reason_paired",
		Expr:  "(canceled_at IS NULL AND cancel_reason IS NULL) OR (canceled_at IS NOT NULL AND cancel_reason IS NOT NULL)",
	},
}

// ExecuteConstraints memasang CHECK constraint tambahan setelah AutoMigrate.
// Error per-constraint hanya dicatat agar boot tetap jalan (misal constraint
// sudah ada dari run sebelumnya).
func ExecuteConstraints(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		utils.InfoLogger.Printf("Skipping check constraints for dialect %s", db.Dialector.Name())
		return nil
	}

	for _, c := range checkConstraints {
		stmt := "ALTER TABLE " + c.Table + " ADD CONSTRAINT " + c.Name + " CHECK (" + c.Expr + ")"
		if err := db.Exec(stmt).Error; err != nil {
			if strings.Contains(err.Error(), "Duplicate") || strings.Contains(err.Error(), "already exists") {
				continue
			}
			utils.ErrorLogger.Errorf("Error adding constraint %s: %v", c.Name, err)
			continue
		}
		utils.InfoLogger.Printf("Constraint installed: %s on %s", c.Name, c.Table)
	}

	return nil
}

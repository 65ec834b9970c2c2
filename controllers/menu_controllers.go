package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aryaseta/resto-order-api/models"
	"github.com/aryaseta/resto-order-api/utils"
)

// Katalog menu di sini read-only: pengelolaannya ada di sistem lain.
// Endpoint ini yang memberi client harga terkini yang nanti mereka kirim
// balik sebagai unit_price saat membuat order.
type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenus -> daftar menu; ?available=true hanya yang bisa dipesan
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	q := mc.DB.Preload("Category")
	if c.Query("available") == "true" {
		q = q.Where("is_available = ?", true)
	}

	var items []models.MenuItem
	if err := q.Order("id asc").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", items)
}

package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aryaseta/resto-order-api/models"
	"github.com/aryaseta/resto-order-api/services"
	"github.com/aryaseta/resto-order-api/utils"
)

type OrderController struct {
	DB        *gorm.DB
	Orders    *services.OrderService
	Lifecycle *services.OrderLifecycle
	Schedules *services.ScheduleService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:        db,
		Orders:    services.NewOrderService(db),
		Lifecycle: services.NewOrderLifecycle(db),
		Schedules: services.NewScheduleService(db),
	}
}

// orderView menambah field turunan (item_count, promised_ready_time) di atas
// record order; keduanya dihitung saat render, tidak pernah disimpan.
type orderView struct {
	*models.Order
	ItemCount         int    `json:"item_count"`
	PromisedReadyTime string `json:"promised_ready_time,omitempty"`
}

func (oc *OrderController) renderOrder(order *models.Order) orderView {
	view := orderView{
		Order:     order,
		ItemCount: services.ItemCount(order.OrderItems),
	}
	if sched, err := oc.Schedules.Load(); err == nil {
		view.PromisedReadyTime = services.PromisedReadyTime(order, sched).Format("2006-01-02 15:04")
	}
	return view
}

func (oc *OrderController) renderOrders(orders []models.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for i := range orders {
		views = append(views, oc.renderOrder(&orders[i]))
	}
	return views
}

// CreateOrder -> customer membuat order baru (status='pending').
// Admission gate, insert item + snapshot harga, dan perhitungan total
// semuanya satu transaksi di OrderService.Create.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID := c.GetUint("user_id")

	type ItemReq struct {
		MenuItemID uint            `json:"menu_item_id" binding:"required"`
		Quantity   int             `json:"quantity" binding:"required"`
		UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
		Note       string          `json:"note"`
	}
	type ReqBody struct {
		Items    []ItemReq       `json:"items" binding:"required"`
		Gratuity decimal.Decimal `json:"gratuity"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	in := services.CreateOrderInput{
		UserID:   userID,
		Gratuity: body.Gratuity,
	}
	for _, it := range body.Items {
		in.Items = append(in.Items, services.CreateOrderItemInput{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Note:       it.Note,
		})
	}

	order, err := oc.Orders.Create(in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order #%d created by user %d (total %s)", order.ID, userID, order.Total.StringFixed(2))
	utils.RespondJSON(c, http.StatusCreated, "Order created", oc.renderOrder(order))
}

// GetMyOrders -> daftar order milik user yang login, terbaru dulu
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID := c.GetUint("user_id")

	orders, err := oc.Orders.List(services.OrderFilter{UserID: &userID})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", oc.renderOrders(orders))
}

// GetOrderByID -> detail 1 order. Customer hanya boleh melihat order sendiri;
// order milik orang lain diperlakukan seperti tidak ada.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order_id"))
		return
	}

	order, err := oc.Orders.Get(uint(orderID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	role := c.GetString("role")
	if role != "admin" && role != "staff" && order.UserID != c.GetUint("user_id") {
		respondServiceError(c, services.ErrOrderNotFound)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", oc.renderOrder(order))
}

// CancelOrder -> customer membatalkan order miliknya sendiri; alasan wajib.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order_id"))
		return
	}

	var body struct {
		CancelReason string `json:"cancel_reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.Get(uint(orderID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if order.UserID != c.GetUint("user_id") {
		respondServiceError(c, services.ErrOrderNotFound)
		return
	}

	canceled, err := oc.Lifecycle.Cancel(uint(orderID), body.CancelReason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order #%d canceled by user %d", canceled.ID, order.UserID)
	utils.RespondJSON(c, http.StatusOK, "Order canceled", oc.renderOrder(canceled))
}

// GetMyStatistics -> jumlah order per status untuk user yang login
func (oc *OrderController) GetMyStatistics(c *gin.Context) {
	userID := c.GetUint("user_id")

	stats, err := oc.Orders.Statistics(&userID, nil, nil)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order statistics", stats)
}

/*
========================================
 STAFF / ADMIN
========================================
*/

// GetAllOrders -> semua order, dengan filter status / date_from / date_to
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	filter := services.OrderFilter{Status: c.Query("status")}

	if raw := c.Query("date_from"); raw != "" {
		from, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date_from, use YYYY-MM-DD"))
			return
		}
		filter.DateFrom = &from
	}
	if raw := c.Query("date_to"); raw != "" {
		to, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid date_to, use YYYY-MM-DD"))
			return
		}
		// Ikutkan seluruh hari terakhir
		end := to.AddDate(0, 0, 1)
		filter.DateTo = &end
	}

	orders, err := oc.Orders.List(filter)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", oc.renderOrders(orders))
}

// UpdateOrderStatus -> staff/admin menggeser status order lewat state machine.
// Promosi ke ready ditolak kalau promised ready time belum lewat.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order_id"))
		return
	}

	var body struct {
		Status       string `json:"status" binding:"required"`
		CancelReason string `json:"cancel_reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reason := body.CancelReason
	if body.Status == models.OrderStatusCanceled && reason == "" {
		reason = "Canceled by staff"
	}

	order, err := oc.Lifecycle.Apply(uint(orderID), body.Status, reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order #%d moved to %s by %s", order.ID, order.Status, c.GetString("role"))
	utils.RespondJSON(c, http.StatusOK, "Order updated", oc.renderOrder(order))
}

// GetOrderStatistics -> agregat untuk staff/admin.
//
// Query params:
//   - period: today | yesterday | week | month | year
//   - date: satu hari spesifik (YYYY-MM-DD)
//   - date_from / date_to: rentang custom (YYYY-MM-DD)
//
// Tanpa parameter berarti hari ini.
func (oc *OrderController) GetOrderStatistics(c *gin.Context) {
	from, to, label, err := parseStatisticsRange(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	stats, err := oc.Orders.Statistics(nil, from, to)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order statistics", gin.H{
		"period": label,
		"stats":  stats,
	})
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func parseStatisticsRange(c *gin.Context) (from, to *time.Time, label string, err error) {
	today := startOfDay(time.Now())
	tomorrow := today.AddDate(0, 0, 1)

	if period := c.Query("period"); period != "" {
		switch period {
		case "today":
			return &today, &tomorrow, period, nil
		case "yesterday":
			start := today.AddDate(0, 0, -1)
			return &start, &today, period, nil
		case "week":
			start := today.AddDate(0, 0, -7)
			return &start, &tomorrow, period, nil
		case "month":
			start := today.AddDate(0, 0, -30)
			return &start, &tomorrow, period, nil
		case "year":
			start := today.AddDate(0, 0, -365)
			return &start, &tomorrow, period, nil
		default:
			return nil, nil, "", errors.New("invalid period, use: today, yesterday, week, month, or year")
		}
	}

	if raw := c.Query("date"); raw != "" {
		day, parseErr := time.ParseInLocation("2006-01-02", raw, time.Local)
		if parseErr != nil {
			return nil, nil, "", errors.New("invalid date, use YYYY-MM-DD")
		}
		end := day.AddDate(0, 0, 1)
		return &day, &end, raw, nil
	}

	rawFrom, rawTo := c.Query("date_from"), c.Query("date_to")
	if rawFrom != "" || rawTo != "" {
		if rawFrom != "" {
			start, parseErr := time.ParseInLocation("2006-01-02", rawFrom, time.Local)
			if parseErr != nil {
				return nil, nil, "", errors.New("invalid date_from, use YYYY-MM-DD")
			}
			from = &start
		}
		if rawTo != "" {
			end, parseErr := time.ParseInLocation("2006-01-02", rawTo, time.Local)
			if parseErr != nil {
				return nil, nil, "", errors.New("invalid date_to, use YYYY-MM-DD")
			}
			endNext := end.AddDate(0, 0, 1)
			to = &endNext
		}
		if rawFrom == "" {
			rawFrom = "start"
		}
		if rawTo == "" {
			rawTo = "now"
		}
		return from, to, fmt.Sprintf("%s to %s", rawFrom, rawTo), nil
	}

	// Default: hari ini
	return &today, &tomorrow, "today", nil
}

package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aryaseta/resto-order-api/models"
	"github.com/aryaseta/resto-order-api/utils"
)

// OrderService memiliki jalur tulis order: pembuatan (satu-satunya tempat
// line item ditulis) plus query baca dan statistik. Perubahan status ada di
// OrderLifecycle.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type CreateOrderItemInput struct {
	MenuItemID uint
	Quantity   int
	UnitPrice  decimal.Decimal
	Note       string
}

type CreateOrderInput struct {
	UserID   uint
	Gratuity decimal.Decimal
	Items    []CreateOrderItemInput
}

// Create membuat order beserta seluruh line item dan harganya dalam SATU
// transaksi: cek admission, insert shell order, insert item dengan snapshot
// harga, hitung dan simpan total. Gagal di titik mana pun membatalkan
// semuanya; pembaca tidak akan pernah melihat order setengah jadi.
func (s *OrderService) Create(in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if in.Gratuity.IsNegative() {
		return nil, ErrInvalidGratuity
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		if err := NewAdmissionGate(tx).Admit(now); err != nil {
			return err
		}

		order = models.Order{
			UserID:    in.UserID,
			Status:    models.OrderStatusPending,
			TaxRate:   DefaultTaxRate,
			Gratuity:  utils.RoundMoney(in.Gratuity),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		seen := make(map[uint]bool, len(in.Items))
		items := make([]models.OrderItem, 0, len(in.Items))
		for _, req := range in.Items {
			if req.Quantity <= 0 {
				return fmt.Errorf("%w (menu item %d)", ErrInvalidQuantity, req.MenuItemID)
			}
			if seen[req.MenuItemID] {
				return fmt.Errorf("%w (menu item %d)", ErrDuplicateOrderItem, req.MenuItemID)
			}
			seen[req.MenuItemID] = true

			var menuItem models.MenuItem
			if err := tx.First(&menuItem, req.MenuItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w (id %d)", ErrMenuItemNotFound, req.MenuItemID)
				}
				return err
			}
			if !menuItem.IsAvailable {
				return fmt.Errorf("%w: %s", ErrMenuItemUnavailable, menuItem.Name)
			}
			// Guard harga basi: harga yang dikirim client harus sama persis
			// dengan harga katalog sekarang.
			if !req.UnitPrice.Equal(menuItem.Price) {
				return &PriceMismatchError{
					MenuItemID: menuItem.ID,
					Submitted:  req.UnitPrice,
					Current:    menuItem.Price,
				}
			}

			item := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: menuItem.ID,
				Quantity:   req.Quantity,
				Note:       req.Note,
				UnitPrice:  req.UnitPrice, // snapshot, kebal perubahan harga katalog
				ItemTotal:  ItemTotal(req.UnitPrice, req.Quantity),
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			items = append(items, item)
		}

		prices := ComputePrices(order.TaxRate, order.Gratuity, items)
		order.Subtotal = prices.Subtotal
		order.TaxAmount = prices.TaxAmount
		order.Gratuity = prices.Gratuity
		order.Total = prices.Total

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"subtotal":   prices.Subtotal,
			"tax_amount": prices.TaxAmount,
			"gratuity":   prices.Gratuity,
			"total":      prices.Total,
			"updated_at": now,
		}).Error; err != nil {
			return err
		}

		order.OrderItems = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Get mengembalikan detail satu order beserta item-nya.
func (s *OrderService) Get(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.Preload("OrderItems").Preload("OrderItems.MenuItem").First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderFilter untuk listing staff. Kosong berarti tanpa filter.
type OrderFilter struct {
	UserID   *uint
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time // eksklusif
}

// List mengembalikan order terbaru lebih dulu.
func (s *OrderService) List(f OrderFilter) ([]models.Order, error) {
	q := s.DB.Preload("OrderItems")
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.DateFrom != nil {
		q = q.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("created_at < ?", *f.DateTo)
	}

	var orders []models.Order
	if err := q.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ItemCount = jumlah quantity seluruh line item; dihitung on demand,
// tidak pernah disimpan.
func ItemCount(items []models.OrderItem) int {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return count
}

// OrderStatistics: jumlah order per status plus revenue order complete
// dalam rentang yang diminta.
type OrderStatistics struct {
	Total    int64           `json:"total"`
	Pending  int64           `json:"pending"`
	Ready    int64           `json:"ready"`
	Complete int64           `json:"complete"`
	Canceled int64           `json:"canceled"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// Statistics menghitung agregat order; userID nil berarti seluruh restoran,
// from/to nil berarti tanpa batas waktu (to eksklusif).
func (s *OrderService) Statistics(userID *uint, from, to *time.Time) (*OrderStatistics, error) {
	scoped := func() *gorm.DB {
		q := s.DB.Model(&models.Order{})
		if userID != nil {
			q = q.Where("user_id = ?", *userID)
		}
		if from != nil {
			q = q.Where("created_at >= ?", *from)
		}
		if to != nil {
			q = q.Where("created_at < ?", *to)
		}
		return q
	}

	var stats OrderStatistics
	if err := scoped().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	counts := map[string]*int64{
		models.OrderStatusPending:  &stats.Pending,
		models.OrderStatusReady:    &stats.Ready,
		models.OrderStatusComplete: &stats.Complete,
		models.OrderStatusCanceled: &stats.Canceled,
	}
	for status, dst := range counts {
		if err := scoped().Where("status = ?", status).Count(dst).Error; err != nil {
			return nil, err
		}
	}

	stats.Revenue = decimal.Zero
	row := scoped().
		Where("status = ?", models.OrderStatusComplete).
		Select("COALESCE(SUM(total), 0)").
		Row()
	var revenue decimal.Decimal
	if err := row.Scan(&revenue); err != nil {
		return nil, err
	}
	stats.Revenue = revenue

	return &stats, nil
}

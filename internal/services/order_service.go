// internal/services/order_service.go
package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"gorm.io/gorm"

	"github.com/orbitcart/orbitcart-backend/internal/apperrors"
	"github.com/orbitcart/orbitcart-backend/internal/config"
	"github.com/orbitcart/orbitcart-backend/internal/database"
	"github.com/orbitcart/orbitcart-backend/internal/models"
	"github.com/orbitcart/orbitcart-backend/internal/utils"
)

const defaultDeliveryCharge = 60

type OrderService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewOrderService(db *gorm.DB, cfg *config.Config) *OrderService {
	stripe.Key = cfg.Payment.StripeSecretKey

	return &OrderService{
		db:  db,
		cfg: cfg,
	}
}

// FlexString accepts a JSON string or number; the storefront sends contact
// numbers both ways.
type FlexString string

func (v *FlexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = FlexString(s)
		return nil
	}
	*v = FlexString(string(b))
	return nil
}

// FlexFloat accepts a JSON number or numeric string.
type FlexFloat float64

func (v *FlexFloat) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*v = FlexFloat(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = FlexFloat(f)
	return nil
}

type CheckoutItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Size      string `json:"size,omitempty"`
}

type CheckoutSessionRequest struct {
	ProductOrderData []CheckoutItem `json:"productOrderData" validate:"required,min=1,dive"`
	TotalPrice       FlexFloat      `json:"totalPrice" validate:"required,gt=0"`
}

type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
}

type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Size      string `json:"size,omitempty"`
}

type CreateOrderRequest struct {
	Name           string             `json:"name" validate:"required"`
	Address        string             `json:"address" validate:"required"`
	ContactNumber  FlexString         `json:"contactNumber" validate:"required"`
	Note           string             `json:"note,omitempty"`
	DeliveryCharge *float64           `json:"deliveryCharge,omitempty"`
	TotalPrice     FlexFloat          `json:"totalPrice" validate:"required,gt=0"`
	UserID         string             `json:"userId,omitempty" validate:"omitempty,uuid"`
	OrderItems     []OrderItemRequest `json:"orderItems" validate:"required,min=1,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type DeliveryDiscountRequest struct {
	ID       string  `json:"id" validate:"required,uuid"`
	Delivery *string `json:"delivery,omitempty"`
	Discount *string `json:"discount,omitempty"`
}

var orderSearchFields = []string{"name", "address", "contact"}

// CheckoutAmountMinorUnits converts a major-unit total to the provider's
// minor unit, clamped to its minimum charge.
func CheckoutAmountMinorUnits(totalPrice float64, minimum int64) int64 {
	amount := int64(math.Round(totalPrice * 100))
	if amount < minimum {
		return minimum
	}
	return amount
}

// CreateCheckoutSession opens a hosted checkout session with the payment
// provider and returns its id. Provider errors are logged with detail and
// surfaced generically.
func (s *OrderService) CreateCheckoutSession(req *CheckoutSessionRequest) (*CheckoutSessionResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("Invalid payload: Missing required fields")
	}

	amount := CheckoutAmountMinorUnits(float64(req.TotalPrice), s.cfg.Payment.MinimumChargeMinorUnits)

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.ProductOrderData))
	for _, item := range req.ProductOrderData {
		size := item.Size
		if size == "" {
			size = "N/A"
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(s.cfg.Payment.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(fmt.Sprintf("Product %s", item.ProductID)),
					Description: stripe.String(fmt.Sprintf("Size: %s", size)),
				},
				UnitAmount: stripe.Int64(amount),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(s.cfg.Client.BaseURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(s.cfg.Client.BaseURL + "/cancel"),
	}

	sess, err := session.New(params)
	if err != nil {
		logrus.WithError(err).Error("Error creating checkout session")
		return nil, apperrors.External("Failed to create checkout session", err)
	}

	return &CheckoutSessionResponse{SessionID: sess.ID}, nil
}

// Create persists an order together with its items. Each item connects to an
// existing product.
func (s *OrderService) Create(req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	deliveryCharge := float64(defaultDeliveryCharge)
	if req.DeliveryCharge != nil {
		deliveryCharge = *req.DeliveryCharge
	}

	totalPrice := float64(req.TotalPrice)

	order := &models.Order{
		Name:           req.Name,
		Address:        req.Address,
		Contact:        string(req.ContactNumber),
		Note:           req.Note,
		DeliveryCharge: deliveryCharge,
		Subtotal:       totalPrice - deliveryCharge,
		TotalPrice:     totalPrice,
		Status:         models.OrderStatusPending,
	}

	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			return nil, apperrors.Validation("userId must be a valid UUID")
		}
		order.UserID = &userID
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		for _, item := range req.OrderItems {
			productID, err := uuid.Parse(item.ProductID)
			if err != nil {
				return apperrors.Validation("productId must be a valid UUID")
			}

			var count int64
			tx.Model(&models.Product{}).Where("id = ?", productID).Count(&count)
			if count == 0 {
				return apperrors.Validation(fmt.Sprintf("product %s does not exist", item.ProductID))
			}

			order.OrderItems = append(order.OrderItems, models.OrderItem{
				ProductID: productID,
				Quantity:  item.Quantity,
				Size:      item.Size,
			})
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (s *OrderService) ListPending(searchTerm string, opts utils.PaginationOptions) (*utils.PagedResult, error) {
	status := models.OrderStatusPending
	return s.listOrders(searchTerm, opts, &status, true)
}

func (s *OrderService) ListConfirmed(searchTerm string, opts utils.PaginationOptions) (*utils.PagedResult, error) {
	status := models.OrderStatusConfirm
	return s.listOrders(searchTerm, opts, &status, false)
}

func (s *OrderService) ListDelivery(searchTerm string, opts utils.PaginationOptions) (*utils.PagedResult, error) {
	status := models.OrderStatusDelivery
	return s.listOrders(searchTerm, opts, &status, false)
}

func (s *OrderService) ListReturned(searchTerm string, opts utils.PaginationOptions) (*utils.PagedResult, error) {
	status := models.OrderStatusReturn
	return s.listOrders(searchTerm, opts, &status, false)
}

// ListForAdmin lists every non-deleted order regardless of status.
func (s *OrderService) ListForAdmin(searchTerm string, opts utils.PaginationOptions) (*utils.PagedResult, error) {
	return s.listOrders(searchTerm, opts, nil, true)
}

func (s *OrderService) listOrders(searchTerm string, opts utils.PaginationOptions, status *models.OrderStatus, onlyNotDeleted bool) (*utils.PagedResult, error) {
	p := utils.Paginate(opts)

	query := s.db.Model(&models.Order{})
	query = applySearch(query, searchTerm, orderSearchFields)

	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if onlyNotDeleted {
		query = query.Where("is_deleted = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "total_price", "status"}
	query = utils.ApplySort(query, p, allowedSortFields)
	query = utils.ApplyPagination(query, p)

	var orders []models.Order
	err := query.
		Preload("OrderItems").
		Preload("OrderItems.Product", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "price", "discount")
		}).
		Preload("OrderItems.Product.Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	for i := range orders {
		trimToFirstPhoto(orders[i].OrderItems)
	}

	result := utils.NewPagedResult(orders, total, p)
	return &result, nil
}

// trimToFirstPhoto reduces each item's product to its oldest photo; order
// views show one thumbnail per product. Preload can't limit per parent, so
// the extra rows are dropped here.
func trimToFirstPhoto(items []models.OrderItem) {
	for i := range items {
		if len(items[i].Product.Photos) > 1 {
			items[i].Product.Photos = items[i].Product.Photos[:1]
		}
	}
}

// GetByID returns nil when the order does not exist; callers treat the empty
// result as data, not an error.
func (s *OrderService) GetByID(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("OrderItems").
		Preload("OrderItems.Product", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "price", "discount")
		}).
		Preload("OrderItems.Product.Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		First(&order, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	trimToFirstPhoto(order.OrderItems)
	return &order, nil
}

// shouldAdjustStock gates the one-shot inventory mutation: only the first
// transition into a stock-consuming status moves inventory.
func shouldAdjustStock(order *models.Order, newStatus models.OrderStatus) bool {
	return newStatus.AdjustsStock() && !order.StockAdjusted
}

// UpdateStatus moves the order to a new status. On the first transition into
// CONFIFM or DELIVERY the ordered quantities are sold: per item, sold goes up
// and totalProduct goes down, atomically with the flag that prevents a
// repeat.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, req *UpdateStatusRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	newStatus := models.OrderStatus(req.Status)
	if !newStatus.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown order status %q", req.Status))
	}

	var order models.Order
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		err := tx.Set("gorm:query_option", "FOR UPDATE").
			Preload("OrderItems").
			First(&order, "id = ?", orderID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFound("Order not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if shouldAdjustStock(&order, newStatus) {
			for _, item := range order.OrderItems {
				err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).
					Updates(map[string]interface{}{
						"sold":          gorm.Expr("sold + ?", item.Quantity),
						"total_product": gorm.Expr("total_product - ?", item.Quantity),
					}).Error
				if err != nil {
					return fmt.Errorf("failed to adjust stock: %w", err)
				}
			}

			if err := tx.Model(&order).Update("stock_adjusted", true).Error; err != nil {
				return fmt.Errorf("failed to flag stock adjustment: %w", err)
			}
			order.StockAdjusted = true
		}

		if err := tx.Model(&order).Update("status", newStatus).Error; err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		order.Status = newStatus

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// Delete removes the order and all of its items in one transaction.
func (s *OrderService) Delete(orderID uuid.UUID) error {
	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Preload("OrderItems").First(&order, "id = ?", orderID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFound("Order not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}

		if err := tx.Delete(&models.Order{}, "id = ?", orderID).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}

		return nil
	})
}

func (s *OrderService) MarkPdfDownloaded(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&order).Update("is_pdf", true).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	order.IsPdf = true
	return &order, nil
}

type OrderTotals struct {
	DeliveryCharge float64
	DiscountNow    float64
	TotalPrice     float64
}

// RecalculateTotals derives the order's money fields from the persisted
// subtotal. newDelivery replaces the delivery charge when supplied;
// discountPercent recomputes the discount amount against the new
// delivery-inclusive total, otherwise the previous amount carries over.
func RecalculateTotals(subtotal, currentDelivery, currentDiscount float64, newDelivery, discountPercent *float64) OrderTotals {
	delivery := currentDelivery
	if newDelivery != nil {
		delivery = *newDelivery
	}

	newTotal := subtotal + delivery

	discountAmount := currentDiscount
	if discountPercent != nil {
		discountAmount = round2(newTotal * *discountPercent / 100)
	}

	return OrderTotals{
		DeliveryCharge: delivery,
		DiscountNow:    discountAmount,
		TotalPrice:     newTotal - discountAmount,
	}
}

// UpdateDeliveryAndDiscount adjusts the delivery charge and/or the discount
// percentage and recomputes the total.
func (s *OrderService) UpdateDeliveryAndDiscount(req *DeliveryDiscountRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	orderID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, apperrors.Validation("id must be a valid UUID")
	}

	var newDelivery *float64
	if req.Delivery != nil {
		v, err := strconv.ParseFloat(*req.Delivery, 64)
		if err != nil {
			return nil, apperrors.Validation("delivery must be numeric")
		}
		newDelivery = &v
	}

	var discountPercent *float64
	if req.Discount != nil {
		v, err := strconv.ParseFloat(*req.Discount, 64)
		if err != nil {
			return nil, apperrors.Validation("discount must be numeric")
		}
		discountPercent = &v
	}

	var order models.Order
	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		err := tx.Set("gorm:query_option", "FOR UPDATE").
			First(&order, "id = ?", orderID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFound("Order not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		totals := RecalculateTotals(order.Subtotal, order.DeliveryCharge, order.DiscountNow, newDelivery, discountPercent)

		updates := map[string]interface{}{
			"delivery_charge": totals.DeliveryCharge,
			"discount_now":    totals.DiscountNow,
			"total_price":     totals.TotalPrice,
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}

		order.DeliveryCharge = totals.DeliveryCharge
		order.DiscountNow = totals.DiscountNow
		order.TotalPrice = totals.TotalPrice

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

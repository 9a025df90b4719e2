package admin

import (
	"errors"
	"strconv"
	"strings"

	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/logging"
	"ordergrab/models"
	"ordergrab/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderRequest holds the optional fields of a create or update. Nil means "leave as is".
type OrderRequest struct {
	Title             *string          `json:"title"`
	Description       *string          `json:"description"`
	ImageURL          *string          `json:"image_url"`
	Price             *decimal.Decimal `json:"price"`
	CommissionPercent *decimal.Decimal `json:"commission_percent"`
	IsActive          *bool            `json:"is_active"`
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

func parseOrderRequest(c *fiber.Ctx) (*OrderRequest, error) {
	var req OrderRequest
	if !isMultipart(c) {
		if err := c.BodyParser(&req); err != nil {
			return nil, helpers.NewError(fiber.StatusBadRequest, "INVALID_JSON")
		}
		return &req, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, helpers.NewError(fiber.StatusBadRequest, "INVALID_MULTIPART_FORM")
	}
	value := func(key string) (string, bool) {
		v, ok := form.Value[key]
		if !ok || len(v) == 0 {
			return "", false
		}
		return v[0], true
	}

	if v, ok := value("title"); ok {
		req.Title = &v
	}
	if v, ok := value("description"); ok {
		req.Description = &v
	}
	if v, ok := value("image_url"); ok {
		req.ImageURL = &v
	}
	if v, ok := value("price"); ok {
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, services.ErrInvalidOrder.WithDetail("price is not a number")
		}
		req.Price = &d
	}
	if v, ok := value("commission_percent"); ok {
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, services.ErrInvalidOrder.WithDetail("commission_percent is not a number")
		}
		req.CommissionPercent = &d
	}
	if v, ok := value("is_active"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, services.ErrInvalidOrder.WithDetail("is_active must be a boolean")
		}
		req.IsActive = &b
	}
	return &req, nil
}

func (r *OrderRequest) apply(order *models.Order) {
	if r.Title != nil {
		order.Title = *r.Title
	}
	if r.Description != nil {
		order.Description = *r.Description
	}
	if r.ImageURL != nil {
		order.ImageURL = strings.TrimSpace(*r.ImageURL)
	}
	if r.Price != nil {
		order.Price = *r.Price
	}
	if r.CommissionPercent != nil {
		order.CommissionPercent = *r.CommissionPercent
	}
	if r.IsActive != nil {
		order.IsActive = *r.IsActive
	}
}

// uploadImage replaces order.ImageURL when the multipart form carries an "image" file.
func uploadImage(c *fiber.Ctx, order *models.Order) error {
	if !isMultipart(c) {
		return nil
	}
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil
	}

	url, err := services.UploadOrderImage(c.UserContext(), fileHeader, order.Title)
	if err != nil {
		return err
	}
	order.ImageURL = url
	return nil
}

func ListOrders(c *fiber.Ctx) error {
	page, limit, offset := helpers.Paginate(c)

	query := database.DB.Model(&models.Order{})
	if active := c.Query("active"); active != "" {
		if b, err := strconv.ParseBool(active); err == nil {
			query = query.Where("is_active = ?", b)
		}
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helpers.JSONFail(c, err)
	}

	var orders []models.Order
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Orders retrieved successfully", fiber.Map{
		"orders":     orders,
		"pagination": helpers.PageMeta(page, limit, total),
	})
}

func CreateOrder(c *fiber.Ctx) error {
	req, err := parseOrderRequest(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	order := models.Order{IsActive: true}
	req.apply(&order)
	if err := services.ValidateOrder(&order); err != nil {
		return helpers.JSONFail(c, err)
	}
	if err := uploadImage(c, &order); err != nil {
		return helpers.JSONFail(c, err)
	}

	if err := database.DB.Create(&order).Error; err != nil {
		return helpers.JSONStatus(c, fiber.StatusInternalServerError, "FAILED_TO_CREATE_ORDER", err.Error())
	}

	logging.Logger.Info("📦 order created", zap.Uint("order_id", order.ID), zap.String("title", order.Title))
	return helpers.JSONCreated(c, "Order created successfully", order)
}

func findOrder(c *fiber.Ctx) (*models.Order, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, helpers.NewError(fiber.StatusBadRequest, "INVALID_ORDER_ID")
	}

	var order models.Order
	if err := database.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func UpdateOrder(c *fiber.Ctx) error {
	order, err := findOrder(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	req, err := parseOrderRequest(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	req.apply(order)
	if err := services.ValidateOrder(order); err != nil {
		return helpers.JSONFail(c, err)
	}
	if err := uploadImage(c, order); err != nil {
		return helpers.JSONFail(c, err)
	}

	if err := database.DB.Save(order).Error; err != nil {
		return helpers.JSONStatus(c, fiber.StatusInternalServerError, "FAILED_TO_UPDATE_ORDER", err.Error())
	}

	logging.Logger.Info("✏️ order updated", zap.Uint("order_id", order.ID))
	return helpers.JSONSuccess(c, "Order updated successfully", order)
}

func DeleteOrder(c *fiber.Ctx) error {
	order, err := findOrder(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	if err := database.DB.Delete(order).Error; err != nil {
		return helpers.JSONStatus(c, fiber.StatusInternalServerError, "FAILED_TO_DELETE_ORDER", err.Error())
	}

	logging.Logger.Info("🗑️ order deleted", zap.Uint("order_id", order.ID))
	return helpers.JSONSuccess(c, "Order deleted successfully", fiber.Map{"id": order.ID})
}

package admin

import (
	"strings"

	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateSupplierRequest struct {
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

type UpdateSupplierRequest struct {
	Name        *string `json:"name"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

type SupplierResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	ContactName string  `json:"contact_name"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Address     string  `json:"address"`
	Puan        float64 `json:"puan"`
	PuanSayisi  int     `json:"puan_sayisi"`
}

func supplierToResponse(s *models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		Puan:        s.Puan,
		PuanSayisi:  s.PuanSayisi,
	}
}

// -------------------------
// Supplier CRUD
// -------------------------

// POST /api/admin/suppliers
func CreateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
		}

		supplier := models.Supplier{
			Name:        strings.TrimSpace(body.Name),
			ContactName: strings.TrimSpace(body.ContactName),
			Phone:       strings.TrimSpace(body.Phone),
			Email:       strings.TrimSpace(strings.ToLower(body.Email)),
			Address:     strings.TrimSpace(body.Address),
		}

		if err := database.DB.Create(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(supplierToResponse(&supplier))
	}
}

// GET /api/admin/suppliers
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var suppliers []models.Supplier
		if err := database.DB.Order("name asc").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçiler listelenemedi")
		}

		resp := make([]SupplierResponse, 0, len(suppliers))
		for i := range suppliers {
			resp = append(resp, supplierToResponse(&suppliers[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/admin/suppliers/:id
// Puan alanları buradan güncellenMEZ; puan sadece fatura fiyat
// kontrolü onayındaki değerlendirmeden değişir.
func UpdateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var supplier models.Supplier
		if err := database.DB.First(&supplier, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Tedarikçi bulunamadı")
		}

		var body UpdateSupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
			supplier.Name = strings.TrimSpace(*body.Name)
		}
		if body.ContactName != nil {
			supplier.ContactName = strings.TrimSpace(*body.ContactName)
		}
		if body.Phone != nil {
			supplier.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Email != nil {
			supplier.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.Address != nil {
			supplier.Address = strings.TrimSpace(*body.Address)
		}

		if err := database.DB.Save(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tedarikçi güncellenemedi")
		}

		return c.JSON(supplierToResponse(&supplier))
	}
}

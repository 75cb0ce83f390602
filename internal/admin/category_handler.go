package admin

import (
	"strings"

	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// POST /api/admin/purchase-categories
func CreatePurchaseCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
		}

		category := models.PurchaseCategory{Name: strings.TrimSpace(body.Name)}
		if err := database.DB.Create(&category).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
				return fiber.NewError(fiber.StatusConflict, "Bu isimde kategori var")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(category)
	}
}

// GET /api/purchase-categories
func ListPurchaseCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.PurchaseCategory
		if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
		}
		return c.JSON(categories)
	}
}

// DELETE /api/admin/purchase-categories/:id
func DeletePurchaseCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var count int64
		database.DB.Model(&models.PurchaseRequest{}).Where("category_id = ?", id).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Bu kategoriye bağlı talepler var, silinemez")
		}

		result := database.DB.Delete(&models.PurchaseCategory{}, id)
		if result.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori silinemedi")
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

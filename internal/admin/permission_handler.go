package admin

import (
	"strings"

	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreatePermissionRequest struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type AssignPermissionRequest struct {
	PermissionID uint `json:"permission_id"`
}

// POST /api/admin/permissions
func CreatePermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePermissionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Code = strings.TrimSpace(body.Code)
		if body.Code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "code zorunlu")
		}

		perm := models.Permission{
			Code:        body.Code,
			Description: strings.TrimSpace(body.Description),
		}

		if err := database.DB.Create(&perm).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
				return fiber.NewError(fiber.StatusConflict, "Bu kod ile kayıtlı izin var")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "İzin oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(perm)
	}
}

// GET /api/admin/permissions
func ListPermissionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var perms []models.Permission
		if err := database.DB.Order("code asc").Find(&perms).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzinler listelenemedi")
		}
		return c.JSON(perms)
	}
}

// POST /api/admin/users/:id/permissions
func AssignPermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var body AssignPermissionRequest
		if err := c.BodyParser(&body); err != nil || body.PermissionID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "permission_id zorunlu")
		}

		var user models.User
		if err := database.DB.First(&user, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		var perm models.Permission
		if err := database.DB.First(&perm, body.PermissionID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İzin bulunamadı")
		}

		if err := database.DB.Model(&user).Association("Permissions").Append(&perm); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin atanamadı")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DELETE /api/admin/users/:id/permissions/:permID
func RevokePermissionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}
		permID, err := c.ParamsInt("permID")
		if err != nil || permID <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "permID geçersiz")
		}

		var user models.User
		if err := database.DB.First(&user, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kullanıcı bulunamadı")
		}

		if err := database.DB.Model(&user).Association("Permissions").Delete(&models.Permission{ID: uint(permID)}); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin kaldırılamadı")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

package idea

import (
	"fmt"
	"sort"
	"strings"

	"portal-backend/internal/auth"
	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateIdeaRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type IdeaResponse struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	UserName  string `json:"user_name"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	VoteCount int    `json:"vote_count"`
	Voted     bool   `json:"voted"` // istek sahibi oy vermiş mi
	CreatedAt string `json:"created_at"`
}

func getUserID(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals(auth.CtxUserIDKey).(uint)
	if !ok {
		return 0, fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}
	return userID, nil
}

// -------------------------
// Handlers
// -------------------------

// POST /api/ideas
func CreateIdeaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateIdeaRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.Title) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title boş olamaz")
		}

		userID, err := getUserID(c)
		if err != nil {
			return err
		}

		idea := models.Idea{
			UserID: userID,
			Title:  strings.TrimSpace(body.Title),
			Body:   strings.TrimSpace(body.Body),
		}

		if err := database.DB.Create(&idea).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fikir kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":    idea.ID,
			"title": idea.Title,
		})
	}
}

// GET /api/ideas
// Oy sayısına göre azalan sırada listeler
func ListIdeasHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := getUserID(c)
		if err != nil {
			return err
		}

		var ideas []models.Idea
		if err := database.DB.Preload("User").Preload("Votes").
			Order("created_at DESC").Find(&ideas).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fikirler listelenemedi")
		}

		resp := make([]IdeaResponse, 0, len(ideas))
		for _, idea := range ideas {
			voted := false
			for _, v := range idea.Votes {
				if v.UserID == userID {
					voted = true
					break
				}
			}
			resp = append(resp, IdeaResponse{
				ID:        idea.ID,
				UserID:    idea.UserID,
				UserName:  idea.User.Name,
				Title:     idea.Title,
				Body:      idea.Body,
				VoteCount: len(idea.Votes),
				Voted:     voted,
				CreatedAt: idea.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			})
		}

		// Çok oy alan üste
		sort.SliceStable(resp, func(i, j int) bool {
			return resp[i].VoteCount > resp[j].VoteCount
		})

		return c.JSON(resp)
	}
}

// POST /api/ideas/:id/vote
// Bir kullanıcı bir fikre bir kez oy verir; ikinci deneme 409 döner
func VoteIdeaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		userID, err := getUserID(c)
		if err != nil {
			return err
		}

		var idea models.Idea
		if err := database.DB.First(&idea, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fikir bulunamadı")
		}

		vote := models.IdeaVote{IdeaID: idea.ID, UserID: userID}
		if err := database.DB.Create(&vote).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
				return fiber.NewError(fiber.StatusConflict, "Bu fikre zaten oy verdiniz")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Oy kaydedilemedi")
		}

		var count int64
		database.DB.Model(&models.IdeaVote{}).Where("idea_id = ?", idea.ID).Count(&count)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"idea_id":    idea.ID,
			"vote_count": count,
		})
	}
}

// DELETE /api/ideas/:id
// Sadece fikrin sahibi veya admin silebilir
func DeleteIdeaHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		userID, err := getUserID(c)
		if err != nil {
			return err
		}
		role, _ := c.Locals(auth.CtxUserRoleKey).(models.UserRole)

		var idea models.Idea
		if err := database.DB.First(&idea, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fikir bulunamadı")
		}

		if idea.UserID != userID && role != models.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, fmt.Sprintf("Fikir #%d size ait değil", idea.ID))
		}

		if err := database.DB.Delete(&idea).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fikir silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

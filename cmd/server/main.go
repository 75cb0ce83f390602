package main

import (
	"log"
	"strings"

	"portal-backend/internal/admin"
	"portal-backend/internal/audit"
	"portal-backend/internal/auth"
	"portal-backend/internal/config"
	"portal-backend/internal/database"
	"portal-backend/internal/idea"
	"portal-backend/internal/leave"
	"portal-backend/internal/maintenance"
	"portal-backend/internal/models"
	"portal-backend/internal/project"
	"portal-backend/internal/purchase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		// 10 MB fatura sınırı handler'da doğrulanır (400 döner); gövde
		// limiti o kontrolün çalışabilmesi için rahat üstünde tutulur
		BodyLimit: 20 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Kullanıcı ve yetki yönetimi
	adminRoutes.Post("/users", admin.CreateUserHandler())
	adminRoutes.Get("/users", admin.ListUsersHandler())
	adminRoutes.Put("/users/:id", admin.UpdateUserHandler())
	adminRoutes.Delete("/users/:id", admin.DeactivateUserHandler())
	adminRoutes.Post("/permissions", admin.CreatePermissionHandler())
	adminRoutes.Get("/permissions", admin.ListPermissionsHandler())
	adminRoutes.Post("/users/:id/permissions", admin.AssignPermissionHandler())
	adminRoutes.Delete("/users/:id/permissions/:permID", admin.RevokePermissionHandler())

	// Tedarikçi yönetimi
	adminRoutes.Post("/suppliers", admin.CreateSupplierHandler())
	adminRoutes.Put("/suppliers/:id", admin.UpdateSupplierHandler())

	// Satın alma kategorileri
	adminRoutes.Post("/purchase-categories", admin.CreatePurchaseCategoryHandler())
	adminRoutes.Delete("/purchase-categories/:id", admin.DeletePurchaseCategoryHandler())

	// Ortak (auth gerektiren) route'lar
	protected.Get("/admin/suppliers", auth.RequireRole(models.RoleAdmin, models.RoleYonetici, models.RoleSatinAlma), admin.ListSuppliersHandler())
	protected.Get("/purchase-categories", admin.ListPurchaseCategoriesHandler())

	// Satın alma talepleri
	protected.Post("/purchase-requests", purchase.CreatePurchaseRequestHandler())
	protected.Get("/purchase-requests", purchase.ListPurchaseRequestsHandler())
	protected.Get("/purchase-requests/export",
		auth.RequireRole(models.RoleAdmin, models.RoleYonetici, models.RoleSatinAlma),
		purchase.ExportPurchaseRequestsHandler())
	protected.Get("/purchase-requests/:id", purchase.GetPurchaseRequestHandler())
	protected.Put("/purchase-requests",
		auth.RequireRole(models.RoleAdmin, models.RoleYonetici, models.RoleSatinAlma),
		purchase.ActionHandler())

	// Satın alma faturaları
	protected.Post("/purchase-invoices",
		auth.RequireRole(models.RoleAdmin, models.RoleSatinAlma),
		purchase.UploadInvoiceHandler(cfg))
	protected.Get("/purchase-invoices", purchase.ListInvoicesHandler())
	protected.Put("/purchase-invoices/:id/price-check",
		auth.RequireRole(models.RoleAdmin, models.RoleYonetici),
		purchase.PriceCheckHandler())

	// İzin talepleri
	protected.Post("/leave-requests", leave.CreateLeaveRequestHandler())
	protected.Get("/leave-requests", leave.ListLeaveRequestsHandler())
	protected.Put("/leave-requests/:id/decision",
		auth.RequireRole(models.RoleAdmin, models.RoleYonetici),
		leave.DecideLeaveRequestHandler())
	protected.Get("/leave-requests/:id/pdf", leave.LeaveFormPDFHandler())

	// Ekipman bakım takibi
	protected.Post("/equipment",
		auth.RequireRole(models.RoleAdmin, models.RoleSatinAlma),
		maintenance.CreateEquipmentHandler())
	protected.Get("/equipment", maintenance.ListEquipmentHandler())
	protected.Delete("/equipment/:id", auth.RequireRole(models.RoleAdmin), maintenance.DeleteEquipmentHandler())
	protected.Post("/equipment/:id/maintenance", maintenance.CreateMaintenanceRecordHandler())
	protected.Get("/equipment/:id/maintenance", maintenance.ListMaintenanceRecordsHandler())
	protected.Get("/maintenance/due", maintenance.ListDueMaintenanceHandler())

	// Fikir havuzu
	protected.Post("/ideas", idea.CreateIdeaHandler())
	protected.Get("/ideas", idea.ListIdeasHandler())
	protected.Post("/ideas/:id/vote", idea.VoteIdeaHandler())
	protected.Delete("/ideas/:id", idea.DeleteIdeaHandler())

	// Projeler ve sözleşme faturaları
	protected.Post("/projects", auth.RequireRole(models.RoleAdmin, models.RoleYonetici), project.CreateProjectHandler())
	protected.Get("/projects", project.ListProjectsHandler())
	protected.Get("/projects/:id", project.GetProjectHandler())
	protected.Delete("/projects/:id", auth.RequireRole(models.RoleAdmin), project.DeleteProjectHandler())
	protected.Post("/projects/:id/invoices",
		auth.RequireRole(models.RoleAdmin, models.RoleYonetici),
		project.CreateContractInvoiceHandler())
	protected.Patch("/contract-invoices/:id",
		auth.RequirePermission("contract.invoice.transition"),
		project.TransitionContractInvoiceHandler())

	// Audit logs
	protected.Get("/audit-logs", auth.RequireRole(models.RoleAdmin), audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

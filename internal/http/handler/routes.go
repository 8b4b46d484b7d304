package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/LawUtilities/ADMS.API-sub003/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; everything flows through the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, matters service.MatterService, documents service.DocumentService, revisions service.RevisionService) {
	// Health endpoints: /health checks DB connectivity, /healthz is liveness only
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Matters
	app.Post("/matters", CreateMatter(matters))
	app.Get("/matters", ListMatters(matters))
	app.Get("/matters/:id", GetMatter(matters))
	app.Post("/matters/:id/archive", ArchiveMatter(matters))
	app.Post("/matters/:id/restore", RestoreMatter(matters))
	app.Delete("/matters/:id", DeleteMatter(matters))

	// Documents live under the matter that owns them
	app.Post("/matters/:id/documents", UploadDocument(documents))
	app.Get("/documents/:id", GetDocument(documents))
	app.Get("/documents/:id/download", DownloadDocument(documents))
	app.Get("/documents/:id/download-link", DocumentDownloadLink(documents))
	app.Post("/documents/:id/checkout", CheckoutDocument(documents))
	app.Post("/documents/:id/checkin", CheckinDocument(documents))
	app.Delete("/documents/:id", DeleteDocument(documents))

	// Revisions
	app.Put("/documents/:id/revisions/:revisionNumber", UpdateRevision(revisions))
	app.Get("/documents/:id/revisions", ListRevisions(revisions))
}

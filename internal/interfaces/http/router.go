package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gst-invoice-api/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Calculate *billing.CalculateUseCase
	Invoices  *billing.InvoiceUseCase
	Documents *billing.DocumentUseCase
	JWTSecret string
	JWTIssuer string // vacío = no se verifica el emisor
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Cálculo (público): vista previa del formulario
	calculateHandler := NewCalculateHandler(deps.Calculate)
	api.Post("/calculate", calculateHandler.Calculate)

	// Facturas (protegido)
	invoices := api.Group("/invoices", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	invoiceHandler := NewInvoiceHandler(deps.Invoices, deps.Documents)
	invoices.Post("/", RequireRole(RoleAdmin, RoleBilling), invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id/xlsx", invoiceHandler.DownloadXLSX)
}

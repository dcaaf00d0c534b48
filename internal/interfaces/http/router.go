package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/compras-grid/internal/application/purchase"
	"github.com/jhoicas/compras-grid/pkg/jwt"
	"github.com/jhoicas/compras-grid/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions  *purchase.SessionManager
	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	if deps.Log != nil {
		api.Use(RequestLogger(deps.Log))
	}

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	editors := RequireRole(jwt.RoleAdmin, jwt.RolePurchaser)

	productHandler := NewProductHandler(deps.Sessions)
	protected.Get("/products", productHandler.Search)

	// Grilla de factura de compra
	sessions := protected.Group("/purchase-invoices/sessions")
	gridHandler := NewGridHandler(deps.Sessions)
	sessions.Post("/", editors, gridHandler.Create)
	sessions.Get("/:id", gridHandler.Get)
	sessions.Delete("/:id", editors, gridHandler.Discard)
	sessions.Post("/:id/events", editors, gridHandler.Event)
	sessions.Post("/:id/items", editors, gridHandler.AddItem)
	sessions.Patch("/:id/items/:index", editors, gridHandler.UpdateItem)
	sessions.Delete("/:id/items/:index", editors, gridHandler.RemoveItem)
	sessions.Put("/:id/adjustments", editors, gridHandler.Adjustments)
	sessions.Put("/:id/header", editors, gridHandler.Header)
	sessions.Post("/:id/save", editors, gridHandler.Save)
	sessions.Get("/:id/pdf", gridHandler.PDF)

	// Facturas guardadas
	invoices := protected.Group("/purchase-invoices")
	invoiceHandler := NewInvoiceHandler(deps.Sessions)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
}

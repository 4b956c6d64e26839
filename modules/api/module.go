package api

import (
	"context"
	"fmt"

	"github.com/Lekhangit/server-side/modules/auth"
	"github.com/Lekhangit/server-side/modules/catalog"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// DefaultPort is the HTTP port used when none is configured.
const DefaultPort = 3001

// multipartOverhead is the body allowance on top of the image size for the
// other form fields and multipart framing.
const multipartOverhead = 64 * 1024

// Config holds the API module configuration.
type Config struct {
	Port         int
	MaxImageSize int64
}

// APIModule is the HTTP API module.
type APIModule struct {
	config         Config
	app            *fiber.App
	authAdapter    auth.AuthPort
	catalogAdapter catalog.CatalogPort
	logger         types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(config Config, logger types.Logger) *APIModule {
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.MaxImageSize <= 0 {
		config.MaxImageSize = catalog.DefaultMaxImageSize
	}
	return &APIModule{
		config: config,
		logger: logger,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "catalog"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authAdapter = auth.NewAuthAdapter(container)
	case "catalog":
		m.catalogAdapter = catalog.NewCatalogAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authAdapter == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.catalogAdapter == nil {
		return fmt.Errorf("catalog dependency not set")
	}

	m.app = newServer(m.config, m.authAdapter, m.catalogAdapter, m.logger)

	addr := fmt.Sprintf(":%d", m.config.Port)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			m.logger.Error("HTTP server error", "error", err)
		}
	}()

	m.logger.Info("HTTP server started", "addr", addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	m.logger.Info("Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.config.Port,
		},
	}
}

// newServer builds the Fiber app with middleware and routes.
func newServer(config Config, authAdapter auth.AuthPort, catalogAdapter catalog.CatalogPort, log types.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
		BodyLimit:             int(config.MaxImageSize) + multipartOverhead,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	setupRoutes(app,
		NewHandlers(authAdapter, log),
		NewShoeHandlers(catalogAdapter, config.MaxImageSize, log),
		AuthMiddleware(authAdapter, log),
	)
	return app
}

// setupRoutes configures all API routes.
func setupRoutes(app *fiber.App, users *Handlers, shoes *ShoeHandlers, requireAuth fiber.Handler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	userRoutes := app.Group("/users")
	userRoutes.Post("/signup", users.Signup)
	userRoutes.Post("/login", users.Login)
	userRoutes.Post("/token", users.Token)
	userRoutes.Post("/logout", users.Logout)
	userRoutes.Get("/profile", requireAuth, users.Profile)

	shoeRoutes := app.Group("/shoes")
	shoeRoutes.Post("/", shoes.Create)
	shoeRoutes.Get("/", shoes.List)
	shoeRoutes.Get("/:id", shoes.Get)
	shoeRoutes.Delete("/:id", shoes.Delete)

	app.Get("/uploads/:name", shoes.Image)
}

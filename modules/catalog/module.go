package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the catalog module configuration.
type Config struct {
	DBPath       string
	DBDebug      bool
	MaxImageSize int64
}

// CatalogModule provides the shoe catalog and its image storage.
type CatalogModule struct {
	config  Config
	db      *gorm.DB
	storage *fsjetstream.PluginModule
	images  ImageStore
	service *Service
	logger  types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*CatalogModule)(nil)
	_ mono.UsePluginModule       = (*CatalogModule)(nil)
	_ mono.ServiceProviderModule = (*CatalogModule)(nil)
	_ mono.HealthCheckableModule = (*CatalogModule)(nil)
)

// NewModule creates a new CatalogModule.
func NewModule(config Config, logger types.Logger) *CatalogModule {
	if config.DBPath == "" {
		config.DBPath = "shoes.db"
	}
	if config.MaxImageSize <= 0 {
		config.MaxImageSize = DefaultMaxImageSize
	}
	return &CatalogModule{
		config: config,
		logger: logger,
	}
}

// Name returns the module name.
func (m *CatalogModule) Name() string {
	return "catalog"
}

// SetPlugin receives the storage plugin from the framework.
// This is called before Start() when the module implements UsePluginModule.
func (m *CatalogModule) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias != "storage" {
		return
	}
	storage, ok := plugin.(*fsjetstream.PluginModule)
	if !ok {
		m.logger.Error("Invalid plugin type for storage",
			"alias", alias,
			"expected", "*fsjetstream.PluginModule")
		return
	}
	m.storage = storage
	m.logger.Info("Received storage plugin", "alias", alias)
}

// Start opens the shoe database, resolves the image bucket and builds the service.
func (m *CatalogModule) Start(_ context.Context) error {
	if m.images == nil {
		if m.storage == nil {
			return fmt.Errorf("required plugin 'storage' not registered")
		}
		bucket := m.storage.Bucket(ImageBucket)
		if bucket == nil {
			return fmt.Errorf("bucket '%s' not found in storage plugin", ImageBucket)
		}
		m.images = NewJetStreamImageStore(bucket)
	}

	logLevel := logger.Silent
	if m.config.DBDebug {
		logLevel = logger.Info
	}

	// Initialize SQLite database with GORM
	db, err := gorm.Open(sqlite.Open(m.config.DBPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	repo := NewRepository(db)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewService(repo, m.images, m.config.MaxImageSize, m.logger)

	m.logger.Info("Catalog module started",
		"database", m.config.DBPath,
		"bucket", ImageBucket)
	return nil
}

// Stop closes the database connection.
func (m *CatalogModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	m.logger.Info("Catalog module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *CatalogModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.config.DBPath,
			"bucket":   ImageBucket,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *CatalogModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-shoe", json.Unmarshal, json.Marshal, m.handleCreateShoe,
	); err != nil {
		return fmt.Errorf("failed to register create-shoe service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-shoes", json.Unmarshal, json.Marshal, m.handleListShoes,
	); err != nil {
		return fmt.Errorf("failed to register list-shoes service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-shoe", json.Unmarshal, json.Marshal, m.handleGetShoe,
	); err != nil {
		return fmt.Errorf("failed to register get-shoe service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-shoe", json.Unmarshal, json.Marshal, m.handleDeleteShoe,
	); err != nil {
		return fmt.Errorf("failed to register delete-shoe service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-image", json.Unmarshal, json.Marshal, m.handleGetImage,
	); err != nil {
		return fmt.Errorf("failed to register get-image service: %w", err)
	}

	m.logger.Info("Registered services",
		"services", "create-shoe, list-shoes, get-shoe, delete-shoe, get-image")
	return nil
}

func (m *CatalogModule) handleCreateShoe(ctx context.Context, req CreateShoeRequest, _ *mono.Msg) (ShoeResponse, error) {
	shoe, err := m.service.Create(ctx, toCreateShoeInput(req))
	if err != nil {
		return ShoeResponse{}, err
	}
	return toShoeResponse(shoe), nil
}

func (m *CatalogModule) handleListShoes(ctx context.Context, _ ListShoesRequest, _ *mono.Msg) (ListShoesResponse, error) {
	shoes, err := m.service.List(ctx)
	if err != nil {
		return ListShoesResponse{}, err
	}

	resp := ListShoesResponse{Shoes: make([]ShoeResponse, 0, len(shoes))}
	for _, s := range shoes {
		resp.Shoes = append(resp.Shoes, toShoeResponse(s))
	}
	return resp, nil
}

func (m *CatalogModule) handleGetShoe(ctx context.Context, req GetShoeRequest, _ *mono.Msg) (ShoeResponse, error) {
	shoe, err := m.service.Get(ctx, req.ID)
	if err != nil {
		return ShoeResponse{}, err
	}
	return toShoeResponse(shoe), nil
}

func (m *CatalogModule) handleDeleteShoe(ctx context.Context, req DeleteShoeRequest, _ *mono.Msg) (ShoeResponse, error) {
	shoe, err := m.service.Delete(ctx, req.ID)
	if err != nil {
		return ShoeResponse{}, err
	}
	return toShoeResponse(shoe), nil
}

func (m *CatalogModule) handleGetImage(ctx context.Context, req GetImageRequest, _ *mono.Msg) (GetImageResponse, error) {
	data, contentType, err := m.service.GetImage(ctx, req.Name)
	if err != nil {
		return GetImageResponse{}, err
	}
	return GetImageResponse{ContentType: contentType, Data: data}, nil
}

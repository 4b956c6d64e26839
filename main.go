package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Lekhangit/server-side/modules/api"
	"github.com/Lekhangit/server-side/modules/auth"
	"github.com/Lekhangit/server-side/modules/catalog"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	fsjetstream "github.com/go-monolith/mono/plugin/fs-jetstream"
)

const shutdownTimeout = 30 * time.Second

const (
	devAccessSecret  = "dev-access-secret-change-me"
	devRefreshSecret = "dev-refresh-secret-change-me"
)

func main() {
	// Load configuration from environment
	httpPort := getEnvInt("PORT", api.DefaultPort)
	maxImageSize := getEnvInt64("MAX_IMAGE_SIZE", catalog.DefaultMaxImageSize)
	storagePath := getEnv("STORAGE_PATH", "/tmp/shoe-store")
	dbDebug := getEnvBool("DB_DEBUG", false)

	jwtConfig := auth.DefaultJWTConfig()
	jwtConfig.AccessSecret = getEnv("ACCESS_TOKEN_SECRET", "")
	jwtConfig.RefreshSecret = getEnv("REFRESH_TOKEN_SECRET", "")
	jwtConfig.AccessTokenDuration = getEnvDuration("ACCESS_TOKEN_TTL", jwtConfig.AccessTokenDuration)
	if jwtConfig.AccessSecret == "" || jwtConfig.RefreshSecret == "" {
		log.Println("Warning: ACCESS_TOKEN_SECRET or REFRESH_TOKEN_SECRET not set, using development secrets")
		if jwtConfig.AccessSecret == "" {
			jwtConfig.AccessSecret = devAccessSecret
		}
		if jwtConfig.RefreshSecret == "" {
			jwtConfig.RefreshSecret = devRefreshSecret
		}
	}

	authConfig := auth.Config{
		DBPath:     getEnv("AUTH_DB_PATH", "users.db"),
		DBDebug:    dbDebug,
		BcryptCost: getEnvInt("BCRYPT_COST", auth.DefaultBcryptCost),
		JWT:        jwtConfig,
	}
	catalogConfig := catalog.Config{
		DBPath:       getEnv("CATALOG_DB_PATH", "shoes.db"),
		DBDebug:      dbDebug,
		MaxImageSize: maxImageSize,
	}

	log.Println("=== Shoe Store ===")
	log.Printf("HTTP Port: %d", httpPort)
	log.Printf("Max Image Size: %d bytes", maxImageSize)
	log.Printf("Storage Path: %s", storagePath)

	// Create mono application with embedded NATS JetStream
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
		mono.WithJetStreamStorageDir(storagePath),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Object store bucket for shoe images
	storagePlugin, err := fsjetstream.New(fsjetstream.Config{
		Buckets: []fsjetstream.BucketConfig{
			{
				Name:        catalog.ImageBucket,
				Description: "Shoe product images",
				MaxBytes:    1024 * 1024 * 1024, // 1GB max storage
				Storage:     fsjetstream.FileStorage,
				Compression: true,
			},
		},
	})
	if err != nil {
		log.Fatalf("Failed to create storage plugin: %v", err)
	}

	if err := app.RegisterPlugin(storagePlugin, "storage"); err != nil {
		log.Fatalf("Failed to register storage plugin: %v", err)
	}

	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule(authConfig, app.Logger()))
	app.Register(catalog.NewModule(catalogConfig, app.Logger()))
	app.Register(api.NewModule(api.Config{
		Port:         httpPort,
		MaxImageSize: maxImageSize,
	}, app.Logger()))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(httpPort)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port int) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("REST API Endpoints (http://localhost:%d):", port)
	log.Println("")
	log.Println("  Accounts:")
	log.Println("  POST   /users/signup    - Register a new user")
	log.Println("  POST   /users/login     - Login and get tokens")
	log.Println("  POST   /users/token     - Exchange a refresh token for an access token")
	log.Println("  POST   /users/logout    - Revoke a refresh token")
	log.Println("  GET    /users/profile   - Current user (requires Bearer token)")
	log.Println("")
	log.Println("  Catalog:")
	log.Println("  POST   /shoes           - Add a shoe (multipart, optional image)")
	log.Println("  GET    /shoes           - List shoes")
	log.Println("  GET    /shoes/:id       - Get a shoe")
	log.Println("  DELETE /shoes/:id       - Delete a shoe")
	log.Println("  GET    /uploads/:name   - Download a shoe image")
	log.Println("  GET    /health          - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvInt64 returns environment variable as int64 or default.
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int64 value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as time.Duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}

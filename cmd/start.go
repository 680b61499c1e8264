package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"iplist-automanage/core/loader"
	"iplist-automanage/core/logger"
	"iplist-automanage/core/middleware/auth"
	"iplist-automanage/core/middleware/rayid"
	"iplist-automanage/feature/integrity"
	"iplist-automanage/feature/iplist"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "iplist-automanage/docs/swagger"
)

// @title DNA IP List Auto-Manage API
// @version 1.0
// @description API for planning DNA IP list reconciliations and browsing recorded runs.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the iplist-automanage server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration and Logger
		rt, err := loadRuntime()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		cfg, logg := rt.cfg, rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Connect to the history database (Optional)
		db, _ := rt.historyDB(false)
		if db != nil {
			if err := iplist.NewHistory(db).Migrate(context.Background()); err != nil {
				logg.Warn("History migration failed", zap.Error(err))
			} else {
				logg.Info("Connected to history database", zap.String("driver", cfg.Database.Driver))
			}
		}

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 4. Initialize Storage
		store := rt.storageClient()

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(iplist.NewFeature(store, cfg.Storage.Bucket, logg, db, cfg.Reconcile))
		mgr.Register(integrity.NewFeature(store, cfg.Storage, logg, db, cfg.Reconcile.Inputs()))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, PublicPrefixes: []string{"/swagger"}}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

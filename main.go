package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Rahmadjon0038/new-lms/app/blobs"
	"github.com/Rahmadjon0038/new-lms/app/cache"
	"github.com/Rahmadjon0038/new-lms/app/client"
	"github.com/Rahmadjon0038/new-lms/app/config"
	"github.com/Rahmadjon0038/new-lms/app/data"
	"github.com/Rahmadjon0038/new-lms/app/prefs"
	"github.com/Rahmadjon0038/new-lms/app/routes/attendance"
	"github.com/Rahmadjon0038/new-lms/app/routes/auth"
	"github.com/Rahmadjon0038/new-lms/app/routes/dashboard"
	"github.com/Rahmadjon0038/new-lms/app/routes/expenses"
	"github.com/Rahmadjon0038/new-lms/app/routes/guides"
	"github.com/Rahmadjon0038/new-lms/app/routes/payments"
	"github.com/Rahmadjon0038/new-lms/app/routes/salary"
	"github.com/Rahmadjon0038/new-lms/app/routes/subjects"
	"github.com/Rahmadjon0038/new-lms/app/routes/teachers"
	"github.com/Rahmadjon0038/new-lms/app/services"
	"github.com/Rahmadjon0038/new-lms/app/web"
)

func newLogger(debug bool) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal("Failed to init logger:", err)
	}
	return l
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg := newLogger(cfg.Debug)
	defer func() { _ = lg.Sync() }()
	lg.Info("starting", zap.String("backend", cfg.BackendURL), zap.String("cache", cfg.Cache.Driver))

	// Stores: Redis when configured, process memory otherwise
	var (
		rdb          *redis.Client
		cacheStore   cache.Store
		prefsBackend prefs.Backend
		sessStorage  fiber.Storage
		jobs         []services.Job
	)
	if cfg.Cache.Driver == "redis" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			lg.Fatal("redis unreachable", zap.String("addr", cfg.Cache.RedisAddr), zap.Error(err))
		}
		cancel()
		cacheStore = cache.NewRedis(rdb, "")
		prefsBackend = prefs.NewRedis(rdb, "")
		sessStorage = web.NewRedisStorage(rdb, "")
	} else {
		mem := cache.NewMemory()
		cacheStore = mem
		prefsBackend = prefs.NewMemory()
		jobs = append(jobs, services.Job{Name: "cache", Spec: "@every 5m", Sweeper: mem})
	}

	qc := cache.New(cacheStore, cfg.Cache.TTL, lg)
	api := client.New(client.Options{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.BackendTimeout,
		Logger:  lg,
		Debug:   cfg.Debug,
	})
	registry := blobs.NewRegistry(cfg.BlobTTL)
	jobs = append(jobs, services.Job{Name: "blobs", Spec: "@every 1m", Sweeper: registry})

	deps := &web.Deps{
		Config:   cfg,
		Data:     data.New(api, qc, lg),
		Cache:    qc,
		Prefs:    prefs.NewStore(prefsBackend, lg),
		Blobs:    registry,
		Sessions: web.NewSessions(sessStorage, cfg.DraftTTL, cfg.CookieSecure),
		Log:      lg,
	}

	// Start background scheduler
	sched, err := services.StartScheduler(lg, jobs...)
	if err != nil {
		lg.Fatal("scheduler", zap.Error(err))
	}

	// Initialize template engine
	engine := html.New(cfg.TemplatesDir, ".html")
	engine.AddFuncMap(web.Funcs())
	engine.Reload(cfg.Debug)
	engine.Debug(false)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		Views:                 engine,
		ViewsLayout:           "layouts/main",
		ErrorHandler:          web.ErrorHandler(lg),
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: !cfg.Debug,
		BodyLimit:             32 * 1024 * 1024,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(web.RequestID(lg))
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Static files
	app.Static("/static", cfg.StaticDir)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// Routes
	app.Get("/", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		return c.Redirect(auth.HomeFor(web.User(c).Role))
	})

	auth.SetupAuthRoutes(app, deps)
	dashboard.SetupDashboardRoutes(app, deps)
	attendance.SetupAttendanceRoutes(app, deps)
	payments.SetupPaymentsRoutes(app, deps)
	salary.SetupSalaryRoutes(app, deps)
	subjects.SetupSubjectsRoutes(app, deps)
	teachers.SetupTeachersRoutes(app, deps)
	expenses.SetupExpensesRoutes(app, deps)
	guides.SetupGuidesRoutes(app, deps)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	go func() {
		lg.Info("listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			lg.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	<-sched.Stop().Done()
	if rdb != nil {
		_ = rdb.Close()
	}
	lg.Info("stopped")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/gst-invoice-api/internal/application/billing"
	infracache "github.com/jhoicas/gst-invoice-api/internal/infrastructure/cache"
	infraevents "github.com/jhoicas/gst-invoice-api/internal/infrastructure/events"
	inframetrics "github.com/jhoicas/gst-invoice-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/gst-invoice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gst-invoice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gst-invoice-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/gst-invoice-api/internal/interfaces/http"
	"github.com/jhoicas/gst-invoice-api/pkg/config"
	"github.com/jhoicas/gst-invoice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	defaults, err := billingDefaults(cfg.Billing)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de facturación GST")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración de esquema")
	}

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := inframetrics.New(reg)

	// Caché y eventos son opcionales: sin REDIS_ADDR / KAFKA_BROKERS el servicio funciona igual.
	var invoiceCache billing.InvoiceCache
	var redisCache *infracache.RedisInvoiceCache
	if cfg.Redis.Enabled() {
		client := infracache.NewRedisClient(cfg.Redis)
		defer client.Close()
		redisCache = infracache.NewRedisInvoiceCache(client, cfg.Redis.TTL, log)
		invoiceCache = redisCache
		log.Info().Str("addr", cfg.Redis.Addr).Msg("caché Redis activa")
	}
	var publisher billing.InvoiceEventPublisher
	if cfg.Kafka.Enabled() {
		kp := infraevents.NewKafkaPublisher(infraevents.NewKafkaWriter(cfg.Kafka), log)
		defer kp.Close()
		publisher = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("eventos Kafka activos")
	}

	calculateUC := billing.NewCalculateUseCase(defaults, metrics)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, invoiceCache, publisher, metrics, defaults, log)
	documentUC := billing.NewDocumentUseCase(
		invoiceRepo,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		spreadsheet.NewXLSXExporter(log),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware(metrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GST Invoice API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		checks := fiber.Map{"db": "ok"}
		healthy := true
		if err := pool.Ping(c.UserContext()); err != nil {
			checks["db"] = err.Error()
			healthy = false
		}
		if redisCache != nil {
			checks["redis"] = "ok"
			if err := redisCache.Ping(c.UserContext()); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			}
		}
		if !healthy {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name, "checks": checks})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "checks": checks})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Calculate: calculateUC,
		Invoices:  invoiceUC,
		Documents: documentUC,
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

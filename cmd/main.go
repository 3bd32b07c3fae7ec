package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"claim-service/internal/ai/gemini"
	"claim-service/internal/config"
	"claim-service/internal/database/minio"
	"claim-service/internal/database/postgres"
	"claim-service/internal/database/redis"
	"claim-service/internal/event"
	"claim-service/internal/handlers"
	"claim-service/internal/repository"
	"claim-service/internal/services"
	"claim-service/internal/worker"

	"github.com/gofiber/fiber/v3"
)

func setupLogging(logDir string) (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	fmt.Println("Log directory:", logDir)
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	if absPath, err := filepath.Abs(logFile); err == nil {
		fmt.Printf("Log file at absolute path: %s\n", absPath)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	slog.SetDefault(slog.New(slog.NewJSONHandler(file, nil)))

	return file, nil
}

func main() {
	cfg := config.New()

	logFile, err := setupLogging(cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	slog.Info("Connecting to PostgreSQL",
		"host", cfg.PostgresCfg.Host, "port", cfg.PostgresCfg.Port,
		"user", cfg.PostgresCfg.Username, "dbname", cfg.PostgresCfg.DBname)
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		slog.Error("error connect to database", "error", err)
		postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}
	defer db.Close()

	assessmentRepo := repository.NewDamageAssessmentRepository(db)
	customTemplateRepo := repository.NewCustomClaimTemplateRepository(db)

	catalog, err := services.NewTemplateCatalog()
	if err != nil {
		log.Fatalf("Failed to load claim template catalog: %v", err)
	}

	// Redis is optional; templates are served straight from the catalog without it.
	var templateCache services.TemplateCache
	redisClient, err := redis.NewRedisClient(cfg.RedisCfg)
	if err != nil {
		slog.Warn("Redis unavailable, template caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		cache := repository.NewClaimTemplateCache(redisClient.GetClient())
		pruneCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if pruned, err := cache.PruneStale(pruneCtx, catalog.Version()); err != nil {
			slog.Warn("Failed to prune stale template cache entries", "error", err)
		} else if pruned > 0 {
			slog.Info("Pruned stale template cache entries", "count", pruned, "version", catalog.Version())
		}
		cancel()
		templateCache = cache
	}

	minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	// Notifications go through the shared notification service queue. Without
	// RabbitMQ the service runs with notifications switched off.
	var (
		publisher          *event.NotificationPublisher
		assessmentNotifier services.AssessmentNotifier
		documentNotifier   services.DocumentNotifier
		followUpNotifier   worker.FollowUpNotifier
	)
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		slog.Warn("RabbitMQ unavailable, notifications disabled", "error", err)
	} else {
		defer rabbitConn.Close()
		publisher = event.NewNotificationPublisher(rabbitConn)
		helper := event.NewNotificationHelper(publisher)
		assessmentNotifier = helper
		documentNotifier = helper
		followUpNotifier = helper
	}

	aiCtx, aiCancel := context.WithTimeout(context.Background(), 30*time.Second)
	geminiClients := gemini.NewGenAIClients(aiCtx, cfg.GeminiAPICfg.APIKeys, cfg.GeminiAPICfg.FlashName)
	aiCancel()
	selector := gemini.NewGeminiClientSelector(geminiClients)
	defer selector.Close()
	if selector.GetClientCount() == 0 {
		slog.Warn("No Gemini clients configured, severity suggestions use keyword matching")
	}
	suggester := services.NewSeveritySuggester(gemini.NewGenerator(selector))

	poolCtx, poolCancel := context.WithCancel(context.Background())
	var poolWg sync.WaitGroup
	documentPool := worker.NewWorkingPool(cfg.WorkerCfg.ReportWorkers, cfg.WorkerCfg.ReportQueueSize)
	poolWg.Add(1)
	go documentPool.Start(poolCtx, &poolWg)

	assessmentService := services.NewDamageAssessmentService(assessmentRepo, minioClient, assessmentNotifier, suggester)
	templateService := services.NewClaimTemplateService(catalog, templateCache, customTemplateRepo, cfg.TemplateCfg.CacheTTL)
	documentService := services.NewClaimDocumentService(templateService, minioClient, documentPool, documentNotifier)

	var scheduler *worker.FollowUpScheduler
	if followUpNotifier != nil {
		scheduler = worker.NewFollowUpScheduler(cfg.FollowUpCfg.Schedule, cfg.FollowUpCfg.AfterHours, assessmentRepo, followUpNotifier)
		if err := scheduler.Start(); err != nil {
			slog.Error("Failed to start follow-up scheduler", "error", err)
			scheduler = nil
		}
	}

	app := fiber.New(fiber.Config{
		// photos arrive base64 encoded in the JSON body
		BodyLimit: 16 << 20,
	})

	healthChecks := map[string]handlers.HealthCheck{
		"postgres": db.PingContext,
		"minio":    minioClient.Ping,
	}
	if redisClient != nil {
		healthChecks["redis"] = func(ctx context.Context) error {
			return redisClient.GetClient().Ping(ctx).Err()
		}
	}
	if rabbitConn != nil {
		healthChecks["rabbitmq"] = func(context.Context) error {
			if rabbitConn.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}
	}
	handlers.NewHealthHandler(healthChecks).Register(app)
	handlers.NewValuationHandler().Register(app)
	handlers.NewAssessmentHandler(assessmentService).Register(app)
	handlers.NewTemplateHandler(templateService).Register(app)
	handlers.NewClaimDocumentHandler(documentService).Register(app)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", cfg.Port)); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	<-shutdownChan
	slog.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("Error shutting down server", "error", err)
	}
	if scheduler != nil {
		scheduler.Stop()
	}
	poolCancel()
	poolWg.Wait()

	if publisher != nil {
		slog.Info("Notification publisher metrics", "metrics", publisher.GetMetrics())
	}
	slog.Info("Claim service stopped")
}

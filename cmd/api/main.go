package main

import (
	"context"
	"fmt"

	"aquasentry-srv/config"
	configMinio "aquasentry-srv/config/minio"
	configPostgre "aquasentry-srv/config/postgre"
	configRedis "aquasentry-srv/config/redis"
	alertRepoPG "aquasentry-srv/internal/alert/repository/postgre"
	alertUC "aquasentry-srv/internal/alert/usecase"
	deviceRepoPG "aquasentry-srv/internal/device/repository/postgre"
	digestRepoRedis "aquasentry-srv/internal/digest/repository/redis"
	digestUC "aquasentry-srv/internal/digest/usecase"
	"aquasentry-srv/internal/evaluator"
	evaluatorUC "aquasentry-srv/internal/evaluator/usecase"
	"aquasentry-srv/internal/httpserver"
	ingestUC "aquasentry-srv/internal/ingest/usecase"
	prefRepoPG "aquasentry-srv/internal/preference/repository/postgre"
	readingRepoPG "aquasentry-srv/internal/reading/repository/postgre"
	recipientUC "aquasentry-srv/internal/recipient/usecase"
	"aquasentry-srv/internal/scheduler"
	thresholdRepoPG "aquasentry-srv/internal/threshold/repository/postgre"
	thresholdUC "aquasentry-srv/internal/threshold/usecase"
	"aquasentry-srv/pkg/discord"
	"aquasentry-srv/pkg/jwt"
	"aquasentry-srv/pkg/log"
	"aquasentry-srv/pkg/mail"
)

// @Name AquaSentry Digest Service
// @description Water-quality alert evaluation and digest notification service.
// @version 1
// @host localhost:8080
// @schemes http
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()

	// Initialize PostgreSQL
	postgresDB, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer configPostgre.Disconnect(ctx, postgresDB)
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// Initialize Redis
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Error(ctx, "Failed to connect to Redis: ", err)
		return
	}
	defer redisClient.Close()
	logger.Infof(ctx, "Redis connected successfully to %s", cfg.Redis.Host)

	// Initialize the digest archive (optional)
	archiver, err := configMinio.Connect(ctx, cfg.MinIO)
	if err != nil {
		logger.Error(ctx, "Failed to connect to MinIO: ", err)
		return
	}
	if archiver != nil {
		logger.Infof(ctx, "MinIO connected successfully to %s", cfg.MinIO.Endpoint)
	}

	// Initialize Discord
	discordClient, err := discord.New(logger, &discord.DiscordWebhook{
		ID:    cfg.Discord.WebhookID,
		Token: cfg.Discord.WebhookToken,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize Discord: ", err)
		return
	}

	// Initialize the email channel
	notifier, err := mail.New(logger, mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		UseTLS:   cfg.SMTP.UseTLS,
		Timeout:  cfg.SMTP.Timeout,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize SMTP notifier: ", err)
		return
	}

	// Repositories
	alertRepo := alertRepoPG.New(logger, postgresDB)
	deviceRegistry := deviceRepoPG.New(logger, postgresDB)
	prefRepo := prefRepoPG.New(logger, postgresDB)
	readingRepo := readingRepoPG.New(logger, postgresDB)
	thresholdRepo := thresholdRepoPG.New(logger, postgresDB)
	digestRepo := digestRepoRedis.New(logger, redisClient, cfg.Digest.TxMaxRetries)

	// Usecases
	thresholds := thresholdUC.New(logger, thresholdRepo)
	alerts := alertUC.New(logger, alertRepo, deviceRegistry)
	recipients := recipientUC.New(logger, prefRepo)
	ev := evaluatorUC.New(logger, evaluator.TrendBands{
		CriticalPct: cfg.Trend.CriticalPct,
		WarningPct:  cfg.Trend.WarningPct,
	})
	digests := digestUC.New(logger, digestRepo, notifier, archiver, digestUC.Config{
		MaxItems:      cfg.Digest.MaxItems,
		MaxAttempts:   cfg.Digest.MaxAttempts,
		Cooldown:      cfg.Digest.Cooldown,
		PageSize:      int64(cfg.Digest.PageSize),
		PublicBaseURL: cfg.HTTPServer.PublicBaseURL,
	})
	pipeline := ingestUC.New(logger, readingRepo, thresholds, ev, alerts, recipients, digests)

	// Background dispatch
	digestScheduler := scheduler.New(logger, digests, discordClient, cfg.Digest.SchedulerInterval)

	// Initialize HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port: cfg.HTTPServer.Port,
		Mode: cfg.HTTPServer.Mode,

		IngestUC:    pipeline,
		DigestUC:    digests,
		AlertUC:     alerts,
		ThresholdUC: thresholds,

		Scheduler: digestScheduler,

		JWTValidator: jwt.NewValidator(jwt.Config{SecretKey: cfg.JWT.SecretKey}),
		InternalKey:  cfg.InternalConfig.InternalKey,

		DB:      postgresDB,
		Redis:   redisClient,
		Discord: discordClient,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "HTTP server stopped with error: ", err)
	}
}

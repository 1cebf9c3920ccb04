package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"battle-royale-service/internal/app"
	"battle-royale-service/internal/auth"
	"battle-royale-service/internal/config"
	"battle-royale-service/internal/infra/memory"
	pgstore "battle-royale-service/internal/infra/postgres"
	infraredis "battle-royale-service/internal/infra/redis"
	"battle-royale-service/internal/logging"
	transport "battle-royale-service/internal/transport/http"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	defaultQuestionTTL = 10 * time.Minute
	defaultRoomTTL     = time.Hour
	defaultTokenTTL    = 24 * time.Hour
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the battle server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func redisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func battleSettings(cfg config.Config) app.Settings {
	settings := app.DefaultSettings()
	settings.Capacity = cfg.Battle.Capacity
	settings.SurvivorLimit = cfg.Battle.Survivors
	settings.QuestionCount = cfg.Battle.QuestionCount
	settings.QuestionWindow = config.TTLDuration(cfg.Battle.QuestionWindow, settings.QuestionWindow)
	if len(cfg.Battle.Rewards) > 0 {
		settings.Rewards = app.RewardTable(cfg.Battle.Rewards)
	}
	return settings
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrations(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}

	client := redisClient(cfg)
	if client != nil {
		defer client.Close()
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.QuestionLoader = memory.NewStaticQuestionLoader(memory.SampleQuestions())
	var results app.ResultStore = memory.NewResultStore()
	if pool != nil {
		loader = pgstore.NewQuestionLoader(pool)
		results = pgstore.NewResultStore(pool)
	}

	questionTTL := config.TTLDuration(cfg.Questions.TTL, defaultQuestionTTL)
	var questions app.QuestionBank
	var rooms app.RoomRepository
	if client != nil {
		questions = infraredis.NewQuestionBank(client, loader, questionTTL)
		rooms = infraredis.NewRoomStore(client, config.TTLDuration(cfg.Redis.TTL, defaultRoomTTL))
	} else {
		questions = memory.NewQuestionBank(loader, questionTTL)
		rooms = memory.NewRoomStore()
	}

	service := app.NewBattleService(rooms, questions, results, battleSettings(cfg))
	if client != nil {
		service.SetPublisher(infraredis.NewEventPublisher(client))
	}

	var issuer *auth.Issuer
	if cfg.Auth.JWTSecret != "" {
		issuer = auth.NewIssuer(cfg.Auth.JWTSecret, config.TTLDuration(cfg.Auth.TokenTTL, defaultTokenTTL))
	} else {
		log.Warn("auth.jwtSecret empty, player ids are taken from requests")
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     transport.NewRouter(service, issuer, cfg.Battle.Leaderboard),
		ReadTimeout: 15 * time.Second,
	}

	go func() {
		log.WithField("port", finalPort).Info("starting battle service")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server...")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

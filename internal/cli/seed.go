package cli

import (
	"fmt"

	"battle-royale-service/internal/config"
	"battle-royale-service/internal/infra/memory"
	pgstore "battle-royale-service/internal/infra/postgres"
	infraredis "battle-royale-service/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewSeedCmd loads the sample question bank into Postgres and drops cached pools.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the question bank with the sample Kannada questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if err := runMigrations(ctx, cfg); err != nil {
				return err
			}

			pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer pool.Close()

			questions := memory.SampleQuestions()
			if err := pgstore.SeedQuestions(ctx, pool, questions); err != nil {
				return err
			}
			log.WithField("questions", len(questions)).Info("question bank seeded")

			if client := redisClient(cfg); client != nil {
				defer client.Close()
				ttl := config.TTLDuration(cfg.Questions.TTL, defaultQuestionTTL)
				if err := infraredis.NewQuestionBank(client, nil, ttl).Invalidate(ctx); err != nil {
					log.WithError(err).Warn("invalidate cached question pools")
				}
			}
			return nil
		},
	}
}

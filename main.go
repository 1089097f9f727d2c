package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/app"
	"github.com/RubachokBoss/tutoring-center/internal/auth"
	"github.com/RubachokBoss/tutoring-center/internal/config"
	"github.com/RubachokBoss/tutoring-center/internal/database"
	"github.com/RubachokBoss/tutoring-center/internal/models"
	"github.com/RubachokBoss/tutoring-center/pkg/logger"
)

func main() {
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	migrateDirection := migrateCmd.String("direction", "up", "direction of migration (up/down)")
	migrateForce := migrateCmd.Int("force", -1, "force the recorded version and exit")

	tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
	tokenUser := tokenCmd.Int64("user", 0, "user id to issue the token for")
	tokenRole := tokenCmd.String("role", models.RoleStudent.String(), "role (STUDENT/TEACHER)")

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			migrateCmd.Parse(os.Args[2:])
			runMigrations(*migrateDirection, *migrateForce)
			return
		case "token":
			tokenCmd.Parse(os.Args[2:])
			issueToken(*tokenUser, *tokenRole)
			return
		case "serve":
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q, expected serve, migrate or token\n", os.Args[1])
			os.Exit(2)
		}
	}

	cfg, log := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create application")
	}

	go func() {
		if err := application.Run(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run application")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown gracefully")
	}

	log.Info().Msg("Tutoring center stopped")
}

func loadConfig() (*config.Config, zerolog.Logger) {
	cfg, err := config.Load()
	if err != nil {
		log := logger.New()
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	return cfg, logger.NewWithConfig(cfg.Logging.Level, cfg.Logging.Pretty, cfg.Logging.NoColor)
}

func runMigrations(direction string, force int) {
	cfg, log := loadConfig()

	migrator, err := database.NewMigrator(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create migrator")
	}

	if force >= 0 {
		if err := migrator.Force(force); err != nil {
			log.Fatal().Err(err).Msg("Failed to force migration version")
		}
		log.Info().Int("version", force).Msg("Migration version forced")
		return
	}

	switch direction {
	case "up":
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
		log.Info().Msg("Migrations applied successfully")
	case "down":
		if err := migrator.Down(); err != nil {
			log.Fatal().Err(err).Msg("Failed to rollback migrations")
		}
		log.Info().Msg("Migrations rolled back successfully")
	default:
		log.Fatal().Msg("Invalid migration direction. Use 'up' or 'down'")
	}
}

// issueToken prints a bearer token for local testing.
func issueToken(userID int64, role string) {
	cfg, log := loadConfig()

	if userID <= 0 || !models.IsValidRole(role) {
		log.Fatal().Int64("user_id", userID).Str("role", role).Msg("A positive -user and a valid -role are required")
	}

	resolver := auth.NewResolver(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	token, err := resolver.IssueToken(models.Caller{UserID: userID, Role: models.Role(role)}, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to issue token")
	}
	fmt.Println(token)
}

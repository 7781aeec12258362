package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"banker/bot"
	"banker/config"
	"banker/cooldown"
	"banker/database"
	"banker/events"
	"banker/repository"
	"banker/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting banker bot...")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	eventBus := events.NewBus()

	// Every balance mutation lands in the log as an audit trail.
	eventBus.Subscribe(events.EventTypeBalanceChange, func(_ context.Context, event events.Event) {
		if ev, ok := event.(events.BalanceChangeEvent); ok {
			log.WithFields(log.Fields{
				"userID":     ev.UserID,
				"oldBalance": ev.OldBalance,
				"newBalance": ev.NewBalance,
				"change":     ev.ChangeAmount,
				"reason":     ev.Reason,
			}).Info("Balance changed")
		}
	})

	var ledger service.LedgerRepository
	var db *database.DB

	switch cfg.LedgerBackend {
	case config.BackendPostgres:
		log.Info("Connecting to database...")
		db, err = database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		ledger = repository.NewPostgresStore(db)
		log.Info("Using postgres ledger backend")
	default:
		ledger = repository.NewFileStore(cfg.LedgerFile)
		log.Infof("Using file ledger backend at %s", cfg.LedgerFile)
	}

	authorizer := service.NewOwnerAuthorizer(cfg.OwnerID)
	economy := service.NewEconomyService(ledger, authorizer, eventBus)
	gate := cooldown.NewGate()

	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token: cfg.DiscordToken,
		AppID: cfg.DiscordAppID,
	}, economy, gate)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Bot is active and commands are registered")

	// Wait for context cancellation
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	if db != nil {
		log.Info("Closing database connection...")
		db.Close()
	}

	// Give async event handlers a moment to drain
	time.Sleep(1 * time.Second)
	log.Info("Shutdown completed")

	return nil
}

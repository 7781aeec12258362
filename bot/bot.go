package bot

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"banker/bot/common"
	"banker/cooldown"
	"banker/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token string
	AppID string
}

// commandCooldowns maps command names to their minimum reuse interval.
// Commands absent from the map pass the gate unconditionally.
var commandCooldowns = map[string]time.Duration{
	"daily": service.DailyCooldown,
}

type Bot struct {
	config  Config
	session *discordgo.Session
	economy service.EconomyService
	gate    *cooldown.Gate
	done    chan struct{}
}

func New(config Config, economy service.EconomyService, gate *cooldown.Gate) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		config:  config,
		session: dg,
		economy: economy,
		gate:    gate,
		done:    make(chan struct{}),
	}

	dg.AddHandler(bot.handleCommands)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Infof("Ready! Logged in as %s#%s", r.User.Username, r.User.Discriminator)
	})

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Start periodic cleanup of elapsed cooldown stamps
	go bot.startGateSweeper()

	return bot, nil
}

func (b *Bot) Close() error {
	close(b.done)
	return b.session.Close()
}

// startGateSweeper drops elapsed cooldown entries on a fixed interval
func (b *Bot) startGateSweeper() {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.gate.Sweep()
		case <-b.done:
			return
		}
	}
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name

	// Any fault past this point is contained to the one invocation.
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"command": name,
				"panic":   r,
			}).Error("Command handler panicked")
			if err := common.RespondWithMessage(s, i, "There was an error while executing this command!", true); err != nil {
				log.Errorf("Error sending failure reply: %v", err)
			}
		}
	}()

	invoker := interactionUser(i)
	if invoker == nil {
		return
	}

	if window, gated := commandCooldowns[name]; gated {
		allowed, wait := b.gate.CheckAndStamp(name, invoker.ID, window)
		if !allowed {
			message := fmt.Sprintf("⏳ Please wait %s before reusing the `%s` command.", wait, name)
			if err := common.RespondWithMessage(s, i, message, true); err != nil {
				log.Errorf("Error sending cooldown reply: %v", err)
			}
			return
		}
	}

	switch name {
	case "balance":
		b.handleBalance(s, i)
	case "daily":
		b.handleDaily(s, i)
	case "bet":
		b.handleBet(s, i)
	case "addbalance":
		b.handleAddBalance(s, i)
	case "deductbalance":
		b.handleDeductBalance(s, i)
	}
}

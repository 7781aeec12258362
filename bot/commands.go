package bot

import (
	"fmt"

	"banker/service"

	"github.com/bwmarrin/discordgo"
)

func commandDefinitions() []*discordgo.ApplicationCommand {
	minBet := float64(service.MinBetAmount)
	minAdjust := float64(1)

	return []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Check your or another user's balance.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user whose balance you want to see.",
					Required:    false,
				},
			},
		},
		{
			Name:        "daily",
			Description: "Claim your daily 1 Robux.",
		},
		{
			Name:        "bet",
			Description: "Bet your Robux for a chance to double it!",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: fmt.Sprintf("The amount of Robux you want to bet (max %d).", service.MaxBetAmount),
					Required:    true,
					MinValue:    &minBet,
					MaxValue:    float64(service.MaxBetAmount),
				},
			},
		},
		{
			Name:        "addbalance",
			Description: "[Owner Only] Add Robux to a user's balance.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user to give Robux to.",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "The amount to give.",
					Required:    true,
					MinValue:    &minAdjust,
				},
			},
		},
		{
			Name:        "deductbalance",
			Description: "[Owner Only] Deduct Robux from a user's balance.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "The user to take Robux from.",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "The amount to deduct.",
					Required:    true,
					MinValue:    &minAdjust,
				},
			},
		},
	}
}

// registerCommands replaces the application's global command set with ours
func (b *Bot) registerCommands() error {
	commands := commandDefinitions()

	_, err := b.session.ApplicationCommandBulkOverwrite(b.config.AppID, "", commands)
	if err != nil {
		return fmt.Errorf("failed to register application commands: %w", err)
	}

	return nil
}

package bot

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"banker/bot/common"

	"github.com/bwmarrin/discordgo"
)

const (
	colorGold  = 0xF1C40F
	colorGreen = 0x57F287
	colorRed   = 0xED4245
)

func (b *Bot) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	target := interactionUser(i)
	if opt, ok := optionMap(i)["user"]; ok {
		target = opt.UserValue(s)
	}

	balance, err := b.economy.Balance(ctx, target.ID)
	if err != nil {
		log.WithFields(log.Fields{
			"userID": target.ID,
			"error":  err,
		}).Error("Failed to get balance")
		if err := common.RespondWithError(s, i, "Unable to retrieve balance. Please try again."); err != nil {
			log.Errorf("Error responding to balance command: %v", err)
		}
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("💰 %s's Balance", target.Username),
		Description: fmt.Sprintf("They have **%s** Robux.", common.FormatBalance(balance)),
		Color:       colorGold,
	}

	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}

package bot

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"banker/bot/common"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	invoker := interactionUser(i)

	result, err := b.economy.ClaimDaily(ctx, invoker.ID)
	if err != nil {
		log.WithFields(log.Fields{
			"userID": invoker.ID,
			"error":  err,
		}).Error("Failed to grant daily reward")
		if err := common.RespondWithError(s, i, "Unable to claim your daily reward. Please try again."); err != nil {
			log.Errorf("Error responding to daily command: %v", err)
		}
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🎉 Daily Reward Claimed!",
		Description: fmt.Sprintf("You have received **%s** Robux.\nYour new balance is now **%s** Robux.",
			common.FormatBalance(result.Reward), common.FormatBalance(result.NewBalance)),
		Color: colorGreen,
	}

	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Error responding to daily command: %v", err)
	}
}

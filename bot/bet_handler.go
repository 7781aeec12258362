package bot

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"banker/bot/common"
	"banker/service"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleBet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	invoker := interactionUser(i)

	opt, ok := optionMap(i)["amount"]
	if !ok {
		if err := common.RespondWithError(s, i, "You must specify an amount to bet."); err != nil {
			log.Errorf("Error responding to bet command: %v", err)
		}
		return
	}
	amount := opt.IntValue()

	result, err := b.economy.PlaceBet(ctx, invoker.ID, amount)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientBalance) {
			if err := common.RespondWithError(s, i, "You don't have enough Robux to make that bet."); err != nil {
				log.Errorf("Error responding to bet command: %v", err)
			}
			return
		}
		log.WithFields(log.Fields{
			"userID": invoker.ID,
			"amount": amount,
			"error":  err,
		}).Error("Failed to place bet")
		if err := common.RespondWithError(s, i, "Unable to place your bet. Please try again."); err != nil {
			log.Errorf("Error responding to bet command: %v", err)
		}
		return
	}

	var embed *discordgo.MessageEmbed
	if result.Won {
		embed = &discordgo.MessageEmbed{
			Title: "🎉 You Won!",
			Description: fmt.Sprintf("You bet **%s** and won! You doubled your stake.\nYour new balance is **%s** Robux.",
				common.FormatBalance(result.BetAmount), common.FormatBalance(result.NewBalance)),
			Color: colorGreen,
		}
	} else {
		embed = &discordgo.MessageEmbed{
			Title: "💀 You Lost!",
			Description: fmt.Sprintf("You bet **%s** and lost it all.\nYour new balance is **%s** Robux.",
				common.FormatBalance(result.BetAmount), common.FormatBalance(result.NewBalance)),
			Color: colorRed,
		}
	}

	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Error responding to bet command: %v", err)
	}
}

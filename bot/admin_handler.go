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

func (b *Bot) handleAddBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handleAdminAdjust(s, i, "added", "to", b.economy.Mint)
}

func (b *Bot) handleDeductBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handleAdminAdjust(s, i, "deducted", "from", b.economy.Confiscate)
}

type adjustFunc func(ctx context.Context, actorID, targetID string, amount int64) (int64, error)

func (b *Bot) handleAdminAdjust(s *discordgo.Session, i *discordgo.InteractionCreate, verb, preposition string, adjust adjustFunc) {
	ctx := context.Background()
	invoker := interactionUser(i)

	options := optionMap(i)
	userOpt, hasUser := options["user"]
	amountOpt, hasAmount := options["amount"]
	if !hasUser || !hasAmount {
		if err := common.RespondWithError(s, i, "You must specify a user and an amount."); err != nil {
			log.Errorf("Error responding to admin command: %v", err)
		}
		return
	}

	target := userOpt.UserValue(s)
	amount := amountOpt.IntValue()

	newBalance, err := adjust(ctx, invoker.ID, target.ID, amount)
	if err != nil {
		if errors.Is(err, service.ErrNotAuthorized) {
			if err := common.RespondWithMessage(s, i, "🚫 You do not have permission to use this command.", true); err != nil {
				log.Errorf("Error responding to admin command: %v", err)
			}
			return
		}
		log.WithFields(log.Fields{
			"actorID":  invoker.ID,
			"targetID": target.ID,
			"amount":   amount,
			"error":    err,
		}).Error("Failed to adjust balance")
		if err := common.RespondWithError(s, i, "Unable to adjust the balance. Please try again."); err != nil {
			log.Errorf("Error responding to admin command: %v", err)
		}
		return
	}

	message := fmt.Sprintf("✅ Successfully %s **%s** Robux %s %s. Their new balance is **%s**.",
		verb, common.FormatBalance(amount), preposition, target.Username, common.FormatBalance(newBalance))
	if err := common.RespondWithMessage(s, i, message, true); err != nil {
		log.Errorf("Error responding to admin command: %v", err)
	}
}

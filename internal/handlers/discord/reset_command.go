package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	apperrors "github.com/hunterguild/system-bot/internal/errors"
	"github.com/hunterguild/system-bot/internal/services/progression"
)

// ResetCommand wipes a player's progress back to defaults
type ResetCommand struct {
	BaseCommand
	bot *Bot
}

// NewResetCommand creates a new reset command handler
func NewResetCommand(bot *Bot) *ResetCommand {
	return &ResetCommand{
		BaseCommand: BaseCommand{
			Name:        "reset",
			Description: "Reset a hunter's progress (Guild Master only)",
		},
		bot: bot,
	}
}

// GetCommand returns the reset command definition
func (c *ResetCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The hunter whose progress to reset",
				Required:    true,
			},
		},
	}
}

// Handle processes the reset command
func (c *ResetCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	userID, _ := interactionUser(i)
	if !c.bot.isHost(userID) {
		return RespondWithEphemeralMessage(s, i, "Only the Guild Master can reset a hunter's progress.")
	}

	var target *discordgo.User
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "user" {
			target = opt.UserValue(s)
		}
	}

	if target == nil {
		return RespondWithEphemeralMessage(s, i, "Please specify which hunter to reset.")
	}

	if _, err := c.bot.progressionService.ResetPlayer(context.Background(), &progression.ResetPlayerInput{
		PlayerID: target.ID,
	}); err != nil {
		if apperrors.IsAlreadyDone(err) {
			return RespondWithEphemeralMessage(s, i,
				fmt.Sprintf("**%s** has no progress to reset.", target.Username))
		}
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	return RespondWithMessage(s, i,
		fmt.Sprintf("**%s**'s progress has been reset. They start again as an E-Rank hunter.", target.Username))
}

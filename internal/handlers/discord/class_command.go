package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	apperrors "github.com/hunterguild/system-bot/internal/errors"
	"github.com/hunterguild/system-bot/internal/models"
	"github.com/hunterguild/system-bot/internal/services/progression"
)

// ClassCommand lets an eligible player choose their permanent class
type ClassCommand struct {
	BaseCommand
	bot *Bot
}

// NewClassCommand creates a new class command handler
func NewClassCommand(bot *Bot) *ClassCommand {
	return &ClassCommand{
		BaseCommand: BaseCommand{
			Name:        "class",
			Description: "Choose your hunter class (level 10 required)",
		},
		bot: bot,
	}
}

// Handle processes the class command
func (c *ClassCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	userID, _ := interactionUser(i)

	player, err := c.bot.progressionService.GetPlayer(ctx, &progression.GetPlayerInput{
		PlayerID: userID,
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	if player.Player.Class != models.ClassNone {
		return RespondWithEphemeralMessage(s, i,
			fmt.Sprintf("You have already chosen the **%s** class. Class selection is permanent.", player.Player.Class))
	}

	if player.Player.Level < progression.ClassUnlockLevel {
		return RespondWithEphemeralMessage(s, i,
			fmt.Sprintf("You must reach **Level %d** to choose a class. You are currently Level %d.",
				progression.ClassUnlockLevel, player.Player.Level))
	}

	return RespondWithEphemeralEmbed(s, i, renderClassPrompt(), classSelectionComponents(userID))
}

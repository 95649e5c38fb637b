package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	apperrors "github.com/hunterguild/system-bot/internal/errors"
	"github.com/hunterguild/system-bot/internal/services/progression"
)

// StatusCommand shows a player their hunter profile
type StatusCommand struct {
	BaseCommand
	bot *Bot
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(bot *Bot) *StatusCommand {
	return &StatusCommand{
		BaseCommand: BaseCommand{
			Name:        "status",
			Description: "View your hunter status card",
		},
		bot: bot,
	}
}

// Handle processes the status command
func (c *StatusCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	userID, username := interactionUser(i)

	player, err := c.bot.progressionService.GetPlayer(ctx, &progression.GetPlayerInput{
		PlayerID: userID,
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	if err := RespondWithEmbed(s, i, renderStatus(player.Player, username)); err != nil {
		return err
	}

	// Standing class offer for anyone who reached level 10 without choosing
	can, err := c.bot.progressionService.CanSelectClass(ctx, &progression.CanSelectClassInput{
		PlayerID: userID,
	})
	if err != nil {
		log.Printf("Error checking class eligibility for %s: %v", userID, err)
		return nil
	}

	if !can.CanSelect {
		return nil
	}

	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Flags:      discordgo.MessageFlagsEphemeral,
		Embeds:     []*discordgo.MessageEmbed{renderClassPrompt()},
		Components: classSelectionComponents(userID),
	}); err != nil {
		log.Printf("Error sending class offer to %s: %v", userID, err)
	}

	return nil
}

package discord

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	apperrors "github.com/hunterguild/system-bot/internal/errors"
	"github.com/hunterguild/system-bot/internal/models"
	questService "github.com/hunterguild/system-bot/internal/services/quest"
	reviewService "github.com/hunterguild/system-bot/internal/services/review"
)

// QuestsCommand handles the quest board: listing, posting and accepting
type QuestsCommand struct {
	BaseCommand
	bot *Bot
}

// NewQuestsCommand creates a new quests command handler
func NewQuestsCommand(bot *Bot) *QuestsCommand {
	return &QuestsCommand{
		BaseCommand: BaseCommand{
			Name:        "quests",
			Description: "Browse, post and accept quests",
		},
		bot: bot,
	}
}

// GetCommand returns the quests command definition with its subcommands
func (c *QuestsCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "View the quest board",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "create",
				Description: "Post a new quest (Guild Master only)",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "accept",
				Description: "Accept a quest from the board",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "quest_id",
						Description: "The ID of the quest to accept",
						Required:    true,
					},
				},
			},
		},
	}
}

// Handle dispatches the quests subcommands
func (c *QuestsCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return RespondWithEphemeralMessage(s, i, "Please specify a subcommand: list, create, or accept.")
	}

	switch options[0].Name {
	case "list":
		return c.handleList(s, i)
	case "create":
		return c.handleCreate(s, i)
	case "accept":
		return c.handleAccept(s, i, options[0].Options)
	default:
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Unknown subcommand: %s", options[0].Name))
	}
}

// handleList shows the quest board
func (c *QuestsCommand) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	active, err := c.bot.questService.ListActive(context.Background(), &questService.ListActiveInput{})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	return RespondWithEmbed(s, i, renderQuestBoard(active.Quests))
}

// handleCreate opens the quest creation form for the Guild Master
func (c *QuestsCommand) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	userID, _ := interactionUser(i)
	if !c.bot.isHost(userID) {
		return RespondWithEphemeralMessage(s, i, "Only the Guild Master can create quests.")
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "quest_title",
					Label:       "Quest Title",
					Style:       discordgo.TextInputShort,
					Placeholder: "Clear the Goblin Den",
					Required:    true,
					MaxLength:   100,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "quest_rank",
					Label:       "Rank (E, D, C, B, A, S)",
					Style:       discordgo.TextInputShort,
					Placeholder: "C",
					Required:    true,
					MaxLength:   1,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "quest_description",
					Label:       "Description",
					Style:       discordgo.TextInputParagraph,
					Placeholder: "Describe the quest objectives...",
					Required:    true,
					MaxLength:   1000,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "quest_xp",
					Label:       "XP Reward",
					Style:       discordgo.TextInputShort,
					Placeholder: "500",
					Required:    true,
					MaxLength:   6,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "quest_limits",
					Label:       "Duration(hrs),MaxParticipants (optional)",
					Style:       discordgo.TextInputShort,
					Placeholder: "24,5 (blank = no expiry, unlimited)",
					Required:    false,
					MaxLength:   20,
				},
			},
		},
	}

	return RespondWithModal(s, i, ModalQuestCreate, "Create a Quest", components)
}

// handleQuestCreateModal validates the form and posts the quest publicly
func (b *Bot) handleQuestCreateModal(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ModalSubmitInteractionData) error {
	userID, _ := interactionUser(i)
	if !b.isHost(userID) {
		return RespondWithEphemeralMessage(s, i, "Only the Guild Master can create quests.")
	}

	rank := models.Rank(strings.ToUpper(strings.TrimSpace(modalValue(data, "quest_rank"))))
	if !models.ValidQuestRank(rank) {
		return RespondWithEphemeralMessage(s, i, "Invalid rank. Use one of: E, D, C, B, A, S.")
	}

	xp, err := strconv.Atoi(strings.TrimSpace(modalValue(data, "quest_xp")))
	if err != nil || xp <= 0 {
		return RespondWithEphemeralMessage(s, i, "XP reward must be a positive number.")
	}

	durationHours, maxParticipants, err := parseQuestLimits(modalValue(data, "quest_limits"))
	if err != nil {
		return RespondWithEphemeralMessage(s, i, err.Error())
	}

	created, err := b.questService.CreateQuest(context.Background(), &questService.CreateQuestInput{
		Title:           strings.TrimSpace(modalValue(data, "quest_title")),
		Description:     strings.TrimSpace(modalValue(data, "quest_description")),
		Rank:            rank,
		XPReward:        xp,
		DurationHours:   durationHours,
		MaxParticipants: maxParticipants,
		CreatedBy:       userID,
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	return RespondWithEmbed(s, i, renderQuestPosted(created.Quest))
}

// parseQuestLimits parses the optional "duration,max" pair. Either side may
// be blank; a blank field keeps its zero default.
func parseQuestLimits(raw string) (durationHours, maxParticipants int, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, 0, nil
	}

	parts := strings.SplitN(raw, ",", 2)

	if v := strings.TrimSpace(parts[0]); v != "" {
		durationHours, err = strconv.Atoi(v)
		if err != nil || durationHours < 0 {
			return 0, 0, fmt.Errorf("duration must be a non-negative number of hours")
		}
	}

	if len(parts) == 2 {
		if v := strings.TrimSpace(parts[1]); v != "" {
			maxParticipants, err = strconv.Atoi(v)
			if err != nil || maxParticipants < 0 {
				return 0, 0, fmt.Errorf("max participants must be a non-negative number")
			}
		}
	}

	return durationHours, maxParticipants, nil
}

// handleAccept signs a player up for a quest and opens their submission
func (c *QuestsCommand) handleAccept(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) error {
	var questID string
	for _, opt := range options {
		if opt.Name == "quest_id" {
			questID = opt.StringValue()
		}
	}

	if questID == "" {
		return RespondWithEphemeralMessage(s, i, "Please provide a quest ID.")
	}

	ctx := context.Background()
	userID, username := interactionUser(i)

	check, err := c.bot.questService.CanAccept(ctx, &questService.CanAcceptInput{
		QuestID:  questID,
		PlayerID: userID,
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	if !check.CanAccept {
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(check.Reason))
	}

	accepted, err := c.bot.questService.Accept(ctx, &questService.AcceptInput{
		QuestID:  questID,
		PlayerID: userID,
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	quest := accepted.Quest

	opened, err := c.bot.reviewService.OpenSubmission(ctx, &reviewService.OpenSubmissionInput{
		Quest:     quest,
		UserID:    userID,
		Username:  username,
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
	})
	if err != nil {
		log.Printf("Error opening submission for %s on quest %s: %v", userID, questID, err)
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	if err := RespondWithMessage(s, i, fmt.Sprintf("**%s** has accepted the quest **%s**! Check your DMs for submission instructions.", username, quest.Title)); err != nil {
		return err
	}

	dmErr := c.bot.dmUser(s, userID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{renderQuestAcceptedDM(quest)},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Submit Quest Work",
						Style:    discordgo.PrimaryButton,
						CustomID: ButtonSubmitQuest + opened.Submission.ID,
						Emoji:    &discordgo.ComponentEmoji{Name: "📜"},
					},
				},
			},
		},
	})
	if dmErr != nil {
		// Acceptance already committed; tell them in the channel instead
		log.Printf("Failed to DM quest instructions to %s: %v", userID, dmErr)
		if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Flags:   discordgo.MessageFlagsEphemeral,
			Content: "I could not DM you the submission instructions. Please enable DMs from server members and contact the Guild Master.",
		}); err != nil {
			log.Printf("Failed to send DM failure notice to %s: %v", userID, err)
		}
	}

	return nil
}

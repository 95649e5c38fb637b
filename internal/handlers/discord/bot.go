package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	apperrors "github.com/hunterguild/system-bot/internal/errors"
	"github.com/hunterguild/system-bot/internal/models"
	"github.com/hunterguild/system-bot/internal/services/progression"
	questService "github.com/hunterguild/system-bot/internal/services/quest"
	reviewService "github.com/hunterguild/system-bot/internal/services/review"
)

// Button and modal custom ID prefixes. The IDs carry their target (user,
// submission or review) after the prefix, matching the messages already out
// in the wild.
const (
	ButtonPlayerAccept      = "player_accept_"
	ButtonPlayerDecline     = "player_decline_"
	ButtonSubmitQuest       = "submit_quest_"
	ButtonApproveSubmission = "approve_submission_"
	ButtonRejectSubmission  = "reject_submission_"
	ButtonClassSelect       = "class_select_"
	ButtonClassConfirm      = "class_confirm_"
	ButtonClassCancel       = "class_cancel_"
	ButtonLegacyApprove     = "approve_quest_"
	ButtonLegacyReject      = "reject_quest_"

	ModalQuestCreate     = "quest_create_modal"
	ModalQuestSubmission = "quest_submission_modal_"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config

	progressionService progression.Service
	questService       questService.Service
	reviewService      reviewService.Service
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// HostID is the Guild Master's user ID; quest creation, resets and
	// review verdicts are restricted to it
	HostID string

	// Services
	ProgressionService progression.Service
	QuestService       questService.Service
	ReviewService      reviewService.Service
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.HostID == "" {
		return nil, errors.New("host ID cannot be empty")
	}

	if cfg.ProgressionService == nil {
		return nil, errors.New("progression service cannot be nil")
	}

	if cfg.QuestService == nil {
		return nil, errors.New("quest service cannot be nil")
	}

	if cfg.ReviewService == nil {
		return nil, errors.New("review service cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:            session,
		commands:           make(map[string]CommandHandler),
		commandIDs:         make(map[string]string),
		config:             cfg,
		progressionService: cfg.ProgressionService,
		questService:       cfg.QuestService,
		reviewService:      cfg.ReviewService,
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	handlers := []CommandHandler{
		NewStatusCommand(b),
		NewQuestsCommand(b),
		NewClassCommand(b),
		NewResetCommand(b),
	}

	for _, cmd := range handlers {
		if err := b.RegisterCommand(cmd); err != nil {
			return fmt.Errorf("failed to register %s command: %w", cmd.GetName(), err)
		}
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			log.Printf("Failed to delete command %s (ID: %s): %v", cmdName, cmdID, err)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Printf("Registered command: %s with ID: %s", cmd.GetName(), createdCmd.ID)

	return nil
}

// isHost reports whether the acting user is the Guild Master
func (b *Bot) isHost(userID string) bool {
	return userID == b.config.HostID
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommandInteraction(s, i)
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Printf("Error handling component interaction: %v", err)
		}
	case discordgo.InteractionModalSubmit:
		if err := b.handleModalSubmitInteraction(s, i); err != nil {
			log.Printf("Error handling modal submit: %v", err)
		}
	}
}

// handleCommandInteraction dispatches a slash command, gating everything
// except /reset behind registration consent
func (b *Bot) handleCommandInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	cmd, ok := b.commands[name]
	if !ok {
		return
	}

	userID, _ := interactionUser(i)

	if name != "reset" {
		accepted, err := b.progressionService.IsAccepted(context.Background(), &progression.IsAcceptedInput{
			PlayerID: userID,
		})
		if err != nil {
			log.Printf("Error checking registration for %s: %v", userID, err)
			_ = RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
			return
		}

		if !accepted.Accepted {
			if err := b.sendRegistrationPrompt(s, i, userID); err != nil {
				log.Printf("Error sending registration prompt: %v", err)
			}
			return
		}
	}

	if err := cmd.Handle(s, i); err != nil {
		log.Printf("Error handling command %s: %v", name, err)
	}
}

// sendRegistrationPrompt shows the consent embed with accept/decline buttons
func (b *Bot) sendRegistrationPrompt(s *discordgo.Session, i *discordgo.InteractionCreate, userID string) error {
	return RespondWithEphemeralEmbed(s, i, renderRegistrationPrompt(), registrationComponents(userID))
}

// handleComponentInteraction routes button clicks by custom ID prefix
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	switch {
	case strings.HasPrefix(customID, ButtonPlayerAccept):
		return b.handlePlayerAccept(s, i, strings.TrimPrefix(customID, ButtonPlayerAccept))
	case strings.HasPrefix(customID, ButtonPlayerDecline):
		return b.handlePlayerDecline(s, i, strings.TrimPrefix(customID, ButtonPlayerDecline))
	case strings.HasPrefix(customID, ButtonSubmitQuest):
		return b.handleSubmitQuest(s, i, strings.TrimPrefix(customID, ButtonSubmitQuest))
	case strings.HasPrefix(customID, ButtonApproveSubmission):
		return b.handleApproveSubmission(s, i, strings.TrimPrefix(customID, ButtonApproveSubmission))
	case strings.HasPrefix(customID, ButtonRejectSubmission):
		return b.handleRejectSubmission(s, i, strings.TrimPrefix(customID, ButtonRejectSubmission))
	case strings.HasPrefix(customID, ButtonClassSelect):
		return b.handleClassSelect(s, i, strings.TrimPrefix(customID, ButtonClassSelect))
	case strings.HasPrefix(customID, ButtonClassConfirm):
		return b.handleClassConfirm(s, i, strings.TrimPrefix(customID, ButtonClassConfirm))
	case strings.HasPrefix(customID, ButtonClassCancel):
		return b.handleClassCancel(s, i, strings.TrimPrefix(customID, ButtonClassCancel))
	case strings.HasPrefix(customID, ButtonLegacyApprove):
		return b.handleLegacyApprove(s, i, strings.TrimPrefix(customID, ButtonLegacyApprove))
	case strings.HasPrefix(customID, ButtonLegacyReject):
		return b.handleLegacyReject(s, i, strings.TrimPrefix(customID, ButtonLegacyReject))
	default:
		return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}
}

// handleModalSubmitInteraction routes modal submissions by custom ID
func (b *Bot) handleModalSubmitInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ModalSubmitData()

	switch {
	case data.CustomID == ModalQuestCreate:
		return b.handleQuestCreateModal(s, i, data)
	case strings.HasPrefix(data.CustomID, ModalQuestSubmission):
		return b.handleQuestSubmissionModal(s, i, data, strings.TrimPrefix(data.CustomID, ModalQuestSubmission))
	default:
		return RespondWithEphemeralMessage(s, i, "Unknown form.")
	}
}

// handlePlayerAccept completes registration consent for the targeted player
func (b *Bot) handlePlayerAccept(s *discordgo.Session, i *discordgo.InteractionCreate, targetUserID string) error {
	userID, _ := interactionUser(i)
	if userID != targetUserID {
		return RespondWithEphemeralMessage(s, i, "This is not for you!")
	}

	if _, err := b.progressionService.AcceptRegistration(context.Background(), &progression.AcceptRegistrationInput{
		PlayerID: userID,
	}); err != nil {
		log.Printf("Error accepting registration for %s: %v", userID, err)
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	return UpdateMessage(s, i, "", []*discordgo.MessageEmbed{renderRegistrationComplete()}, []discordgo.MessageComponent{})
}

// handlePlayerDecline acknowledges a declined registration
func (b *Bot) handlePlayerDecline(s *discordgo.Session, i *discordgo.InteractionCreate, targetUserID string) error {
	userID, _ := interactionUser(i)
	if userID != targetUserID {
		return RespondWithEphemeralMessage(s, i, "This is not for you!")
	}

	return UpdateMessage(s, i, "", []*discordgo.MessageEmbed{renderRegistrationDeclined()}, []discordgo.MessageComponent{})
}

// handleSubmitQuest opens the work submission modal for a pending submission
func (b *Bot) handleSubmitQuest(s *discordgo.Session, i *discordgo.InteractionCreate, submissionID string) error {
	_, err := b.reviewService.GetSubmission(context.Background(), &reviewService.GetSubmissionInput{
		SubmissionID: submissionID,
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, "This quest submission has expired.")
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "submission_text",
					Label:       "Describe your work / proof of completion",
					Style:       discordgo.TextInputParagraph,
					Placeholder: "Explain what you did to complete this quest...",
					Required:    true,
					MaxLength:   reviewService.MaxTextLength,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    "submission_image",
					Label:       "Image URL (optional)",
					Style:       discordgo.TextInputShort,
					Placeholder: "https://example.com/image.png",
					Required:    false,
					MaxLength:   reviewService.MaxImageURLLength,
				},
			},
		},
	}

	return RespondWithModal(s, i, ModalQuestSubmission+submissionID, "Submit Quest Work", components)
}

// handleQuestSubmissionModal records the player's work and forwards it to the
// host for review. The status change commits before the host DM is attempted.
func (b *Bot) handleQuestSubmissionModal(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ModalSubmitInteractionData, submissionID string) error {
	ctx := context.Background()

	recorded, err := b.reviewService.RecordWork(ctx, &reviewService.RecordWorkInput{
		SubmissionID: submissionID,
		Text:         modalValue(data, "submission_text"),
		ImageURL:     modalValue(data, "submission_image"),
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	sub := recorded.Submission

	reviewRow := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Quest Completed",
					Style:    discordgo.SuccessButton,
					CustomID: ButtonApproveSubmission + sub.ID,
					Emoji:    &discordgo.ComponentEmoji{Name: "✅"},
				},
				discordgo.Button{
					Label:    "Reject",
					Style:    discordgo.DangerButton,
					CustomID: ButtonRejectSubmission + sub.ID,
					Emoji:    &discordgo.ComponentEmoji{Name: "❌"},
				},
			},
		},
	}

	if err := b.dmUser(s, b.config.HostID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{renderReviewRequest(sub)},
		Components: reviewRow,
	}); err != nil {
		// Work is already recorded; the host can still find it once DMs work
		log.Printf("Failed to send submission %s to host: %v", sub.ID, err)
		return RespondWithEphemeralMessage(s, i, "Your work was recorded, but the Guild Master could not be notified. Please contact them directly.")
	}

	return RespondWithEphemeralMessage(s, i, "Your submission has been sent to the Guild Master for review!")
}

// handleApproveSubmission resolves a submission in the player's favor
func (b *Bot) handleApproveSubmission(s *discordgo.Session, i *discordgo.InteractionCreate, submissionID string) error {
	userID, _ := interactionUser(i)
	if !b.isHost(userID) {
		return RespondWithEphemeralMessage(s, i, "Only the Guild Master can review submissions.")
	}

	ctx := context.Background()

	approved, err := b.reviewService.Approve(ctx, &reviewService.ApproveInput{
		SubmissionID: submissionID,
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	sub := approved.Submission

	if err := UpdateMessage(s, i,
		fmt.Sprintf("Quest approved for %s! They received %d XP.", sub.Username, approved.XPAwarded),
		[]*discordgo.MessageEmbed{}, []discordgo.MessageComponent{}); err != nil {
		log.Printf("Error updating review message: %v", err)
	}

	b.announceCompletion(s, approved)
	return nil
}

// announceCompletion sends the public completion notice and, when this
// approval unlocked class selection, the one-time class offer. State has
// already committed; failures here are logged and dropped.
func (b *Bot) announceCompletion(s *discordgo.Session, approved *reviewService.ApproveOutput) {
	sub := approved.Submission

	embed := renderQuestComplete(approved.Player, sub.QuestTitle, sub.QuestRank, approved.XPAwarded, sub.Username)
	if err := b.sendToChannel(s, sub.ChannelID, &discordgo.MessageSend{
		Content: fmt.Sprintf("<@%s>", sub.UserID),
		Embeds:  []*discordgo.MessageEmbed{embed},
	}); err != nil {
		log.Printf("Failed to send completion notification for %s: %v", sub.ID, err)
	}

	if !approved.ClassUnlocked {
		return
	}

	if err := b.sendToChannel(s, sub.ChannelID, &discordgo.MessageSend{
		Content: fmt.Sprintf("<@%s>", sub.UserID),
		Embeds:  []*discordgo.MessageEmbed{renderLevelTenUnlock(sub.Username)},
	}); err != nil {
		log.Printf("Failed to send level 10 notification for %s: %v", sub.UserID, err)
	}

	if err := b.dmUser(s, sub.UserID, &discordgo.MessageSend{
		Content:    "You have unlocked class selection! Choose your specialization:",
		Embeds:     []*discordgo.MessageEmbed{renderClassPrompt()},
		Components: classSelectionComponents(sub.UserID),
	}); err != nil {
		log.Printf("Failed to send class selection DM to %s: %v", sub.UserID, err)
	}
}

// handleRejectSubmission resolves a submission against the player
func (b *Bot) handleRejectSubmission(s *discordgo.Session, i *discordgo.InteractionCreate, submissionID string) error {
	userID, _ := interactionUser(i)
	if !b.isHost(userID) {
		return RespondWithEphemeralMessage(s, i, "Only the Guild Master can review submissions.")
	}

	rejected, err := b.reviewService.Reject(context.Background(), &reviewService.RejectInput{
		SubmissionID: submissionID,
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	sub := rejected.Submission

	if err := UpdateMessage(s, i,
		fmt.Sprintf("Quest submission rejected for %s.", sub.Username),
		[]*discordgo.MessageEmbed{}, []discordgo.MessageComponent{}); err != nil {
		log.Printf("Error updating review message: %v", err)
	}

	if err := b.dmUser(s, sub.UserID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{renderRejection()},
	}); err != nil {
		log.Printf("Failed to send rejection notification to %s: %v", sub.UserID, err)
	}

	return nil
}

// handleClassSelect asks for confirmation of a class choice
func (b *Bot) handleClassSelect(s *discordgo.Session, i *discordgo.InteractionCreate, payload string) error {
	class, targetUserID, ok := splitClassPayload(payload)
	if !ok {
		return RespondWithEphemeralMessage(s, i, "Unknown class selection.")
	}

	userID, _ := interactionUser(i)
	if userID != targetUserID {
		return RespondWithEphemeralMessage(s, i, "This class selection is not for you!")
	}

	can, err := b.progressionService.CanSelectClass(context.Background(), &progression.CanSelectClassInput{
		PlayerID: userID,
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	if !can.CanSelect {
		return RespondWithEphemeralMessage(s, i, "You cannot select a class right now. You need to be Level 10 with no class chosen.")
	}

	return UpdateMessage(s, i, "",
		[]*discordgo.MessageEmbed{renderClassConfirm(class)},
		classConfirmComponents(class, userID))
}

// handleClassConfirm locks in a class choice
func (b *Bot) handleClassConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, payload string) error {
	class, targetUserID, ok := splitClassPayload(payload)
	if !ok {
		return RespondWithEphemeralMessage(s, i, "Unknown class selection.")
	}

	userID, username := interactionUser(i)
	if userID != targetUserID {
		return RespondWithEphemeralMessage(s, i, "This confirmation is not for you!")
	}

	if _, err := b.progressionService.AssignClass(context.Background(), &progression.AssignClassInput{
		PlayerID: userID,
		Class:    class,
	}); err != nil {
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	return UpdateMessage(s, i, "",
		[]*discordgo.MessageEmbed{renderClassSelected(class, username)},
		[]discordgo.MessageComponent{})
}

// handleClassCancel returns to the class selection screen
func (b *Bot) handleClassCancel(s *discordgo.Session, i *discordgo.InteractionCreate, targetUserID string) error {
	userID, _ := interactionUser(i)
	if userID != targetUserID {
		return RespondWithEphemeralMessage(s, i, "This is not for you!")
	}

	return UpdateMessage(s, i, "",
		[]*discordgo.MessageEmbed{renderClassPrompt()},
		classSelectionComponents(userID))
}

// splitClassPayload parses "<Class>_<userID>" from a class button custom ID
func splitClassPayload(payload string) (models.Class, string, bool) {
	parts := strings.SplitN(payload, "_", 2)
	if len(parts) != 2 {
		return models.ClassNone, "", false
	}

	class := models.Class(parts[0])
	if !models.ValidClass(class) {
		return models.ClassNone, "", false
	}

	return class, parts[1], true
}

// handleLegacyApprove resolves an old-style review, paying the quest's live
// reward
func (b *Bot) handleLegacyApprove(s *discordgo.Session, i *discordgo.InteractionCreate, reviewID string) error {
	userID, _ := interactionUser(i)
	if !b.isHost(userID) {
		return RespondWithEphemeralMessage(s, i, "Only the Guild Master can review submissions.")
	}

	approved, err := b.reviewService.ApproveReview(context.Background(), &reviewService.ApproveReviewInput{
		ReviewID: reviewID,
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	rev := approved.Review

	if err := UpdateMessage(s, i,
		fmt.Sprintf("Quest approved for %s! They received %d XP.", rev.Username, approved.XPAwarded),
		[]*discordgo.MessageEmbed{}, []discordgo.MessageComponent{}); err != nil {
		log.Printf("Error updating review message: %v", err)
	}

	embed := renderQuestComplete(approved.Player, approved.Quest.Title, approved.Quest.Rank, approved.XPAwarded, rev.Username)
	if err := b.sendToChannel(s, rev.ChannelID, &discordgo.MessageSend{
		Content: fmt.Sprintf("<@%s>", rev.UserID),
		Embeds:  []*discordgo.MessageEmbed{embed},
	}); err != nil {
		log.Printf("Failed to send completion notification for review %s: %v", rev.ID, err)
	}

	return nil
}

// handleLegacyReject discards an old-style review
func (b *Bot) handleLegacyReject(s *discordgo.Session, i *discordgo.InteractionCreate, reviewID string) error {
	userID, _ := interactionUser(i)
	if !b.isHost(userID) {
		return RespondWithEphemeralMessage(s, i, "Only the Guild Master can review submissions.")
	}

	rejected, err := b.reviewService.RejectReview(context.Background(), &reviewService.RejectReviewInput{
		ReviewID: reviewID,
	})
	if err != nil {
		return RespondWithEphemeralMessage(s, i, apperrors.UserMessage(err))
	}

	rev := rejected.Review

	if err := UpdateMessage(s, i,
		fmt.Sprintf("Quest rejected for %s.", rev.Username),
		[]*discordgo.MessageEmbed{}, []discordgo.MessageComponent{}); err != nil {
		log.Printf("Error updating review message: %v", err)
	}

	if err := b.dmUser(s, rev.UserID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{renderRejection()},
	}); err != nil {
		log.Printf("Failed to send rejection notification to %s: %v", rev.UserID, err)
	}

	return nil
}

// dmUser opens (or reuses) a DM channel and sends a message to it
func (b *Bot) dmUser(s *discordgo.Session, userID string, msg *discordgo.MessageSend) error {
	channel, err := s.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel with %s: %w", userID, err)
	}

	if _, err := s.ChannelMessageSendComplex(channel.ID, msg); err != nil {
		return fmt.Errorf("failed to send DM to %s: %w", userID, err)
	}

	return nil
}

// sendToChannel sends a message to a guild channel
func (b *Bot) sendToChannel(s *discordgo.Session, channelID string, msg *discordgo.MessageSend) error {
	if channelID == "" {
		return errors.New("channel ID is empty")
	}

	if _, err := s.ChannelMessageSendComplex(channelID, msg); err != nil {
		return fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}

	return nil
}

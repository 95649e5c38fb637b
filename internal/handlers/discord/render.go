package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/hunterguild/system-bot/internal/models"
	"github.com/hunterguild/system-bot/internal/services/progression"
)

// rankColors maps each rank to its embed accent color
var rankColors = map[models.Rank]int{
	models.RankE: 0x808080,
	models.RankD: 0x90EE90,
	models.RankC: 0x9400D3,
	models.RankB: 0xFFD700,
	models.RankA: 0xC0C0C0,
	models.RankS: 0xDC143C,
	models.RankN: 0xFFD700,
}

// rankEmojis maps each rank to its board emoji
var rankEmojis = map[models.Rank]string{
	models.RankE: "⚪",
	models.RankD: "🟢",
	models.RankC: "🟣",
	models.RankB: "🟡",
	models.RankA: "⚪",
	models.RankS: "🔴",
	models.RankN: "🥇",
}

// rankColor returns the accent color for a rank, defaulting to the board color
func rankColor(rank models.Rank) int {
	if color, ok := rankColors[rank]; ok {
		return color
	}
	return 0x1a1a3a
}

// rankEmoji returns the emoji for a rank
func rankEmoji(rank models.Rank) string {
	if emoji, ok := rankEmojis[rank]; ok {
		return emoji
	}
	return "⚪"
}

// renderQuestBoard builds the quest board embed, at most ten quests per page
func renderQuestBoard(quests []*models.Quest) *discordgo.MessageEmbed {
	if len(quests) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "📜 Quest Board",
			Description: "No quests available at the moment. Check back later!",
			Color:       0x333333,
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📜 Quest Board",
		Description: "Available quests from the Hunter Association",
		Color:       0x1a1a3a,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Use /quests accept <quest_id> to accept a quest",
		},
	}

	shown := quests
	if len(shown) > 10 {
		shown = shown[:10]
	}

	for _, quest := range shown {
		value := fmt.Sprintf("%s\n**XP Reward:** %d | **ID:** `%s`", quest.Description, quest.XPReward, quest.ID)

		if quest.ExpiresAt != nil {
			value += fmt.Sprintf("\n**Expires:** <t:%d:R>", quest.ExpiresAt.Unix())
		}

		if quest.MaxParticipants > 0 {
			value += fmt.Sprintf("\n**Slots:** %d/%d", len(quest.AcceptedBy), quest.MaxParticipants)
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s [%s] %s", rankEmoji(quest.Rank), quest.Rank, quest.Title),
			Value: value,
		})
	}

	return embed
}

// renderQuestPosted builds the public announcement for a freshly created quest
func renderQuestPosted(quest *models.Quest) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "📢 New Quest Available!",
		Description: "A new quest has been posted to the Quest Board!",
		Color:       rankColor(quest.Rank),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  fmt.Sprintf("%s %s", rankEmoji(quest.Rank), quest.Title),
				Value: quest.Description,
			},
			{
				Name:   "Difficulty",
				Value:  fmt.Sprintf("Rank %s", quest.Rank),
				Inline: true,
			},
			{
				Name:   "XP Reward",
				Value:  fmt.Sprintf("%d", quest.XPReward),
				Inline: true,
			},
			{
				Name:   "Quest ID",
				Value:  fmt.Sprintf("`%s`", quest.ID),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Use /quests accept <quest_id> to accept this quest!",
		},
	}

	if quest.ExpiresAt != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Deadline",
			Value:  fmt.Sprintf("<t:%d:R>", quest.ExpiresAt.Unix()),
			Inline: true,
		})
	}

	if quest.MaxParticipants > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Max Participants",
			Value:  fmt.Sprintf("%d", quest.MaxParticipants),
			Inline: true,
		})
	}

	return embed
}

// renderQuestAcceptedDM builds the DM that carries the submit-work button
func renderQuestAcceptedDM(quest *models.Quest) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "⚔️ Quest Accepted!",
		Description: fmt.Sprintf("You have accepted **%s**!", quest.Title),
		Color:       rankColor(quest.Rank),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Rank",
				Value:  fmt.Sprintf("%s %s", rankEmoji(quest.Rank), quest.Rank),
				Inline: true,
			},
			{
				Name:   "XP Reward",
				Value:  fmt.Sprintf("%d", quest.XPReward),
				Inline: true,
			},
			{
				Name:  "Instructions",
				Value: "Please submit your work below by clicking the button. You can submit text, images, or both as proof of completion.",
			},
		},
	}

	if quest.ExpiresAt != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Deadline",
			Value:  fmt.Sprintf("<t:%d:R>", quest.ExpiresAt.Unix()),
			Inline: true,
		})
	}

	return embed
}

// renderStatus builds the hunter status embed
func renderStatus(player *models.Player, username string) *discordgo.MessageEmbed {
	class := string(player.Class)
	if player.Class == models.ClassNone {
		class = "None"
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s [%s] %s", rankEmoji(player.Rank), player.Rank, username),
		Description: "Hunter status",
		Color:       rankColor(player.Rank),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Level", Value: fmt.Sprintf("%d", player.Level), Inline: true},
			{Name: "XP", Value: fmt.Sprintf("%d / %d", player.XP, progression.XPRequired(player.Level)), Inline: true},
			{Name: "Rank", Value: string(player.Rank), Inline: true},
			{Name: "Class", Value: class, Inline: true},
			{Name: "Title", Value: player.Title, Inline: true},
			{Name: "Job", Value: player.Job, Inline: true},
			{Name: "Quests Completed", Value: fmt.Sprintf("%d", player.QuestsCompleted), Inline: true},
			{Name: "Active Quests", Value: fmt.Sprintf("%d", len(player.ActiveQuests)), Inline: true},
		},
	}
}

// renderReviewRequest builds the DM the host reviews a submission from
func renderReviewRequest(sub *models.Submission) *discordgo.MessageEmbed {
	text := sub.TextSubmission
	if len(text) > 1000 {
		text = text[:1000]
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎯 Quest Submission Review",
		Description: fmt.Sprintf("**%s** has submitted work for a quest!", sub.Username),
		Color:       0x1a1a3a,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Quest", Value: sub.QuestTitle, Inline: true},
			{Name: "Rank", Value: string(sub.QuestRank), Inline: true},
			{Name: "XP Reward", Value: fmt.Sprintf("%d", sub.QuestXP), Inline: true},
			{Name: "Submission", Value: text},
		},
	}

	if sub.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: sub.ImageURL}
	}

	return embed
}

// renderQuestComplete builds the public completion announcement
func renderQuestComplete(player *models.Player, questTitle string, questRank models.Rank, xpAwarded int, username string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "✅ Quest Complete!",
		Description: fmt.Sprintf("**%s** has completed **%s**!", username, questTitle),
		Color:       rankColor(questRank),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "XP Earned", Value: fmt.Sprintf("%d", xpAwarded), Inline: true},
			{Name: "Level", Value: fmt.Sprintf("%d", player.Level), Inline: true},
			{Name: "Rank", Value: fmt.Sprintf("%s %s", rankEmoji(player.Rank), player.Rank), Inline: true},
			{Name: "Quests Completed", Value: fmt.Sprintf("%d", player.QuestsCompleted), Inline: true},
		},
	}
}

// renderRejection builds the DM telling a player their work was not approved
func renderRejection() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "❌ Quest Not Approved",
		Description: "The Guild Master has determined that the quest requirements were not fully met. Please try again.",
		Color:       0xFF0000,
	}
}

// renderRegistrationPrompt builds the registration-consent embed
func renderRegistrationPrompt() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "[SYSTEM]",
		Description: "**You have acquired the qualifications to be a Player.**\n\nWill you accept?",
		Color:       0x1a1a3a,
	}
}

// renderRegistrationComplete builds the welcome embed after consent
func renderRegistrationComplete() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "[SYSTEM]",
		Description: "**PLAYER REGISTRATION COMPLETE**\n\nWelcome, Hunter. You have been registered in the system.\n\nYou may now access all features and begin your journey.",
		Color:       0x00FF00,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Use /status to view your profile",
		},
	}
}

// renderRegistrationDeclined builds the embed shown after declining consent
func renderRegistrationDeclined() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "[SYSTEM]",
		Description: "**REGISTRATION DECLINED**\n\nYou have chosen not to become a Player.\n\nYou may register at any time by using any command.",
		Color:       0xFF4444,
	}
}

// registrationComponents builds the accept/decline buttons for a player
func registrationComponents(userID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Yes, I Accept",
					Style:    discordgo.SuccessButton,
					CustomID: ButtonPlayerAccept + userID,
				},
				discordgo.Button{
					Label:    "No",
					Style:    discordgo.DangerButton,
					CustomID: ButtonPlayerDecline + userID,
				},
			},
		},
	}
}

// classButtonStyles pairs each class with its button style
var classButtonStyles = map[models.Class]discordgo.ButtonStyle{
	models.ClassAssassin: discordgo.DangerButton,
	models.ClassMage:     discordgo.PrimaryButton,
	models.ClassTank:     discordgo.SuccessButton,
	models.ClassSpy:      discordgo.SecondaryButton,
}

// classEmojis pairs each class with its button emoji
var classEmojis = map[models.Class]string{
	models.ClassAssassin: "⚔️",
	models.ClassMage:     "🔮",
	models.ClassTank:     "🛡️",
	models.ClassSpy:      "🕵️",
}

// classSelectionComponents builds the four class choice buttons for a player
func classSelectionComponents(userID string) []discordgo.MessageComponent {
	buttons := make([]discordgo.MessageComponent, 0, len(models.Classes))
	for _, class := range models.Classes {
		buttons = append(buttons, discordgo.Button{
			Label:    string(class),
			Style:    classButtonStyles[class],
			CustomID: fmt.Sprintf("%s%s_%s", ButtonClassSelect, class, userID),
			Emoji: &discordgo.ComponentEmoji{
				Name: classEmojis[class],
			},
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}

// classConfirmComponents builds the confirm/cancel pair for a class choice
func classConfirmComponents(class models.Class, userID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Yes, Confirm",
					Style:    discordgo.SuccessButton,
					CustomID: fmt.Sprintf("%s%s_%s", ButtonClassConfirm, class, userID),
				},
				discordgo.Button{
					Label:    "No, Go Back",
					Style:    discordgo.DangerButton,
					CustomID: ButtonClassCancel + userID,
				},
			},
		},
	}
}

// renderClassPrompt builds the class selection embed
func renderClassPrompt() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Class Selection",
		Description: "Choose your class wisely - this is a permanent decision!",
		Color:       0x1a1a3a,
	}
}

// renderClassConfirm builds the confirmation embed for a class choice
func renderClassConfirm(class models.Class) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Confirm Class Selection",
		Description: fmt.Sprintf("%s You have chosen **%s**.\n\nThis decision is permanent. Confirm?", classEmojis[class], class),
		Color:       0x1a1a3a,
	}
}

// renderClassSelected builds the embed shown after a class is locked in
func renderClassSelected(class models.Class, username string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Class Selected",
		Description: fmt.Sprintf("%s **%s** is now a **%s**!", classEmojis[class], username, class),
		Color:       0x00FF00,
	}
}

// renderLevelTenUnlock builds the announcement that class selection opened up
func renderLevelTenUnlock(username string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "[SYSTEM]",
		Description: fmt.Sprintf("**%s** has reached Level 10 and unlocked class selection!", username),
		Color:       0xFFD700,
	}
}

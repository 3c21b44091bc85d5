package formatting

import (
	"fmt"
	"strings"

	"dollhouse-lurker/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

// ColorPink matches Discord's built-in pink.
const ColorPink = 0xEB459F

const (
	MsgPermissionDenied      = "❌ You don't have permission."
	MsgServerOnly            = "❌ Server-only command."
	MsgCommandError          = "⚠️ Command error occurred."
	MsgNoLevel               = "No level yet 🧸"
	MsgNoData                = "No data yet 🧸"
	MsgWelcomeMessageUpdated = "🧸 Welcome message updated"
	MsgOptionRequired        = "⚠️ Missing required option."
	MsgUnknownCommand        = "🧸 I don't know that command."

	Presence = "whispers in the dollhouse 🧸"
)

func MsgWelcomeChannelSet(channelID string) string {
	return fmt.Sprintf("✅ Welcome channel set to <#%s>", channelID)
}

func MsgAutoroleSet(roleName string) string {
	return fmt.Sprintf("🎭 Autorole set to **%s**", roleName)
}

func MsgRequiredAdded(channelID string) string {
	return fmt.Sprintf("📌 Added <#%s>", channelID)
}

func MsgRequiredAlreadyListed(channelID string) string {
	return fmt.Sprintf("📌 <#%s> is already listed", channelID)
}

func MsgLevelChannelSet(channelID string) string {
	return fmt.Sprintf("✨ Level messages sent to <#%s>", channelID)
}

func MsgLevelStatus(p domain.UserProgress) string {
	return fmt.Sprintf("🧸 Level **%d**\n✨ XP **%d**", p.Level, p.XP)
}

func MsgLevelUp(userID string, level int) string {
	return fmt.Sprintf("<@%s> reached **Level %d**", userID, level)
}

func WelcomeEmbed(a domain.WelcomeAnnouncement) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Description: a.Text,
		Color:       ColorPink,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    a.AuthorName,
			IconURL: a.AvatarURL,
		},
		Thumbnail: thumbnail(a.AvatarURL),
		Footer:    &discordgo.MessageEmbedFooter{Text: a.Footer},
	}
}

func LevelUpEmbed(a domain.LevelUpAnnouncement) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎀 Level Up!",
		Description: MsgLevelUp(a.UserID, a.Level),
		Color:       ColorPink,
		Thumbnail:   thumbnail(a.AvatarURL),
	}
}

func LeaderboardEmbed(entries []domain.LeaderboardEntry) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(entries))
	for _, e := range entries {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%d. %s", e.Rank, e.DisplayName),
			Value: fmt.Sprintf("Level **%d** • XP **%d**", e.Level, e.XP),
		})
	}

	return &discordgo.MessageEmbed{
		Title:  "🏆 Dollhouse Leaderboard",
		Color:  ColorPink,
		Fields: fields,
	}
}

// HelpSection groups commands under one heading of the help menu.
type HelpSection struct {
	Title    string
	Commands []string
}

var HelpSections = []HelpSection{
	{Title: "🎀 Welcome", Commands: []string{"setwelcome", "setwelcomemessage", "addrequired"}},
	{Title: "🎭 Roles", Commands: []string{"setautorole"}},
	{Title: "✨ Levels", Commands: []string{"level", "leaderboard", "setlevelchannel"}},
}

func HelpEmbed() *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(HelpSections))
	for _, section := range HelpSections {
		names := make([]string, len(section.Commands))
		for i, c := range section.Commands {
			names[i] = "/" + c
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  section.Title,
			Value: strings.Join(names, "\n"),
		})
	}

	return &discordgo.MessageEmbed{
		Title:       "🧸 Dollhouse Lurker Help",
		Description: "All commands are slash commands",
		Color:       ColorPink,
		Fields:      fields,
	}
}

// CommandHelp describes one command for the detailed help view.
type CommandHelp struct {
	Name        string
	Description string
	Options     []string
	AdminOnly   bool
}

func HelpDetailEmbed(c CommandHelp) *discordgo.MessageEmbed {
	usage := "/" + c.Name
	for _, opt := range c.Options {
		usage += " <" + opt + ">"
	}

	access := "Everyone"
	if c.AdminOnly {
		access = "Administrators"
	}

	return &discordgo.MessageEmbed{
		Title:       "🧸 /" + c.Name,
		Description: c.Description,
		Color:       ColorPink,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Usage", Value: "`" + usage + "`", Inline: true},
			{Name: "Access", Value: access, Inline: true},
		},
	}
}

func thumbnail(url string) *discordgo.MessageEmbedThumbnail {
	if url == "" {
		return nil
	}
	return &discordgo.MessageEmbedThumbnail{URL: url}
}

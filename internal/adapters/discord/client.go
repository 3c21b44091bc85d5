package discord

import (
	"errors"
	"log/slog"

	"dollhouse-lurker/internal/adapters/discord/formatting"
	"dollhouse-lurker/internal/adapters/metrics"
	"dollhouse-lurker/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

type DiscordSession interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

// Adapter delivers outbound messages and role changes to Discord.
type Adapter struct {
	session DiscordSession
}

func NewAdapter(session DiscordSession) *Adapter {
	return &Adapter{session: session}
}

// SendReplies posts each reply as its own message, in order. A failed send
// does not stop the remaining ones.
func (a *Adapter) SendReplies(channelID string, replies []domain.Reply) error {
	var errs []error
	for _, r := range replies {
		if _, err := a.session.ChannelMessageSend(channelID, r.Content); err != nil {
			slog.Error("Failed to send reply", "channel_id", channelID, "rule", r.Rule, "error", err)
			metrics.DiscordMessagesSent.WithLabelValues("reply", "failure").Inc()
			errs = append(errs, err)
			continue
		}
		metrics.DiscordMessagesSent.WithLabelValues("reply", "success").Inc()
	}
	return errors.Join(errs...)
}

func (a *Adapter) SendLevelUp(announcement domain.LevelUpAnnouncement) error {
	return a.sendEmbed("level_up", announcement.ChannelID, formatting.LevelUpEmbed(announcement))
}

func (a *Adapter) SendWelcome(announcement domain.WelcomeAnnouncement) error {
	return a.sendEmbed("welcome", announcement.ChannelID, formatting.WelcomeEmbed(announcement))
}

func (a *Adapter) AssignRole(guildID, userID, roleID string) error {
	if err := a.session.GuildMemberRoleAdd(guildID, userID, roleID); err != nil {
		metrics.DiscordMessagesSent.WithLabelValues("role", "failure").Inc()
		return err
	}
	metrics.DiscordMessagesSent.WithLabelValues("role", "success").Inc()
	return nil
}

func (a *Adapter) sendEmbed(kind, channelID string, embed *discordgo.MessageEmbed) error {
	if _, err := a.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		slog.Error("Failed to send embed", "kind", kind, "channel_id", channelID, "error", err)
		metrics.DiscordMessagesSent.WithLabelValues(kind, "failure").Inc()
		return err
	}

	metrics.DiscordMessagesSent.WithLabelValues(kind, "success").Inc()
	return nil
}

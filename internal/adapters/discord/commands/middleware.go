package commands

import (
	"dollhouse-lurker/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

// WithGuildOnly rejects interactions that did not come from a guild.
func WithGuildOnly(next CommandHandler) CommandHandler {
	return func(s DiscordSession, i *discordgo.InteractionCreate) error {
		if i.GuildID == "" || i.Member == nil {
			return domain.ErrContextRestriction
		}
		return next(s, i)
	}
}

// WithAdmin requires the Administrator permission. Wrap it inside
// WithGuildOnly so DMs are reported as such.
func WithAdmin(next CommandHandler) CommandHandler {
	return func(s DiscordSession, i *discordgo.InteractionCreate) error {
		if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
			return domain.ErrPermissionDenied
		}
		return next(s, i)
	}
}

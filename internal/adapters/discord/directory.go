package discord

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// StateReader is the subset of *discordgo.State the directory consults
// before falling back to REST.
type StateReader interface {
	Channel(channelID string) (*discordgo.Channel, error)
	Role(guildID, roleID string) (*discordgo.Role, error)
	Member(guildID, userID string) (*discordgo.Member, error)
}

type DirectorySession interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
}

// Directory resolves channels, roles and members of a guild.
type Directory struct {
	state   StateReader
	session DirectorySession
	cache   *lookupCache
}

func NewDirectory(state StateReader, session DirectorySession) *Directory {
	return &Directory{
		state:   state,
		session: session,
		cache:   newLookupCache(),
	}
}

func (d *Directory) ChannelExists(guildID, channelID string) bool {
	if channelID == "" {
		return false
	}
	if ch, err := d.state.Channel(channelID); err == nil && ch != nil {
		return ch.GuildID == guildID
	}
	if _, ok := d.cache.Get(guildID, kindChannel, channelID); ok {
		return true
	}

	ch, err := d.session.Channel(channelID)
	if err != nil || ch == nil || ch.GuildID != guildID {
		slog.Debug("Channel not resolvable", "guild_id", guildID, "channel_id", channelID, "error", err)
		return false
	}
	d.cache.Set(guildID, kindChannel, channelID, ch.Name)
	return true
}

func (d *Directory) RoleExists(guildID, roleID string) bool {
	_, ok := d.RoleName(guildID, roleID)
	return ok
}

func (d *Directory) RoleName(guildID, roleID string) (string, bool) {
	if roleID == "" {
		return "", false
	}
	if role, err := d.state.Role(guildID, roleID); err == nil && role != nil {
		return role.Name, true
	}
	if name, ok := d.cache.Get(guildID, kindRole, roleID); ok {
		return name, true
	}

	roles, err := d.session.GuildRoles(guildID)
	if err != nil {
		slog.Debug("Failed to fetch guild roles", "guild_id", guildID, "error", err)
		return "", false
	}
	for _, role := range roles {
		d.cache.Set(guildID, kindRole, role.ID, role.Name)
	}
	return d.cache.Get(guildID, kindRole, roleID)
}

// MemberDisplayName returns the member's server nickname, global name or
// username, in that order. ok is false for users who left the guild.
func (d *Directory) MemberDisplayName(guildID, userID string) (string, bool) {
	if member, err := d.state.Member(guildID, userID); err == nil && member != nil {
		return displayName(member), true
	}
	if name, ok := d.cache.Get(guildID, kindMember, userID); ok {
		return name, true
	}

	member, err := d.session.GuildMember(guildID, userID)
	if err != nil || member == nil {
		return "", false
	}
	name := displayName(member)
	d.cache.Set(guildID, kindMember, userID, name)
	return name, true
}

// Forget drops a cached entity after Discord reports it deleted.
func (d *Directory) Forget(guildID string, kind lookupKind, id string) {
	d.cache.Invalidate(guildID, kind, id)
}

func displayName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User == nil {
		return ""
	}
	if m.User.GlobalName != "" {
		return m.User.GlobalName
	}
	return m.User.Username
}

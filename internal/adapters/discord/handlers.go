package discord

import (
	"context"
	"log/slog"

	"dollhouse-lurker/internal/adapters/discord/commands"
	"dollhouse-lurker/internal/adapters/discord/formatting"
	"dollhouse-lurker/internal/core/domain"
	"dollhouse-lurker/internal/core/services/welcome"

	"github.com/bwmarrin/discordgo"
)

type MessageHandler interface {
	HandleMessage(ctx context.Context, msg domain.Message) error
}

type MemberJoinHandler interface {
	OnMemberJoin(ctx context.Context, join domain.MemberJoin) (welcome.Outcome, error)
}

// InteractionHandler is satisfied by the command router.
type InteractionHandler interface {
	Handle(s commands.DiscordSession, i *discordgo.InteractionCreate)
}

// GuildLookup finds a guild in the gateway state.
type GuildLookup interface {
	Guild(guildID string) (*discordgo.Guild, error)
}

// EventHandlers turns gateway events into domain calls. discordgo runs each
// handler on its own goroutine, so a slow send only holds its own event.
type EventHandlers struct {
	messages  MessageHandler
	joins     MemberJoinHandler
	commands  InteractionHandler
	directory *Directory
}

func NewEventHandlers(messages MessageHandler, joins MemberJoinHandler, router InteractionHandler, directory *Directory) *EventHandlers {
	return &EventHandlers{
		messages:  messages,
		joins:     joins,
		commands:  router,
		directory: directory,
	}
}

// Register attaches every handler to the session.
func (h *EventHandlers) Register(s *discordgo.Session) {
	s.AddHandler(h.OnReady)
	s.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		h.OnMessageCreate(m)
	})
	s.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
		h.OnGuildMemberAdd(s.State, m)
	})
	s.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		h.OnInteractionCreate(s, i)
	})
	s.AddHandler(func(s *discordgo.Session, c *discordgo.ChannelDelete) {
		h.directory.Forget(c.GuildID, kindChannel, c.ID)
	})
	s.AddHandler(func(s *discordgo.Session, r *discordgo.GuildRoleDelete) {
		h.directory.Forget(r.GuildID, kindRole, r.RoleID)
	})
	s.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
		if m.Member != nil && m.User != nil {
			h.directory.Forget(m.GuildID, kindMember, m.User.ID)
		}
	})
}

func (h *EventHandlers) OnReady(s *discordgo.Session, r *discordgo.Ready) {
	if err := s.UpdateListeningStatus(formatting.Presence); err != nil {
		slog.Warn("Failed to update presence", "error", err)
	}
	slog.Info("Dollhouse Lurker is online!", "user", r.User.Username, "guilds", len(r.Guilds))
}

func (h *EventHandlers) OnMessageCreate(m *discordgo.MessageCreate) {
	if m.Author == nil {
		return
	}
	msg := h.toMessage(m.Message)
	if err := h.messages.HandleMessage(context.Background(), msg); err != nil {
		slog.Error("Failed to handle message", "guild_id", msg.GuildID, "message_id", msg.ID, "error", err)
	}
}

func (h *EventHandlers) OnGuildMemberAdd(guilds GuildLookup, m *discordgo.GuildMemberAdd) {
	if m.Member == nil || m.User == nil {
		return
	}

	var guild *discordgo.Guild
	if g, err := guilds.Guild(m.GuildID); err == nil {
		guild = g
	}
	join := toMemberJoin(m.Member, guild)

	outcome, err := h.joins.OnMemberJoin(context.Background(), join)
	if err != nil {
		slog.Error("Failed to welcome member", "guild_id", join.GuildID, "user_id", join.UserID, "error", err)
		return
	}
	slog.Debug("Member join handled", "guild_id", join.GuildID, "outcome", outcome)
}

func (h *EventHandlers) OnInteractionCreate(s commands.DiscordSession, i *discordgo.InteractionCreate) {
	h.commands.Handle(s, i)
}

func (h *EventHandlers) toMessage(m *discordgo.Message) domain.Message {
	msg := domain.Message{
		ID:           m.ID,
		GuildID:      m.GuildID,
		ChannelID:    m.ChannelID,
		AuthorID:     m.Author.ID,
		AuthorAvatar: m.Author.AvatarURL(""),
		AuthorIsBot:  m.Author.Bot,
		Content:      m.Content,
		Timestamp:    m.Timestamp,
	}
	if m.GuildID == "" || m.Author.Bot {
		return msg
	}

	for _, u := range m.Mentions {
		name, ok := h.directory.MemberDisplayName(m.GuildID, u.ID)
		if !ok {
			name = userDisplayName(u)
		}
		msg.MentionedUsers = append(msg.MentionedUsers, domain.MentionedUser{ID: u.ID, DisplayName: name})
	}
	for _, roleID := range m.MentionRoles {
		if name, ok := h.directory.RoleName(m.GuildID, roleID); ok {
			msg.MentionedRoles = append(msg.MentionedRoles, domain.MentionedRole{ID: roleID, Name: name})
		}
	}
	return msg
}

func toMemberJoin(m *discordgo.Member, guild *discordgo.Guild) domain.MemberJoin {
	join := domain.MemberJoin{
		GuildID:     m.GuildID,
		UserID:      m.User.ID,
		DisplayName: displayName(m),
		AvatarURL:   m.AvatarURL(""),
	}
	if guild != nil {
		join.GuildName = guild.Name
		join.MemberCount = guild.MemberCount
	}
	return join
}

func userDisplayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

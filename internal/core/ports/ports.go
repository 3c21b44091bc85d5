package ports

import (
	"context"

	"dollhouse-lurker/internal/core/domain"
)

// DocumentStore persists whole JSON documents by name.
type DocumentStore interface {
	// Load fills dst from the stored document. dst holds the default, which
	// is written out when no document exists yet.
	Load(ctx context.Context, name string, dst any) error
	Save(ctx context.Context, name string, doc any) error
	Close()
}

type ConfigRepository interface {
	GetGuildConfig(ctx context.Context, guildID string) (*domain.GuildConfig, error)
	UpdateGuildConfig(ctx context.Context, guildID string, update func(*domain.GuildConfig)) (*domain.GuildConfig, error)
}

type LevelRepository interface {
	GetUserProgress(ctx context.Context, guildID, userID string) (*domain.UserProgress, error)
	SaveUserProgress(ctx context.Context, guildID, userID string, progress domain.UserProgress) error
	GetGuildProgress(ctx context.Context, guildID string) (map[string]domain.UserProgress, error)
}

// Directory answers whether Discord entities still exist.
type Directory interface {
	RoleExists(guildID, roleID string) bool
	ChannelExists(guildID, channelID string) bool
	MemberDisplayName(guildID, userID string) (string, bool)
}

type NotificationService interface {
	SendReplies(channelID string, replies []domain.Reply) error
	SendLevelUp(announcement domain.LevelUpAnnouncement) error
	SendWelcome(announcement domain.WelcomeAnnouncement) error
	AssignRole(guildID, userID, roleID string) error
}

type Random interface {
	// Float64 returns a value in [0,1).
	Float64() float64
	// IntN returns a value in [0,n).
	IntN(n int) int
}

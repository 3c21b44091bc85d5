package welcome

import (
	"context"

	"dollhouse-lurker/internal/core/domain"
)

type mockConfigs struct {
	getFunc func(ctx context.Context, guildID string) (*domain.GuildConfig, error)
}

func (m *mockConfigs) GetGuildConfig(ctx context.Context, guildID string) (*domain.GuildConfig, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, guildID)
	}
	return nil, nil
}

func (m *mockConfigs) UpdateGuildConfig(ctx context.Context, guildID string, update func(*domain.GuildConfig)) (*domain.GuildConfig, error) {
	cfg := &domain.GuildConfig{}
	update(cfg)
	return cfg, nil
}

func withConfig(cfg *domain.GuildConfig) *mockConfigs {
	return &mockConfigs{getFunc: func(ctx context.Context, guildID string) (*domain.GuildConfig, error) {
		return cfg, nil
	}}
}

type mockDirectory struct {
	roles    map[string]bool
	channels map[string]bool
}

func (m *mockDirectory) RoleExists(guildID, roleID string) bool {
	return m.roles[roleID]
}

func (m *mockDirectory) ChannelExists(guildID, channelID string) bool {
	return m.channels[channelID]
}

func (m *mockDirectory) MemberDisplayName(guildID, userID string) (string, bool) {
	return "", false
}

type mockNotifier struct {
	sendWelcomeFunc func(a domain.WelcomeAnnouncement) error
	assignRoleFunc  func(guildID, userID, roleID string) error

	welcomes []domain.WelcomeAnnouncement
	roles    []string
}

func (m *mockNotifier) SendReplies(channelID string, replies []domain.Reply) error {
	return nil
}

func (m *mockNotifier) SendLevelUp(a domain.LevelUpAnnouncement) error {
	return nil
}

func (m *mockNotifier) SendWelcome(a domain.WelcomeAnnouncement) error {
	m.welcomes = append(m.welcomes, a)
	if m.sendWelcomeFunc != nil {
		return m.sendWelcomeFunc(a)
	}
	return nil
}

func (m *mockNotifier) AssignRole(guildID, userID, roleID string) error {
	m.roles = append(m.roles, roleID)
	if m.assignRoleFunc != nil {
		return m.assignRoleFunc(guildID, userID, roleID)
	}
	return nil
}

package commands

import (
	"context"

	"dollhouse-lurker/internal/core/domain"
	"dollhouse-lurker/internal/core/services/progression"

	"github.com/bwmarrin/discordgo"
)

type mockDiscordSession struct {
	interactionRespondFunc func(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse) error

	lastInteractionResponse *discordgo.InteractionResponse
	responses               int
}

func (m *mockDiscordSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, opts ...discordgo.RequestOption) error {
	m.lastInteractionResponse = resp
	m.responses++
	if m.interactionRespondFunc != nil {
		return m.interactionRespondFunc(interaction, resp)
	}
	return nil
}

func (m *mockDiscordSession) content() string {
	if m.lastInteractionResponse == nil || m.lastInteractionResponse.Data == nil {
		return ""
	}
	return m.lastInteractionResponse.Data.Content
}

func (m *mockDiscordSession) ephemeral() bool {
	return m.lastInteractionResponse != nil &&
		m.lastInteractionResponse.Data != nil &&
		m.lastInteractionResponse.Data.Flags&discordgo.MessageFlagsEphemeral != 0
}

type mockConfigRepo struct {
	updateFunc func(ctx context.Context, guildID string, update func(*domain.GuildConfig)) (*domain.GuildConfig, error)
	configs    map[string]*domain.GuildConfig
}

func newMockConfigRepo() *mockConfigRepo {
	return &mockConfigRepo{configs: make(map[string]*domain.GuildConfig)}
}

func (m *mockConfigRepo) GetGuildConfig(ctx context.Context, guildID string) (*domain.GuildConfig, error) {
	return m.configs[guildID], nil
}

func (m *mockConfigRepo) UpdateGuildConfig(ctx context.Context, guildID string, update func(*domain.GuildConfig)) (*domain.GuildConfig, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, guildID, update)
	}
	cfg, ok := m.configs[guildID]
	if !ok {
		cfg = &domain.GuildConfig{}
		m.configs[guildID] = cfg
	}
	update(cfg)
	return cfg, nil
}

type mockLevels struct {
	progressFunc func(ctx context.Context, guildID, userID string) (*domain.UserProgress, error)
	topNFunc     func(ctx context.Context, guildID string, n int, resolve progression.MemberResolver) ([]domain.LeaderboardEntry, error)
}

func (m *mockLevels) Progress(ctx context.Context, guildID, userID string) (*domain.UserProgress, error) {
	if m.progressFunc != nil {
		return m.progressFunc(ctx, guildID, userID)
	}
	return nil, nil
}

func (m *mockLevels) TopN(ctx context.Context, guildID string, n int, resolve progression.MemberResolver) ([]domain.LeaderboardEntry, error) {
	if m.topNFunc != nil {
		return m.topNFunc(ctx, guildID, n, resolve)
	}
	return nil, nil
}

type mockMembers struct {
	names map[string]string
	roles map[string]string
}

func (m *mockMembers) MemberDisplayName(guildID, userID string) (string, bool) {
	name, ok := m.names[userID]
	return name, ok
}

func (m *mockMembers) RoleName(guildID, roleID string) (string, bool) {
	name, ok := m.roles[roleID]
	return name, ok
}

func commandInteraction(name string, perms int64, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: "guild-1",
			Member: &discordgo.Member{
				User:        &discordgo.User{ID: "user-1"},
				Permissions: perms,
			},
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
		},
	}
}

func dmInteraction(name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			User: &discordgo.User{ID: "user-1"},
			Data: discordgo.ApplicationCommandInteractionData{Name: name},
		},
	}
}

func idOption(name string, optType discordgo.ApplicationCommandOptionType, id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: optType, Value: id}
}

func textOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

var admin = int64(discordgo.PermissionAdministrator)

package services

import (
	"context"
	"fmt"
	"log/slog"

	"dollhouse-lurker/internal/core/domain"
	"dollhouse-lurker/internal/core/ports"
)

type ConfigurationService struct {
	repo ports.ConfigRepository
}

func NewConfigurationService(repo ports.ConfigRepository) *ConfigurationService {
	return &ConfigurationService{repo: repo}
}

func (s *ConfigurationService) SetWelcomeChannel(ctx context.Context, guildID, channelID string) error {
	return s.update(ctx, guildID, "welcome_channel", func(c *domain.GuildConfig) {
		c.WelcomeChannel = channelID
	})
}

func (s *ConfigurationService) SetAutorole(ctx context.Context, guildID, roleID string) error {
	return s.update(ctx, guildID, "autorole", func(c *domain.GuildConfig) {
		c.Autorole = roleID
	})
}

// AddRequiredChannel appends channelID to the required list. Adding a
// channel that is already listed succeeds without changing the order.
func (s *ConfigurationService) AddRequiredChannel(ctx context.Context, guildID, channelID string) (bool, error) {
	var added bool
	err := s.update(ctx, guildID, "required_channels", func(c *domain.GuildConfig) {
		added = c.AddRequiredChannel(channelID)
	})
	return added, err
}

func (s *ConfigurationService) SetWelcomeMessage(ctx context.Context, guildID, template string) error {
	return s.update(ctx, guildID, "welcome_message", func(c *domain.GuildConfig) {
		c.WelcomeMessage = template
	})
}

func (s *ConfigurationService) SetLevelChannel(ctx context.Context, guildID, channelID string) error {
	return s.update(ctx, guildID, "level_channel", func(c *domain.GuildConfig) {
		c.LevelChannel = channelID
	})
}

func (s *ConfigurationService) GetGuildConfig(ctx context.Context, guildID string) (*domain.GuildConfig, error) {
	return s.repo.GetGuildConfig(ctx, guildID)
}

func (s *ConfigurationService) update(ctx context.Context, guildID, field string, fn func(*domain.GuildConfig)) error {
	if _, err := s.repo.UpdateGuildConfig(ctx, guildID, fn); err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}
	slog.Info("Guild config updated", "guild_id", guildID, "field", field)
	return nil
}

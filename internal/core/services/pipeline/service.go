package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dollhouse-lurker/internal/adapters/metrics"
	"dollhouse-lurker/internal/core/domain"
	"dollhouse-lurker/internal/core/ports"
	"dollhouse-lurker/internal/core/services/triggers"
)

type TriggerEvaluator interface {
	Evaluate(msg domain.Message) triggers.Result
}

type XPAwarder interface {
	ApplyMessage(ctx context.Context, guildID, userID string, now time.Time) (*domain.LevelUp, error)
}

// Service runs one guild message through the triggers and then the XP
// engine, and delivers whatever they produced.
type Service struct {
	triggers  TriggerEvaluator
	xp        XPAwarder
	configs   ports.ConfigRepository
	directory ports.Directory
	notifier  ports.NotificationService
}

func NewService(
	triggers TriggerEvaluator,
	xp XPAwarder,
	configs ports.ConfigRepository,
	directory ports.Directory,
	notifier ports.NotificationService,
) *Service {
	return &Service{
		triggers:  triggers,
		xp:        xp,
		configs:   configs,
		directory: directory,
		notifier:  notifier,
	}
}

func (s *Service) HandleMessage(ctx context.Context, msg domain.Message) error {
	if msg.AuthorIsBot || msg.GuildID == "" {
		metrics.MessagesProcessed.WithLabelValues("ignored").Inc()
		return nil
	}

	res := s.triggers.Evaluate(msg)
	if len(res.Replies) > 0 {
		if err := s.notifier.SendReplies(msg.ChannelID, res.Replies); err != nil {
			slog.Error("Failed to send trigger replies", "guild_id", msg.GuildID, "channel_id", msg.ChannelID, "error", err)
		}
	}
	if res.Stop {
		metrics.MessagesProcessed.WithLabelValues("stopped").Inc()
		return nil
	}

	levelUp, err := s.xp.ApplyMessage(ctx, msg.GuildID, msg.AuthorID, msg.Timestamp)
	if err != nil {
		metrics.MessagesProcessed.WithLabelValues("failed").Inc()
		return fmt.Errorf("apply xp: %w", err)
	}
	metrics.MessagesProcessed.WithLabelValues("processed").Inc()

	if levelUp == nil {
		return nil
	}
	return s.announceLevelUp(ctx, msg, levelUp)
}

func (s *Service) announceLevelUp(ctx context.Context, msg domain.Message, levelUp *domain.LevelUp) error {
	channelID, ok, err := s.levelChannel(ctx, msg)
	if err != nil {
		return err
	}
	if !ok {
		slog.Debug("Level channel no longer exists, skipping announcement", "guild_id", msg.GuildID)
		return nil
	}

	announcement := domain.LevelUpAnnouncement{
		ChannelID: channelID,
		UserID:    levelUp.UserID,
		Level:     levelUp.NewLevel,
		AvatarURL: msg.AuthorAvatar,
	}
	if err := s.notifier.SendLevelUp(announcement); err != nil {
		slog.Error("Failed to send level up", "guild_id", msg.GuildID, "channel_id", channelID, "error", err)
	}
	return nil
}

// levelChannel picks the configured level channel, or the message's own
// channel when none is set. A configured channel that no longer resolves
// yields ok=false.
func (s *Service) levelChannel(ctx context.Context, msg domain.Message) (string, bool, error) {
	cfg, err := s.configs.GetGuildConfig(ctx, msg.GuildID)
	if err != nil {
		return "", false, fmt.Errorf("get guild config: %w", err)
	}
	if cfg == nil || cfg.LevelChannel == "" {
		return msg.ChannelID, true, nil
	}
	if !s.directory.ChannelExists(msg.GuildID, cfg.LevelChannel) {
		return "", false, nil
	}
	return cfg.LevelChannel, true, nil
}

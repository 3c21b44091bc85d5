package discord

import (
	"context"
	"fmt"
	"time"

	"dollhouse-lurker/internal/core/domain"
	"dollhouse-lurker/internal/core/ports"
)

type XPAwarder interface {
	ApplyMessage(ctx context.Context, guildID, userID string, now time.Time) (*domain.LevelUp, error)
}

// SerialLevels runs XP awards on the queue; an award reads and rewrites
// the levels document.
type SerialLevels struct {
	queue *EventQueue
	next  XPAwarder
}

func NewSerialLevels(queue *EventQueue, next XPAwarder) *SerialLevels {
	return &SerialLevels{queue: queue, next: next}
}

func (s *SerialLevels) ApplyMessage(ctx context.Context, guildID, userID string, now time.Time) (*domain.LevelUp, error) {
	var (
		levelUp  *domain.LevelUp
		applyErr error
	)
	err := s.queue.Call(ctx, func(context.Context) {
		levelUp, applyErr = s.next.ApplyMessage(ctx, guildID, userID, now)
	})
	if err != nil {
		return nil, fmt.Errorf("queue xp award: %w", err)
	}
	return levelUp, applyErr
}

// SerialConfigs runs config updates on the queue. Reads go straight through.
type SerialConfigs struct {
	queue *EventQueue
	next  ports.ConfigRepository
}

func NewSerialConfigs(queue *EventQueue, next ports.ConfigRepository) *SerialConfigs {
	return &SerialConfigs{queue: queue, next: next}
}

func (s *SerialConfigs) GetGuildConfig(ctx context.Context, guildID string) (*domain.GuildConfig, error) {
	return s.next.GetGuildConfig(ctx, guildID)
}

func (s *SerialConfigs) UpdateGuildConfig(ctx context.Context, guildID string, update func(*domain.GuildConfig)) (*domain.GuildConfig, error) {
	var (
		cfg       *domain.GuildConfig
		updateErr error
	)
	err := s.queue.Call(ctx, func(context.Context) {
		cfg, updateErr = s.next.UpdateGuildConfig(ctx, guildID, update)
	})
	if err != nil {
		return nil, fmt.Errorf("queue config update: %w", err)
	}
	return cfg, updateErr
}

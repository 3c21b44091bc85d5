package storage

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"dollhouse-lurker/internal/core/domain"
	"dollhouse-lurker/internal/core/ports"
)

const (
	ConfigDocument = "config"
	LevelsDocument = "levels"
)

// Documents owns the in-memory config and levels documents and writes the
// whole affected document back on every mutation.
type Documents struct {
	mu     sync.Mutex
	store  ports.DocumentStore
	config map[string]*domain.GuildConfig
	levels map[string]map[string]domain.UserProgress
}

func Open(ctx context.Context, store ports.DocumentStore) (*Documents, error) {
	d := &Documents{
		store:  store,
		config: map[string]*domain.GuildConfig{},
		levels: map[string]map[string]domain.UserProgress{},
	}

	if err := store.Load(ctx, ConfigDocument, &d.config); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := store.Load(ctx, LevelsDocument, &d.levels); err != nil {
		return nil, fmt.Errorf("load levels: %w", err)
	}

	// JSON null entries decode to nil
	for id, cfg := range d.config {
		if cfg == nil {
			delete(d.config, id)
		}
	}
	if d.config == nil {
		d.config = map[string]*domain.GuildConfig{}
	}
	if d.levels == nil {
		d.levels = map[string]map[string]domain.UserProgress{}
	}

	return d, nil
}

func (d *Documents) Close() {
	d.store.Close()
}

func (d *Documents) GetGuildConfig(_ context.Context, guildID string) (*domain.GuildConfig, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cfg, ok := d.config[guildID]
	if !ok {
		return nil, nil
	}
	return cloneConfig(cfg), nil
}

func (d *Documents) UpdateGuildConfig(ctx context.Context, guildID string, update func(*domain.GuildConfig)) (*domain.GuildConfig, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cfg, ok := d.config[guildID]
	if !ok {
		cfg = &domain.GuildConfig{}
		d.config[guildID] = cfg
	}
	update(cfg)

	if err := d.store.Save(ctx, ConfigDocument, d.config); err != nil {
		return nil, err
	}
	return cloneConfig(cfg), nil
}

func (d *Documents) GetUserProgress(_ context.Context, guildID, userID string) (*domain.UserProgress, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.levels[guildID][userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (d *Documents) SaveUserProgress(ctx context.Context, guildID, userID string, progress domain.UserProgress) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	guild, ok := d.levels[guildID]
	if !ok {
		guild = map[string]domain.UserProgress{}
		d.levels[guildID] = guild
	}
	guild[userID] = progress

	return d.store.Save(ctx, LevelsDocument, d.levels)
}

func (d *Documents) GetGuildProgress(_ context.Context, guildID string) (map[string]domain.UserProgress, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return maps.Clone(d.levels[guildID]), nil
}

func cloneConfig(cfg *domain.GuildConfig) *domain.GuildConfig {
	c := *cfg
	c.RequiredChannels = slices.Clone(cfg.RequiredChannels)
	return &c
}

package progression

import (
	"context"
	"maps"

	"dollhouse-lurker/internal/core/domain"
)

type memoryLevels struct {
	rows  map[string]map[string]domain.UserProgress
	saves int

	getErr  error
	saveErr error
}

func newMemoryLevels() *memoryLevels {
	return &memoryLevels{rows: map[string]map[string]domain.UserProgress{}}
}

func (m *memoryLevels) GetUserProgress(ctx context.Context, guildID, userID string) (*domain.UserProgress, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.rows[guildID][userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memoryLevels) SaveUserProgress(ctx context.Context, guildID, userID string, progress domain.UserProgress) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.rows[guildID] == nil {
		m.rows[guildID] = map[string]domain.UserProgress{}
	}
	m.rows[guildID][userID] = progress
	m.saves++
	return nil
}

func (m *memoryLevels) GetGuildProgress(ctx context.Context, guildID string) (map[string]domain.UserProgress, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return maps.Clone(m.rows[guildID]), nil
}

func (m *memoryLevels) set(guildID, userID string, xp, level int) {
	if m.rows[guildID] == nil {
		m.rows[guildID] = map[string]domain.UserProgress{}
	}
	m.rows[guildID][userID] = domain.UserProgress{XP: xp, Level: level}
}

// fixedRandom returns the same draw every time.
type fixedRandom struct {
	f float64
	n int
}

func (r fixedRandom) Float64() float64 { return r.f }

func (r fixedRandom) IntN(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

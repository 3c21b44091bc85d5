package progression

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"dollhouse-lurker/internal/adapters/metrics"
	"dollhouse-lurker/internal/core/domain"
	"dollhouse-lurker/internal/core/ports"
	"dollhouse-lurker/internal/core/services/cooldown"
)

const (
	MinXPGain = 5
	MaxXPGain = 10

	DefaultLeaderboardSize = 10
)

// MemberResolver maps a user id to a display name for current members.
type MemberResolver func(userID string) (string, bool)

type Engine struct {
	levels    ports.LevelRepository
	cooldowns *cooldown.Tracker
	rnd       ports.Random
}

func NewEngine(levels ports.LevelRepository, cooldowns *cooldown.Tracker, rnd ports.Random) *Engine {
	return &Engine{
		levels:    levels,
		cooldowns: cooldowns,
		rnd:       rnd,
	}
}

// ApplyMessage awards XP for one message. It returns a LevelUp when the
// award crossed the level threshold and nil when the user is still on
// cooldown or stayed on the same level.
func (e *Engine) ApplyMessage(ctx context.Context, guildID, userID string, now time.Time) (*domain.LevelUp, error) {
	if !e.cooldowns.TryAcquire(cooldown.Key(guildID, userID), now) {
		return nil, nil
	}

	current, err := e.levels.GetUserProgress(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	progress := domain.NewUserProgress()
	if current != nil {
		progress = *current
	}
	if progress.Level < 1 {
		progress.Level = 1
	}

	gain := MinXPGain + e.rnd.IntN(MaxXPGain-MinXPGain+1)
	progress.XP += gain
	metrics.XPAwarded.Add(float64(gain))

	var levelUp *domain.LevelUp
	if progress.XP >= progress.NextLevelXP() {
		progress.Level++
		progress.XP = 0
		levelUp = &domain.LevelUp{GuildID: guildID, UserID: userID, NewLevel: progress.Level}
		metrics.LevelUps.Inc()
		slog.Info("Level up", "guild_id", guildID, "user_id", userID, "level", progress.Level)
	}

	if err := e.levels.SaveUserProgress(ctx, guildID, userID, progress); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}

	return levelUp, nil
}

func (e *Engine) Progress(ctx context.Context, guildID, userID string) (*domain.UserProgress, error) {
	return e.levels.GetUserProgress(ctx, guildID, userID)
}

// TopN ranks the guild by (level, xp) descending, keeps the first n rows and
// then drops users that are no longer members, so fewer than n entries may
// come back. Ties are ordered by numeric user id.
func (e *Engine) TopN(ctx context.Context, guildID string, n int, resolve MemberResolver) ([]domain.LeaderboardEntry, error) {
	rows, err := e.levels.GetGuildProgress(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("get guild progress: %w", err)
	}

	ranked := rank(rows)
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	entries := make([]domain.LeaderboardEntry, 0, len(ranked))
	for _, row := range ranked {
		name, ok := resolve(row.UserID)
		if !ok {
			continue
		}
		row.DisplayName = name
		row.Rank = len(entries) + 1
		entries = append(entries, row)
	}
	return entries, nil
}

func rank(rows map[string]domain.UserProgress) []domain.LeaderboardEntry {
	out := make([]domain.LeaderboardEntry, 0, len(rows))
	for userID, p := range rows {
		out = append(out, domain.LeaderboardEntry{UserID: userID, Level: p.Level, XP: p.XP})
	}

	slices.SortFunc(out, func(a, b domain.LeaderboardEntry) int {
		if c := cmp.Compare(b.Level, a.Level); c != 0 {
			return c
		}
		if c := cmp.Compare(b.XP, a.XP); c != 0 {
			return c
		}
		return compareSnowflakes(a.UserID, b.UserID)
	})
	return out
}

// compareSnowflakes orders decimal ids numerically: a shorter id is the
// smaller one.
func compareSnowflakes(a, b string) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

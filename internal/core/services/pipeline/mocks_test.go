package pipeline

import (
	"context"
	"maps"
	"time"

	"dollhouse-lurker/internal/core/domain"
	"dollhouse-lurker/internal/core/services/triggers"
)

type mockTriggers struct {
	result triggers.Result
}

func (m *mockTriggers) Evaluate(msg domain.Message) triggers.Result {
	return m.result
}

type mockXP struct {
	applyFunc func(ctx context.Context, guildID, userID string, now time.Time) (*domain.LevelUp, error)
	calls     int
}

func (m *mockXP) ApplyMessage(ctx context.Context, guildID, userID string, now time.Time) (*domain.LevelUp, error) {
	m.calls++
	if m.applyFunc != nil {
		return m.applyFunc(ctx, guildID, userID, now)
	}
	return nil, nil
}

type mockConfigs struct {
	cfg *domain.GuildConfig
	err error
}

func (m *mockConfigs) GetGuildConfig(ctx context.Context, guildID string) (*domain.GuildConfig, error) {
	return m.cfg, m.err
}

func (m *mockConfigs) UpdateGuildConfig(ctx context.Context, guildID string, update func(*domain.GuildConfig)) (*domain.GuildConfig, error) {
	return nil, nil
}

type mockDirectory struct {
	channels map[string]bool
}

func (m *mockDirectory) RoleExists(guildID, roleID string) bool { return false }

func (m *mockDirectory) ChannelExists(guildID, channelID string) bool {
	return m.channels[channelID]
}

func (m *mockDirectory) MemberDisplayName(guildID, userID string) (string, bool) {
	return "", false
}

type sentReplies struct {
	channelID string
	replies   []domain.Reply
}

type mockNotifier struct {
	sendRepliesErr error
	sendLevelUpErr error

	replies  []sentReplies
	levelUps []domain.LevelUpAnnouncement
}

func (m *mockNotifier) SendReplies(channelID string, replies []domain.Reply) error {
	m.replies = append(m.replies, sentReplies{channelID, replies})
	return m.sendRepliesErr
}

func (m *mockNotifier) SendLevelUp(a domain.LevelUpAnnouncement) error {
	m.levelUps = append(m.levelUps, a)
	return m.sendLevelUpErr
}

func (m *mockNotifier) SendWelcome(a domain.WelcomeAnnouncement) error { return nil }

func (m *mockNotifier) AssignRole(guildID, userID, roleID string) error { return nil }

type memoryLevels struct {
	rows map[string]map[string]domain.UserProgress
}

func (m *memoryLevels) GetUserProgress(ctx context.Context, guildID, userID string) (*domain.UserProgress, error) {
	p, ok := m.rows[guildID][userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memoryLevels) SaveUserProgress(ctx context.Context, guildID, userID string, progress domain.UserProgress) error {
	if m.rows[guildID] == nil {
		m.rows[guildID] = map[string]domain.UserProgress{}
	}
	m.rows[guildID][userID] = progress
	return nil
}

func (m *memoryLevels) GetGuildProgress(ctx context.Context, guildID string) (map[string]domain.UserProgress, error) {
	return maps.Clone(m.rows[guildID]), nil
}

// constRandom never passes a probability check and always draws n.
type constRandom struct {
	n int
}

func (r constRandom) Float64() float64 { return 0.999 }

func (r constRandom) IntN(n int) int { return r.n % n }

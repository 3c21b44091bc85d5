package domain

import "time"

const DefaultWelcomeTemplate = "Welcome {user} to **{server}**! Please check {channels}"

// GuildConfig is the per-guild settings record kept in config.json.
type GuildConfig struct {
	WelcomeChannel   string   `json:"welcome_channel,omitempty"`
	Autorole         string   `json:"autorole,omitempty"`
	RequiredChannels []string `json:"required_channels,omitempty"`
	WelcomeMessage   string   `json:"welcome_message,omitempty"`
	LevelChannel     string   `json:"level_channel,omitempty"`
}

// Template returns the custom welcome template or the built-in default.
func (c *GuildConfig) Template() string {
	if c.WelcomeMessage == "" {
		return DefaultWelcomeTemplate
	}
	return c.WelcomeMessage
}

// AddRequiredChannel appends channelID unless it is already present.
func (c *GuildConfig) AddRequiredChannel(channelID string) bool {
	for _, id := range c.RequiredChannels {
		if id == channelID {
			return false
		}
	}
	c.RequiredChannels = append(c.RequiredChannels, channelID)
	return true
}

type UserProgress struct {
	XP    int `json:"xp"`
	Level int `json:"level"`
}

func NewUserProgress() UserProgress {
	return UserProgress{XP: 0, Level: 1}
}

// NextLevelXP is the XP needed to leave the current level.
func (p UserProgress) NextLevelXP() int {
	return p.Level * 100
}

type LevelUp struct {
	GuildID  string
	UserID   string
	NewLevel int
}

type LeaderboardEntry struct {
	Rank        int
	UserID      string
	DisplayName string
	Level       int
	XP          int
}

type MentionedUser struct {
	ID          string
	DisplayName string
}

type MentionedRole struct {
	ID   string
	Name string
}

// Message is an inbound guild message reduced to what the engines need.
type Message struct {
	ID             string
	GuildID        string
	ChannelID      string
	AuthorID       string
	AuthorAvatar   string
	AuthorIsBot    bool
	Content        string
	MentionedUsers []MentionedUser
	MentionedRoles []MentionedRole
	Timestamp      time.Time
}

type Reply struct {
	Rule    string
	Content string
}

type MemberJoin struct {
	GuildID     string
	GuildName   string
	MemberCount int
	UserID      string
	DisplayName string
	AvatarURL   string
}

type WelcomeAnnouncement struct {
	ChannelID  string
	Text       string
	AuthorName string
	AvatarURL  string
	Footer     string
}

type LevelUpAnnouncement struct {
	ChannelID string
	UserID    string
	Level     int
	AvatarURL string
}

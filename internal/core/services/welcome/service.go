package welcome

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"dollhouse-lurker/internal/adapters/metrics"
	"dollhouse-lurker/internal/core/domain"
	"dollhouse-lurker/internal/core/ports"
)

const fallbackChannels = "the server channels"

type Outcome string

const (
	OutcomeNoConfig  Outcome = "no_config"
	OutcomeNoChannel Outcome = "no_channel"
	OutcomeSent      Outcome = "sent"
	OutcomeFailed    Outcome = "failed"
)

type Service struct {
	configs   ports.ConfigRepository
	directory ports.Directory
	notifier  ports.NotificationService
}

func NewService(configs ports.ConfigRepository, directory ports.Directory, notifier ports.NotificationService) *Service {
	return &Service{
		configs:   configs,
		directory: directory,
		notifier:  notifier,
	}
}

// OnMemberJoin assigns the autorole and posts the welcome embed. Missing
// roles and channels are skipped silently.
func (s *Service) OnMemberJoin(ctx context.Context, join domain.MemberJoin) (Outcome, error) {
	cfg, err := s.configs.GetGuildConfig(ctx, join.GuildID)
	if err != nil {
		metrics.MembersWelcomed.WithLabelValues(string(OutcomeFailed)).Inc()
		return OutcomeFailed, fmt.Errorf("get guild config: %w", err)
	}
	if cfg == nil {
		metrics.MembersWelcomed.WithLabelValues(string(OutcomeNoConfig)).Inc()
		return OutcomeNoConfig, nil
	}

	s.assignAutorole(cfg, join)

	if cfg.WelcomeChannel == "" || !s.directory.ChannelExists(join.GuildID, cfg.WelcomeChannel) {
		metrics.MembersWelcomed.WithLabelValues(string(OutcomeNoChannel)).Inc()
		return OutcomeNoChannel, nil
	}

	announcement := domain.WelcomeAnnouncement{
		ChannelID:  cfg.WelcomeChannel,
		Text:       RenderTemplate(cfg.Template(), join, cfg.RequiredChannels),
		AuthorName: fmt.Sprintf("%s joined the dollhouse", join.DisplayName),
		AvatarURL:  join.AvatarURL,
		Footer:     fmt.Sprintf("Member #%d", join.MemberCount),
	}

	if err := s.notifier.SendWelcome(announcement); err != nil {
		metrics.MembersWelcomed.WithLabelValues(string(OutcomeFailed)).Inc()
		return OutcomeFailed, fmt.Errorf("send welcome: %w", err)
	}

	slog.Info("Member welcomed", "guild_id", join.GuildID, "user_id", join.UserID)
	metrics.MembersWelcomed.WithLabelValues(string(OutcomeSent)).Inc()
	return OutcomeSent, nil
}

func (s *Service) assignAutorole(cfg *domain.GuildConfig, join domain.MemberJoin) {
	if cfg.Autorole == "" || !s.directory.RoleExists(join.GuildID, cfg.Autorole) {
		return
	}
	if err := s.notifier.AssignRole(join.GuildID, join.UserID, cfg.Autorole); err != nil {
		slog.Error("Failed to assign autorole", "guild_id", join.GuildID, "user_id", join.UserID, "role_id", cfg.Autorole, "error", err)
	}
}

// RenderTemplate fills {user}, {server}, {channels} and {membercount}.
// Any other braces are left as typed.
func RenderTemplate(template string, join domain.MemberJoin, requiredChannels []string) string {
	channels := fallbackChannels
	if len(requiredChannels) > 0 {
		mentions := make([]string, len(requiredChannels))
		for i, id := range requiredChannels {
			mentions[i] = "<#" + id + ">"
		}
		channels = strings.Join(mentions, " ")
	}

	r := strings.NewReplacer(
		"{user}", "<@"+join.UserID+">",
		"{server}", join.GuildName,
		"{channels}", channels,
		"{membercount}", strconv.Itoa(join.MemberCount),
	)
	return r.Replace(template)
}

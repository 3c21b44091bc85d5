package commands

import (
	"context"

	"dollhouse-lurker/internal/core/domain"
	"dollhouse-lurker/internal/core/services/progression"

	"github.com/bwmarrin/discordgo"
)

type DiscordSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

type CommandSession interface {
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

type LevelQueries interface {
	Progress(ctx context.Context, guildID, userID string) (*domain.UserProgress, error)
	TopN(ctx context.Context, guildID string, n int, resolve progression.MemberResolver) ([]domain.LeaderboardEntry, error)
}

type MemberDirectory interface {
	MemberDisplayName(guildID, userID string) (string, bool)
	RoleName(guildID, roleID string) (string, bool)
}

package discord

import (
	"fmt"

	"dollhouse-lurker/internal/config"

	"github.com/bwmarrin/discordgo"
)

// Intents needed for messages, member joins and reading message content.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsMessageContent

func NewSession(cfg *config.Config) (*discordgo.Session, error) {
	discord, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	discord.Identify.Intents = Intents
	discord.State.TrackMembers = true
	discord.State.TrackRoles = true
	discord.State.TrackChannels = true
	discord.Client.Transport = NewMetricsRoundTripper(discord.Client.Transport)

	return discord, nil
}

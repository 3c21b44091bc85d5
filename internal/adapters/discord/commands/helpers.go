package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func respond(s DiscordSession, i *discordgo.InteractionCreate, msg string, ephemeral bool) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   flags(ephemeral),
		},
	})
}

func respondEmbed(s DiscordSession, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  flags(ephemeral),
		},
	})
}

func respondAutocomplete(s DiscordSession, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
}

func flags(ephemeral bool) discordgo.MessageFlags {
	if ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}

func findOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range opts {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

func getStringOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt := findOption(opts, name); opt != nil {
		return opt.StringValue()
	}
	return ""
}

// requireID returns the snowflake held by a channel, role or user option.
func requireID(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) (string, error) {
	opt := findOption(opts, name)
	if opt == nil {
		return "", fmt.Errorf("missing option %q", name)
	}
	id, ok := opt.Value.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("option %q has no id", name)
	}
	return id, nil
}

func getFocusedOption(opts []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range opts {
		if opt.Focused {
			return opt.StringValue()
		}
	}
	return ""
}

func invokerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// buildCommandChoices lists command names containing query, capped at
// Discord's 25 choices.
func buildCommandChoices(query string) []*discordgo.ApplicationCommandOptionChoice {
	query = strings.ToLower(query)

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, cmd := range GetApplicationCommands() {
		if !strings.Contains(cmd.Name, query) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  cmd.Name,
			Value: cmd.Name,
		})
		if len(choices) >= 25 {
			break
		}
	}
	return choices
}

package commands

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

var (
	adminPerms   = int64(discordgo.PermissionAdministrator)
	dmPermission = false
)

func GetApplicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     "setwelcome",
			Description:              "Set the welcome channel",
			DefaultMemberPermissions: &adminPerms,
			DMPermission:             &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				channelOption("channel", "Channel for welcome messages"),
			},
		},
		{
			Name:                     "setautorole",
			Description:              "Set autorole for new members",
			DefaultMemberPermissions: &adminPerms,
			DMPermission:             &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role given to every new member",
					Required:    true,
				},
			},
		},
		{
			Name:                     "addrequired",
			Description:              "Add required channel to welcome",
			DefaultMemberPermissions: &adminPerms,
			DMPermission:             &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				channelOption("channel", "Channel new members should check"),
			},
		},
		{
			Name:                     "setwelcomemessage",
			Description:              "Set custom welcome message",
			DefaultMemberPermissions: &adminPerms,
			DMPermission:             &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("message", "Template with {user}, {server}, {channels} and {membercount}", true, false),
			},
		},
		{
			Name:                     "setlevelchannel",
			Description:              "Set level-up channel",
			DefaultMemberPermissions: &adminPerms,
			DMPermission:             &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				channelOption("channel", "Channel for level-up announcements"),
			},
		},
		{
			Name:         "level",
			Description:  "Check your level",
			DMPermission: &dmPermission,
		},
		{
			Name:         "leaderboard",
			Description:  "View leaderboard",
			DMPermission: &dmPermission,
		},
		{
			Name:         "help",
			Description:  "Show help menu",
			DMPermission: &dmPermission,
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("command", "Show details for one command", false, true),
			},
		},
	}
}

// IsAdminCommand reports whether cmd is hidden from non-administrators.
func IsAdminCommand(cmd *discordgo.ApplicationCommand) bool {
	return cmd.DefaultMemberPermissions != nil && *cmd.DefaultMemberPermissions&adminPerms != 0
}

func stringOption(name, description string, required, autocomplete bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionString,
		Name:         name,
		Description:  description,
		Required:     required,
		Autocomplete: autocomplete,
	}
}

func channelOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionChannel,
		Name:         name,
		Description:  description,
		Required:     true,
		ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
	}
}

// RegisterCommands creates commands globally, or for one guild when
// guildID is set.
func RegisterCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID, guildID string) []*discordgo.ApplicationCommand {
	registered := make([]*discordgo.ApplicationCommand, len(commands))

	for i, cmd := range commands {
		result, err := session.ApplicationCommandCreate(userID, guildID, cmd)
		if err != nil {
			slog.Error("Cannot create command", "name", cmd.Name, "error", err)
			continue
		}
		registered[i] = result
		slog.Info("Registered command", "name", cmd.Name, "guild", guildID)
	}

	return registered
}

func CleanupCommands(session CommandSession, commands []*discordgo.ApplicationCommand, userID, guildID string) {
	for _, cmd := range commands {
		if cmd == nil {
			continue
		}
		if err := session.ApplicationCommandDelete(userID, guildID, cmd.ID); err != nil {
			slog.Error("Cannot delete command", "name", cmd.Name, "error", err)
		}
	}
}

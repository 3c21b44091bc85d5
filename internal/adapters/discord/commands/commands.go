package commands

import (
	"context"
	"fmt"
	"log/slog"

	"dollhouse-lurker/internal/adapters/discord/formatting"
	"dollhouse-lurker/internal/core/services"
	"dollhouse-lurker/internal/core/services/progression"

	"github.com/bwmarrin/discordgo"
)

type BotHandler struct {
	Service *services.ConfigurationService
	Levels  LevelQueries
	Members MemberDirectory
}

// Routes registers every command with its gate.
func (h *BotHandler) Routes(r *Router) {
	r.Register("setwelcome", WithGuildOnly(WithAdmin(h.SetWelcome)))
	r.Register("setautorole", WithGuildOnly(WithAdmin(h.SetAutorole)))
	r.Register("addrequired", WithGuildOnly(WithAdmin(h.AddRequired)))
	r.Register("setwelcomemessage", WithGuildOnly(WithAdmin(h.SetWelcomeMessage)))
	r.Register("setlevelchannel", WithGuildOnly(WithAdmin(h.SetLevelChannel)))
	r.Register("level", WithGuildOnly(h.Level))
	r.Register("leaderboard", WithGuildOnly(h.Leaderboard))
	r.Register("help", WithGuildOnly(h.Help))
}

func (h *BotHandler) SetWelcome(s DiscordSession, i *discordgo.InteractionCreate) error {
	channelID, err := requireID(i.ApplicationCommandData().Options, "channel")
	if err != nil {
		return err
	}

	if err := h.Service.SetWelcomeChannel(context.Background(), i.GuildID, channelID); err != nil {
		return err
	}
	return respond(s, i, formatting.MsgWelcomeChannelSet(channelID), true)
}

func (h *BotHandler) SetAutorole(s DiscordSession, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	roleID, err := requireID(data.Options, "role")
	if err != nil {
		return err
	}

	if err := h.Service.SetAutorole(context.Background(), i.GuildID, roleID); err != nil {
		return err
	}
	return respond(s, i, formatting.MsgAutoroleSet(h.roleName(i.GuildID, roleID, data.Resolved)), true)
}

func (h *BotHandler) AddRequired(s DiscordSession, i *discordgo.InteractionCreate) error {
	channelID, err := requireID(i.ApplicationCommandData().Options, "channel")
	if err != nil {
		return err
	}

	added, err := h.Service.AddRequiredChannel(context.Background(), i.GuildID, channelID)
	if err != nil {
		return err
	}
	if !added {
		return respond(s, i, formatting.MsgRequiredAlreadyListed(channelID), true)
	}
	return respond(s, i, formatting.MsgRequiredAdded(channelID), true)
}

func (h *BotHandler) SetWelcomeMessage(s DiscordSession, i *discordgo.InteractionCreate) error {
	message := getStringOption(i.ApplicationCommandData().Options, "message")
	if message == "" {
		return respond(s, i, formatting.MsgOptionRequired, true)
	}

	if err := h.Service.SetWelcomeMessage(context.Background(), i.GuildID, message); err != nil {
		return err
	}
	return respond(s, i, formatting.MsgWelcomeMessageUpdated, true)
}

func (h *BotHandler) SetLevelChannel(s DiscordSession, i *discordgo.InteractionCreate) error {
	channelID, err := requireID(i.ApplicationCommandData().Options, "channel")
	if err != nil {
		return err
	}

	if err := h.Service.SetLevelChannel(context.Background(), i.GuildID, channelID); err != nil {
		return err
	}
	return respond(s, i, formatting.MsgLevelChannelSet(channelID), true)
}

func (h *BotHandler) Level(s DiscordSession, i *discordgo.InteractionCreate) error {
	progress, err := h.Levels.Progress(context.Background(), i.GuildID, invokerID(i))
	if err != nil {
		return fmt.Errorf("get progress: %w", err)
	}
	if progress == nil {
		return respond(s, i, formatting.MsgNoLevel, true)
	}
	return respond(s, i, formatting.MsgLevelStatus(*progress), true)
}

func (h *BotHandler) Leaderboard(s DiscordSession, i *discordgo.InteractionCreate) error {
	resolve := func(userID string) (string, bool) {
		return h.Members.MemberDisplayName(i.GuildID, userID)
	}

	entries, err := h.Levels.TopN(context.Background(), i.GuildID, progression.DefaultLeaderboardSize, resolve)
	if err != nil {
		return fmt.Errorf("build leaderboard: %w", err)
	}
	if len(entries) == 0 {
		return respond(s, i, formatting.MsgNoData, true)
	}
	return respondEmbed(s, i, formatting.LeaderboardEmbed(entries), false)
}

func (h *BotHandler) Help(s DiscordSession, i *discordgo.InteractionCreate) error {
	opts := i.ApplicationCommandData().Options

	if i.Type == discordgo.InteractionApplicationCommandAutocomplete {
		return respondAutocomplete(s, i, buildCommandChoices(getFocusedOption(opts)))
	}

	name := getStringOption(opts, "command")
	if name == "" {
		return respondEmbed(s, i, formatting.HelpEmbed(), true)
	}

	for _, cmd := range GetApplicationCommands() {
		if cmd.Name == name {
			return respondEmbed(s, i, formatting.HelpDetailEmbed(commandHelp(cmd)), true)
		}
	}

	slog.Debug("Help requested for unknown command", "name", name)
	return respond(s, i, formatting.MsgUnknownCommand, true)
}

func (h *BotHandler) roleName(guildID, roleID string, resolved *discordgo.ApplicationCommandInteractionDataResolved) string {
	if resolved != nil {
		if role, ok := resolved.Roles[roleID]; ok && role != nil {
			return role.Name
		}
	}
	if name, ok := h.Members.RoleName(guildID, roleID); ok {
		return name
	}
	return "<@&" + roleID + ">"
}

func commandHelp(cmd *discordgo.ApplicationCommand) formatting.CommandHelp {
	options := make([]string, 0, len(cmd.Options))
	for _, opt := range cmd.Options {
		options = append(options, opt.Name)
	}
	return formatting.CommandHelp{
		Name:        cmd.Name,
		Description: cmd.Description,
		Options:     options,
		AdminOnly:   IsAdminCommand(cmd),
	}
}

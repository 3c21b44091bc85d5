package commands

import (
	"errors"
	"log/slog"

	"dollhouse-lurker/internal/adapters/discord/formatting"
	"dollhouse-lurker/internal/adapters/metrics"
	"dollhouse-lurker/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

type CommandHandler func(s DiscordSession, i *discordgo.InteractionCreate) error

type Router struct {
	routes map[string]CommandHandler
}

func NewRouter() *Router {
	return &Router{
		routes: make(map[string]CommandHandler),
	}
}

func (r *Router) Register(name string, handler CommandHandler) {
	r.routes[name] = handler
}

func (r *Router) Handle(s DiscordSession, i *discordgo.InteractionCreate) {
	if !isCommandInteraction(i.Type) {
		return
	}

	name := i.ApplicationCommandData().Name
	slog.Debug("Router received interaction", "type", i.Type, "name", name, "guild_id", i.GuildID)

	handler, ok := r.routes[name]
	if !ok {
		slog.Warn("No handler found for command", "name", name)
		return
	}

	err := handler(s, i)
	if i.Type == discordgo.InteractionApplicationCommandAutocomplete {
		if err != nil {
			slog.Debug("Autocomplete failed", "name", name, "error", err)
		}
		return
	}

	r.handleError(s, i, name, err)
}

// handleError maps a handler error to the user-facing reply. Errors that
// are not permission or context problems are logged as command failures.
func (r *Router) handleError(s DiscordSession, i *discordgo.InteractionCreate, name string, err error) {
	var reply string
	switch {
	case err == nil:
		metrics.Commands.WithLabelValues(name, "ok").Inc()
		return
	case errors.Is(err, domain.ErrPermissionDenied):
		metrics.Commands.WithLabelValues(name, "denied").Inc()
		metrics.CommandErrors.WithLabelValues("permission").Inc()
		reply = formatting.MsgPermissionDenied
	case errors.Is(err, domain.ErrContextRestriction):
		metrics.Commands.WithLabelValues(name, "denied").Inc()
		metrics.CommandErrors.WithLabelValues("context").Inc()
		reply = formatting.MsgServerOnly
	default:
		slog.Error("Command failed", "name", name, "guild_id", i.GuildID, "error", err)
		metrics.Commands.WithLabelValues(name, "error").Inc()
		metrics.CommandErrors.WithLabelValues("unknown").Inc()
		reply = formatting.MsgCommandError
	}

	// Fails when the handler already answered before returning its error.
	if respErr := respond(s, i, reply, true); respErr != nil {
		slog.Warn("Failed to send command error reply", "name", name, "guild_id", i.GuildID, "error", respErr)
	}
}

func isCommandInteraction(t discordgo.InteractionType) bool {
	return t == discordgo.InteractionApplicationCommand ||
		t == discordgo.InteractionApplicationCommandAutocomplete
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_messages_processed_total",
		Help: "Guild messages processed, by outcome",
	}, []string{"outcome"})

	XPAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_xp_awarded_total",
		Help: "Total XP granted across all guilds",
	})

	LevelUps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_level_ups_total",
		Help: "The total number of level ups",
	})

	TriggerReplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_trigger_replies_total",
		Help: "Replies produced by trigger rules",
	}, []string{"rule"})

	MembersWelcomed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_members_welcomed_total",
		Help: "Member join events, by result",
	}, []string{"result"})

	Commands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_commands_total",
		Help: "Slash command invocations",
	}, []string{"command", "status"})

	CommandErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_command_errors_total",
		Help: "Slash command failures, by error kind",
	}, []string{"kind"})

	DiscordMessagesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_messages_sent_total",
		Help: "Total number of Discord messages sent",
	}, []string{"kind", "status"})

	DiscordRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discord_requests_total",
		Help: "Discord REST calls, by route and status",
	}, []string{"route", "status"})

	DiscordRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "discord_request_duration_seconds",
		Help:    "Latency of Discord REST calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})

	StorageSaveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storage_save_duration_seconds",
		Help:    "Duration of whole-document writes",
		Buckets: prometheus.DefBuckets,
	}, []string{"document", "backend"})

	CooldownEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bot_cooldown_entries",
		Help: "Live entries in the in-memory cooldown tables",
	}, []string{"table"})

	EventQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bot_event_queue_depth",
		Help: "Events waiting for the serial handler",
	})
)

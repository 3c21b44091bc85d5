package triggers

import (
	"fmt"
	"slices"
	"strings"

	"dollhouse-lurker/internal/adapters/metrics"
	"dollhouse-lurker/internal/core/domain"
	"dollhouse-lurker/internal/core/ports"
	"dollhouse-lurker/internal/core/services/cooldown"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	RuleDiva         = "diva"
	RuleScam         = "scam"
	RuleGreeting     = "greeting"
	RuleEmoji        = "emoji"
	RuleRare         = "rare"
	RuleSassyKeyword = "sassy_keyword"
	RuleSassyRandom  = "sassy_random"
)

const (
	DivaBait  = "diva"
	DivaBurst = 5

	GreetingChance     = 0.15
	EmojiChance        = 0.25
	RareChance         = 0.01
	SassyKeywordChance = 0.2
	SassyRandomChance  = 0.03
)

// Result is what the rules produced for one message. Stop means the
// message must not earn XP. Handled is always true: triggers never
// swallow command dispatch.
type Result struct {
	Replies []domain.Reply
	Stop    bool
	Handled bool
}

type input struct {
	msg     domain.Message
	lowered string
}

type rule struct {
	name  string
	apply func(in input) (replies []string, stop bool)
}

type Engine struct {
	tables Tables
	diva   *cooldown.Tracker
	rnd    ports.Random
	rules  []rule
}

func NewEngine(tables Tables, diva *cooldown.Tracker, rnd ports.Random) *Engine {
	e := &Engine{
		tables: tables,
		diva:   diva,
		rnd:    rnd,
	}

	e.rules = []rule{
		{RuleDiva, e.divaBait},
		{RuleScam, e.scam},
		{RuleGreeting, e.keywords(tables.Greetings, GreetingChance, false)},
		{RuleEmoji, e.keywords(tables.Emoji, EmojiChance, true)},
		{RuleRare, e.chance(tables.RareLines, RareChance)},
		{RuleSassyKeyword, e.keywords(tables.SassyKeywords, SassyKeywordChance, false)},
		{RuleSassyRandom, e.chance(tables.SassyLines, SassyRandomChance)},
	}
	return e
}

// Evaluate runs the rules in order. A rule that stops ends evaluation.
func (e *Engine) Evaluate(msg domain.Message) Result {
	in := input{msg: msg, lowered: cases.Lower(language.Und).String(msg.Content)}
	res := Result{Handled: true}

	for _, r := range e.rules {
		replies, stop := r.apply(in)
		for _, content := range replies {
			res.Replies = append(res.Replies, domain.Reply{Rule: r.name, Content: content})
		}
		if len(replies) > 0 {
			metrics.TriggerReplies.WithLabelValues(r.name).Add(float64(len(replies)))
		}
		if stop {
			res.Stop = true
			break
		}
	}
	return res
}

// DivaDetected reports whether the message baits the diva rule, ignoring
// the cooldown.
func DivaDetected(msg domain.Message) bool {
	fold := cases.Fold()
	bait := fold.String(DivaBait)

	if strings.Contains(fold.String(msg.Content), bait) {
		return true
	}
	for _, u := range msg.MentionedUsers {
		if strings.Contains(fold.String(u.DisplayName), bait) {
			return true
		}
	}
	for _, r := range msg.MentionedRoles {
		if strings.Contains(fold.String(r.Name), bait) {
			return true
		}
	}
	return false
}

func (e *Engine) divaBait(in input) ([]string, bool) {
	if len(e.tables.DivaWords) == 0 || !DivaDetected(in.msg) {
		return nil, false
	}
	if !e.diva.TryAcquire(cooldown.Key(in.msg.GuildID), in.msg.Timestamp) {
		return nil, false
	}

	word := e.pick(e.tables.DivaWords)
	replies := make([]string, DivaBurst)
	for i := range replies {
		replies[i] = word
	}
	return replies, true
}

func (e *Engine) scam(in input) ([]string, bool) {
	if !e.looksLikeScam(in.lowered) {
		return nil, false
	}
	warning := fmt.Sprintf("⚠️ <@%s> that looks like a scam. Don't click random gift links, dolls! 🧸", in.msg.AuthorID)
	return []string{warning}, true
}

func (e *Engine) looksLikeScam(lowered string) bool {
	for _, phrase := range e.tables.ScamPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	for _, d := range linkedDomains(lowered) {
		if slices.Contains(e.tables.ScamDomains, d) {
			return true
		}
	}
	return false
}

// keywords fires on the first keyword present in the message; later
// keywords are not considered even when the draw misses.
func (e *Engine) keywords(table []KeywordReplies, p float64, raw bool) func(input) ([]string, bool) {
	return func(in input) ([]string, bool) {
		text := in.lowered
		if raw {
			text = in.msg.Content
		}

		for _, kr := range table {
			if !strings.Contains(text, kr.Keyword) {
				continue
			}
			if len(kr.Replies) == 0 || e.rnd.Float64() >= p {
				return nil, false
			}
			return []string{e.pick(kr.Replies)}, false
		}
		return nil, false
	}
}

func (e *Engine) chance(lines []string, p float64) func(input) ([]string, bool) {
	return func(in input) ([]string, bool) {
		if len(lines) == 0 || e.rnd.Float64() >= p {
			return nil, false
		}
		return []string{e.pick(lines)}, false
	}
}

func (e *Engine) pick(options []string) string {
	return options[e.rnd.IntN(len(options))]
}

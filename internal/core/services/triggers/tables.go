package triggers

// KeywordReplies pairs a trigger keyword with the replies it can draw from.
type KeywordReplies struct {
	Keyword string
	Replies []string
}

// Tables holds every static trigger list. Keyword lists are ordered: the
// first entry found in a message wins.
type Tables struct {
	DivaWords     []string
	ScamPhrases   []string
	ScamDomains   []string
	Greetings     []KeywordReplies
	Emoji         []KeywordReplies
	RareLines     []string
	SassyKeywords []KeywordReplies
	SassyLines    []string
}

func DefaultTables() Tables {
	return Tables{
		DivaWords: []string{"SLAY", "ICONIC", "SERVE", "MOTHER", "PERIODT"},
		ScamPhrases: []string{
			"free nitro",
			"nitro for free",
			"claim your nitro",
			"discord nitro giveaway",
			"steam gift",
			"free steam",
			"free robux",
			"crypto giveaway",
			"double your crypto",
			"airdrop",
		},
		ScamDomains: []string{
			"discord-nitro.gift",
			"dlscord.gift",
			"discordgift.site",
			"steamcommunlty.com",
			"steamcomrnunity.com",
			"nitro-drop.com",
		},
		Greetings: []KeywordReplies{
			{Keyword: "good morning", Replies: []string{
				"good morning, sunshine ☀️",
				"rise and shine, doll 🧸",
				"morning! the dollhouse missed you",
			}},
			{Keyword: "good night", Replies: []string{
				"sweet dreams 🌙",
				"night night, the dolls will keep watch 🧸",
			}},
			{Keyword: "hello", Replies: []string{
				"hii 🎀",
				"hello hello 💕",
				"oh look who's here ✨",
			}},
			{Keyword: "hey", Replies: []string{
				"heyyy 💖",
				"hey you 🎀",
			}},
		},
		Emoji: []KeywordReplies{
			{Keyword: "🧸", Replies: []string{"🧸🧸🧸", "a fellow bear enjoyer 🧸"}},
			{Keyword: "🎀", Replies: []string{"so cute 🎀", "bows on bows 🎀🎀"}},
			{Keyword: "💅", Replies: []string{"the attitude 💅", "serving 💅✨"}},
			{Keyword: "👀", Replies: []string{"👀", "i saw that too 👀"}},
		},
		RareLines: []string{
			"i live in the walls of the dollhouse 🧸",
			"the dolls are watching. they are always watching.",
			"you weren't supposed to see this message 👁️",
			"psst... the real treasure was the XP we farmed along the way",
		},
		SassyKeywords: []KeywordReplies{
			{Keyword: "bot", Replies: []string{
				"excuse me? i prefer *lurker* 💅",
				"talking about me again? flattered.",
			}},
			{Keyword: "shut up", Replies: []string{
				"make me 💅",
				"no 🎀",
			}},
			{Keyword: "boring", Replies: []string{
				"boring? in THIS dollhouse? never.",
			}},
		},
		SassyLines: []string{
			"anyway 💅",
			"and i took that personally.",
			"the audacity ✨",
			"not me reading every message in here 👀",
			"okay but who asked 🎀",
		},
	}
}

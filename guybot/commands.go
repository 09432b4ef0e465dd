package guybot

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	owoify_go "github.com/deadshot465/owoify-go"

	"github.com/Kardbord/guybot/guybot/dispatch"
	"github.com/Kardbord/guybot/guybot/emoji"
	"github.com/Kardbord/guybot/guybot/guysay"
	"github.com/Kardbord/guybot/guybot/health"
	"github.com/Kardbord/guybot/guybot/jokes"
	"github.com/Kardbord/guybot/guybot/quotes"
)

const (
	summonEmojis    = 7
	oracleMinEmojis = 5
	oracleMaxEmojis = 15

	owoLevel = "owo"

	jokeFailure   = "Couldn't fetch a joke right now. 😔"
	healthFailure = "Could not reach the endpoint ❌"
)

// services are the collaborators commands call into.
type services struct {
	Quotes *quotes.Store
	Jokes  *jokes.Fetcher
	Health *health.Prober
}

// Replies for commands that always say the same thing.
var staticReplies = []struct {
	trigger string
	help    string
	reply   string
}{
	{"!gaysay", "A typo the guy forgives", "ব্রো, এসো তোমাকে ব্লেম দেই <3 "},
	{"!sprint", "What a sprint really means", "Sprint in the AI world means, really fast."},
	{"!no", "The philosophy of no", "The no word has deep philosophical meaning to me. It tells me that I can tell anyone, no. Nobody can stop me."},
	{"!breakfast", "What the guy had for breakfast", "I had granola and corn flakes this breakfast, but decided to add AI on top of it anyway."},
	{"!PM", "Hail the PM", "LONG LIVE THE PM!"},
	{"!QA", "Report a bug", "বাগ পাইসেন? আচ্ছা লিনিয়ারে টিকেট দেন। দেখতেসি বিষয়টা।"},
	{"!abubakar", "Abubakar's Eid wish", "All I want for Eid is chunks!"},
	{"!biriyani", "Biriyani", "🎭 💡 https://www.youtube.com/watch?v=xvFZjo5PgG0\n"},
	{"!failed", "What to do when it failed", "Don't fix it just revert!"},
	{"!talha", "Talha wants an update", "আপডেট ছাড়া আরেকবার ডাকলে বেতন 10% মাইনাস"},
	{"!jiggu", "Jiggu's confession", "লোকে বলে আমি প্রোজেক্ট ম্যানেজার কিন্তু আমি আসলে আস্ত অপদার্থ, মুনিয়ার মা, প্লেটে আরো থ্যাপলা দাও, খাই।"},
}

// newDispatcher builds the command table and a Dispatcher serving it.
func newDispatcher(sink dispatch.Sink, svc services) (*dispatch.Dispatcher, error) {
	// Assigned before any message is handled.
	var d *dispatch.Dispatcher

	cmds := []dispatch.Command{
		{
			Trigger: "!summon",
			Help:    "Summons a mentioned user with a string of emoji",
			Guard:   dispatch.HasMentions,
			Run: func(context.Context, *dispatch.Message) (string, error) {
				return emojiString(summonEmojis)
			},
		},
		{
			Trigger: "!oracle",
			Help:    "Consults the oracle",
			Run: func(context.Context, *dispatch.Message) (string, error) {
				return emojiString(oracleMinEmojis + rand.IntN(oracleMaxEmojis-oracleMinEmojis+1))
			},
		},
		{
			Trigger: "!joke",
			Help:    "Tells a programming joke",
			Run: func(ctx context.Context, _ *dispatch.Message) (string, error) {
				j, err := svc.Jokes.Fetch(ctx)
				if err != nil {
					return "", err
				}
				return j.String(), nil
			},
			Failure: func(error) string { return jokeFailure },
		},
		{
			Trigger: "!health",
			Help:    "Checks a service, e.g. `!health backend dev`",
			Run: func(ctx context.Context, m *dispatch.Message) (string, error) {
				v, err := svc.Health.Probe(ctx, m.Content)
				if err != nil {
					return "", err
				}
				return v.String(), nil
			},
			Failure: renderHealthFailure,
		},
		{
			Trigger: "!backend",
			Help:    "Checks whether the backend is running",
			Run: func(ctx context.Context, _ *dispatch.Message) (string, error) {
				v, err := svc.Health.CheckBackend(ctx)
				if err != nil {
					return "", err
				}
				return v.Short(), nil
			},
			Failure: renderHealthFailure,
		},
		{
			Trigger: "!guysay",
			Help:    "Words of wisdom from the guy",
			Run: func(context.Context, *dispatch.Message) (string, error) {
				q, _ := svc.Quotes.Random()
				return guysay.Say(q, true)
			},
		},
		{
			Trigger: "!owosay",
			Help:    "Words of wisdom from the guy, owoified",
			Run: func(context.Context, *dispatch.Message) (string, error) {
				q, _ := svc.Quotes.Random()
				return guysay.Say(owoify_go.Owoify(q, owoLevel), true)
			},
		},
	}
	for _, s := range staticReplies {
		cmds = append(cmds, dispatch.Command{
			Trigger: s.trigger,
			Help:    s.help,
			Run:     dispatch.Static(s.reply),
		})
	}
	cmds = append(cmds,
		dispatch.Command{
			Trigger: "!guyhelp",
			Help:    "Lists commands",
			Run: func(context.Context, *dispatch.Message) (string, error) {
				return helpText(d.Help()), nil
			},
		},
		dispatch.Command{
			Trigger: "!guystats",
			Help:    "Shows usage statistics",
			Run: func(context.Context, *dispatch.Message) (string, error) {
				return "```\n" + d.Stats().String() + "\n```", nil
			},
		},
	)

	var err error
	d, err = dispatch.New(sink, cmds...)
	return d, err
}

func emojiString(n int) (string, error) {
	glyphs, err := emoji.Generate(n)
	if err != nil {
		return "", err
	}
	return emoji.Join(glyphs), nil
}

func renderHealthFailure(err error) string {
	var terr *health.TransportError
	if errors.As(err, &terr) {
		return healthFailure
	}
	return dispatch.GenericFailure
}

// helpText lists commands that have help text.
func helpText(lines []dispatch.HelpLine) string {
	var b strings.Builder
	b.WriteString("**Commands**")
	for _, l := range lines {
		if l.Help == "" {
			continue
		}
		fmt.Fprintf(&b, "\n`%s` %s", l.Trigger, l.Help)
	}
	return b.String()
}

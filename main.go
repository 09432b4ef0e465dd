package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/Kardbord/guybot/guybot"
	"github.com/Kardbord/guybot/guybot/config"
	"github.com/Kardbord/guybot/guybot/emoji"
	"github.com/Kardbord/guybot/guybot/guysay"
	"github.com/Kardbord/guybot/guybot/quotes"
)

func init() {
	log.SetReportCaller(true)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.UnixDate,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			split := strings.Split(f.File, "guybot/")
			filename := "guybot/" + split[len(split)-1]
			return "", fmt.Sprintf("%s:%d", filename, f.Line)
		},
	})
}

var app = cli.Command{
	Name:  "guybot",
	Usage: "Discord bot with emoji, jokes, health checks and words of wisdom",

	Flags: []cli.Flag{
		&flagConfig,
		&flagLogLevel,
	},
	Commands: []*cli.Command{
		{
			Name:  "bot",
			Usage: "Connect to Discord and serve commands",
			Flags: []cli.Flag{
				&flagQuotes,
			},
			Action: cliBot,
		},
		{
			Name:  "emoji",
			Usage: "Print a string of distinct emoji",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "n",
					Usage: "Number of emoji to print",
					Value: 5,
				},
				&cli.BoolFlag{
					Name:  "copy",
					Usage: "Also copy the emoji to the system clipboard",
				},
			},
			Action: cliEmoji,
		},
		{
			Name:  "quote",
			Usage: "Print a random quote in a speech bubble",
			Flags: []cli.Flag{
				&flagQuotes,
				&cli.BoolFlag{
					Name:  "plain",
					Usage: "Print without the code fence",
				},
			},
			Action: cliQuote,
		},
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup loads the setup file and applies its log level, unless the
// level was given on the command line.
func setup(cmd *cli.Command) (config.Setup, error) {
	s, err := config.LoadSetup(cmd.String("config"))
	if err != nil {
		return s, err
	}
	lvlName := s.DefaultLogLevel
	if cmd.IsSet("log-level") {
		lvlName = cmd.String("log-level")
	}
	if lvl, err := log.ParseLevel(lvlName); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(log.InfoLevel)
		log.Warnf(`Could not read log level (%s). Defaulting to "%s".`, lvlName, log.InfoLevel)
	}
	return s, nil
}

func cliBot(ctx context.Context, cmd *cli.Command) error {
	s, err := setup(cmd)
	if err != nil {
		return err
	}
	guybot.LoadEnv()
	token, err := guybot.BotToken()
	if err != nil {
		return err
	}
	b, err := guybot.New(guybot.Options{
		Token:        token,
		QuotesFolder: cmd.String("quotes"),
		Setup:        s,
	})
	if err != nil {
		return err
	}
	return b.RunAndBlock()
}

func cliEmoji(ctx context.Context, cmd *cli.Command) error {
	if _, err := setup(cmd); err != nil {
		return err
	}
	line, err := emojiLine(int(cmd.Int("n")), cmd.Bool("copy"))
	if err != nil {
		return err
	}
	fmt.Println(line)
	return nil
}

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// emojiLine generates n emoji and, if toClipboard is set, puts them on the
// clipboard. A clipboard failure is logged and does not fail the command.
func emojiLine(n int, toClipboard bool) (string, error) {
	glyphs, err := emoji.Generate(n)
	if err != nil {
		return "", err
	}
	line := emoji.Join(glyphs)
	if toClipboard {
		if err := copyToClipboard(line); err != nil {
			log.WithError(err).Warn("Could not copy emoji to the clipboard")
		} else {
			log.Info("Emoji copied to the clipboard")
		}
	}
	return line, nil
}

func cliQuote(ctx context.Context, cmd *cli.Command) error {
	if _, err := setup(cmd); err != nil {
		return err
	}
	store, err := quotes.Load(cmd.String("quotes"))
	if err != nil {
		return err
	}
	q, _ := store.Random()
	art, err := guysay.Say(q, !cmd.Bool("plain"))
	if err != nil {
		return err
	}
	fmt.Println(art)
	return nil
}

var (
	flagConfig = cli.StringFlag{
		Name:       "config",
		Usage:      "JSON setup file; defaults apply if it does not exist",
		Value:      config.DefaultSetupFile,
		Persistent: true,
	}

	flagLogLevel = cli.StringFlag{
		Name:       "log-level",
		Usage:      "Logging level, one of trace, debug, info, warn, error; overrides the setup file",
		Persistent: true,
		Action: func(ctx context.Context, cmd *cli.Command, s string) error {
			_, err := log.ParseLevel(s)
			return err
		},
	}

	flagQuotes = cli.StringFlag{
		Name:  "quotes",
		Usage: "Folder of fortune files",
		Value: "quotes",
		Action: func(ctx context.Context, cmd *cli.Command, s string) error {
			i, err := os.Stat(s)
			if err != nil {
				return err
			}
			if !i.IsDir() {
				return errors.New("quotes must be a directory")
			}
			return nil
		},
	}
)

// Package guybot connects the command dispatcher to Discord.
package guybot

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/Kardbord/guybot/guybot/config"
	"github.com/Kardbord/guybot/guybot/dispatch"
	"github.com/Kardbord/guybot/guybot/health"
	"github.com/Kardbord/guybot/guybot/jokes"
	"github.com/Kardbord/guybot/guybot/metrics"
	"github.com/Kardbord/guybot/guybot/quotes"
)

const Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

// Options configure a Bot.
type Options struct {
	Token        string
	QuotesFolder string
	Setup        config.Setup
	// Health resolves health check URLs. Defaults to the process
	// environment.
	Health health.Lookuper
	// Client is used for outbound HTTP requests. Defaults to
	// http.DefaultClient.
	Client *http.Client
}

type Bot struct {
	Session    *discordgo.Session
	Dispatcher *dispatch.Dispatcher
	Quotes     *quotes.Store

	setup     config.Setup
	registry  *prometheus.Registry
	scheduler *gocron.Scheduler
	server    *statusServer

	ready  atomic.Bool
	status atomic.String
}

// New loads quotes and prepares a session. Nothing connects until Run.
func New(opts Options) (*Bot, error) {
	store, err := quotes.Load(opts.QuotesFolder)
	if err != nil {
		return nil, err
	}
	log.Infof("Loaded %d quotes from %s", store.Len(), opts.QuotesFolder)

	dgs, err := discordgo.New("Bot " + opts.Token)
	if err != nil {
		return nil, err
	}

	if opts.Health == nil {
		opts.Health = health.Environ{}
	}
	m := metrics.New()
	prober := health.NewProber(opts.Health, opts.Client)
	prober.Latency = m.UpstreamLatency
	fetcher := jokes.NewFetcher(opts.Client)
	fetcher.Latency = m.UpstreamLatency

	b := &Bot{
		Session:  dgs,
		Quotes:   store,
		setup:    opts.Setup,
		registry: prometheus.NewRegistry(),
	}
	b.Dispatcher, err = newDispatcher(sessionSink{dgs}, services{
		Quotes: store,
		Jokes:  fetcher,
		Health: prober,
	})
	if err != nil {
		return nil, err
	}
	b.Dispatcher.CommandCount = m.CommandCount
	b.registry.MustRegister(m.Collectors()...)

	b.scheduler, err = b.newScheduler()
	if err != nil {
		return nil, err
	}
	if opts.Setup.StatusServer.Enabled {
		b.server = newStatusServer(opts.Setup.StatusServer.Address, b.registry, b.ready.Load)
	}

	b.configure()
	b.addHandlers()
	return b, nil
}

func (b *Bot) configure() {
	b.Session.Identify.Intents = Intents
	// Each event gets its own goroutine.
	b.Session.SyncEvents = false
	b.Session.ShouldReconnectOnError = true
	b.Session.StateEnabled = true
}

func (b *Bot) addHandlers() {
	for _, h := range b.onReadyHandlers() {
		log.Debugf("Registering ready handler: %s", h.help)
		b.Session.AddHandler(h.handler)
	}
	for _, h := range b.onCreateHandlers() {
		log.Debugf("Registering message handler: %s", h.help)
		b.Session.AddHandler(h.handler)
	}
}

// Run connects to Discord and starts background jobs.
func (b *Bot) Run() error {
	if b.server != nil {
		go func() {
			if err := b.server.Start(); err != nil {
				log.Error(err)
			}
		}()
	}
	if err := b.Session.Open(); err != nil {
		return err
	}
	b.scheduler.StartAsync()
	log.Print("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Block the current goroutine until a terminating signal is received
func Block() {
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}

// RunAndBlock runs the bot until a terminating signal is received,
// then stops it.
func (b *Bot) RunAndBlock() error {
	if err := b.Run(); err != nil {
		return err
	}
	Block()
	b.Stop()
	return nil
}

// Stop and clean up.
func (b *Bot) Stop() {
	b.scheduler.Stop()
	if b.server != nil {
		if err := b.server.Stop(5 * time.Second); err != nil {
			log.Error(err)
		}
	}
	b.ready.Store(false)
	if err := b.Session.Close(); err != nil {
		log.Error(err)
	}
	log.Info("Bot stopped")
}

package guybot

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"
)

const idleTimeout = 5 * time.Minute

// newScheduler initializes the background jobs. It does not start them.
func (b *Bot) newScheduler() (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(time.Local)

	// https://crontab.guru/#*_*_*_*_*
	if _, err := s.Cron("* * * * *").Do(b.setStatus); err != nil {
		return nil, err
	}

	// https://crontab.guru/#0_*_*_*_*
	if _, err := s.Cron("0 * * * *").Do(b.logUsage); err != nil {
		return nil, err
	}

	return s, nil
}

// isIdle reports whether the bot should show as idle at now.
func (b *Bot) isIdle(now time.Time) bool {
	if b.status.Load() == string(discordgo.StatusIdle) {
		return false
	}
	last := b.Dispatcher.Stats().LastActive
	if last.IsZero() {
		return true
	}
	return now.Sub(last) > idleTimeout
}

// wakes reports whether an idle bot has seen activity since going idle.
func (b *Bot) wakes(now time.Time) bool {
	if b.status.Load() != string(discordgo.StatusIdle) {
		return false
	}
	last := b.Dispatcher.Stats().LastActive
	return !last.IsZero() && now.Sub(last) <= idleTimeout
}

func (b *Bot) setStatus() {
	if !b.ready.Load() {
		return
	}
	now := time.Now()
	switch {
	case b.isIdle(now):
		idleSince := int(now.Local().UnixMilli())
		err := b.Session.UpdateStatusComplex(discordgo.UpdateStatusData{
			IdleSince: &idleSince,
			AFK:       true,
			Status:    string(discordgo.StatusIdle),
		})
		if err != nil {
			log.Error(err)
			return
		}
		b.status.Store(string(discordgo.StatusIdle))
		log.Infof("Set bot status to %s", b.status.Load())
	case b.wakes(now):
		b.setListening(b.Session)
		log.Infof("Set bot status to %s", b.status.Load())
	}
}

func (b *Bot) logUsage() {
	s := b.Dispatcher.Stats()
	log.WithFields(log.Fields{
		"messages":    s.Messages,
		"commands":    s.Commands,
		"last_active": s.LastActive,
	}).Info("Usage summary")
}

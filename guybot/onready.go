package guybot

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

type onReadyHandlerf = func(*discordgo.Session, *discordgo.Ready)

type onReadyHandler struct {
	handler onReadyHandlerf
	help    string
}

// Any callbacks that happen onReady belong in this list.
// These callbacks must be able to safely execute asynchronously.
func (b *Bot) onReadyHandlers() []onReadyHandler {
	return []onReadyHandler{
		{b.onReady, "Updates \"Listening Status\""},
	}
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	fields := log.Fields{"guild_count": len(r.Guilds)}
	if r.User != nil {
		fields["bot_name"] = r.User.Username
		fields["bot_id"] = r.User.ID
	}
	log.WithFields(fields).Info("Discord bot is connected and ready")

	b.setListening(s)
	b.ready.Store(true)
}

// setListening shows the configured listening status and marks the
// bot online.
func (b *Bot) setListening(s *discordgo.Session) {
	if err := s.UpdateListeningStatus(b.setup.ListeningStatus); err != nil {
		log.Error(err)
		return
	}
	b.status.Store(string(discordgo.StatusOnline))
}

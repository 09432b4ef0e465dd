package guybot

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/Kardbord/guybot/guybot/dispatch"
)

type onCreateHandlerf = func(*discordgo.Session, *discordgo.MessageCreate)

type onCreateHandler struct {
	handler onCreateHandlerf
	help    string
}

// Any callbacks that happen onMessageCreate belong in this list.
// These callbacks must be able to safely execute asynchronously.
func (b *Bot) onCreateHandlers() []onCreateHandler {
	return []onCreateHandler{
		{b.dispatch, "Runs text commands"},
	}
}

func (b *Bot) dispatch(s *discordgo.Session, mc *discordgo.MessageCreate) {
	var self string
	if s.State != nil && s.State.User != nil {
		self = s.State.User.ID
	}
	m := toMessage(mc.Message, self)
	if m == nil {
		return
	}
	b.Dispatcher.Handle(context.Background(), m)
}

// toMessage converts a gateway message. Messages from selfID are
// marked as bot messages.
func toMessage(msg *discordgo.Message, selfID string) *dispatch.Message {
	if msg == nil || msg.Author == nil {
		return nil
	}
	m := &dispatch.Message{
		ID:         msg.ID,
		AuthorID:   msg.Author.ID,
		AuthorName: msg.Author.Username,
		ChannelID:  msg.ChannelID,
		Content:    msg.Content,
		Bot:        msg.Author.Bot || msg.Author.ID == selfID,
	}
	for _, u := range msg.Mentions {
		if u != nil {
			m.Mentions = append(m.Mentions, u.ID)
		}
	}
	return m
}

// sessionSink sends replies through a discordgo session.
type sessionSink struct {
	s *discordgo.Session
}

func (ss sessionSink) Send(channelID, text string) error {
	_, err := ss.s.ChannelMessageSend(channelID, text)
	return err
}

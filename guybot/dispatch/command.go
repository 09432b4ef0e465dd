package dispatch

import (
	"context"
	"strings"
)

// Message is one inbound chat message. Commands must not modify it.
type Message struct {
	ID         string
	AuthorID   string
	AuthorName string
	ChannelID  string
	Content    string
	// Mentions holds the IDs of mentioned users.
	Mentions []string
	// Bot is set when the author is a bot account, including this one.
	Bot bool
}

// Sink delivers replies.
type Sink interface {
	Send(channelID, text string) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(channelID, text string) error

func (f SinkFunc) Send(channelID, text string) error { return f(channelID, text) }

// GenericFailure is sent when a command fails and has no Failure of its own.
const GenericFailure = "Something went wrong while processing your command. 😔"

// Command binds a trigger to an action.
type Command struct {
	// Name identifies the command in logs, metrics and usage statistics.
	// Defaults to Trigger without its leading "!".
	Name string
	// Trigger is the prefix a message must start with.
	Trigger string
	// Help is a one-line description for help listings.
	Help string
	// Guard, if not nil, must also accept the message.
	Guard func(*Message) bool
	// Exclusive commands do not run for messages that also start with a
	// longer registered trigger. Otherwise a message may run every command
	// whose trigger prefixes it.
	Exclusive bool
	// Run produces the reply. It may block on I/O.
	Run func(ctx context.Context, m *Message) (string, error)
	// Failure renders the reply sent when Run returns an error. If nil,
	// GenericFailure is sent.
	Failure func(err error) string
}

// Static returns a Run that always replies with text.
func Static(text string) func(context.Context, *Message) (string, error) {
	return func(context.Context, *Message) (string, error) { return text, nil }
}

// HasMentions is a Guard requiring at least one mentioned user.
func HasMentions(m *Message) bool { return len(m.Mentions) > 0 }

type entry struct {
	Command
	// Longer registered triggers that start with this one, for exclusive
	// commands. A message matching any of them belongs to that command
	// instead.
	shadowedBy []string
}

func (e *entry) matches(m *Message) bool {
	if !strings.HasPrefix(m.Content, e.Trigger) {
		return false
	}
	for _, longer := range e.shadowedBy {
		if strings.HasPrefix(m.Content, longer) {
			return false
		}
	}
	return e.Guard == nil || e.Guard(m)
}

func (e *entry) failure(err error) string {
	if e.Failure == nil {
		return GenericFailure
	}
	if s := e.Failure(err); s != "" {
		return s
	}
	return GenericFailure
}

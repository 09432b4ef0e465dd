// Package dispatch routes chat messages to commands.
//
// Every command whose trigger prefixes a message runs independently in its own
// goroutine, so a command waiting on the network holds up neither the other
// commands of the same message nor other messages. Commands never reply
// themselves: the Dispatcher sends whatever a command returns, or the
// command's failure text when it returns an error, and logs all failures.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"
	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/Kardbord/guybot/guybot/metrics"
)

// Dispatcher evaluates a fixed table of commands against each message. It is
// safe for concurrent use.
type Dispatcher struct {
	sink     Sink
	commands []entry

	// CommandCount, if not nil, counts commands by name and outcome. It must
	// be set before the first call to Handle.
	CommandCount metrics.Observer

	// Usage statistics are the only state shared between messages.
	messages   atomic.Int64
	lastActive atomic.Int64
	usage      cmap.ConcurrentMap[string, int64]
}

// New creates a Dispatcher sending replies to sink. Commands are evaluated in
// the order given. Triggers must be unique and non-empty.
func New(sink Sink, commands ...Command) (*Dispatcher, error) {
	if sink == nil {
		return nil, errors.New("dispatch: nil sink")
	}
	d := &Dispatcher{
		sink:  sink,
		usage: cmap.New[int64](),
	}
	seen := make(map[string]bool, len(commands))
	for _, c := range commands {
		if c.Trigger == "" {
			return nil, fmt.Errorf("dispatch: command %q has no trigger", c.Name)
		}
		if c.Run == nil {
			return nil, fmt.Errorf("dispatch: command %q has no action", c.Trigger)
		}
		if seen[c.Trigger] {
			return nil, fmt.Errorf("dispatch: duplicate trigger %q", c.Trigger)
		}
		seen[c.Trigger] = true
		if c.Name == "" {
			c.Name = strings.TrimPrefix(c.Trigger, "!")
		}
		d.commands = append(d.commands, entry{Command: c})
	}
	for i := range d.commands {
		if !d.commands[i].Exclusive {
			continue
		}
		for j := range d.commands {
			t, u := d.commands[i].Trigger, d.commands[j].Trigger
			if len(u) > len(t) && strings.HasPrefix(u, t) {
				d.commands[i].shadowedBy = append(d.commands[i].shadowedBy, u)
			}
		}
	}
	return d, nil
}

// Handle runs every command matching m and returns once all of them have
// attempted their reply. It returns the number of commands matched. Messages
// from bots are ignored.
func (d *Dispatcher) Handle(ctx context.Context, m *Message) int {
	if m == nil || m.Bot {
		return 0
	}
	d.messages.Inc()

	logger := log.WithFields(log.Fields{
		"event":      uuid.NewString(),
		"user_id":    m.AuthorID,
		"username":   m.AuthorName,
		"channel_id": m.ChannelID,
	})

	var wg sync.WaitGroup
	matched := 0
	for i := range d.commands {
		e := &d.commands[i]
		if !e.matches(m) {
			continue
		}
		matched++
		d.usage.Upsert(e.Name, 1, func(exist bool, old, n int64) int64 {
			if exist {
				return old + n
			}
			return n
		})
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.run(ctx, e, m, logger.WithField("command", e.Name))
		}()
	}
	if matched > 0 {
		d.lastActive.Store(time.Now().UnixNano())
	}
	wg.Wait()
	return matched
}

func (d *Dispatcher) run(ctx context.Context, e *entry, m *Message, logger *log.Entry) {
	logger.Infof("Processing %s command", e.Name)
	reply, err := d.invoke(ctx, e, m)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		logger.WithError(err).Errorf("%s command failed", e.Name)
		reply = e.failure(err)
	} else if reply == "" {
		outcome = "error"
		logger.Warnf("%s command produced an empty reply", e.Name)
		reply = GenericFailure
	}

	if err := d.sink.Send(m.ChannelID, reply); err != nil {
		outcome = "send-error"
		logger.WithError(err).Errorf("Failed to send %s command response", e.Name)
	} else {
		logger.Debugf("Sent %s command response", e.Name)
	}
	metrics.Observe(d.CommandCount, 1, e.Name, outcome)
}

// invoke calls the command's Run, converting a panic into an error.
func (d *Dispatcher) invoke(ctx context.Context, e *entry, m *Message) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			reply, err = "", fmt.Errorf("panic: %v", r)
		}
	}()
	return e.Run(ctx, m)
}

// HelpLine is one entry of a help listing.
type HelpLine struct {
	Trigger string
	Help    string
}

// Help lists the registered commands in registration order.
func (d *Dispatcher) Help() []HelpLine {
	lines := make([]HelpLine, 0, len(d.commands))
	for _, e := range d.commands {
		lines = append(lines, HelpLine{Trigger: e.Trigger, Help: e.Help})
	}
	return lines
}

// Stats is a snapshot of usage statistics.
type Stats struct {
	// Messages counts messages handled, whether or not any command matched.
	Messages int64
	// Commands counts matches by command name.
	Commands map[string]int64
	// LastActive is when a command last matched, or the zero time.
	LastActive time.Time
}

// Stats returns a snapshot of usage statistics.
func (d *Dispatcher) Stats() Stats {
	s := Stats{
		Messages: d.messages.Load(),
		Commands: d.usage.Items(),
	}
	if ns := d.lastActive.Load(); ns != 0 {
		s.LastActive = time.Unix(0, ns)
	}
	return s
}

// String renders the snapshot, most used commands first.
func (s Stats) String() string {
	names := make([]string, 0, len(s.Commands))
	for name := range s.Commands {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if s.Commands[names[i]] != s.Commands[names[j]] {
			return s.Commands[names[i]] > s.Commands[names[j]]
		}
		return names[i] < names[j]
	})
	var b strings.Builder
	fmt.Fprintf(&b, "Messages seen: %d", s.Messages)
	for _, name := range names {
		fmt.Fprintf(&b, "\n%s: %d", name, s.Commands[name])
	}
	return b.String()
}

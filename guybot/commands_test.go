package guybot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/forPelevin/gomoji"

	"github.com/Kardbord/guybot/guybot/dispatch"
	"github.com/Kardbord/guybot/guybot/health"
	"github.com/Kardbord/guybot/guybot/jokes"
	"github.com/Kardbord/guybot/guybot/quotes"
)

type recorder struct {
	mu   sync.Mutex
	sent []string
}

func (r *recorder) Send(channelID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, text)
	return nil
}

func (r *recorder) only(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) != 1 {
		t.Fatalf("want exactly one reply, got %q", r.sent)
	}
	return r.sent[0]
}

func testDispatcher(t *testing.T, svc services) (*dispatch.Dispatcher, *recorder) {
	t.Helper()
	if svc.Quotes == nil {
		svc.Quotes = quotes.New(nil)
	}
	if svc.Jokes == nil {
		svc.Jokes = jokes.NewFetcher(nil)
	}
	if svc.Health == nil {
		svc.Health = health.NewProber(health.Static{}, nil)
	}
	r := &recorder{}
	d, err := newDispatcher(r, svc)
	if err != nil {
		t.Fatal(err)
	}
	return d, r
}

func send(d *dispatch.Dispatcher, content string, mentions ...string) int {
	return d.Handle(context.Background(), &dispatch.Message{
		ID:         "1",
		AuthorID:   "2",
		AuthorName: "tester",
		ChannelID:  "3",
		Content:    content,
		Mentions:   mentions,
	})
}

func jsonServer(t *testing.T, code int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthEndToEnd(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"status":"ok"}`)
	d, r := testDispatcher(t, services{
		Health: health.NewProber(health.Static{"MYAPP_PROD_URL": srv.URL}, srv.Client()),
	})
	if n := send(d, "!health myapp prod"); n != 1 {
		t.Fatalf("want 1 match, got %d", n)
	}
	reply := r.only(t)
	for _, want := range []string{"myapp", "prod", "✅", "Healthy"} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply %q is missing %q", reply, want)
		}
	}
}

func TestHealthUnconfigured(t *testing.T) {
	d, r := testDispatcher(t, services{})
	send(d, "!health myapp prod")
	reply := r.only(t)
	if !strings.Contains(reply, "MYAPP_PROD_URL") {
		t.Errorf("reply %q does not name the missing key", reply)
	}
}

func TestHealthUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	d, r := testDispatcher(t, services{
		Health: health.NewProber(health.Static{"MYAPP_PROD_URL": url}, nil),
	})
	send(d, "!health myapp prod")
	if got := r.only(t); got != healthFailure {
		t.Errorf("want %q, got %q", healthFailure, got)
	}
}

func TestBackend(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `{"status":"OK"}`)
	d, r := testDispatcher(t, services{
		Health: health.NewProber(health.Static{health.BackendKey: srv.URL}, srv.Client()),
	})
	send(d, "!backend")
	if got := r.only(t); !strings.Contains(got, "✅") {
		t.Errorf("want a running backend, got %q", got)
	}
}

func TestJoke(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, `[{"id":7,"type":"programming","setup":"Why?","punchline":"Because."}]`)
	f := jokes.NewFetcher(srv.Client())
	f.URL = srv.URL
	d, r := testDispatcher(t, services{Jokes: f})
	send(d, "!joke")
	if got, want := r.only(t), "🎭 **Why?**\n💡 _Because._"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestJokeFailure(t *testing.T) {
	srv := jsonServer(t, http.StatusInternalServerError, `{}`)
	f := jokes.NewFetcher(srv.Client())
	f.URL = srv.URL
	d, r := testDispatcher(t, services{Jokes: f})
	send(d, "!joke")
	if got := r.only(t); got != jokeFailure {
		t.Errorf("want %q, got %q", jokeFailure, got)
	}
}

func TestSummon(t *testing.T) {
	d, r := testDispatcher(t, services{})
	if n := send(d, "!summon"); n != 0 {
		t.Errorf("summon without a mention matched %d commands", n)
	}
	send(d, "!summon <@42>", "42")
	glyphs := strings.Fields(r.only(t))
	if len(glyphs) != summonEmojis {
		t.Fatalf("want %d emoji, got %q", summonEmojis, glyphs)
	}
	for _, g := range glyphs {
		if !gomoji.ContainsEmoji(g) {
			t.Errorf("%q is not an emoji", g)
		}
	}
}

func TestOracle(t *testing.T) {
	for range 20 {
		d, r := testDispatcher(t, services{})
		send(d, "!oracle what now?")
		n := len(strings.Fields(r.only(t)))
		if n < oracleMinEmojis || n > oracleMaxEmojis {
			t.Fatalf("oracle gave %d emoji", n)
		}
	}
}

func TestGuysay(t *testing.T) {
	d, r := testDispatcher(t, services{Quotes: quotes.New([]string{"Ship it."})})
	send(d, "!guysay")
	got := r.only(t)
	if !strings.Contains(got, "Ship it.") || !strings.HasPrefix(got, "```bash") {
		t.Errorf("unexpected guysay %q", got)
	}
}

func TestGuysayEmpty(t *testing.T) {
	d, r := testDispatcher(t, services{})
	send(d, "!guysay")
	if got := r.only(t); !strings.Contains(got, "...") {
		t.Errorf("unexpected guysay %q", got)
	}
}

func TestOwosay(t *testing.T) {
	d, r := testDispatcher(t, services{Quotes: quotes.New([]string{"hello"})})
	send(d, "!owosay")
	if got := r.only(t); !strings.HasPrefix(got, "```bash") {
		t.Errorf("unexpected owosay %q", got)
	}
}

func TestStaticReplies(t *testing.T) {
	for _, s := range staticReplies {
		t.Run(s.trigger, func(t *testing.T) {
			d, r := testDispatcher(t, services{})
			send(d, s.trigger)
			if got := r.only(t); got != s.reply {
				t.Errorf("want %q, got %q", s.reply, got)
			}
		})
	}
}

func TestHelp(t *testing.T) {
	d, r := testDispatcher(t, services{})
	send(d, "!guyhelp")
	got := r.only(t)
	want := []string{"`!summon`", "`!oracle`", "`!joke`", "`!health`", "`!backend`", "`!guysay`", "`!owosay`", "`!guyhelp`", "`!guystats`"}
	for _, s := range staticReplies {
		want = append(want, "`"+s.trigger+"` "+s.help)
	}
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("help %q is missing %s", got, w)
		}
	}
}

func TestHelpSkipsUndocumented(t *testing.T) {
	got := helpText([]dispatch.HelpLine{{Trigger: "!a", Help: "does a"}, {Trigger: "!hidden"}})
	if want := "**Commands**\n`!a` does a"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestGuystats(t *testing.T) {
	d, r := testDispatcher(t, services{})
	send(d, "hello")
	send(d, "!guystats")
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) != 1 {
		t.Fatalf("want one reply, got %q", r.sent)
	}
	if got := r.sent[0]; !strings.Contains(got, "Messages seen: 2") || !strings.Contains(got, "guystats: 1") {
		t.Errorf("unexpected stats %q", got)
	}
}

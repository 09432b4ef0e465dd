// Package health checks configured service endpoints and classifies their
// answers into verdicts.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Kardbord/guybot/guybot/metrics"
)

// Largest health response body read.
const maxBody = 1 << 20

// TransportError means an endpoint could not be reached at all.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("health check request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Prober performs health checks against endpoints named by configuration.
type Prober struct {
	Config Lookuper
	Client *http.Client
	// Latency, if not nil, observes request durations labeled "health".
	Latency metrics.Observer
}

// NewProber returns a Prober resolving URLs with cfg. A nil client means
// http.DefaultClient.
func NewProber(cfg Lookuper, client *http.Client) *Prober {
	if client == nil {
		client = http.DefaultClient
	}
	return &Prober{Config: cfg, Client: client}
}

// Probe parses text as "<trigger> <service> <environment>" and checks the
// endpoint configured for that target. Every outcome other than a transport
// failure is reported as a Verdict; transport failures are returned as a
// *TransportError.
func (p *Prober) Probe(ctx context.Context, text string) (Verdict, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return Verdict{Kind: BadRequest}, nil
	}
	service, environment := fields[1], fields[2]
	return p.check(ctx, service, environment, Key(service, environment))
}

// CheckBackend checks the single endpoint named by BACKEND_URL.
func (p *Prober) CheckBackend(ctx context.Context) (Verdict, error) {
	return p.check(ctx, "backend", "", BackendKey)
}

func (p *Prober) check(ctx context.Context, service, environment, key string) (Verdict, error) {
	v := Verdict{Service: service, Environment: environment, Key: key}
	url, ok := p.Config.Lookup(key)
	if !ok || url == "" {
		v.Kind = ResolutionFailed
		return v, nil
	}

	logger := log.WithFields(log.Fields{"service": service, "environment": environment, "key": key})
	logger.Debug("Checking health")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return v, &TransportError{URL: url, Err: err}
	}
	start := time.Now()
	resp, err := p.Client.Do(req)
	metrics.Since(p.Latency, start, "health")
	if err != nil {
		return v, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		v.Kind = Unhealthy
		v.Status = resp.Status
		logger.WithField("status", resp.Status).Info("Health endpoint returned an error status")
		return v, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return v, &TransportError{URL: url, Err: err}
	}
	var data struct {
		Status *string `json:"status"`
	}
	if err := json.Unmarshal(body, &data); err != nil || data.Status == nil {
		v.Kind = MalformedResponse
		logger.WithError(err).Info("Health endpoint returned a malformed response")
		return v, nil
	}

	v.Status = *data.Status
	if strings.EqualFold(v.Status, "ok") {
		v.Kind = Healthy
	} else {
		v.Kind = Unhealthy
	}
	logger.WithField("verdict", v.Kind).Debug("Health check complete")
	return v, nil
}

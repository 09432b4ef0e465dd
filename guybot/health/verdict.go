package health

import (
	"fmt"
	"strings"
)

// Kind classifies a Verdict.
type Kind int

const (
	// BadRequest means the command text was not "<trigger> <service> <environment>".
	BadRequest Kind = iota
	// ResolutionFailed means no URL is configured for the target.
	ResolutionFailed
	// Healthy means the endpoint answered with status "ok".
	Healthy
	// Unhealthy means the endpoint answered with another status or a non-2xx
	// HTTP status.
	Unhealthy
	// MalformedResponse means the endpoint answered 2xx without a JSON
	// object carrying a status string.
	MalformedResponse
)

func (k Kind) String() string {
	switch k {
	case BadRequest:
		return "bad-request"
	case ResolutionFailed:
		return "resolution-failed"
	case Healthy:
		return "healthy"
	case Unhealthy:
		return "unhealthy"
	case MalformedResponse:
		return "malformed-response"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Verdict is the outcome of one probe.
type Verdict struct {
	Kind        Kind
	Service     string
	Environment string
	// Status is the status reported by the endpoint in its original case,
	// or the HTTP status text when the response was not a success.
	Status string
	// Key is the configuration key consulted for the target URL.
	Key string
}

// UsageHint is the reply to a malformed health command.
const UsageHint = "Usage: `!health <service> <environment>`, e.g. `!health backend dev`"

const notFoundFlavor = "এই এন্ডপয়েন্টের কোন হদিস পাইলাম না! 😅"

// String renders the verdict for a chat reply.
func (v Verdict) String() string {
	switch v.Kind {
	case BadRequest:
		return UsageHint
	case ResolutionFailed:
		return fmt.Sprintf("%s Set `%s` to check %s %s.", notFoundFlavor, v.Key, v.Service, v.Environment)
	case MalformedResponse:
		return fmt.Sprintf("Invalid JSON response from the endpoint for %s %s ❌", v.Service, v.Environment)
	}

	healthy := v.Kind == Healthy
	headline, sign, word := "⚠️ | Service Down", "❌", "Unhealthy"
	if healthy {
		headline, sign, word = "🚀 | Service Healthy", "✅", "Healthy"
	}
	var b strings.Builder
	b.WriteString("```\n")
	b.WriteString(headline + "\n\n")
	fmt.Fprintf(&b, "%s has been checked\n\n", v.Service)
	fmt.Fprintf(&b, "%-20s %s\n", "Environment", "Status")
	fmt.Fprintf(&b, "%-20s %s\n\n", v.Environment, strings.ToUpper(v.Status))
	b.WriteString("Health Check\n")
	fmt.Fprintf(&b, "%s %s\n", sign, word)
	b.WriteString("```")
	return b.String()
}

// Short renders the verdict as the one-line backend summary.
func (v Verdict) Short() string {
	name := v.Service
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	switch v.Kind {
	case Healthy:
		return name + " is running ✅"
	case Unhealthy:
		return fmt.Sprintf("%s is NOT running ❌ — status: %s", name, v.Status)
	case MalformedResponse:
		return name + " is NOT running ❌ — invalid JSON"
	case ResolutionFailed:
		return fmt.Sprintf("The %s URL couldn't be found in the environment variables. Please set the %s variable.", v.Service, v.Key)
	default:
		return v.String()
	}
}

// Package guysay draws quotes in an ASCII-art speech bubble.
package guysay

import (
	"strings"
	"unicode/utf8"

	cowsay "github.com/Code-Hex/Neo-cowsay/v2"
	"github.com/TannerKvarfordt/ubiquity/stringutils"
)

const (
	// Width of the bubble in columns.
	bubbleWidth = 40
	// Quotes longer than this many runes are cut short so the art still
	// fits in one chat message.
	maxQuoteRunes = 1200
	// Said when there is nothing to say.
	silence = "..."
	// Marks a quote that was cut short.
	ellipsis = "..."
)

// Say renders quote in a speech bubble. If fenced, the art is wrapped in a
// bash code block so chat clients keep its alignment.
func Say(quote string, fenced bool) (string, error) {
	quote = strings.TrimSpace(quote)
	if quote == "" {
		quote = silence
	}
	art, err := cowsay.Say(truncate(quote, maxQuoteRunes), cowsay.Type("default"), cowsay.BallonWidth(bubbleWidth))
	if err != nil {
		return "", err
	}
	art = strings.TrimRight(art, "\n")
	if !fenced {
		return art, nil
	}
	return "```bash \n" + art + "\n```", nil
}

// truncate limits s to n runes, ending a shortened s with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return stringutils.FirstN(s, uint64(n-len(ellipsis))) + ellipsis
}

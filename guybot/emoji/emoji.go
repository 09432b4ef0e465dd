// Package emoji generates strings of distinct random emoji.
package emoji

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/TannerKvarfordt/ubiquity/sliceutils"
	"github.com/forPelevin/gomoji"
)

// ErrCapacity is returned when more glyphs are requested than the alphabet
// holds.
var ErrCapacity = errors.New("not enough emoji in alphabet")

var alphabet = [...]string{
	"😀", "😂", "🤠", "😎", "🤓", "🤪", "😇", "😈", "👻", "👽",
	"🤖", "💩", "🤡", "👹", "🙈", "🙉", "🙊", "🐸", "🐙", "🦄",
	"🐢", "🦖", "🐳", "🦉", "🐝", "🍕", "🌮", "🍩", "🍺", "☕",
	"🚀", "🛸", "⚡", "🔥", "🌈", "🍄", "🎲", "🎯", "🎸", "🧠",
	"💀", "👀", "🎃", "🥴", "😤", "🤬", "😭", "🐦", "🪐", "🔮",
}

func init() {
	for _, g := range alphabet {
		if !gomoji.ContainsEmoji(g) {
			panic(fmt.Sprintf("emoji: %q in alphabet is not an emoji", g))
		}
	}
	if n := len(sliceutils.RemoveDuplicates(alphabet[:]...)); n != len(alphabet) {
		panic(fmt.Sprintf("emoji: alphabet has %d duplicate glyphs", len(alphabet)-n))
	}
}

// AlphabetSize is the largest n Generate accepts.
func AlphabetSize() int {
	return len(alphabet)
}

// Alphabet returns a copy of the glyphs Generate draws from.
func Alphabet() []string {
	return append([]string(nil), alphabet[:]...)
}

// Generate returns n distinct glyphs sampled uniformly without replacement.
func Generate(n int) ([]string, error) {
	if n < 0 || n > len(alphabet) {
		return nil, fmt.Errorf("%w: requested %d, have %d", ErrCapacity, n, len(alphabet))
	}
	out := make([]string, 0, n)
	for _, i := range rand.Perm(len(alphabet))[:n] {
		out = append(out, alphabet[i])
	}
	return out, nil
}

// Join renders glyphs separated by single spaces.
func Join(glyphs []string) string {
	return strings.Join(glyphs, " ")
}

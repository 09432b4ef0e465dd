package emoji

import (
	"errors"
	"strings"
	"testing"

	"github.com/forPelevin/gomoji"
)

func TestGenerate(t *testing.T) {
	for n := 0; n <= AlphabetSize(); n++ {
		got, err := Generate(n)
		if err != nil {
			t.Fatalf("Generate(%d) failed: %v", n, err)
		}
		if len(got) != n {
			t.Fatalf("Generate(%d) returned %d glyphs", n, len(got))
		}
		seen := make(map[string]bool, n)
		for _, g := range got {
			if seen[g] {
				t.Fatalf("Generate(%d) repeated %q in %v", n, g, got)
			}
			seen[g] = true
			if !gomoji.ContainsEmoji(g) {
				t.Errorf("Generate(%d) produced non-emoji %q", n, g)
			}
		}
	}
}

func TestGenerateZero(t *testing.T) {
	got, err := Generate(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("want empty, got %v", got)
	}
}

func TestGenerateCapacity(t *testing.T) {
	for _, n := range []int{-1, AlphabetSize() + 1, AlphabetSize() * 2} {
		got, err := Generate(n)
		if !errors.Is(err, ErrCapacity) {
			t.Errorf("Generate(%d): want ErrCapacity, got %v", n, err)
		}
		if got != nil {
			t.Errorf("Generate(%d) returned glyphs alongside the error: %v", n, got)
		}
	}
}

func TestGenerateVaries(t *testing.T) {
	first, _ := Generate(AlphabetSize())
	for range 20 {
		next, _ := Generate(AlphabetSize())
		if strings.Join(next, "") != strings.Join(first, "") {
			return
		}
	}
	t.Error("20 full permutations came out identical")
}

func TestAlphabetCopy(t *testing.T) {
	a := Alphabet()
	a[0] = "x"
	if Alphabet()[0] == "x" {
		t.Error("Alphabet exposed its backing array")
	}
}

func TestJoin(t *testing.T) {
	if got := Join([]string{"🚀", "🔥"}); got != "🚀 🔥" {
		t.Errorf("Join: got %q", got)
	}
	if got := Join(nil); got != "" {
		t.Errorf("Join(nil): got %q", got)
	}
}

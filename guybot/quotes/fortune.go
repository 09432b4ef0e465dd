package quotes

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Delimiter is the line separating records in a fortune file.
const Delimiter = "%"

// Longest line the parser accepts.
const maxLineLen = 1 << 20

// ParseFortunes reads fortune-formatted records from r. Records are separated
// by lines consisting only of Delimiter. Each record is trimmed of leading and
// trailing newlines, and records containing only whitespace are dropped.
// Invalid UTF-8, such as Latin-1 text, is replaced with U+FFFD.
func ParseFortunes(r io.Reader) ([]string, error) {
	var (
		records []string
		cur     strings.Builder
	)
	flush := func() {
		rec := strings.ToValidUTF8(strings.Trim(cur.String(), "\r\n"), "\uFFFD")
		if strings.TrimSpace(rec) != "" {
			records = append(records, rec)
		}
		cur.Reset()
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == Delimiter {
			flush()
			continue
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return records, nil
}

// parseFortuneFile sniffs data and parses it as a fortune file. Anything that
// does not look like text, such as the .dat indexes strfile writes next to
// fortune files, is rejected.
func parseFortuneFile(data []byte) ([]string, error) {
	mime := mimetype.Detect(data)
	if !isText(mime) {
		return nil, fmt.Errorf("not a text file (%s)", mime.String())
	}
	return ParseFortunes(bytes.NewReader(data))
}

func isText(mime *mimetype.MIME) bool {
	for m := mime; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

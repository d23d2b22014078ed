// Package reply turns long text into platform-sized messages and delivers
// them in order.
package reply

import (
	"strings"
	"unicode/utf8"
)

// Split returns text as a single chunk when it has at most maxLen runes.
// Otherwise it slices text into contiguous chunks of size runes, the last one
// possibly shorter. Word boundaries are ignored.
func Split(text string, maxLen, size int) []string {
	if utf8.RuneCountInString(text) <= maxLen || size <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	chunks := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// PackLines greedily joins lines with newlines into blocks of at most limit
// runes. A block is flushed when the next line would push it past limit; a
// single line longer than limit forms its own block.
func PackLines(lines []string, limit int) []string {
	var (
		blocks []string
		cur    strings.Builder
		curLen int
	)
	for _, line := range lines {
		n := utf8.RuneCountInString(line)
		if curLen > 0 && curLen+1+n > limit {
			blocks = append(blocks, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte('\n')
			curLen++
		}
		cur.WriteString(line)
		curLen += n
	}
	if curLen > 0 {
		blocks = append(blocks, cur.String())
	}
	return blocks
}

// CodeBlock wraps s in a fenced code block.
func CodeBlock(s string) string {
	return "```\n" + s + "\n```"
}

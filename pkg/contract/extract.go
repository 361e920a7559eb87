package contract

import (
	"regexp"
	"strings"
)

const fence = "```"

var solidityBlock = regexp.MustCompile("(?s)```solidity(.*?)```")

// ExtractSource isolates Solidity source from a free-form model answer.
// The interior of the first ```solidity block wins; without one, every
// fence marker is stripped from the whole text. It never fails.
func ExtractSource(text string) string {
	if m := solidityBlock.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(strings.ReplaceAll(text, fence, ""))
}

// Preview returns at most n characters of source for console display.
func Preview(source string, n int) string {
	runes := []rune(source)
	if len(runes) <= n {
		return source
	}
	return string(runes[:n]) + "..."
}

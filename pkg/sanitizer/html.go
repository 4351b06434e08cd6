package sanitizer

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// MaxUserAgentLength caps stored user agents, in bytes.
const MaxUserAgentLength = 512

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// StripHTML removes all markup and returns plain text.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// UserAgent cleans a client-supplied User-Agent for storage: markup is
// stripped, whitespace runs collapse to one space and the result is cut
// to MaxUserAgentLength bytes on a rune boundary.
func UserAgent(s string) string {
	s = strings.Join(strings.Fields(StripHTML(s)), " ")
	if len(s) <= MaxUserAgentLength {
		return s
	}
	s = s[:MaxUserAgentLength]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}

package cookie

import (
	"iter"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultPath = "/"

// Lookup returns the value of the first name=value pair in a
// document-style cookie string ("a=1; b=2").
//
// The whole string is percent-decoded before it is split on ';', so an
// encoded separator inside a value splits it just like in a browser.
// If the whole string cannot be decoded, each segment is decoded on its
// own and only the segments that fail are scanned as is.
func Lookup(raw, name string) (string, bool) {
	prefix := name + "="
	for segment := range segments(raw) {
		segment = strings.TrimLeft(segment, " ")
		if value, ok := strings.CutPrefix(segment, prefix); ok {
			return value, true
		}
	}
	return "", false
}

// segments yields the decoded ';'-separated parts of raw.
func segments(raw string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if decoded, err := url.PathUnescape(raw); err == nil {
			for part := range strings.SplitSeq(decoded, ";") {
				if !yield(part) {
					return
				}
			}
			return
		}

		for part := range strings.SplitSeq(raw, ";") {
			decoded, err := url.PathUnescape(part)
			if err != nil {
				decoded = part
			}
			for sub := range strings.SplitSeq(decoded, ";") {
				if !yield(sub) {
					return
				}
			}
		}
	}
}

// Format serializes a cookie assignment the way a page script writes it:
//
//	name=value;expires=Mon, 02 Jan 2006 15:04:05 GMT;path=/
//
// An empty path defaults to "/".
func Format(name, value string, expires time.Time, path string) string {
	if path == "" {
		path = defaultPath
	}

	var b strings.Builder
	b.Grow(len(name) + len(value) + len(path) + 48)
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(value)
	b.WriteString(";expires=")
	b.WriteString(expires.UTC().Format(http.TimeFormat))
	b.WriteString(";path=")
	b.WriteString(path)
	return b.String()
}

// encodeValue percent-encodes a value so it only contains cookie-octets.
// Lookup reverses it.
func encodeValue(v string) string {
	return strings.ReplaceAll(url.PathEscape(v), ",", "%2C")
}

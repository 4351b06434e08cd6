// Package sanitizer cleans client-supplied strings before they are stored.
package sanitizer

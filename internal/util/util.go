// Package util maps storage keys onto portable file and object names.
package util

import (
	"encoding/base64"
	"strings"
)

// encodedPrefix marks a name holding the base64url form of its key.
const encodedPrefix = "~"

// SafeName returns key unchanged when it is usable as a file or object name
// on every platform, and a reversible encoding of it otherwise. Names never
// start with a dot, so they cannot clash with temp or hidden files.
func SafeName(key string) string {
	if isPlain(key) {
		return key
	}
	return encodedPrefix + base64.RawURLEncoding.EncodeToString([]byte(key))
}

// KeyFromName reverses SafeName. It reports false for names SafeName never
// produces, such as temp files.
func KeyFromName(name string) (string, bool) {
	if rest, ok := strings.CutPrefix(name, encodedPrefix); ok {
		key, err := base64.RawURLEncoding.DecodeString(rest)
		if err != nil || isPlain(string(key)) {
			return "", false
		}
		return string(key), true
	}
	if !isPlain(name) {
		return "", false
	}
	return name, true
}

func isPlain(key string) bool {
	if key == "" || len(key) > 128 || key[0] == '.' {
		return false
	}
	return strings.IndexFunc(key, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-' || r == '.')
	}) < 0
}

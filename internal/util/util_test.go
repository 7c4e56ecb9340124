package util

import (
	"strings"
	"testing"
)

func TestSafeName(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		encoded bool
	}{
		{name: "Drafts key", key: "project_drafts", encoded: false},
		{name: "Dotted key", key: "app.v2-data", encoded: false},
		{name: "Empty key", key: "", encoded: true},
		{name: "Parent dir", key: "..", encoded: true},
		{name: "Hidden name", key: ".tmp-123", encoded: true},
		{name: "Path separator", key: "a/b", encoded: true},
		{name: "Spaces", key: "my drafts", encoded: true},
		{name: "Unicode", key: "brouillons-é", encoded: true},
		{name: "Long key", key: strings.Repeat("k", 129), encoded: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := SafeName(tc.key)
			if tc.encoded {
				if !strings.HasPrefix(got, encodedPrefix) {
					t.Errorf("Expected encoded name for %q, got %q", tc.key, got)
				}
				if strings.ContainsAny(got, "/\\ .") {
					t.Errorf("Expected portable name for %q, got %q", tc.key, got)
				}
			} else if got != tc.key {
				t.Errorf("Expected %q unchanged, got %q", tc.key, got)
			}

			key, ok := KeyFromName(got)
			if !ok || key != tc.key {
				t.Errorf("Expected %q to map back to %q, got (%q, %v)", got, tc.key, key, ok)
			}
		})
	}
}

func TestKeyFromNameRejectsForeignNames(t *testing.T) {
	for _, name := range []string{".tmp-42", "~not base64!", "~" + "cHJvamVjdF9kcmFmdHM", "has space"} {
		if key, ok := KeyFromName(name); ok {
			t.Errorf("Expected %q to be rejected, got %q", name, key)
		}
	}
}

package telemetry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePIILevel(t *testing.T) {
	tests := []struct {
		input    string
		expected PIILevel
	}{
		{"none", PIILevelNone},
		{" FULL ", PIILevelFull},
		{"hashed", PIILevelHashed},
		{"", PIILevelHashed},
		{"bogus", PIILevelHashed},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePIILevel(tt.input))
		})
	}
}

func TestText_None(t *testing.T) {
	s := NewSanitizer(PIILevelNone, "jan-ask")
	assert.Equal(t, "[REDACTED]", s.Text("summarize https://www.reddit.com/r/golang/comments/abc123/x"))
	assert.Equal(t, "", s.Text(""))
}

func TestText_Full(t *testing.T) {
	s := NewSanitizer(PIILevelFull, "jan-ask")
	input := "mail me at john@example.com"
	assert.Equal(t, input, s.Text(input))
}

func TestText_Hashed(t *testing.T) {
	s := NewSanitizer(PIILevelHashed, "jan-ask")

	tests := []struct {
		name    string
		input   string
		secret  string
		marker  string
		context string
	}{
		{"email", "Contact john.doe@example.com for details", "john.doe@example.com", "[EMAIL:", "for details"},
		{"phone", "Call 555-867-5309 today", "555-867-5309", "[PHONE:", "today"},
		{"ssn", "SSN 123-45-6789 leaked", "123-45-6789", "[SSN:REDACTED]", "leaked"},
		{"card", "Card: 4532-1234-5678-9010", "4532-1234-5678-9010", "[CC:REDACTED]", "Card:"},
		{"ipv4", "Server IP: 192.168.1.100", "192.168.1.100", "[IP:", "Server IP:"},
		{"ipv6", "v6 2001:0db8:85a3:0000:0000:8a2e:0370:7334", "2001:0db8", "[IP:", "v6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Text(tt.input)
			assert.NotContains(t, result, tt.secret)
			assert.Contains(t, result, tt.marker)
			assert.Contains(t, result, tt.context)
		})
	}
}

func TestText_HashedKeepsPlainText(t *testing.T) {
	s := NewSanitizer(PIILevelHashed, "jan-ask")
	input := "what is the capital of France? 你好 🌍"
	assert.Equal(t, input, s.Text(input))
}

func TestPreview(t *testing.T) {
	s := NewSanitizer(PIILevelFull, "jan-ask")
	assert.Equal(t, "héllo…", s.Preview("héllo world", 5))
	assert.Equal(t, "short", s.Preview("short", 10))
	assert.Equal(t, "unbounded text", s.Preview("unbounded text", 0))
}

func TestFingerprint(t *testing.T) {
	s1 := NewSanitizer(PIILevelNone, "salt-a")
	s2 := NewSanitizer(PIILevelNone, "salt-b")

	assert.Equal(t, s1.Fingerprint("hello"), s1.Fingerprint("hello"))
	assert.NotEqual(t, s1.Fingerprint("hello"), s2.Fingerprint("hello"))
	assert.Len(t, s1.Fingerprint("hello"), 8)
	assert.Equal(t, "", s1.Fingerprint(""))
}

func BenchmarkText(b *testing.B) {
	s := NewSanitizer(PIILevelHashed, "jan-ask")
	input := strings.Repeat("Contact me at john@example.com or call 555-123-4567. ", 20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Text(input)
	}
}

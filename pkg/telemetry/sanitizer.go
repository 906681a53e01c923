package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// PIILevel defines how much user-supplied text may reach logs and spans.
type PIILevel string

const (
	// PIILevelNone redacts all user content
	PIILevelNone PIILevel = "none"
	// PIILevelHashed replaces detected PII with salted hashes
	PIILevelHashed PIILevel = "hashed"
	// PIILevelFull performs no sanitization
	PIILevelFull PIILevel = "full"
)

const redacted = "[REDACTED]"

// ParsePIILevel maps a configuration value to a PIILevel, defaulting to hashed.
func ParsePIILevel(value string) PIILevel {
	switch PIILevel(strings.ToLower(strings.TrimSpace(value))) {
	case PIILevelNone:
		return PIILevelNone
	case PIILevelFull:
		return PIILevelFull
	default:
		return PIILevelHashed
	}
}

type piiPattern struct {
	label   string
	pattern *regexp.Regexp
	// hashed patterns keep a correlatable salted digest, the rest are dropped outright
	hashed bool
}

// Sanitizer scrubs prompts and model replies before they are logged.
type Sanitizer struct {
	level    PIILevel
	salt     string
	patterns []piiPattern
}

// NewSanitizer creates a sanitizer whose hashes are salted with salt (usually the service name).
func NewSanitizer(level PIILevel, salt string) *Sanitizer {
	return &Sanitizer{
		level: level,
		salt:  salt,
		// Order matters: card numbers must be consumed before the phone pattern sees them.
		patterns: []piiPattern{
			{"EMAIL", regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), true},
			{"CC", regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`), false},
			{"SSN", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), false},
			{"PHONE", regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`), true},
			{"IP", regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`), true},
			{"IP", regexp.MustCompile(`\b(?:[A-Fa-f0-9]{1,4}:){7}[A-Fa-f0-9]{1,4}\b`), true},
		},
	}
}

// Level reports the configured PII level.
func (s *Sanitizer) Level() PIILevel {
	return s.level
}

// Text sanitizes free text according to the configured level.
func (s *Sanitizer) Text(input string) string {
	if input == "" {
		return ""
	}
	switch s.level {
	case PIILevelNone:
		return redacted
	case PIILevelFull:
		return input
	default:
		return s.scrub(input)
	}
}

// Preview sanitizes input and truncates the result to maxRunes runes.
func (s *Sanitizer) Preview(input string, maxRunes int) string {
	out := s.Text(input)
	if maxRunes <= 0 || utf8.RuneCountInString(out) <= maxRunes {
		return out
	}
	runes := []rune(out)
	return string(runes[:maxRunes]) + "…"
}

// Fingerprint returns a short salted digest so identical inputs can be
// correlated across log lines without revealing their content.
func (s *Sanitizer) Fingerprint(input string) string {
	if input == "" {
		return ""
	}
	return s.hash(input)
}

func (s *Sanitizer) scrub(input string) string {
	result := input
	for _, p := range s.patterns {
		p := p
		result = p.pattern.ReplaceAllStringFunc(result, func(match string) string {
			if p.hashed {
				return fmt.Sprintf("[%s:%s]", p.label, s.hash(match))
			}
			return fmt.Sprintf("[%s:REDACTED]", p.label)
		})
	}
	return result
}

func (s *Sanitizer) hash(data string) string {
	sum := sha256.Sum256([]byte(data + s.salt))
	return hex.EncodeToString(sum[:])[:8]
}

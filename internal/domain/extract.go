package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	// minDomainLength is the shortest accepted candidate, e.g. "x.xx"
	minDomainLength = 5
	// minTLDLength is the shortest accepted final label
	minTLDLength = 2
)

var (
	// jpDomainPattern matches names under the .jp family, checked before generic TLDs
	jpDomainPattern = regexp.MustCompile(`(?i)[a-z0-9][a-z0-9\-]*\.(?:co\.jp|ne\.jp|or\.jp|jp)`)
	// genericDomainPattern matches names under the common generic TLDs
	genericDomainPattern = regexp.MustCompile(`(?i)[a-z0-9][a-z0-9\-]*\.(?:com|org|net|io|ai|app|edu|gov)`)
	// disallowedChars strips anything that cannot appear in a hostname
	disallowedChars = regexp.MustCompile(`[^a-z0-9.\-]`)
)

// Extract returns the domain names mentioned in free text, .jp names first,
// lowercased and deduplicated in first-seen order
func Extract(text string) []string {
	candidates := append(jpDomainPattern.FindAllString(text, -1), genericDomainPattern.FindAllString(text, -1)...)

	cleaned := lo.FilterMap(candidates, func(candidate string, _ int) (string, bool) {
		name := disallowedChars.ReplaceAllString(strings.ToLower(asciiOnly(candidate)), "")
		return name, validCandidate(name)
	})

	domains := lo.Uniq(cleaned)

	log.Debug().Strs("domains", domains).Int("candidates", len(candidates)).Msg("extracted domains from text")

	return domains
}

// asciiOnly drops every non-ASCII rune
func asciiOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf {
			return r
		}

		return -1
	}, s)
}

// validCandidate applies the structural checks for an extracted name
func validCandidate(name string) bool {
	if len(name) < minDomainLength || !strings.Contains(name, ".") {
		return false
	}

	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") ||
		strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		return false
	}

	labels := strings.Split(name, ".")
	for _, label := range labels {
		if label == "" {
			return false
		}
	}

	return len(labels[len(labels)-1]) >= minTLDLength
}

package service

import (
	"fmt"
	"regexp"
	"strings"

	carriers "trackmate/internal/features/carriers/domain"
	"trackmate/internal/features/parsing/domain"
)

// Explicit tracking-number label patterns: a label word followed by 10-20
// raw characters of digits, spaces and dashes.
var explicitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`운송장\s*(?:번호)?[:\s]*([0-9\-\s]{10,20})`),
	regexp.MustCompile(`송장\s*(?:번호)?[:\s]*([0-9\-\s]{10,20})`),
	regexp.MustCompile(`(?i)invoice[:\s]*([0-9\-\s]{10,20})`),
	regexp.MustCompile(`(?i)tracking[:\s]*([0-9\-\s]{10,20})`),
}

// Standalone digit runs of 10-14 digits.
var barePattern = regexp.MustCompile(`\b([0-9]{10,14})\b`)

// Dash- or space-grouped numbers like 6401-2345-6789.
var dashPattern = regexp.MustCompile(`\b(\d{3,5}[\-\s]\d{3,5}[\-\s]\d{3,5})\b`)

// Bracketed tokens like [CJ대한통운] and carrier-type suffix tokens.
var carrierTokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[([\p{L}\p{N}_\s]+)\]`),
	regexp.MustCompile(`([\p{L}\p{N}_]+택배)`),
	regexp.MustCompile(`([\p{L}\p{N}_]+로지스)`),
}

// ParserService extracts tracking candidates from free text.
type ParserService struct{}

// NewParserService creates a new ParserService.
func NewParserService() *ParserService {
	return &ParserService{}
}

// detectCarrierName finds at most one carrier mentioned in the text.
// The ordered alias table is scanned first over the lowercased,
// space-stripped text; then bracketed and suffix tokens are resolved
// against the alias table. First match wins.
func detectCarrierName(text string) (carriers.Carrier, bool) {
	stripped := strings.ReplaceAll(strings.ToLower(text), " ", "")

	for _, alias := range carriers.Aliases {
		if strings.Contains(stripped, alias.Name) {
			if c, ok := carriers.ByCode(alias.Code); ok {
				return c, true
			}
		}
	}

	for _, pattern := range carrierTokenPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if c, ok := carriers.ByName(match[1]); ok {
			return c, true
		}
	}

	return carriers.Carrier{}, false
}

// extractNumbers generates candidate numbers from three independent passes,
// concatenated with exact-string de-duplication.
func extractNumbers(text string) []string {
	var candidates []string
	seen := make(map[string]bool)

	add := func(number string) {
		if !seen[number] {
			seen[number] = true
			candidates = append(candidates, number)
		}
	}

	// Pass 1: numbers following an explicit tracking/invoice label.
	for _, pattern := range explicitPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			normalized := domain.NormalizeNumber(match[1])
			if len(normalized) >= 10 && len(normalized) <= 15 {
				add(normalized)
			}
		}
	}

	// Pass 2: standalone 10-14 digit runs.
	for _, match := range barePattern.FindAllStringSubmatch(text, -1) {
		add(match[1])
	}

	// Pass 3: dash- or space-grouped digit triples.
	for _, match := range dashPattern.FindAllStringSubmatch(text, -1) {
		normalized := domain.NormalizeNumber(match[1])
		if len(normalized) >= 10 && len(normalized) <= 15 {
			add(normalized)
		}
	}

	return candidates
}

// Parse extracts tracking candidates with carrier attribution and
// confidence scoring. Never fails; no candidates yields an empty slice.
func (s *ParserService) Parse(text string) []domain.Candidate {
	textCarrier, hasTextCarrier := detectCarrierName(text)
	hasLabel := strings.Contains(text, "운송장") || strings.Contains(text, "송장")

	numbers := extractNumbers(text)
	results := make([]domain.Candidate, 0, len(numbers))

	for _, number := range numbers {
		carrierCode := ""
		carrierName := ""

		if hasTextCarrier {
			carrierCode = textCarrier.Code
			carrierName = textCarrier.Name
		} else if code, ok := carriers.DetectFromNumber(number); ok {
			carrierCode = code
			if c, found := carriers.ByCode(code); found {
				carrierName = c.Name
			}
		}

		confidence := 0.5
		if len(number) >= 11 && len(number) <= 13 {
			confidence += 0.2 // common Korean carrier length
		}
		if carrierCode != "" {
			confidence += 0.2
		}
		if hasLabel {
			confidence += 0.1
		}
		if confidence > 1.0 {
			confidence = 1.0
		}

		// Source label follows a fixed priority, not actual per-candidate
		// provenance. Known imprecision, kept as-is.
		var source string
		switch {
		case hasLabel:
			source = "운송장 번호 명시에서 추출"
		case hasTextCarrier:
			source = fmt.Sprintf("%s 문자에서 추출", textCarrier.Name)
		default:
			source = "텍스트에서 숫자 패턴으로 추출"
		}

		results = append(results, domain.Candidate{
			TrackingNumber: number,
			CarrierCode:    carrierCode,
			CarrierName:    carrierName,
			Confidence:     confidence,
			Source:         source,
		})
	}

	return results
}

package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
)

// quantityPattern splits a line into an optional leading quantity and the
// rest. The quantity group only matches digits, so a leading "-1" is not a
// quantity: it falls through into the query text and the quantity defaults
// to 1. A bare "x" after digits ("3x") is swallowed.
var quantityPattern = regexp.MustCompile(`(?i)^([0-9]*)?x?\s?(.*)$`)

// lineSplitter matches any line ending style.
var lineSplitter = regexp.MustCompile(`\r\n|\r|\n`)

// ParsedLine is the result of parsing one decklist line: how many copies,
// and the query (plus optionally a pinned image identifier) for each face.
type ParsedLine struct {
	Quantity   int
	Front      *model.SearchQuery
	Back       *model.SearchQuery
	FrontImage string
	BackImage  string
}

// Empty reports whether the line produced no query for either face.
// Callers drop empty lines before expanding them into project slots.
func (l ParsedLine) Empty() bool {
	return l.Front == nil && l.Back == nil
}

// Parser parses decklist lines into per-face search queries. Separator
// tokens are configurable; DFC pairs drive automatic back-face resolution.
type Parser struct {
	faceSeparator string
	pinToken      string
	dfcPairs      map[string]string
}

// NewParser creates a parser with the given grammar settings.
func NewParser(grammar model.GrammarSettings) *Parser {
	sep := grammar.FaceSeparator
	if sep == "" {
		sep = "|"
	}
	pin := grammar.PinToken
	if pin == "" {
		pin = "@"
	}
	return &Parser{faceSeparator: sep, pinToken: pin}
}

// SetDFCPairs installs the double-faced-card table. Keys and values are
// normalized so lookups match normalized front-query text exactly.
func (p *Parser) SetDFCPairs(pairs map[string]string) {
	normalized := make(map[string]string, len(pairs))
	for front, back := range pairs {
		normalized[Normalize(front)] = Normalize(back)
	}
	p.dfcPairs = normalized
}

// FaceSeparator returns the token that splits a line into front and back.
func (p *Parser) FaceSeparator() string {
	return p.faceSeparator
}

// PinToken returns the token that pins an exact image to a query.
func (p *Parser) PinToken() string {
	return p.pinToken
}

// ParseLine parses a single decklist line.
//
// Grammar: "[quantity][x] frontQuery [| backQuery]" where either face part
// may carry a "t:" or "b:" prefix and may pin an exact image with the pin
// token ("query@identifier"). An omitted back query is resolved through the
// DFC table when the front matches a known pair.
func (p *Parser) ParseLine(line string) ParsedLine {
	line = CollapseWhitespace(line)
	if line == "" {
		return ParsedLine{}
	}

	groups := quantityPattern.FindStringSubmatch(line)
	quantity := 1
	if q, err := strconv.Atoi(groups[1]); err == nil {
		quantity = q
	}
	remainder := groups[2]

	parts := strings.SplitN(remainder, p.faceSeparator, 2)
	parsed := ParsedLine{Quantity: quantity}
	parsed.Front, parsed.FrontImage = p.parseFacePart(parts[0])
	if len(parts) > 1 {
		parsed.Back, parsed.BackImage = p.parseFacePart(parts[1])
	}

	// DFC auto-pairing: an omitted back inherits the paired back face.
	// Resolved backs are always plain cards.
	if len(parts) == 1 && parsed.Front != nil {
		if backText, ok := ResolveDFC(parsed.Front.Text, p.dfcPairs); ok {
			parsed.Back = &model.SearchQuery{Text: backText, Type: model.TypeCard}
		}
	}

	return parsed
}

// ParseLines parses a block of decklist text, one line per card. Blank
// lines and lines yielding no query for either face are dropped.
func (p *Parser) ParseLines(text string) []ParsedLine {
	var parsed []ParsedLine
	for _, line := range lineSplitter.Split(text, -1) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		pl := p.ParseLine(line)
		if pl.Empty() {
			continue
		}
		parsed = append(parsed, pl)
	}
	return parsed
}

// parseFacePart parses one face's raw text: an optional pinned image after
// the pin token, then a card-type prefix, then the query text itself.
func (p *Parser) parseFacePart(raw string) (*model.SearchQuery, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ""
	}

	var image string
	if idx := strings.Index(raw, p.pinToken); idx >= 0 {
		image = strings.TrimSpace(raw[idx+len(p.pinToken):])
		raw = strings.TrimSpace(raw[:idx])
	}

	q := ParseQuery(raw)
	if q == nil && image == "" {
		return nil, ""
	}
	if q == nil {
		// A pinned image with no query text: the member exists, its
		// image is fixed, and there is nothing to search for.
		return nil, image
	}
	return q, image
}

// ParseQuery strips the card-type prefix from raw query text and
// normalizes the rest. Used directly by the XML importer, which stores
// prefixed query strings but no quantities or separators.
//
// Returns nil for text that normalizes to nothing, except the bare
// cardback prefix: "b:" alone is the default-cardback query.
func ParseQuery(raw string) *model.SearchQuery {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	cardType := model.TypeCard
	for _, t := range model.CardTypes {
		prefix := t.Prefix()
		if prefix == "" {
			continue
		}
		if len(raw) >= len(prefix) && strings.EqualFold(raw[:len(prefix)], prefix) {
			cardType = t
			raw = raw[len(prefix):]
			break
		}
	}

	text := Normalize(raw)
	if text == "" && cardType != model.TypeCardback {
		return nil
	}
	return &model.SearchQuery{Text: text, Type: cardType}
}

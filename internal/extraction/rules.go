package extraction

import (
	"regexp"
	"strings"
)

// Rule keys, in default evaluation order.
const (
	RuleKeyPositional   = "positional"
	RuleKeyPhone        = "phone"
	RuleKeyEmail        = "email"
	RuleKeyWebsite      = "website"
	RuleKeyPincode      = "pincode"
	RuleKeyStatePincode = "state_pincode"
	RuleKeyAddress3     = "address_3"
	RuleKeyAddress2     = "address_2"
	RuleKeyCompany      = "company"
)

// Word and digit classes are Unicode-aware: Go's \w and \d only cover
// ASCII and would cut "München" down to "nchen".
const (
	wordClass  = `[\p{L}\p{N}_]`
	digitClass = `\p{Nd}`
)

var (
	websitePrefix = regexp.MustCompile(`(?i)^www`)
	pincodePrefix = regexp.MustCompile(`^` + digitClass + `{6,7}`)
	statePincode  = regexp.MustCompile(`(` + wordClass + `+),?\s+(` + digitClass + `{6,7})$`)
	digitWord     = regexp.MustCompile(digitClass + `+\s*` + wordClass + `+`)
	trailingState = regexp.MustCompile(wordClass + `+\s*[,;.]$`)
)

const addressSeparator = ", "

// Item is one tagged value emitted by a rule. A rule emits its primary item
// first; a second item, when present, is synthetic.
type Item struct {
	Tag       FieldTag `json:"tag"`
	Text      string   `json:"text"`
	Synthetic bool     `json:"synthetic,omitempty"`
}

// Rule is one entry of the ordered classification table. Apply returns the
// items the rule emits for a token and whether it matched.
type Rule struct {
	Key         string
	Description string
	// Emits lists every tag the rule can produce, primary tag first.
	Emits []FieldTag
	apply func(tok RawToken) ([]Item, bool)
}

// Apply evaluates the rule against a single token.
func (r Rule) Apply(tok RawToken) ([]Item, bool) {
	return r.apply(tok)
}

// DefaultLeadingFields are the tags given to the first scan positions.
var DefaultLeadingFields = []FieldTag{TagName, TagDesignation}

// DefaultRules returns the classification table in priority order. The first
// matching rule wins, so the order of the returned slice is part of the
// contract: phone precedes address, which means a hyphenated address fragment
// is classified as a phone number.
func DefaultRules(leading []FieldTag) []Rule {
	return []Rule{
		positionalRule(leading),
		{
			Key:         RuleKeyPhone,
			Description: "text contains a hyphen",
			Emits:       []FieldTag{TagPhoneNumber},
			apply: func(tok RawToken) ([]Item, bool) {
				if !strings.Contains(tok.Text, "-") {
					return nil, false
				}
				return single(TagPhoneNumber, tok.Text), true
			},
		},
		{
			Key:         RuleKeyEmail,
			Description: "text contains @",
			Emits:       []FieldTag{TagEmail},
			apply: func(tok RawToken) ([]Item, bool) {
				if !strings.Contains(tok.Text, "@") {
					return nil, false
				}
				return single(TagEmail, tok.Text), true
			},
		},
		{
			Key:         RuleKeyWebsite,
			Description: "text starts with www, any case",
			Emits:       []FieldTag{TagWebsite},
			apply: func(tok RawToken) ([]Item, bool) {
				if !websitePrefix.MatchString(tok.Text) {
					return nil, false
				}
				return single(TagWebsite, normalizeWebsite(tok.Text)), true
			},
		},
		{
			Key:         RuleKeyPincode,
			Description: "text starts with 6-7 digits",
			Emits:       []FieldTag{TagPincode},
			apply: func(tok RawToken) ([]Item, bool) {
				if !pincodePrefix.MatchString(tok.Text) {
					return nil, false
				}
				return single(TagPincode, tok.Text), true
			},
		},
		{
			Key:         RuleKeyStatePincode,
			Description: "text ends with a word, optional comma, whitespace and 6-7 digits",
			Emits:       []FieldTag{TagState, TagPincode},
			apply: func(tok RawToken) ([]Item, bool) {
				m := statePincode.FindStringSubmatch(tok.Text)
				if m == nil {
					return nil, false
				}
				return []Item{
					{Tag: TagState, Text: m[1]},
					{Tag: TagPincode, Text: m[2], Synthetic: true},
				}, true
			},
		},
		{
			Key:         RuleKeyAddress3,
			Description: "digit next to a word and exactly three comma-separated parts",
			Emits:       []FieldTag{TagAddress, TagState},
			apply: func(tok RawToken) ([]Item, bool) {
				if !digitWord.MatchString(tok.Text) || addressParts(tok.Text) != 3 {
					return nil, false
				}
				items := single(TagAddress, tok.Text)
				if st := trailingState.FindString(tok.Text); st != "" {
					items = append(items, Item{Tag: TagState, Text: st, Synthetic: true})
				}
				return items, true
			},
		},
		{
			Key:         RuleKeyAddress2,
			Description: "digit next to a word and exactly two comma-separated parts",
			Emits:       []FieldTag{TagAddress},
			apply: func(tok RawToken) ([]Item, bool) {
				if !digitWord.MatchString(tok.Text) || addressParts(tok.Text) != 2 {
					return nil, false
				}
				return single(TagAddress, tok.Text), true
			},
		},
		companyRule(),
	}
}

func positionalRule(leading []FieldTag) Rule {
	tags := append([]FieldTag(nil), leading...)
	return Rule{
		Key:         RuleKeyPositional,
		Description: "leading scan positions map to fixed fields",
		Emits:       tags,
		apply: func(tok RawToken) ([]Item, bool) {
			if tok.Order < 0 || tok.Order >= len(tags) {
				return nil, false
			}
			return single(tags[tok.Order], tok.Text), true
		},
	}
}

func companyRule() Rule {
	return Rule{
		Key:         RuleKeyCompany,
		Description: "fallback for text no other rule claimed",
		Emits:       []FieldTag{TagCompanyName},
		apply: func(tok RawToken) ([]Item, bool) {
			return single(TagCompanyName, tok.Text), true
		},
	}
}

func single(tag FieldTag, text string) []Item {
	return []Item{{Tag: tag, Text: text}}
}

func addressParts(text string) int {
	return len(strings.Split(text, addressSeparator))
}

// normalizeWebsite rebuilds "www.<rest>" when OCR mangled the separator:
// the first three characters are lower-cased and the fourth is replaced by a dot.
func normalizeWebsite(text string) string {
	r := []rune(text)
	rest := ""
	if len(r) > 4 {
		rest = string(r[4:])
	}
	return strings.ToLower(string(r[:3])) + "." + rest
}

package extraction

// ClassifiedToken is a token paired with the rule that claimed it. Items holds
// the primary item first, followed by at most one synthetic item.
type ClassifiedToken struct {
	Token RawToken `json:"token"`
	Tag   FieldTag `json:"tag"`
	Rule  string   `json:"rule"`
	Items []Item   `json:"items"`
}

// Secondary returns the synthetic item emitted alongside the primary one.
func (c ClassifiedToken) Secondary() (Item, bool) {
	if len(c.Items) < 2 {
		return Item{}, false
	}
	return c.Items[1], true
}

// Option configures a Classifier.
type Option func(*options)

type options struct {
	leading []FieldTag
}

// WithLeadingFields sets the tags assigned, in order, to the first scan
// positions. Passing no tags disables the positional override.
func WithLeadingFields(tags ...FieldTag) Option {
	return func(o *options) {
		o.leading = append([]FieldTag(nil), tags...)
	}
}

// Classifier assigns field tags to tokens using an ordered rule table. It is
// read-only after construction.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a classifier over DefaultRules.
func NewClassifier(opts ...Option) *Classifier {
	o := options{leading: DefaultLeadingFields}
	for _, opt := range opts {
		opt(&o)
	}
	return &Classifier{rules: DefaultRules(o.leading)}
}

// Rules returns a copy of the rule table in evaluation order.
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Classify tags every token. The result has the same length and order as the
// input.
func (c *Classifier) Classify(tokens []RawToken) []ClassifiedToken {
	out := make([]ClassifiedToken, len(tokens))
	for i, tok := range tokens {
		out[i] = c.classifyOne(tok)
	}
	return out
}

func (c *Classifier) classifyOne(tok RawToken) ClassifiedToken {
	for _, r := range c.rules {
		items, ok := r.Apply(tok)
		if !ok || len(items) == 0 {
			continue
		}
		return ClassifiedToken{Token: tok, Tag: items[0].Tag, Rule: r.Key, Items: items}
	}
	// unreachable with DefaultRules: the company rule always matches
	return ClassifiedToken{
		Token: tok,
		Tag:   TagCompanyName,
		Rule:  RuleKeyCompany,
		Items: single(TagCompanyName, tok.Text),
	}
}

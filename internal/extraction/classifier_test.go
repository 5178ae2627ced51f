package extraction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizcardx/internal/extraction"
)

// withLeading prefixes texts with a name and designation so the texts under
// test start at scan position 2.
func withLeading(texts ...string) []extraction.RawToken {
	return extraction.TokensFromText(append([]string{"Jane Doe", "Engineer"}, texts...)...)
}

func classifyOne(t *testing.T, text string) extraction.ClassifiedToken {
	t.Helper()
	out := extraction.NewClassifier().Classify(withLeading(text))
	require.Len(t, out, 3)
	return out[2]
}

func TestDefaultRules_Order(t *testing.T) {
	rules := extraction.NewClassifier().Rules()
	keys := make([]string, len(rules))
	for i, r := range rules {
		keys[i] = r.Key
	}
	assert.Equal(t, []string{
		extraction.RuleKeyPositional,
		extraction.RuleKeyPhone,
		extraction.RuleKeyEmail,
		extraction.RuleKeyWebsite,
		extraction.RuleKeyPincode,
		extraction.RuleKeyStatePincode,
		extraction.RuleKeyAddress3,
		extraction.RuleKeyAddress2,
		extraction.RuleKeyCompany,
	}, keys)
}

func TestDefaultRules_Metadata(t *testing.T) {
	for _, r := range extraction.NewClassifier().Rules() {
		assert.NotEmpty(t, r.Key)
		assert.NotEmpty(t, r.Description)
		assert.NotEmpty(t, r.Emits, r.Key)
	}
}

func TestClassify_PreservesLengthAndOrder(t *testing.T) {
	tokens := withLeading("x-1", "a@b.c", "www.d.e", "Acme")
	out := extraction.NewClassifier().Classify(tokens)
	require.Len(t, out, len(tokens))
	for i := range tokens {
		assert.Equal(t, tokens[i], out[i].Token)
	}
}

func TestClassify_PositionalOverride(t *testing.T) {
	out := extraction.NewClassifier().Classify(extraction.TokensFromText("jane@acme.com", "555-0100", "Acme"))
	require.Len(t, out, 3)
	assert.Equal(t, extraction.TagName, out[0].Tag)
	assert.Equal(t, extraction.RuleKeyPositional, out[0].Rule)
	assert.Equal(t, extraction.TagDesignation, out[1].Tag)
	assert.Equal(t, extraction.TagCompanyName, out[2].Tag)
}

func TestClassify_SingleRules(t *testing.T) {
	tests := []struct {
		name string
		text string
		tag  extraction.FieldTag
		rule string
		item string
	}{
		{"phone", "+91 98765-43210", extraction.TagPhoneNumber, extraction.RuleKeyPhone, "+91 98765-43210"},
		{"hyphen_wins_over_address", "123-456 Lakeview Road", extraction.TagPhoneNumber, extraction.RuleKeyPhone, "123-456 Lakeview Road"},
		{"hyphen_wins_over_email", "first-last@acme.com", extraction.TagPhoneNumber, extraction.RuleKeyPhone, "first-last@acme.com"},
		{"email", "jane@acme.com", extraction.TagEmail, extraction.RuleKeyEmail, "jane@acme.com"},
		{"website", "www.acme.com", extraction.TagWebsite, extraction.RuleKeyWebsite, "www.acme.com"},
		{"website_upper", "WWW.ACME.COM", extraction.TagWebsite, extraction.RuleKeyWebsite, "www.ACME.COM"},
		{"website_broken_separator", "WWW acme.com", extraction.TagWebsite, extraction.RuleKeyWebsite, "www.acme.com"},
		{"website_bare", "www", extraction.TagWebsite, extraction.RuleKeyWebsite, "www."},
		{"pincode", "600113", extraction.TagPincode, extraction.RuleKeyPincode, "600113"},
		{"pincode_prefix", "6001134 Chennai", extraction.TagPincode, extraction.RuleKeyPincode, "6001134 Chennai"},
		{"address_two_parts", "12 Park Street, Metropolis", extraction.TagAddress, extraction.RuleKeyAddress2, "12 Park Street, Metropolis"},
		{"digits_one_part", "Plot 42", extraction.TagCompanyName, extraction.RuleKeyCompany, "Plot 42"},
		{"digits_four_parts", "1 Main St, Block A, Sector 5, Metro", extraction.TagCompanyName, extraction.RuleKeyCompany, "1 Main St, Block A, Sector 5, Metro"},
		{"no_digits_two_parts", "Acme, Inc", extraction.TagCompanyName, extraction.RuleKeyCompany, "Acme, Inc"},
		{"company", "SELVA DIGITALS", extraction.TagCompanyName, extraction.RuleKeyCompany, "SELVA DIGITALS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct := classifyOne(t, tt.text)
			assert.Equal(t, tt.tag, ct.Tag)
			assert.Equal(t, tt.rule, ct.Rule)
			require.Len(t, ct.Items, 1)
			assert.Equal(t, tt.item, ct.Items[0].Text)
			assert.False(t, ct.Items[0].Synthetic)
			_, ok := ct.Secondary()
			assert.False(t, ok)
		})
	}
}

func TestClassify_StatePincode(t *testing.T) {
	t.Run("space_separated", func(t *testing.T) {
		ct := classifyOne(t, "TamilNadu 600113")
		assert.Equal(t, extraction.TagState, ct.Tag)
		assert.Equal(t, extraction.RuleKeyStatePincode, ct.Rule)
		require.Len(t, ct.Items, 2)
		assert.Equal(t, extraction.Item{Tag: extraction.TagState, Text: "TamilNadu"}, ct.Items[0])
		assert.Equal(t, extraction.Item{Tag: extraction.TagPincode, Text: "600113", Synthetic: true}, ct.Items[1])
	})

	t.Run("comma_separated", func(t *testing.T) {
		ct := classifyOne(t, "Springfield, 560001")
		require.Len(t, ct.Items, 2)
		assert.Equal(t, "Springfield", ct.Items[0].Text)
		assert.Equal(t, "560001", ct.Items[1].Text)
	})

	t.Run("trailing_word_only", func(t *testing.T) {
		ct := classifyOne(t, "123 ABC St, Chennai TamilNadu 6004513")
		assert.Equal(t, extraction.RuleKeyStatePincode, ct.Rule)
		assert.Equal(t, "TamilNadu", ct.Items[0].Text)
		assert.Equal(t, "6004513", ct.Items[1].Text)
	})
}

func TestClassify_ThreePartAddress(t *testing.T) {
	t.Run("with_trailing_state", func(t *testing.T) {
		ct := classifyOne(t, "45 MG Road, Central District, Bengaluru,")
		assert.Equal(t, extraction.TagAddress, ct.Tag)
		assert.Equal(t, extraction.RuleKeyAddress3, ct.Rule)
		require.Len(t, ct.Items, 2)
		assert.Equal(t, "45 MG Road, Central District, Bengaluru,", ct.Items[0].Text)
		sec, ok := ct.Secondary()
		require.True(t, ok)
		assert.Equal(t, extraction.Item{Tag: extraction.TagState, Text: "Bengaluru,", Synthetic: true}, sec)
	})

	t.Run("semicolon", func(t *testing.T) {
		ct := classifyOne(t, "9 Hill View, Old Town, Kerala;")
		sec, ok := ct.Secondary()
		require.True(t, ok)
		assert.Equal(t, "Kerala;", sec.Text)
	})

	t.Run("without_trailing_punctuation", func(t *testing.T) {
		ct := classifyOne(t, "123 ABC St, Chennai, TamilNadu")
		assert.Equal(t, extraction.TagAddress, ct.Tag)
		require.Len(t, ct.Items, 1)
	})
}

func TestClassify_NonASCIIWords(t *testing.T) {
	tests := []struct {
		text    string
		state   string
		pincode string
	}{
		{"München 560001", "München", "560001"},
		{"Zürich 6004513", "Zürich", "6004513"},
		{"Bâle, 400001", "Bâle", "400001"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			ct := classifyOne(t, tt.text)
			assert.Equal(t, extraction.RuleKeyStatePincode, ct.Rule)
			require.Len(t, ct.Items, 2)
			assert.Equal(t, tt.state, ct.Items[0].Text)
			assert.Equal(t, tt.pincode, ct.Items[1].Text)
		})
	}

	t.Run("three_part_address", func(t *testing.T) {
		ct := classifyOne(t, "12 Straße, Köln, Düsseldorf.")
		assert.Equal(t, extraction.RuleKeyAddress3, ct.Rule)
		sec, ok := ct.Secondary()
		require.True(t, ok)
		assert.Equal(t, "Düsseldorf.", sec.Text)
	})

	t.Run("non_ascii_digits", func(t *testing.T) {
		ct := classifyOne(t, "١٢٣٤٥٦")
		assert.Equal(t, extraction.RuleKeyPincode, ct.Rule)
	})
}

func TestClassify_LeadingFieldsOption(t *testing.T) {
	t.Run("name_only", func(t *testing.T) {
		c := extraction.NewClassifier(extraction.WithLeadingFields(extraction.TagName))
		out := c.Classify(extraction.TokensFromText("Jane Doe", "jane@acme.com"))
		assert.Equal(t, extraction.TagName, out[0].Tag)
		assert.Equal(t, extraction.TagEmail, out[1].Tag)
	})

	t.Run("disabled", func(t *testing.T) {
		c := extraction.NewClassifier(extraction.WithLeadingFields())
		out := c.Classify(extraction.TokensFromText("555-0100", "Acme"))
		assert.Equal(t, extraction.TagPhoneNumber, out[0].Tag)
		assert.Equal(t, extraction.TagCompanyName, out[1].Tag)
	})

	t.Run("designation_first", func(t *testing.T) {
		c := extraction.NewClassifier(extraction.WithLeadingFields(extraction.TagDesignation, extraction.TagName))
		out := c.Classify(extraction.TokensFromText("Manager", "Jane Doe"))
		assert.Equal(t, extraction.TagDesignation, out[0].Tag)
		assert.Equal(t, extraction.TagName, out[1].Tag)
	})
}

func TestClassify_Idempotent(t *testing.T) {
	c := extraction.NewClassifier()
	tokens := withLeading("555-0100", "TamilNadu 600113", "45 MG Road, Central District, Bengaluru,", "Acme")
	assert.Equal(t, c.Classify(tokens), c.Classify(tokens))
}

func TestNewTokenSequence(t *testing.T) {
	region := extraction.BoundingRegion{{X: 1, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 4}, {X: 1, Y: 4}}
	tokens := extraction.NewTokenSequence([]extraction.Detection{
		{Region: region, Text: "Jane", Confidence: 0.9},
		{Text: "CEO", Confidence: 0.5},
	})
	require.Len(t, tokens, 2)
	assert.Equal(t, 0, tokens[0].Order)
	assert.Equal(t, region, tokens[0].Region)
	assert.Equal(t, 1, tokens[1].Order)
	assert.Equal(t, []string{"Jane", "CEO"}, extraction.Texts(tokens))
}

func TestParseFieldTag(t *testing.T) {
	tag, err := extraction.ParseFieldTag("designation")
	require.NoError(t, err)
	assert.Equal(t, extraction.TagDesignation, tag)

	_, err = extraction.ParseFieldTag("fax")
	assert.Error(t, err)
}

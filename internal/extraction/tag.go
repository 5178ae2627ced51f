package extraction

import "fmt"

// FieldTag is the semantic category assigned to a token.
type FieldTag string

const (
	TagName        FieldTag = "name"
	TagDesignation FieldTag = "designation"
	TagPhoneNumber FieldTag = "phone_number"
	TagEmail       FieldTag = "email"
	TagWebsite     FieldTag = "website"
	TagPincode     FieldTag = "pincode"
	TagState       FieldTag = "state"
	TagAddress     FieldTag = "address"
	TagCompanyName FieldTag = "company_name"
)

// AllTags lists every field tag in record column order.
var AllTags = []FieldTag{
	TagCompanyName,
	TagName,
	TagDesignation,
	TagPhoneNumber,
	TagEmail,
	TagWebsite,
	TagAddress,
	TagState,
	TagPincode,
}

// ColumnNames is the persisted column order, image last.
var ColumnNames = []string{
	"CompanyName",
	"Name",
	"Designation",
	"PhoneNumber",
	"Email",
	"Website",
	"Address",
	"State",
	"Pincode",
	"Image",
}

// Valid reports whether t is a known tag.
func (t FieldTag) Valid() bool {
	for _, known := range AllTags {
		if t == known {
			return true
		}
	}
	return false
}

// ParseFieldTag resolves a tag from its string form.
func ParseFieldTag(s string) (FieldTag, error) {
	t := FieldTag(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown field tag %q", s)
	}
	return t, nil
}

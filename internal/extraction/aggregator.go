package extraction

import (
	"strings"
	"unicode"
)

const listSeparator = ", "

// Fields holds one aggregated value per tag. Every field is always present;
// unmatched fields are empty strings.
type Fields struct {
	CompanyName string `json:"company_name"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	Address     string `json:"address"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
}

// Get returns the value for tag, or "" for an unknown tag.
func (f Fields) Get(tag FieldTag) string {
	switch tag {
	case TagCompanyName:
		return f.CompanyName
	case TagName:
		return f.Name
	case TagDesignation:
		return f.Designation
	case TagPhoneNumber:
		return f.PhoneNumber
	case TagEmail:
		return f.Email
	case TagWebsite:
		return f.Website
	case TagAddress:
		return f.Address
	case TagState:
		return f.State
	case TagPincode:
		return f.Pincode
	}
	return ""
}

// AsMap returns the mapping form with every tag as a key.
func (f Fields) AsMap() map[FieldTag]string {
	m := make(map[FieldTag]string, len(AllTags))
	for _, tag := range AllTags {
		m[tag] = f.Get(tag)
	}
	return m
}

// Aggregate merges classified items into one value per field.
//
// Name and Designation take the first item (Designation title-cased), Email
// and Website keep the first match, CompanyName capitalizes each item and joins
// with a space, and the remaining fields join with ", ". Input order is kept.
func Aggregate(classified []ClassifiedToken) Fields {
	byTag := make(map[FieldTag][]string, len(AllTags))
	for _, ct := range classified {
		for _, it := range ct.Items {
			byTag[it.Tag] = append(byTag[it.Tag], it.Text)
		}
	}

	companies := make([]string, len(byTag[TagCompanyName]))
	for i, s := range byTag[TagCompanyName] {
		companies[i] = capitalize(s)
	}

	return Fields{
		CompanyName: strings.Join(companies, " "),
		Name:        first(byTag[TagName]),
		Designation: titleCase(first(byTag[TagDesignation])),
		PhoneNumber: strings.Join(byTag[TagPhoneNumber], listSeparator),
		Email:       first(byTag[TagEmail]),
		Website:     first(byTag[TagWebsite]),
		Address:     strings.Join(byTag[TagAddress], listSeparator),
		State:       strings.Join(byTag[TagState], listSeparator),
		Pincode:     strings.Join(byTag[TagPincode], listSeparator),
	}
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, r := range s {
		if i == 0 {
			b.WriteRune(unicode.ToTitle(r))
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// titleCase upper-cases every letter that follows a non-letter and
// lower-cases the others, so "o'neil SMITH" becomes "O'Neil Smith".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && prevLetter:
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToTitle(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}

package extraction

import (
	"errors"
	"fmt"
)

// ErrMissingField is returned by BuildFromMap when the mapping lacks a tag.
var ErrMissingField = errors.New("aggregated fields missing a key")

// Record is the normalized business card produced by one extraction.
type Record struct {
	CompanyName string `json:"company_name"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	Address     string `json:"address"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	ImageBytes  []byte `json:"-"`
}

// Build copies aggregated fields into a record and attaches a private copy of
// the image bytes.
func Build(f Fields, image []byte) Record {
	return Record{
		CompanyName: f.CompanyName,
		Name:        f.Name,
		Designation: f.Designation,
		PhoneNumber: f.PhoneNumber,
		Email:       f.Email,
		Website:     f.Website,
		Address:     f.Address,
		State:       f.State,
		Pincode:     f.Pincode,
		ImageBytes:  cloneBytes(image),
	}
}

// BuildFromMap is Build for the mapping form. Every tag in AllTags must be a
// key; values may be empty.
func BuildFromMap(m map[FieldTag]string, image []byte) (Record, error) {
	for _, tag := range AllTags {
		if _, ok := m[tag]; !ok {
			return Record{}, fmt.Errorf("%w: %s", ErrMissingField, tag)
		}
	}
	return Build(Fields{
		CompanyName: m[TagCompanyName],
		Name:        m[TagName],
		Designation: m[TagDesignation],
		PhoneNumber: m[TagPhoneNumber],
		Email:       m[TagEmail],
		Website:     m[TagWebsite],
		Address:     m[TagAddress],
		State:       m[TagState],
		Pincode:     m[TagPincode],
	}, image), nil
}

// Fields returns the textual part of the record.
func (r Record) Fields() Fields {
	return Fields{
		CompanyName: r.CompanyName,
		Name:        r.Name,
		Designation: r.Designation,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		Website:     r.Website,
		Address:     r.Address,
		State:       r.State,
		Pincode:     r.Pincode,
	}
}

// Columns returns the record values in ColumnNames order.
func (r Record) Columns() []any {
	return []any{
		r.CompanyName,
		r.Name,
		r.Designation,
		r.PhoneNumber,
		r.Email,
		r.Website,
		r.Address,
		r.State,
		r.Pincode,
		r.ImageBytes,
	}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

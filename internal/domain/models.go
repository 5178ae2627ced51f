package domain

import (
	"time"

	"github.com/google/uuid"

	"bizcardx/internal/extraction"
)

// BusinessCard is a stored, extracted business card.
type BusinessCard struct {
	ID               uuid.UUID `db:"id" json:"id"`
	CompanyName      string    `db:"company_name" json:"company_name"`
	Name             string    `db:"name" json:"name"`
	Designation      string    `db:"designation" json:"designation"`
	PhoneNumber      string    `db:"phone_number" json:"phone_number"`
	Email            string    `db:"email" json:"email"`
	Website          string    `db:"website" json:"website"`
	Address          string    `db:"address" json:"address"`
	State            string    `db:"state" json:"state"`
	Pincode          string    `db:"pincode" json:"pincode"`
	Image            []byte    `db:"image" json:"-"`
	ImageContentType string    `db:"image_content_type" json:"image_content_type"`
	ImageKey         string    `db:"image_key" json:"image_key,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// NewBusinessCard converts an extracted record into a card ready for insert.
func NewBusinessCard(rec extraction.Record, contentType string) *BusinessCard {
	card := &BusinessCard{
		ID:               uuid.New(),
		Image:            rec.ImageBytes,
		ImageContentType: contentType,
	}
	card.SetFields(rec.Fields())
	return card
}

// Fields returns the nine textual fields.
func (c *BusinessCard) Fields() extraction.Fields {
	return extraction.Fields{
		CompanyName: c.CompanyName,
		Name:        c.Name,
		Designation: c.Designation,
		PhoneNumber: c.PhoneNumber,
		Email:       c.Email,
		Website:     c.Website,
		Address:     c.Address,
		State:       c.State,
		Pincode:     c.Pincode,
	}
}

// Record returns the card as an extraction record. The image is shared, not copied.
func (c *BusinessCard) Record() extraction.Record {
	rec := extraction.Build(c.Fields(), nil)
	rec.ImageBytes = c.Image
	return rec
}

// SetFields overwrites the nine textual fields.
func (c *BusinessCard) SetFields(f extraction.Fields) {
	c.CompanyName = f.CompanyName
	c.Name = f.Name
	c.Designation = f.Designation
	c.PhoneNumber = f.PhoneNumber
	c.Email = f.Email
	c.Website = f.Website
	c.Address = f.Address
	c.State = f.State
	c.Pincode = f.Pincode
}

// CardFilter narrows card listings. Empty strings match everything.
type CardFilter struct {
	Name    string
	Company string
	Offset  int
	Limit   int
}

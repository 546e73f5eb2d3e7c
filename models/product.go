package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductDraft represents a product before it is submitted to the backend
type ProductDraft struct {
	Name                string              `json:"name"`
	ShortDescription    string              `json:"shortDescription"`
	Description         string              `json:"description"`
	Category            string              `json:"category"`
	Price               decimal.Decimal     `json:"price"`
	Stock               int                 `json:"stock"`
	Weight              decimal.NullDecimal `json:"weight"`     // left out of the form when unset
	Unit                string              `json:"unit"`       // e.g. "kg"
	Origin              string              `json:"origin"`     // country code
	ExpiryDate          string              `json:"expiryDate"` // free text, e.g. "1 month"
	StorageInstructions string              `json:"storageInstructions"`
	Status              string              `json:"status"` // active, inactive
	Specifications      map[string]string   `json:"specifications"`
}

// FormField is a single text field of the upload form
type FormField struct {
	Key   string
	Value string
}

// FormFields returns the draft as ordered text form fields. Numbers are written
// in plain decimal form and the specifications map is sent as one JSON string.
func (d ProductDraft) FormFields() ([]FormField, error) {
	fields := []FormField{
		{"name", d.Name},
		{"shortDescription", d.ShortDescription},
		{"description", d.Description},
		{"category", d.Category},
		{"price", d.Price.String()},
		{"stock", fmt.Sprintf("%d", d.Stock)},
	}
	if d.Weight.Valid {
		fields = append(fields, FormField{"weight", d.Weight.Decimal.String()})
	}
	fields = append(fields,
		FormField{"unit", d.Unit},
		FormField{"origin", d.Origin},
		FormField{"expiryDate", d.ExpiryDate},
		FormField{"storageInstructions", d.StorageInstructions},
		FormField{"status", d.Status},
	)

	specs := d.Specifications
	if specs == nil {
		specs = map[string]string{}
	}
	specsJSON, err := json.Marshal(specs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode specifications: %w", err)
	}
	fields = append(fields, FormField{"specifications", string(specsJSON)})

	return fields, nil
}

// ImageFile is an image read fully into memory, ready to be attached
type ImageFile struct {
	Name string // base file name sent as the part filename
	Data []byte
}

// ProductID accepts both numeric and string identifiers from the backend
type ProductID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ProductID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("product id must be a string or number: %w", err)
	}
	*id = ProductID(n.String())
	return nil
}

// Product represents a product record as stored by the backend
type Product struct {
	ID                  ProductID           `json:"id"`
	Name                string              `json:"name"`
	ShortDescription    string              `json:"shortDescription,omitempty"`
	Description         string              `json:"description"`
	Category            string              `json:"category"`
	Price               decimal.Decimal     `json:"price"`
	Stock               int                 `json:"stock"`
	Weight              decimal.NullDecimal `json:"weight"`
	Unit                string              `json:"unit,omitempty"`
	Origin              string              `json:"origin,omitempty"`
	ExpiryDate          string              `json:"expiryDate,omitempty"`
	StorageInstructions string              `json:"storageInstructions,omitempty"`
	Status              string              `json:"status"`
	SellerID            string              `json:"sellerId,omitempty"`
	Specifications      map[string]string   `json:"specifications,omitempty"`
	Images              []string            `json:"images,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
}

// ProductSummary is the part of a created product the seeder reports. The
// rest of the record (timestamps, rating, tags) differs between backends and
// is not decoded.
type ProductSummary struct {
	ID   ProductID `json:"id"`
	Name string    `json:"name"`
}

// CreateProductResponse is the success body of the upload endpoint as read by
// the client
type CreateProductResponse struct {
	Message        string         `json:"message"`
	Product        ProductSummary `json:"product"`
	ImagesUploaded int            `json:"imagesUploaded"`
}

// ErrorResponse is the JSON error body returned by the backend
type ErrorResponse struct {
	Error         string `json:"error"`
	ErrorCode     string `json:"errorCode,omitempty"`
	Message       string `json:"message,omitempty"`
	ExceptionType string `json:"exceptionType,omitempty"`
}

// Summary renders the error body on one line, or "" when it carries none of
// the known fields.
func (e ErrorResponse) Summary() string {
	var parts []string
	if e.Error != "" {
		parts = append(parts, e.Error)
	}
	if e.Message != "" && e.Message != e.Error {
		parts = append(parts, e.Message)
	}
	if len(parts) == 0 {
		return ""
	}
	s := strings.Join(parts, ": ")
	if e.ErrorCode != "" {
		s += " [" + e.ErrorCode + "]"
	}
	if e.ExceptionType != "" {
		s += " (" + e.ExceptionType + ")"
	}
	return s
}

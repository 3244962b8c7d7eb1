package store

import (
	"strings"

	"github.com/jask/propdesk/internal/database/repository"
)

// Filters holds the optional search criteria. A zero value field is absent;
// numeric criteria are pointers so a present zero still constrains. This
// differs from the web dashboard this replaces, where a 0 bound or 0
// bedrooms was ignored.
type Filters struct {
	Type      repository.PropertyType   `json:"type,omitempty"`
	Status    repository.PropertyStatus `json:"status,omitempty"`
	MinPrice  *int64                    `json:"min_price,omitempty"`
	MaxPrice  *int64                    `json:"max_price,omitempty"`
	Bedrooms  *int                      `json:"bedrooms,omitempty"`
	Bathrooms *int                      `json:"bathrooms,omitempty"`
	MinSqft   *int                      `json:"min_sqft,omitempty"`
	MaxSqft   *int                      `json:"max_sqft,omitempty"`
	Location  string                    `json:"location,omitempty"`
}

// Active counts the criteria that are present.
func (f Filters) Active() int {
	n := 0
	for _, present := range []bool{
		f.Type != "", f.Status != "", f.MinPrice != nil, f.MaxPrice != nil,
		f.Bedrooms != nil, f.Bathrooms != nil, f.MinSqft != nil, f.MaxSqft != nil,
		f.Location != "",
	} {
		if present {
			n++
		}
	}
	return n
}

// IsZero reports whether no criterion is present.
func (f Filters) IsZero() bool { return f.Active() == 0 }

func (f Filters) clone() Filters {
	out := f
	out.MinPrice = clonePtr(f.MinPrice)
	out.MaxPrice = clonePtr(f.MaxPrice)
	out.Bedrooms = clonePtr(f.Bedrooms)
	out.Bathrooms = clonePtr(f.Bathrooms)
	out.MinSqft = clonePtr(f.MinSqft)
	out.MaxSqft = clonePtr(f.MaxSqft)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Apply returns the properties of source matching query and f, in source
// order. The result is never nil.
func Apply(source []*repository.Property, query string, f Filters) []*repository.Property {
	q := strings.ToLower(query)
	out := make([]*repository.Property, 0, len(source))
	for _, p := range source {
		if Match(p, q, f) {
			out = append(out, p)
		}
	}
	return out
}

// Match checks one property against a lower-cased query and the filters.
// Criteria are checked in a fixed order and all must hold.
func Match(p *repository.Property, lowerQuery string, f Filters) bool {
	if lowerQuery != "" &&
		!strings.Contains(strings.ToLower(p.Name), lowerQuery) &&
		!strings.Contains(strings.ToLower(p.Address), lowerQuery) {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Bedrooms != nil && (p.Bedrooms == nil || *p.Bedrooms != *f.Bedrooms) {
		return false
	}
	if f.Bathrooms != nil && (p.Bathrooms == nil || *p.Bathrooms != *f.Bathrooms) {
		return false
	}
	if f.MinSqft != nil && p.Sqft < *f.MinSqft {
		return false
	}
	if f.MaxSqft != nil && p.Sqft > *f.MaxSqft {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(p.Address), strings.ToLower(f.Location)) {
		return false
	}
	return true
}

package service

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jask/propdesk/internal/database"
	"github.com/jask/propdesk/internal/database/repository"
)

//go:embed schemas/property.json
var propertySchemaJSON []byte

const propertySchemaURL = "property.json"

// importNamespace scopes ids derived for records that arrive without one.
var importNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("propdesk/import"))

// CompilePropertySchema compiles the embedded property schema.
func CompilePropertySchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat = true
	if err := c.AddResource(propertySchemaURL, bytes.NewReader(propertySchemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return c.Compile(propertySchemaURL)
}

// ImportService loads property catalogs from JSON.
type ImportService struct {
	Properties *repository.PropertyRepo

	schema *jsonschema.Schema
}

type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

type importRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Type        string   `json:"type"`
	Status      string   `json:"status"`
	Price       int64    `json:"price"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	Sqft        int      `json:"sqft"`
	YearBuilt   int      `json:"yearBuilt"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	OwnerID     string   `json:"ownerId"`
	OwnerName   string   `json:"ownerName"`
	MonthlyRent *int64   `json:"monthlyRent"`
	Deposit     *int64   `json:"deposit"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// ImportJSON reads a JSON array of properties. Records failing validation
// are skipped and reported; the rest are upserted. Only an unreadable
// document fails the whole import.
func (s *ImportService) ImportJSON(ctx context.Context, r io.Reader) (ImportResult, error) {
	res := ImportResult{}
	if s.schema == nil {
		schema, err := CompilePropertySchema()
		if err != nil {
			return res, err
		}
		s.schema = schema
	}
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return res, fmt.Errorf("decode catalog: %w", err)
	}
	now := database.Now()
	for i, msg := range raw {
		n := i + 1
		var doc interface{}
		if err := json.Unmarshal(msg, &doc); err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Errorf("record %d: %w", n, err))
			continue
		}
		if err := s.schema.Validate(doc); err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Errorf("record %d: %w", n, err))
			continue
		}
		var rec importRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Errorf("record %d: %w", n, err))
			continue
		}
		p, err := rec.property(now)
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Errorf("record %d: %w", n, err))
			continue
		}
		if err := s.Properties.Upsert(ctx, p); err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("record %d upsert: %w", n, err))
			continue
		}
		res.Imported++
	}
	return res, nil
}

func (r importRecord) property(now time.Time) (repository.Property, error) {
	id := r.ID
	if id == "" {
		id = uuid.NewSHA1(importNamespace, []byte(r.Name+"\x00"+r.Address)).String()
	}
	created, err := parseDay(r.CreatedAt, now)
	if err != nil {
		return repository.Property{}, fmt.Errorf("createdAt: %w", err)
	}
	updated, err := parseDay(r.UpdatedAt, created)
	if err != nil {
		return repository.Property{}, fmt.Errorf("updatedAt: %w", err)
	}
	return repository.Property{
		ID:          id,
		Name:        r.Name,
		Address:     r.Address,
		Type:        repository.PropertyType(r.Type),
		Status:      repository.PropertyStatus(r.Status),
		Price:       r.Price,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		Sqft:        r.Sqft,
		YearBuilt:   r.YearBuilt,
		Images:      r.Images,
		Description: r.Description,
		Features:    r.Features,
		OwnerID:     r.OwnerID,
		OwnerName:   r.OwnerName,
		MonthlyRent: r.MonthlyRent,
		Deposit:     r.Deposit,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

func parseDay(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	return time.Parse(time.DateOnly, s)
}

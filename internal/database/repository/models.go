package repository

import (
	"slices"
	"time"
)

// PropertyType is the categorical kind of a property.
type PropertyType string

const (
	TypeApartment  PropertyType = "apartment"
	TypeHouse      PropertyType = "house"
	TypeCommercial PropertyType = "commercial"
	TypeWarehouse  PropertyType = "warehouse"
)

// PropertyTypes lists every type in display order.
var PropertyTypes = []PropertyType{TypeApartment, TypeHouse, TypeCommercial, TypeWarehouse}

// Valid reports whether t is one of PropertyTypes.
func (t PropertyType) Valid() bool { return slices.Contains(PropertyTypes, t) }

// PropertyStatus is the listing status of a property.
type PropertyStatus string

const (
	StatusAvailable   PropertyStatus = "available"
	StatusOccupied    PropertyStatus = "occupied"
	StatusMaintenance PropertyStatus = "maintenance"
	StatusSold        PropertyStatus = "sold"
)

// PropertyStatuses lists every status in display order.
var PropertyStatuses = []PropertyStatus{StatusAvailable, StatusOccupied, StatusMaintenance, StatusSold}

func (s PropertyStatus) Valid() bool { return slices.Contains(PropertyStatuses, s) }

// Property represents a property row. Prices are whole currency units.
type Property struct {
	ID          string
	Name        string
	Address     string
	Type        PropertyType
	Status      PropertyStatus
	Price       int64
	Bedrooms    *int
	Bathrooms   *int
	Sqft        int
	YearBuilt   int
	Images      []string
	Description string
	Features    []string
	OwnerID     string
	OwnerName   string
	MonthlyRent *int64
	Deposit     *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ClientStatus is the relationship status of a client.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientPending  ClientStatus = "pending"
)

// Client represents a client row. Clients are not linked to properties.
type Client struct {
	ID               string
	Name             string
	Email            string
	Phone            string
	Address          string
	Status           ClientStatus
	PropertiesCount  int
	TotalRent        int64
	LastContact      time.Time
	JoinDate         time.Time
	EmergencyContact string
	Notes            string
}

// MaintenanceRecord is a single maintenance job on a property.
type MaintenanceRecord struct {
	ID            string
	PropertyID    string
	Title         string
	Description   string
	Type          string // repair, maintenance, inspection, upgrade
	Status        string // pending, in-progress, completed, cancelled
	Cost          int64
	ScheduledDate time.Time
	CompletedDate *time.Time
	Contractor    *string
}

// Document is a file attached to a property.
type Document struct {
	ID         string
	PropertyID string
	Name       string
	Type       string // lease, certificate, inspection, photo, other
	URL        string
	UploadedAt time.Time
}

// Tenant is a current or past lease holder.
type Tenant struct {
	ID          string
	PropertyID  string
	Name        string
	Email       string
	Phone       string
	LeaseStart  time.Time
	LeaseEnd    time.Time
	MonthlyRent int64
	Deposit     int64
	Status      string // active, inactive, pending
}

// Application is a prospective tenant's application.
type Application struct {
	ID          string
	PropertyID  string
	Name        string
	Email       string
	Phone       string
	AppliedDate time.Time
	Status      string
}

// Expense is a recurring cost attached to a property.
type Expense struct {
	PropertyID string
	Category   string
	Amount     int64
	Frequency  string
	SortOrder  int
}

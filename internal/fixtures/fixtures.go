// Package fixtures holds the built-in mock catalog used when no external
// catalog has been imported.
package fixtures

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jask/propdesk/internal/database/repository"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func intp(n int) *int       { return &n }
func i64p(n int64) *int64   { return &n }
func strp(s string) *string { return &s }
func timep(t time.Time) *time.Time {
	return &t
}

// Properties returns a fresh copy of the mock property list in catalog order.
func Properties() []repository.Property {
	return []repository.Property{
		{
			ID:          "1",
			Name:        "Sunset Apartments",
			Address:     "123 Sunset Blvd, Los Angeles, CA 90028",
			Type:        repository.TypeApartment,
			Status:      repository.StatusAvailable,
			Price:       450000,
			Bedrooms:    intp(2),
			Bathrooms:   intp(2),
			Sqft:        1200,
			YearBuilt:   2018,
			Images:      []string{"/placeholder.svg", "/placeholder.svg"},
			Description: "Modern apartment with city views and premium amenities.",
			Features:    []string{"Pool", "Gym", "Parking", "Pet Friendly"},
			OwnerID:     "1",
			OwnerName:   "John Smith",
			MonthlyRent: i64p(2500),
			Deposit:     i64p(5000),
			CreatedAt:   day("2024-01-15"),
			UpdatedAt:   day("2024-01-20"),
		},
		{
			ID:          "2",
			Name:        "Downtown Loft",
			Address:     "456 Main St, Los Angeles, CA 90014",
			Type:        repository.TypeApartment,
			Status:      repository.StatusOccupied,
			Price:       675000,
			Bedrooms:    intp(1),
			Bathrooms:   intp(1),
			Sqft:        900,
			YearBuilt:   2020,
			Images:      []string{"/placeholder.svg"},
			Description: "Stylish loft in the heart of downtown with exposed brick.",
			Features:    []string{"High Ceilings", "Exposed Brick", "Hardwood Floors"},
			OwnerID:     "2",
			OwnerName:   "Jane Doe",
			MonthlyRent: i64p(3200),
			Deposit:     i64p(6400),
			CreatedAt:   day("2024-01-10"),
			UpdatedAt:   day("2024-01-15"),
		},
		{
			ID:          "3",
			Name:        "Family House",
			Address:     "789 Oak Avenue, Pasadena, CA 91101",
			Type:        repository.TypeHouse,
			Status:      repository.StatusAvailable,
			Price:       850000,
			Bedrooms:    intp(4),
			Bathrooms:   intp(3),
			Sqft:        2400,
			YearBuilt:   2015,
			Images:      []string{"/placeholder.svg", "/placeholder.svg", "/placeholder.svg"},
			Description: "Spacious family home with large backyard and garage.",
			Features:    []string{"Garage", "Backyard", "Fireplace", "Updated Kitchen"},
			OwnerID:     "1",
			OwnerName:   "John Smith",
			MonthlyRent: i64p(4500),
			Deposit:     i64p(9000),
			CreatedAt:   day("2024-01-05"),
			UpdatedAt:   day("2024-01-12"),
		},
	}
}

// Clients returns the mock client list.
func Clients() []repository.Client {
	return []repository.Client{
		{
			ID: "1", Name: "Sarah Johnson", Email: "sarah.johnson@email.com", Phone: "(555) 123-4567",
			Address: "123 Main St, New York, NY 10001", Status: repository.ClientActive,
			PropertiesCount: 3, TotalRent: 4500, LastContact: day("2024-05-28"), JoinDate: day("2023-01-15"),
			EmergencyContact: "Mike Johnson - (555) 987-6543",
			Notes:            "Excellent tenant, always pays on time. Prefers digital communication.",
		},
		{
			ID: "2", Name: "Michael Chen", Email: "m.chen@email.com", Phone: "(555) 234-5678",
			Address: "456 Oak Ave, Los Angeles, CA 90210", Status: repository.ClientActive,
			PropertiesCount: 2, TotalRent: 3200, LastContact: day("2024-05-25"), JoinDate: day("2023-03-20"),
			EmergencyContact: "Lisa Chen - (555) 876-5432",
			Notes:            "Owns multiple properties, looking to expand portfolio.",
		},
		{
			ID: "3", Name: "Emily Rodriguez", Email: "emily.r@email.com", Phone: "(555) 345-6789",
			Address: "789 Pine St, Chicago, IL 60601", Status: repository.ClientPending,
			PropertiesCount: 1, TotalRent: 1800, LastContact: day("2024-05-30"), JoinDate: day("2024-05-15"),
			EmergencyContact: "Carlos Rodriguez - (555) 765-4321",
			Notes:            "New client, currently reviewing lease agreement.",
		},
		{
			ID: "4", Name: "David Thompson", Email: "david.thompson@email.com", Phone: "(555) 456-7890",
			Address: "321 Elm St, Miami, FL 33101", Status: repository.ClientInactive,
			PropertiesCount: 0, TotalRent: 0, LastContact: day("2024-04-15"), JoinDate: day("2022-08-10"),
			EmergencyContact: "Karen Thompson - (555) 654-3210",
			Notes:            "Lease ended in April 2024. Good tenant history.",
		},
	}
}

// Details bundles the per-property records shown on the detail tabs.
type Details struct {
	Maintenance  []repository.MaintenanceRecord
	Documents    []repository.Document
	Tenants      []repository.Tenant
	Applications []repository.Application
	Expenses     []repository.Expense
}

func recordID(kind, propertyID string, n int) string {
	key := fmt.Sprintf("%s:%s:%d", kind, propertyID, n)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// DetailsFor returns the mock detail records for a property. Every property
// shares the same schedule; only ids and the property reference differ.
func DetailsFor(propertyID string) Details {
	id := func(kind string, n int) string { return recordID(kind, propertyID, n) }
	return Details{
		Maintenance: []repository.MaintenanceRecord{
			{ID: id("maintenance", 1), PropertyID: propertyID, Title: "HVAC System Maintenance",
				Description: "Annual HVAC system inspection and filter replacement", Type: "maintenance",
				Status: "completed", Cost: 350, ScheduledDate: day("2024-01-15"),
				CompletedDate: timep(day("2024-01-15")), Contractor: strp("Cool Air HVAC Services")},
			{ID: id("maintenance", 2), PropertyID: propertyID, Title: "Kitchen Sink Repair",
				Description: "Fix leaking kitchen sink faucet and replace washers", Type: "repair",
				Status: "completed", Cost: 125, ScheduledDate: day("2024-01-08"),
				CompletedDate: timep(day("2024-01-10")), Contractor: strp("Quick Fix Plumbing")},
			{ID: id("maintenance", 3), PropertyID: propertyID, Title: "Carpet Cleaning",
				Description: "Deep clean carpets in living room and bedrooms", Type: "maintenance",
				Status: "in-progress", Cost: 200, ScheduledDate: day("2024-01-22"),
				Contractor: strp("Pro Clean Services")},
			{ID: id("maintenance", 4), PropertyID: propertyID, Title: "Smoke Detector Inspection",
				Description: "Test all smoke detectors and replace batteries", Type: "inspection",
				Status: "pending", Cost: 75, ScheduledDate: day("2024-01-25")},
			{ID: id("maintenance", 5), PropertyID: propertyID, Title: "Kitchen Renovation",
				Description: "Complete kitchen remodel including new cabinets and appliances", Type: "upgrade",
				Status: "cancelled", Cost: 15000, ScheduledDate: day("2024-02-01")},
		},
		Documents: []repository.Document{
			{ID: id("document", 1), PropertyID: propertyID, Name: "Property Lease Agreement - 2024",
				Type: "lease", URL: "/documents/lease-2024.pdf", UploadedAt: day("2024-01-15")},
			{ID: id("document", 2), PropertyID: propertyID, Name: "Home Insurance Certificate",
				Type: "certificate", URL: "/documents/insurance-cert.pdf", UploadedAt: day("2024-01-10")},
			{ID: id("document", 3), PropertyID: propertyID, Name: "Annual Property Inspection Report",
				Type: "inspection", URL: "/documents/inspection-2024.pdf", UploadedAt: day("2024-01-08")},
			{ID: id("document", 4), PropertyID: propertyID, Name: "Kitchen Renovation Photos",
				Type: "photo", URL: "/photos/kitchen-renovation.jpg", UploadedAt: day("2024-01-05")},
			{ID: id("document", 5), PropertyID: propertyID, Name: "Property Tax Assessment",
				Type: "other", URL: "/documents/tax-assessment.pdf", UploadedAt: day("2024-01-03")},
			{ID: id("document", 6), PropertyID: propertyID, Name: "Utility Bills - December 2023",
				Type: "other", URL: "/documents/utilities-dec-2023.pdf", UploadedAt: day("2023-12-28")},
		},
		Tenants: []repository.Tenant{
			{ID: id("tenant", 1), PropertyID: propertyID, Name: "Sarah Johnson", Email: "sarah.johnson@email.com",
				Phone: "(555) 123-4567", LeaseStart: day("2023-09-01"), LeaseEnd: day("2024-08-31"),
				MonthlyRent: 2500, Deposit: 5000, Status: "active"},
			{ID: id("tenant", 2), PropertyID: propertyID, Name: "Mike Chen", Email: "mike.chen@email.com",
				Phone: "(555) 987-6543", LeaseStart: day("2023-06-01"), LeaseEnd: day("2023-08-31"),
				MonthlyRent: 2300, Deposit: 4600, Status: "inactive"},
		},
		Applications: []repository.Application{
			{ID: id("application", 1), PropertyID: propertyID, Name: "Jessica Williams",
				Email: "jessica.williams@email.com", Phone: "(555) 555-0123",
				AppliedDate: day("2024-01-10"), Status: "pending"},
			{ID: id("application", 2), PropertyID: propertyID, Name: "David Brown",
				Email: "david.brown@email.com", Phone: "(555) 555-0456",
				AppliedDate: day("2024-01-08"), Status: "pending"},
		},
		Expenses: []repository.Expense{
			{PropertyID: propertyID, Category: "Property Tax", Amount: 450, Frequency: "Monthly", SortOrder: 1},
			{PropertyID: propertyID, Category: "Insurance", Amount: 125, Frequency: "Monthly", SortOrder: 2},
			{PropertyID: propertyID, Category: "HOA Fees", Amount: 75, Frequency: "Monthly", SortOrder: 3},
			{PropertyID: propertyID, Category: "Maintenance Reserve", Amount: 200, Frequency: "Monthly", SortOrder: 4},
		},
	}
}

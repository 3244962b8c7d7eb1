package service

import (
	"context"
	"fmt"

	"github.com/jask/propdesk/internal/database/repository"
)

// HistoryService builds the maintenance, documents and tenants tabs.
type HistoryService struct {
	Maintenance  *repository.MaintenanceRepo
	Documents    *repository.DocumentRepo
	Tenants      *repository.TenantRepo
	Applications *repository.ApplicationRepo
}

type MaintenanceHistory struct {
	Records       []repository.MaintenanceRecord
	Completed     int
	Open          int // pending + in-progress
	CompletedCost int64
}

func (s *HistoryService) MaintenanceFor(ctx context.Context, propertyID string) (MaintenanceHistory, error) {
	records, err := s.Maintenance.ListByProperty(ctx, propertyID)
	if err != nil {
		return MaintenanceHistory{}, fmt.Errorf("maintenance for %s: %w", propertyID, err)
	}
	return SummarizeMaintenance(records), nil
}

func SummarizeMaintenance(records []repository.MaintenanceRecord) MaintenanceHistory {
	h := MaintenanceHistory{Records: records}
	for _, r := range records {
		switch r.Status {
		case "completed":
			h.Completed++
			h.CompletedCost += r.Cost
		case "pending", "in-progress":
			h.Open++
		}
	}
	return h
}

// DocumentGroup holds the documents of one type.
type DocumentGroup struct {
	Type      string
	Documents []repository.Document
}

func (s *HistoryService) DocumentsFor(ctx context.Context, propertyID string) ([]DocumentGroup, error) {
	docs, err := s.Documents.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("documents for %s: %w", propertyID, err)
	}
	return GroupDocuments(docs), nil
}

// GroupDocuments groups by type, with groups in the order their type first
// appears.
func GroupDocuments(docs []repository.Document) []DocumentGroup {
	var groups []DocumentGroup
	index := map[string]int{}
	for _, d := range docs {
		i, ok := index[d.Type]
		if !ok {
			i = len(groups)
			index[d.Type] = i
			groups = append(groups, DocumentGroup{Type: d.Type})
		}
		groups[i].Documents = append(groups[i].Documents, d)
	}
	return groups
}

type TenantRoster struct {
	Current      *repository.Tenant
	Tenants      []repository.Tenant
	ActiveCount  int
	Applications []repository.Application // pending only
}

func (s *HistoryService) TenantsFor(ctx context.Context, propertyID string) (TenantRoster, error) {
	tenants, err := s.Tenants.ListByProperty(ctx, propertyID)
	if err != nil {
		return TenantRoster{}, fmt.Errorf("tenants for %s: %w", propertyID, err)
	}
	apps, err := s.Applications.ListByProperty(ctx, propertyID)
	if err != nil {
		return TenantRoster{}, fmt.Errorf("applications for %s: %w", propertyID, err)
	}
	return BuildRoster(tenants, apps), nil
}

func BuildRoster(tenants []repository.Tenant, apps []repository.Application) TenantRoster {
	r := TenantRoster{Tenants: tenants}
	for i := range tenants {
		if tenants[i].Status != "active" {
			continue
		}
		r.ActiveCount++
		if r.Current == nil {
			r.Current = &tenants[i]
		}
	}
	for _, a := range apps {
		if a.Status == "pending" {
			r.Applications = append(r.Applications, a)
		}
	}
	return r
}

package service

import (
	"context"
	"fmt"

	"github.com/jask/propdesk/internal/database/repository"
)

// NotAvailable is shown for ratios that cannot be computed.
const NotAvailable = "N/A"

// FinancialService builds the financial tab.
type FinancialService struct {
	Expenses *repository.ExpenseRepo
}

// FinancialSummary is the read model for the financial tab. Amounts are
// whole currency units per month unless the name says otherwise.
type FinancialSummary struct {
	Price         int64
	MonthlyRent   *int64
	Deposit       *int64
	AnnualROI     string
	MonthlyROI    string
	Expenses      []repository.Expense
	TotalExpenses int64
	NetMonthly    int64
	NetAnnual     int64
}

func (s *FinancialService) Summary(ctx context.Context, p *repository.Property) (FinancialSummary, error) {
	if p == nil {
		return FinancialSummary{}, fmt.Errorf("financials: no property")
	}
	expenses, err := s.Expenses.ListByProperty(ctx, p.ID)
	if err != nil {
		return FinancialSummary{}, fmt.Errorf("financials for %s: %w", p.ID, err)
	}
	return Financials(p, expenses), nil
}

// Financials computes the summary from a property and its expenses. A
// missing rent counts as zero income.
func Financials(p *repository.Property, expenses []repository.Expense) FinancialSummary {
	out := FinancialSummary{
		Price:       p.Price,
		MonthlyRent: p.MonthlyRent,
		Deposit:     p.Deposit,
		AnnualROI:   NotAvailable,
		MonthlyROI:  NotAvailable,
		Expenses:    expenses,
	}
	for _, e := range expenses {
		out.TotalExpenses += e.Amount
	}
	var rent int64
	if p.MonthlyRent != nil {
		rent = *p.MonthlyRent
	}
	if rent > 0 && p.Price > 0 {
		out.AnnualROI = fmt.Sprintf("%.2f%%", float64(rent*12)/float64(p.Price)*100)
		out.MonthlyROI = fmt.Sprintf("%.3f%%", float64(rent)/float64(p.Price)*100)
	}
	out.NetMonthly = rent - out.TotalExpenses
	out.NetAnnual = out.NetMonthly * 12
	return out
}

package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xtart-crm/internal/api"
	"xtart-crm/internal/models"
)

// invoicesFromRaw runs raw response maps through the same normalize+decode
// pipeline the client uses, so tests exercise the real data path.
func invoicesFromRaw(raw []map[string]interface{}) []models.Invoice {
	invoices := make([]models.Invoice, 0, len(raw))
	for _, m := range raw {
		normalized := api.Normalize(m).(map[string]interface{})
		invoices = append(invoices, models.InvoiceFromMap(normalized))
	}
	return invoices
}

func TestMonthlyRevenueScenario(t *testing.T) {
	invoices := invoicesFromRaw([]map[string]interface{}{
		{"total": "100", "fechaEmision": "2024-01-15", "estado": "pagada"},
		{"total": "50", "fechaEmision": "2024-02-01", "estado": "pendiente"},
	})

	labels, values := New().MonthlyRevenue(invoices)

	assert.Equal(t, []string{"Jan 2024", "Feb 2024"}, labels)
	assert.Equal(t, []float64{100.0, 50.0}, values)
}

func TestMonthlyRevenueChronologicalOrder(t *testing.T) {
	invoices := []models.Invoice{
		{Total: 10, IssueDate: "2024-12-05"},
		{Total: 20, IssueDate: "2023-02-10"},
		{Total: 30, IssueDate: "2024-01-20"},
		{Total: 5, IssueDate: "2024-01-02"},
	}

	labels, values := New().MonthlyRevenue(invoices)

	assert.Equal(t, []string{"Feb 2023", "Jan 2024", "Dec 2024"}, labels)
	assert.Equal(t, []float64{20, 35, 10}, values)
}

func TestMonthlyRevenueHandlesAllDateEncodings(t *testing.T) {
	invoices := []models.Invoice{
		{Total: 1, IssueDate: "2024-03-10T09:30:00"},
		{Total: 2, IssueDate: "2024-03-11 09:30:00"},
		{Total: 4, IssueDate: "2024-03-12"},
		{Total: 8, IssueDate: []interface{}{float64(2024), float64(3), float64(13), float64(10)}},
	}

	labels, values := New().MonthlyRevenue(invoices)

	require.Equal(t, []string{"Mar 2024"}, labels)
	assert.Equal(t, []float64{15}, values)
}

func TestMonthlyRevenueSkipsAndConserves(t *testing.T) {
	counter := NewSkipCounter()
	agg := New(WithSkipObserver(counter.Observe))

	invoices := []models.Invoice{
		{Total: 100, IssueDate: "2024-01-15"},
		{Total: 50, IssueDate: "2024-02-01"},
		{Total: 0, IssueDate: "2024-02-02"},        // non-positive
		{Total: -5, IssueDate: "2024-02-03"},       // non-positive
		{Total: 25, IssueDate: "nunca"},            // unparsable date
		{Total: 25, IssueDate: nil},                // missing date
		{Total: 25, IssueDate: []interface{}{2024}}, // short array
	}

	_, values := agg.MonthlyRevenue(invoices)

	// The series must sum to total revenue minus the skipped records.
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	assert.Equal(t, 150.0, sum)

	assert.Equal(t, 2, counter.Count(ReportMonthlyRevenue, SkipBadTotal))
	assert.Equal(t, 3, counter.Count(ReportMonthlyRevenue, SkipBadDate))
	assert.Equal(t, 5, counter.Total(ReportMonthlyRevenue))
}

func TestMonthlyRevenueEmptyInput(t *testing.T) {
	labels, values := New().MonthlyRevenue(nil)
	assert.Empty(t, labels)
	assert.Empty(t, values)
}

func TestAgentRankingIncludesZeroRevenueAgents(t *testing.T) {
	agents := []models.Agent{
		{ID: 1, Name: "Ana"},
		{ID: 2, Name: "Luis"},
		{ID: 3, Name: "Marta"},
	}
	invoices := []models.Invoice{
		{AgentID: 2, Total: 300},
		{AgentID: 1, Total: 100},
		{AgentID: 2, Total: 50},
	}

	ranking := New().AgentRanking(agents, invoices)

	require.Len(t, ranking, len(agents))
	assert.Equal(t, RevenueEntry{Name: "Luis", Revenue: 350}, ranking[0])
	assert.Equal(t, RevenueEntry{Name: "Ana", Revenue: 100}, ranking[1])
	assert.Equal(t, RevenueEntry{Name: "Marta", Revenue: 0}, ranking[2])
}

func TestAgentRankingRestrictsToKnownAgents(t *testing.T) {
	counter := NewSkipCounter()
	agg := New(WithSkipObserver(counter.Observe))

	agents := []models.Agent{{ID: 1, Name: "Ana"}}
	invoices := []models.Invoice{
		{AgentID: 1, Total: 100},
		{AgentID: 99, Total: 500},
	}

	ranking := agg.AgentRanking(agents, invoices)

	require.Len(t, ranking, 1)
	assert.Equal(t, 100.0, ranking[0].Revenue)
	assert.Equal(t, 1, counter.Count(ReportAgentRanking, SkipUnknownAgent))
}

func TestAgentRankingStableOnTies(t *testing.T) {
	agents := []models.Agent{
		{ID: 1, Name: "Ana"},
		{ID: 2, Name: "Luis"},
		{ID: 3, Name: "Marta"},
	}
	invoices := []models.Invoice{
		{AgentID: 1, Total: 100},
		{AgentID: 2, Total: 100},
		{AgentID: 3, Total: 100},
	}

	ranking := New().AgentRanking(agents, invoices)

	assert.Equal(t, []string{"Ana", "Luis", "Marta"},
		[]string{ranking[0].Name, ranking[1].Name, ranking[2].Name})
}

func TestAgentRankingEmptyInvoices(t *testing.T) {
	agents := []models.Agent{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Luis"}}

	ranking := New().AgentRanking(agents, nil)

	require.Len(t, ranking, 2)
	for _, entry := range ranking {
		assert.Zero(t, entry.Revenue)
	}
}

func TestStatusCountsScenario(t *testing.T) {
	invoices := invoicesFromRaw([]map[string]interface{}{
		{"total": "100", "fechaEmision": "2024-01-15", "estado": "pagada"},
		{"total": "50", "fechaEmision": "2024-02-01", "estado": "pendiente"},
	})

	counts := New().StatusCounts(invoices)

	assert.Equal(t, StatusCounts{Paid: 1, Pending: 1, Cancelled: 0}, counts)
}

func TestStatusCountsExcludesOtherStatuses(t *testing.T) {
	counter := NewSkipCounter()
	agg := New(WithSkipObserver(counter.Observe))

	invoices := []models.Invoice{
		{Status: models.StatusPaid},
		{Status: "borrador"},
		{Status: ""},
	}

	counts := agg.StatusCounts(invoices)

	assert.Equal(t, StatusCounts{Paid: 1}, counts)
	assert.Equal(t, 2, counter.Count(ReportStatusCounts, SkipOtherStatus))
}

func TestStatusCountsEmptyInput(t *testing.T) {
	assert.Equal(t, StatusCounts{}, New().StatusCounts(nil))
}

func TestCustomersPerAgent(t *testing.T) {
	counter := NewSkipCounter()
	agg := New(WithSkipObserver(counter.Observe))

	agents := []models.Agent{
		{ID: 1, Name: "Ana"},
		{ID: 2, Name: "Luis"},
	}
	customers := []models.Customer{
		{ID: 10, AgentID: 2},
		{ID: 11, AgentID: 2},
		{ID: 12, AgentID: 1},
		{ID: 13, AgentID: 0}, // unassigned
	}

	ranking := agg.CustomersPerAgent(agents, customers)

	require.Len(t, ranking, 2)
	assert.Equal(t, CountEntry{Name: "Luis", Count: 2}, ranking[0])
	assert.Equal(t, CountEntry{Name: "Ana", Count: 1}, ranking[1])
	assert.Equal(t, 1, counter.Count(ReportCustomersPerAgent, SkipNoAgent))
}

func TestTopProductsTruncatesToTen(t *testing.T) {
	var invoices []models.Invoice
	var products []models.Product
	for i := int64(1); i <= 12; i++ {
		products = append(products, models.Product{ID: i, Name: fmt.Sprintf("P%d", i)})
		// Higher ids sell more so the cut is deterministic.
		for j := int64(0); j < i; j++ {
			invoices = append(invoices, models.Invoice{ProductID: i})
		}
	}

	ranking := New().TopProducts(invoices, products)

	require.Len(t, ranking, 10)
	assert.Equal(t, CountEntry{Name: "P12", Count: 12}, ranking[0])
	assert.Equal(t, CountEntry{Name: "P3", Count: 3}, ranking[9])
}

func TestTopProductsLengthMatchesDistinctProducts(t *testing.T) {
	invoices := []models.Invoice{
		{ProductID: 1}, {ProductID: 2}, {ProductID: 1},
	}
	products := []models.Product{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}

	ranking := New().TopProducts(invoices, products)

	assert.Len(t, ranking, 2)
}

func TestTopProductsSyntheticLabelForUnknownProduct(t *testing.T) {
	invoices := []models.Invoice{{ProductID: 42}}

	ranking := New().TopProducts(invoices, nil)

	require.Len(t, ranking, 1)
	assert.Equal(t, CountEntry{Name: "Producto 42", Count: 1}, ranking[0])
}

func TestTopProductsEncounterOrderOnTies(t *testing.T) {
	invoices := []models.Invoice{
		{ProductID: 5}, {ProductID: 3}, {ProductID: 9},
	}
	products := []models.Product{
		{ID: 3, Name: "Tres"}, {ID: 5, Name: "Cinco"}, {ID: 9, Name: "Nueve"},
	}

	ranking := New().TopProducts(invoices, products)

	assert.Equal(t, []string{"Cinco", "Tres", "Nueve"},
		[]string{ranking[0].Name, ranking[1].Name, ranking[2].Name})
}

func TestSectionRevenue(t *testing.T) {
	counter := NewSkipCounter()
	agg := New(WithSkipObserver(counter.Observe))

	products := []models.Product{
		{ID: 1, Name: "Curso A", SectionID: 100},
		{ID: 2, Name: "Curso B", SectionID: 200},
	}
	sections := []models.Section{
		{ID: 100, Name: "Formación"},
		{ID: 200, Name: "Consultoría"},
	}
	invoices := []models.Invoice{
		{ProductID: 1, Total: 50},
		{ProductID: 2, Total: 300},
		{ProductID: 1, Total: 25},
		{ProductID: 99, Total: 1000}, // unknown product, must not leak in
	}

	ranking := agg.SectionRevenue(invoices, products, sections)

	require.Len(t, ranking, 2)
	assert.Equal(t, RevenueEntry{Name: "Consultoría", Revenue: 300}, ranking[0])
	assert.Equal(t, RevenueEntry{Name: "Formación", Revenue: 75}, ranking[1])
	assert.Equal(t, 1, counter.Count(ReportSectionRevenue, SkipUnresolvedSection))
}

func TestUnknownProductExcludedFromSectionsButCountedInTopProducts(t *testing.T) {
	invoices := []models.Invoice{{ProductID: 7, Total: 10}}

	agg := New()
	sections := agg.SectionRevenue(invoices, nil, nil)
	top := agg.TopProducts(invoices, nil)

	assert.Empty(t, sections)
	require.Len(t, top, 1)
	assert.Equal(t, "Producto 7", top[0].Name)
}

func TestSectionRevenueSyntheticSectionLabel(t *testing.T) {
	products := []models.Product{{ID: 1, SectionID: 77}}
	invoices := []models.Invoice{{ProductID: 1, Total: 5}}

	ranking := New().SectionRevenue(invoices, products, nil)

	require.Len(t, ranking, 1)
	assert.Equal(t, "Sección 77", ranking[0].Name)
}

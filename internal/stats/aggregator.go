package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"xtart-crm/internal/models"
)

// Report names as passed to the skip observer.
const (
	ReportMonthlyRevenue    = "monthly_revenue"
	ReportAgentRanking      = "agent_ranking"
	ReportStatusCounts      = "status_counts"
	ReportCustomersPerAgent = "customers_per_agent"
	ReportTopProducts       = "top_products"
	ReportSectionRevenue    = "section_revenue"
)

const topProductsLimit = 10

const monthLabelLayout = "Jan 2006"

// RevenueEntry is one row of a revenue ranking.
type RevenueEntry struct {
	Name    string
	Revenue float64
}

// CountEntry is one row of a count ranking.
type CountEntry struct {
	Name  string
	Count int
}

// StatusCounts is the fixed three-bucket invoice status breakdown. Other
// or missing statuses are reported to the observer and excluded.
type StatusCounts struct {
	Paid      int
	Pending   int
	Cancelled int
}

// Aggregator computes derived dashboard views from normalized entity
// lists. Every report is pure, single-pass (plus the sort), tolerates
// empty input, and skips malformed records instead of failing; partial
// data beats a crashed dashboard.
type Aggregator struct {
	onSkip SkipObserver
}

type Option func(*Aggregator)

// WithSkipObserver installs a callback invoked once per dropped record.
func WithSkipObserver(observer SkipObserver) Option {
	return func(a *Aggregator) {
		a.onSkip = observer
	}
}

func New(opts ...Option) *Aggregator {
	a := &Aggregator{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aggregator) skip(report string, reason SkipReason) {
	if a.onSkip != nil {
		a.onSkip(report, reason)
	}
}

// MonthlyRevenue buckets invoice totals by calendar month and returns
// parallel slices of chronologically ordered period labels and sums.
// Invoices with a non-positive total or an unparsable date are skipped;
// both slices are empty when nothing contributes.
func (a *Aggregator) MonthlyRevenue(invoices []models.Invoice) ([]string, []float64) {
	buckets := make(map[time.Time]float64)

	for _, inv := range invoices {
		if inv.Total <= 0 {
			a.skip(ReportMonthlyRevenue, SkipBadTotal)
			continue
		}
		issued, ok := models.ParseIssueDate(inv.IssueDate)
		if !ok {
			a.skip(ReportMonthlyRevenue, SkipBadDate)
			continue
		}
		month := time.Date(issued.Year(), issued.Month(), 1, 0, 0, 0, 0, time.UTC)
		buckets[month] += inv.Total
	}

	if len(buckets) == 0 {
		return []string{}, []float64{}
	}

	months := lo.Keys(buckets)
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	labels := make([]string, len(months))
	values := make([]float64, len(months))
	for i, month := range months {
		labels[i] = month.Format(monthLabelLayout)
		values[i] = buckets[month]
	}
	return labels, values
}

// AgentRanking sums invoice totals per agent, restricted to the agents in
// the given list, and returns one entry per agent (zero revenue included)
// sorted by revenue descending. Ties keep the agents' source order.
func (a *Aggregator) AgentRanking(agents []models.Agent, invoices []models.Invoice) []RevenueEntry {
	known := lo.SliceToMap(agents, func(ag models.Agent) (int64, struct{}) {
		return ag.ID, struct{}{}
	})

	revenue := make(map[int64]float64, len(agents))
	for _, inv := range invoices {
		if _, ok := known[inv.AgentID]; !ok {
			a.skip(ReportAgentRanking, SkipUnknownAgent)
			continue
		}
		if inv.Total <= 0 {
			a.skip(ReportAgentRanking, SkipBadTotal)
			continue
		}
		revenue[inv.AgentID] += inv.Total
	}

	ranking := lo.Map(agents, func(ag models.Agent, _ int) RevenueEntry {
		return RevenueEntry{Name: ag.Name, Revenue: revenue[ag.ID]}
	})
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Revenue > ranking[j].Revenue
	})
	return ranking
}

// StatusCounts tallies invoices into the three known statuses. Anything
// else is counted separately via the observer and left out.
func (a *Aggregator) StatusCounts(invoices []models.Invoice) StatusCounts {
	var counts StatusCounts
	for _, inv := range invoices {
		switch inv.Status {
		case models.StatusPaid:
			counts.Paid++
		case models.StatusPending:
			counts.Pending++
		case models.StatusCancelled:
			counts.Cancelled++
		default:
			a.skip(ReportStatusCounts, SkipOtherStatus)
		}
	}
	return counts
}

// CustomersPerAgent counts customers per assigned agent and returns one
// entry per known agent, descending by count, stable on ties. Customers
// without an agent are skipped.
func (a *Aggregator) CustomersPerAgent(agents []models.Agent, customers []models.Customer) []CountEntry {
	perAgent := make(map[int64]int, len(agents))
	for _, cust := range customers {
		if cust.AgentID == 0 {
			a.skip(ReportCustomersPerAgent, SkipNoAgent)
			continue
		}
		perAgent[cust.AgentID]++
	}

	ranking := lo.Map(agents, func(ag models.Agent, _ int) CountEntry {
		return CountEntry{Name: ag.Name, Count: perAgent[ag.ID]}
	})
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	return ranking
}

// TopProducts counts invoices per product and returns up to ten entries,
// descending by count, encounter order on ties. Products missing from the
// product list keep a synthetic label rather than being dropped.
func (a *Aggregator) TopProducts(invoices []models.Invoice, products []models.Product) []CountEntry {
	names := lo.SliceToMap(products, func(p models.Product) (int64, string) {
		return p.ID, p.Name
	})

	sales := make(map[int64]int)
	var order []int64
	for _, inv := range invoices {
		if inv.ProductID == 0 {
			a.skip(ReportTopProducts, SkipNoProduct)
			continue
		}
		if _, seen := sales[inv.ProductID]; !seen {
			order = append(order, inv.ProductID)
		}
		sales[inv.ProductID]++
	}

	ranking := lo.Map(order, func(productID int64, _ int) CountEntry {
		name, found := names[productID]
		if !found || name == "" {
			name = fmt.Sprintf("Producto %d", productID)
		}
		return CountEntry{Name: name, Count: sales[productID]}
	})
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})

	if len(ranking) > topProductsLimit {
		ranking = ranking[:topProductsLimit]
	}
	return ranking
}

// SectionRevenue resolves each invoice through product to section and sums
// totals per section, descending by revenue. Invoices whose product or
// section cannot be resolved are skipped; a section missing from the
// section list keeps a synthetic label.
func (a *Aggregator) SectionRevenue(invoices []models.Invoice, products []models.Product, sections []models.Section) []RevenueEntry {
	productSection := lo.SliceToMap(products, func(p models.Product) (int64, int64) {
		return p.ID, p.SectionID
	})
	sectionNames := lo.SliceToMap(sections, func(s models.Section) (int64, string) {
		return s.ID, s.Name
	})

	revenue := make(map[int64]float64)
	var order []int64
	for _, inv := range invoices {
		sectionID, resolved := productSection[inv.ProductID]
		if !resolved || sectionID == 0 {
			a.skip(ReportSectionRevenue, SkipUnresolvedSection)
			continue
		}
		if _, seen := revenue[sectionID]; !seen {
			order = append(order, sectionID)
		}
		revenue[sectionID] += inv.Total
	}

	ranking := lo.Map(order, func(sectionID int64, _ int) RevenueEntry {
		name, found := sectionNames[sectionID]
		if !found || name == "" {
			name = fmt.Sprintf("Sección %d", sectionID)
		}
		return RevenueEntry{Name: name, Revenue: revenue[sectionID]}
	})
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Revenue > ranking[j].Revenue
	})
	return ranking
}

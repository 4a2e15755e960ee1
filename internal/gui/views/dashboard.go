package views

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"xtart-crm/internal/gui/components"
	"xtart-crm/internal/models"
	"xtart-crm/internal/stats"
)

// DashboardData carries every derived view the dashboard renders,
// precomputed by the aggregation layer before the screen is built.
type DashboardData struct {
	Periods           []string
	Revenues          []float64
	AgentRanking      []stats.RevenueEntry
	Status            stats.StatusCounts
	CustomersPerAgent []stats.CountEntry
	TopProducts       []stats.CountEntry
	SectionRevenue    []stats.RevenueEntry
	APIStats          models.APIStatistics
}

// DashboardView is the statistics screen: KPI card, revenue line chart,
// ranking bar charts, the invoice status donut, the backend's own request
// counters, and the report launch buttons.
type DashboardView struct {
	container  *fyne.Container
	statsLabel *widget.Label
}

// NewDashboardView builds the screen from precomputed data. onReport and
// onResetStats dispatch to background workers owned by the caller.
func NewDashboardView(data DashboardData, onReport func(kind string), onResetStats func()) *DashboardView {
	view := &DashboardView{}

	totalRevenue := 0.0
	for _, v := range data.Revenues {
		totalRevenue += v
	}
	kpi := widget.NewCard("INGRESOS TOTALES NETOS", "",
		widget.NewLabelWithStyle(fmt.Sprintf("%.2f €", totalRevenue), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))

	view.statsLabel = widget.NewLabel(formatAPIStats(data.APIStats))
	resetButton := widget.NewButton("Resetear Estadísticas", onResetStats)
	resetButton.Importance = widget.DangerImportance
	apiCard := widget.NewCard("Estadísticas de API", "",
		container.NewVBox(view.statsLabel, resetButton))

	revenueCard := widget.NewCard("Evolución de Ingresos Mensuales (€)", "",
		components.NewLineChart(data.Periods, data.Revenues))

	rankingCard := widget.NewCard("Ranking Comercial por Ingresos", "",
		components.NewBarChart(
			revenueNames(data.AgentRanking), revenueValues(data.AgentRanking), components.ChartBlue))

	statusCard := widget.NewCard("Estado de Facturas", "",
		components.NewDonutChart([]components.DonutSegment{
			{Label: "Pagadas", Value: data.Status.Paid, Color: components.ChartGreen},
			{Label: "Pendientes", Value: data.Status.Pending, Color: components.ChartOrange},
			{Label: "Canceladas", Value: data.Status.Cancelled, Color: components.ChartPurple},
		}))

	customersCard := widget.NewCard("Clientes por Comercial", "",
		components.NewBarChart(
			countNames(data.CustomersPerAgent), countValues(data.CustomersPerAgent), components.ChartPurple))

	productsCard := widget.NewCard("Productos Más Vendidos", "",
		components.NewBarChart(
			countNames(data.TopProducts), countValues(data.TopProducts), components.ChartOrange))

	sectionsCard := widget.NewCard("Ingresos por Sección", "",
		components.NewBarChart(
			revenueNames(data.SectionRevenue), revenueValues(data.SectionRevenue), components.ChartGreen))

	reportsCard := widget.NewCard("Generar Informes",
		"Los informes se generan en segundo plano en el servidor.",
		container.NewHBox(
			widget.NewButton("Informe de Clientes", func() { onReport("clientes") }),
			widget.NewButton("Informe de Facturas", func() { onReport("facturas") }),
			widget.NewButton("Informe Completo", func() { onReport("completo") }),
		))

	content := container.NewVBox(
		container.NewGridWithColumns(2, kpi, apiCard),
		revenueCard,
		container.NewGridWithColumns(2, rankingCard, statusCard),
		container.NewGridWithColumns(3, customersCard, productsCard, sectionsCard),
		reportsCard,
	)

	view.container = container.NewStack(container.NewVScroll(content))
	return view
}

func (v *DashboardView) GetContainer() *fyne.Container {
	return v.container
}

// RefreshStatistics updates the API counters card in place, used after a
// background reset completes.
func (v *DashboardView) RefreshStatistics(apiStats models.APIStatistics) {
	v.statsLabel.SetText(formatAPIStats(apiStats))
}

func formatAPIStats(s models.APIStatistics) string {
	return fmt.Sprintf("Total: %d\nExitosas: %d\nFallidas: %d\nTiempo promedio: %.2fms",
		s.TotalRequests, s.SuccessfulRequests, s.FailedRequests, s.AverageResponseTime)
}

func revenueNames(entries []stats.RevenueEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func revenueValues(entries []stats.RevenueEntry) []float64 {
	values := make([]float64, len(entries))
	for i, e := range entries {
		values[i] = e.Revenue
	}
	return values
}

func countNames(entries []stats.CountEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func countValues(entries []stats.CountEntry) []float64 {
	values := make([]float64, len(entries))
	for i, e := range entries {
		values[i] = float64(e.Count)
	}
	return values
}

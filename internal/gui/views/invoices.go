package views

import (
	"fmt"
	"math"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"xtart-crm/internal/api"
	"xtart-crm/internal/gui/components"
	"xtart-crm/internal/logger"
	"xtart-crm/internal/models"
)

const vatRate = 1.21

// InvoicesView is the invoice CRUD screen. Relation selects are populated
// from the customer, agent and product lists on every reload.
type InvoicesView struct {
	client *api.Client
	window fyne.Window
	log    logger.Logger

	container *fyne.Container
	table     *components.DataTable
	invoices  []models.Invoice

	customers optionSet
	agents    optionSet
	products  optionSet
	prices    map[int64]float64
}

func NewInvoicesView(client *api.Client, window fyne.Window, log logger.Logger) *InvoicesView {
	v := &InvoicesView{
		client: client,
		window: window,
		log:    log,
		prices: map[int64]float64{},
	}

	columns := []string{"ID", "Cliente", "Comercial", "Producto", "Fecha Emisión", "Estado", "Total"}
	v.table = components.NewDataTable(columns, nil)

	toolbar := container.NewHBox(
		layout.NewSpacer(),
		widget.NewButton("Recargar", v.Reload),
		widget.NewButton("Nuevo", v.openCreateForm),
	)

	deleteButton := widget.NewButton("Eliminar", v.deleteSelected)
	deleteButton.Importance = widget.DangerImportance
	actions := container.NewHBox(
		layout.NewSpacer(),
		widget.NewButton("Detalles", v.showSelectedDetails),
		widget.NewButton("Editar", v.openEditForm),
		deleteButton,
	)

	v.container = container.NewBorder(toolbar, actions, nil, nil, v.table.GetContainer())
	v.Reload()
	return v
}

func (v *InvoicesView) GetContainer() *fyne.Container {
	return v.container
}

func (v *InvoicesView) Reload() {
	invoices, ok := v.client.Invoices(0, 0)
	if !ok {
		showConnectionError(v.window, "facturas")
		v.table.SetRows(nil)
		return
	}
	v.invoices = invoices
	v.reloadRelations()

	rows := make([][]string, len(invoices))
	for i, inv := range invoices {
		rows[i] = []string{
			inv.ID,
			fmt.Sprint(inv.CustomerID),
			fmt.Sprint(inv.AgentID),
			fmt.Sprint(inv.ProductID),
			formatIssueDate(inv.IssueDate),
			inv.Status,
			fmt.Sprintf("%.2f €", inv.Total),
		}
	}
	v.table.SetRows(rows)
}

func (v *InvoicesView) reloadRelations() {
	if customers, ok := v.client.Customers(0); ok {
		v.customers = customerOptions(customers)
	}
	if agents, ok := v.client.Agents(); ok {
		v.agents = agentOptions(agents)
	}
	if products, ok := v.client.Products(0); ok {
		v.products = productOptions(products)
		v.prices = map[int64]float64{}
		for _, p := range products {
			v.prices[p.ID] = p.BasePrice
		}
	}
}

func formatIssueDate(raw interface{}) string {
	if when, ok := models.ParseIssueDate(raw); ok {
		return when.Format("2006-01-02 15:04")
	}
	if raw == nil {
		return ""
	}
	return fmt.Sprint(raw)
}

func (v *InvoicesView) selected() (models.Invoice, bool) {
	row := v.table.SelectedRow()
	if row < 0 || row >= len(v.invoices) {
		return models.Invoice{}, false
	}
	return v.invoices[row], true
}

// vatSplit derives subtotal and tax from a gross amount.
func vatSplit(total float64) (subtotal, tax float64) {
	subtotal = math.Round(total/vatRate*100) / 100
	tax = math.Round((total-subtotal)*100) / 100
	return subtotal, tax
}

func (v *InvoicesView) openCreateForm() {
	fields := []components.FormField{
		{Key: "factura_id", Label: "ID Factura", Validator: components.RequiredValidator},
		{Key: "cliente", Label: "Cliente", Options: v.customers.labels},
		{Key: "comercial", Label: "Comercial", Options: v.agents.labels},
		{Key: "producto", Label: "Producto", Options: v.products.labels},
		{Key: "total", Label: "Total (€)",
			Validator: components.OptionalValidator(components.PositiveAmountValidator)},
	}

	components.ShowEntityForm(v.window, "Crear Nueva Factura", fields,
		func(values map[string]string) {
			productID := v.products.id(values["producto"])

			// An omitted total falls back to the selected product's price.
			total, hasTotal := models.ParseMoney(values["total"])
			if !hasTotal || total <= 0 {
				total = v.prices[productID]
			}
			subtotal, tax := vatSplit(total)

			data := map[string]interface{}{
				"facturaId":    values["factura_id"],
				"estado":       models.StatusPending,
				"fechaEmision": time.Now().Format("2006-01-02T15:04:05"),
				"total":        total,
				"subtotal":     subtotal,
				"totalIva":     tax,
			}
			if customerID := v.customers.id(values["cliente"]); customerID > 0 {
				data["cliente"] = map[string]interface{}{"clienteId": customerID}
			}
			if agentID := v.agents.id(values["comercial"]); agentID > 0 {
				data["comercial"] = map[string]interface{}{"comercialId": agentID}
			}
			if productID > 0 {
				data["producto"] = map[string]interface{}{"productoId": productID}
			}

			if !v.client.CreateInvoice(data) {
				showAPIError(v.window, "crear factura")
				return
			}
			v.log.Info("InvoicesView", "invoice created", map[string]interface{}{"id": values["factura_id"]})
			v.Reload()
		})
}

func (v *InvoicesView) openEditForm() {
	invoice, ok := v.selected()
	if !ok {
		showSelectionWarning(v.window, "Selecciona una factura de la tabla para editar.")
		return
	}

	fields := []components.FormField{
		{Key: "cliente", Label: "Cliente",
			Initial: v.customers.labelFor(invoice.CustomerID), Options: v.customers.labels},
		{Key: "comercial", Label: "Comercial",
			Initial: v.agents.labelFor(invoice.AgentID), Options: v.agents.labels},
		{Key: "estado", Label: "Estado", Initial: invoice.Status,
			Options: []string{models.StatusPaid, models.StatusPending, models.StatusCancelled}},
		{Key: "total", Label: "Total (€)",
			Initial:   fmt.Sprintf("%.2f", invoice.Total),
			Validator: components.PositiveAmountValidator},
	}

	title := "Editar Factura ID: " + invoice.ID
	components.ShowEntityForm(v.window, title, fields,
		func(values map[string]string) {
			total, _ := models.ParseMoney(values["total"])
			subtotal, tax := vatSplit(total)

			data := map[string]interface{}{
				"facturaId":    invoice.ID,
				"estado":       values["estado"],
				"fechaEmision": invoice.IssueDate,
				"total":        total,
				"subtotal":     subtotal,
				"totalIva":     tax,
			}
			if customerID := v.customers.id(values["cliente"]); customerID > 0 {
				data["cliente"] = map[string]interface{}{"clienteId": customerID}
			}
			if agentID := v.agents.id(values["comercial"]); agentID > 0 {
				data["comercial"] = map[string]interface{}{"comercialId": agentID}
			}
			if invoice.ProductID > 0 {
				data["producto"] = map[string]interface{}{"productoId": invoice.ProductID}
			}

			if !v.client.UpdateInvoice(invoice.ID, data) {
				showAPIError(v.window, "actualizar factura")
				return
			}
			v.log.Info("InvoicesView", "invoice updated", map[string]interface{}{"id": invoice.ID})
			v.Reload()
		})
}

func (v *InvoicesView) deleteSelected() {
	invoice, ok := v.selected()
	if !ok {
		showSelectionWarning(v.window, "Selecciona una factura de la tabla para eliminar.")
		return
	}

	message := fmt.Sprintf("¿Está seguro de que desea eliminar la factura con ID %s?", invoice.ID)
	confirmDelete(v.window, message, func() {
		if !v.client.DeleteInvoice(invoice.ID) {
			showAPIError(v.window, "eliminar factura")
			return
		}
		v.log.Info("InvoicesView", "invoice deleted", map[string]interface{}{"id": invoice.ID})
		v.Reload()
	})
}

func (v *InvoicesView) showSelectedDetails() {
	invoice, ok := v.selected()
	if !ok {
		showSelectionWarning(v.window, "Selecciona una factura de la tabla.")
		return
	}

	showDetails(v.window, "Detalles de Factura: "+invoice.ID, [][2]string{
		{"ID", invoice.ID},
		{"Cliente", fmt.Sprint(invoice.CustomerID)},
		{"Comercial", fmt.Sprint(invoice.AgentID)},
		{"Producto", fmt.Sprint(invoice.ProductID)},
		{"Fecha Emisión", formatIssueDate(invoice.IssueDate)},
		{"Estado", invoice.Status},
		{"Subtotal", fmt.Sprintf("%.2f €", invoice.Subtotal)},
		{"IVA", fmt.Sprintf("%.2f €", invoice.TaxTotal)},
		{"Total", fmt.Sprintf("%.2f €", invoice.Total)},
	})
}

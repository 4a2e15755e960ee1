package views

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"xtart-crm/internal/api"
	"xtart-crm/internal/gui/components"
	"xtart-crm/internal/logger"
	"xtart-crm/internal/models"
)

// CustomersView is the customer CRUD screen.
type CustomersView struct {
	client *api.Client
	window fyne.Window
	log    logger.Logger

	container *fyne.Container
	table     *components.DataTable
	customers []models.Customer
	agents    optionSet
}

func NewCustomersView(client *api.Client, window fyne.Window, log logger.Logger) *CustomersView {
	v := &CustomersView{
		client: client,
		window: window,
		log:    log,
	}

	columns := []string{"ID", "Nombre", "Apellidos", "Edad", "Email", "Teléfono", "Dirección", "Comercial"}
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

func (v *CustomersView) GetContainer() *fyne.Container {
	return v.container
}

// Reload refetches the customer list and the agent options used by the
// relation select in the forms.
func (v *CustomersView) Reload() {
	customers, ok := v.client.Customers(0)
	if !ok {
		showConnectionError(v.window, "clientes")
		v.table.SetRows(nil)
		return
	}
	v.customers = customers

	if agents, ok := v.client.Agents(); ok {
		v.agents = agentOptions(agents)
	}

	rows := make([][]string, len(customers))
	for i, c := range customers {
		rows[i] = []string{
			fmt.Sprint(c.ID), c.Name, c.Surname, fmt.Sprint(c.Age),
			c.Email, c.Phone, c.Address, fmt.Sprint(c.AgentID),
		}
	}
	v.table.SetRows(rows)
}

func (v *CustomersView) selected() (models.Customer, bool) {
	row := v.table.SelectedRow()
	if row < 0 || row >= len(v.customers) {
		return models.Customer{}, false
	}
	return v.customers[row], true
}

func (v *CustomersView) formFields(initial models.Customer) []components.FormField {
	return []components.FormField{
		{Key: "nombre", Label: "Nombre", Initial: initial.Name, Validator: components.RequiredValidator},
		{Key: "apellidos", Label: "Apellidos", Initial: initial.Surname, Validator: components.RequiredValidator},
		{Key: "edad", Label: "Edad", Initial: initialAge(initial.Age), Validator: components.PositiveIntValidator},
		{Key: "email", Label: "Email", Initial: initial.Email, Validator: components.EmailValidator},
		{Key: "telefono", Label: "Teléfono", Initial: initial.Phone, Validator: components.RequiredValidator},
		{Key: "direccion", Label: "Dirección", Initial: initial.Address, Validator: components.RequiredValidator},
		{Key: "comercial", Label: "Comercial", Initial: v.agents.labelFor(initial.AgentID), Options: v.agents.labels},
	}
}

func initialAge(age int) string {
	if age <= 0 {
		return ""
	}
	return fmt.Sprint(age)
}

// payload builds the wire-format body the backend expects, with the agent
// as a nested relation object.
func (v *CustomersView) payload(values map[string]string) map[string]interface{} {
	age, _ := strconv.Atoi(values["edad"])
	data := map[string]interface{}{
		"nombre":    values["nombre"],
		"apellidos": values["apellidos"],
		"edad":      age,
		"email":     values["email"],
		"telefono":  values["telefono"],
		"direccion": values["direccion"],
		"username":  values["email"],
	}
	if agentID := v.agents.id(values["comercial"]); agentID > 0 {
		data["comercial"] = map[string]interface{}{"comercialId": agentID}
	}
	return data
}

func (v *CustomersView) openCreateForm() {
	components.ShowEntityForm(v.window, "Crear Nuevo Cliente", v.formFields(models.Customer{}),
		func(values map[string]string) {
			data := v.payload(values)
			// New accounts get a default credential; the backend hashes
			// and rotates it on first login.
			data["passwordHash"] = "password123"
			if !v.client.CreateCustomer(data) {
				showAPIError(v.window, "crear cliente")
				return
			}
			v.log.Info("CustomersView", "customer created", map[string]interface{}{"name": values["nombre"]})
			v.Reload()
		})
}

func (v *CustomersView) openEditForm() {
	customer, ok := v.selected()
	if !ok {
		showSelectionWarning(v.window, "Selecciona un cliente de la tabla para editar.")
		return
	}

	title := fmt.Sprintf("Editar Cliente ID: %d", customer.ID)
	components.ShowEntityForm(v.window, title, v.formFields(customer),
		func(values map[string]string) {
			data := v.payload(values)
			data["clienteId"] = customer.ID
			if !v.client.UpdateCustomer(customer.ID, data) {
				showAPIError(v.window, "actualizar cliente")
				return
			}
			v.log.Info("CustomersView", "customer updated", map[string]interface{}{"id": customer.ID})
			v.Reload()
		})
}

func (v *CustomersView) deleteSelected() {
	customer, ok := v.selected()
	if !ok {
		showSelectionWarning(v.window, "Selecciona un cliente para eliminar.")
		return
	}

	message := fmt.Sprintf("¿Está seguro de que desea eliminar el cliente con ID %d?", customer.ID)
	confirmDelete(v.window, message, func() {
		if !v.client.DeleteCustomer(customer.ID) {
			showAPIError(v.window, "eliminar cliente")
			return
		}
		v.log.Info("CustomersView", "customer deleted", map[string]interface{}{"id": customer.ID})
		v.Reload()
	})
}

func (v *CustomersView) showSelectedDetails() {
	customer, ok := v.selected()
	if !ok {
		showSelectionWarning(v.window, "Selecciona un cliente de la tabla.")
		return
	}

	showDetails(v.window, "Detalles de Cliente: "+customer.Name, [][2]string{
		{"ID", fmt.Sprint(customer.ID)},
		{"Nombre", customer.Name},
		{"Apellidos", customer.Surname},
		{"Edad", fmt.Sprint(customer.Age)},
		{"Email", customer.Email},
		{"Teléfono", customer.Phone},
		{"Dirección", customer.Address},
		{"Comercial", fmt.Sprint(customer.AgentID)},
	})
}

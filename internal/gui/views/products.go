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

// ProductsView is the product catalog CRUD screen.
type ProductsView struct {
	client *api.Client
	window fyne.Window
	log    logger.Logger

	container *fyne.Container
	table     *components.DataTable
	products  []models.Product
	sections  optionSet
}

func NewProductsView(client *api.Client, window fyne.Window, log logger.Logger) *ProductsView {
	v := &ProductsView{
		client: client,
		window: window,
		log:    log,
	}

	columns := []string{"ID", "Nombre", "Precio Base", "Plazas", "Sección"}
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
		widget.NewButton("Editar", v.openEditForm),
		deleteButton,
	)

	v.container = container.NewBorder(toolbar, actions, nil, nil, v.table.GetContainer())
	v.Reload()
	return v
}

func (v *ProductsView) GetContainer() *fyne.Container {
	return v.container
}

func (v *ProductsView) Reload() {
	products, ok := v.client.Products(0)
	if !ok {
		showConnectionError(v.window, "productos")
		v.table.SetRows(nil)
		return
	}
	v.products = products

	if sections, ok := v.client.Sections(); ok {
		v.sections = sectionOptions(sections)
	}

	rows := make([][]string, len(products))
	for i, p := range products {
		rows[i] = []string{
			fmt.Sprint(p.ID), p.Name,
			fmt.Sprintf("%.2f €", p.BasePrice),
			fmt.Sprint(p.AvailableSlots),
			fmt.Sprint(p.SectionID),
		}
	}
	v.table.SetRows(rows)
}

func (v *ProductsView) selected() (models.Product, bool) {
	row := v.table.SelectedRow()
	if row < 0 || row >= len(v.products) {
		return models.Product{}, false
	}
	return v.products[row], true
}

func (v *ProductsView) formFields(initial models.Product) []components.FormField {
	price := ""
	if initial.BasePrice > 0 {
		price = fmt.Sprintf("%.2f", initial.BasePrice)
	}
	slots := ""
	if initial.AvailableSlots > 0 {
		slots = fmt.Sprint(initial.AvailableSlots)
	}
	return []components.FormField{
		{Key: "nombre", Label: "Nombre", Initial: initial.Name, Validator: components.RequiredValidator},
		{Key: "precio_base", Label: "Precio Base (€)", Initial: price, Validator: components.PositiveAmountValidator},
		{Key: "plazas", Label: "Plazas Disponibles", Initial: slots, Validator: components.PositiveIntValidator},
		{Key: "seccion", Label: "Sección", Initial: v.sections.labelFor(initial.SectionID), Options: v.sections.labels},
	}
}

func (v *ProductsView) payload(values map[string]string) map[string]interface{} {
	price, _ := models.ParseMoney(values["precio_base"])
	slots, _ := strconv.Atoi(values["plazas"])
	data := map[string]interface{}{
		"nombre":            values["nombre"],
		"precioBase":        price,
		"plazasDisponibles": slots,
	}
	if sectionID := v.sections.id(values["seccion"]); sectionID > 0 {
		data["seccion"] = map[string]interface{}{"seccionId": sectionID}
	}
	return data
}

func (v *ProductsView) openCreateForm() {
	components.ShowEntityForm(v.window, "Crear Nuevo Producto", v.formFields(models.Product{}),
		func(values map[string]string) {
			if !v.client.CreateProduct(v.payload(values)) {
				showAPIError(v.window, "crear producto")
				return
			}
			v.log.Info("ProductsView", "product created", map[string]interface{}{"name": values["nombre"]})
			v.Reload()
		})
}

func (v *ProductsView) openEditForm() {
	product, ok := v.selected()
	if !ok {
		showSelectionWarning(v.window, "Selecciona un producto de la tabla para editar.")
		return
	}

	title := fmt.Sprintf("Editar Producto ID: %d", product.ID)
	components.ShowEntityForm(v.window, title, v.formFields(product),
		func(values map[string]string) {
			data := v.payload(values)
			data["productoId"] = product.ID
			if !v.client.UpdateProduct(product.ID, data) {
				showAPIError(v.window, "actualizar producto")
				return
			}
			v.log.Info("ProductsView", "product updated", map[string]interface{}{"id": product.ID})
			v.Reload()
		})
}

func (v *ProductsView) deleteSelected() {
	product, ok := v.selected()
	if !ok {
		showSelectionWarning(v.window, "Selecciona un producto para eliminar.")
		return
	}

	message := fmt.Sprintf("¿Está seguro de que desea eliminar el producto con ID %d?", product.ID)
	confirmDelete(v.window, message, func() {
		if !v.client.DeleteProduct(product.ID) {
			showAPIError(v.window, "eliminar producto")
			return
		}
		v.log.Info("ProductsView", "product deleted", map[string]interface{}{"id": product.ID})
		v.Reload()
	})
}

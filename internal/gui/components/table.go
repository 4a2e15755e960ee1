package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const tableColumnWidth = 140

// DataTable is the shared list widget of the CRUD screens: a header row,
// string cells, and single-row selection reported through a callback.
type DataTable struct {
	container *fyne.Container
	table     *widget.Table
	columns   []string
	rows      [][]string
	selected  int
	onSelect  func(row int)
}

func NewDataTable(columns []string, onSelect func(row int)) *DataTable {
	dt := &DataTable{
		columns:  columns,
		selected: -1,
		onSelect: onSelect,
	}

	dt.table = widget.NewTableWithHeaders(
		func() (int, int) {
			return len(dt.rows), len(dt.columns)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row >= len(dt.rows) || id.Col >= len(dt.columns) {
				label.SetText("")
				return
			}
			label.SetText(dt.rows[id.Row][id.Col])
		},
	)

	dt.table.CreateHeader = func() fyne.CanvasObject {
		label := widget.NewLabel("")
		label.TextStyle = fyne.TextStyle{Bold: true}
		return label
	}
	dt.table.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		label := obj.(*widget.Label)
		if id.Row == -1 && id.Col >= 0 && id.Col < len(dt.columns) {
			label.SetText(dt.columns[id.Col])
		} else {
			label.SetText("")
		}
	}

	dt.table.OnSelected = func(id widget.TableCellID) {
		if id.Row < 0 || id.Row >= len(dt.rows) {
			return
		}
		dt.selected = id.Row
		if dt.onSelect != nil {
			dt.onSelect(id.Row)
		}
	}

	for i := range columns {
		dt.table.SetColumnWidth(i, tableColumnWidth)
	}

	dt.container = container.NewStack(dt.table)
	return dt
}

func (dt *DataTable) GetContainer() *fyne.Container {
	return dt.container
}

// SetRows replaces the table contents and clears the selection.
func (dt *DataTable) SetRows(rows [][]string) {
	dt.rows = rows
	dt.selected = -1
	dt.table.UnselectAll()
	dt.table.Refresh()
}

// SelectedRow returns the selected row index, -1 when nothing is selected.
func (dt *DataTable) SelectedRow() int {
	if dt.selected >= len(dt.rows) {
		return -1
	}
	return dt.selected
}

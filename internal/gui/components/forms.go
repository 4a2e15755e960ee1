package components

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"xtart-crm/internal/models"
)

// FormField describes one input of a create/edit modal. A field with
// Options renders as a select, otherwise as a validated entry.
type FormField struct {
	Key       string
	Label     string
	Initial   string
	Options   []string
	Validator fyne.StringValidator
}

// ShowEntityForm opens a modal create/edit form and hands the entered
// values (keyed by FormField.Key) to onSubmit when confirmed.
func ShowEntityForm(window fyne.Window, title string, fields []FormField, onSubmit func(values map[string]string)) {
	items := make([]*widget.FormItem, 0, len(fields))
	readers := make(map[string]func() string, len(fields))

	for _, field := range fields {
		if len(field.Options) > 0 {
			sel := widget.NewSelect(field.Options, nil)
			if field.Initial != "" {
				sel.SetSelected(field.Initial)
			}
			items = append(items, widget.NewFormItem(field.Label, sel))
			readers[field.Key] = func() string { return sel.Selected }
			continue
		}

		entry := widget.NewEntry()
		entry.SetText(field.Initial)
		entry.Validator = field.Validator
		items = append(items, widget.NewFormItem(field.Label, entry))
		readers[field.Key] = func() string { return entry.Text }
	}

	form := dialog.NewForm(title, "Guardar", "Cancelar", items, func(confirmed bool) {
		if !confirmed {
			return
		}
		values := make(map[string]string, len(readers))
		for key, read := range readers {
			values[key] = strings.TrimSpace(read())
		}
		onSubmit(values)
	}, window)

	form.Resize(fyne.NewSize(420, float32(120+55*len(fields))))
	form.Show()
}

// Per-field synchronous validators shared by the CRUD forms.

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func RequiredValidator(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("campo obligatorio")
	}
	return nil
}

func PositiveIntValidator(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("debe ser un número entero")
	}
	if n <= 0 {
		return errors.New("debe ser un número positivo")
	}
	return nil
}

func PositiveAmountValidator(s string) error {
	amount, ok := models.ParseMoney(s)
	if !ok {
		return errors.New("debe ser un importe válido")
	}
	if amount <= 0 {
		return errors.New("el importe debe ser positivo")
	}
	return nil
}

func EmailValidator(s string) error {
	if !emailPattern.MatchString(strings.TrimSpace(s)) {
		return errors.New("email no válido")
	}
	return nil
}

// OptionalValidator wraps another validator, accepting the empty string.
func OptionalValidator(inner fyne.StringValidator) fyne.StringValidator {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return inner(s)
	}
}

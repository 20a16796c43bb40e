package prompt

import (
	"context"
	"fmt"

	"github.com/goliatone/go-doublefield/pkg/field"
	"github.com/goliatone/go-doublefield/pkg/formatter"
)

// Fill asks one question per form element and returns the submitted values
// keyed like the form. Checkboxes become confirms, textfields inputs and
// fieldsets nested maps. The form's default values are offered as defaults.
func Fill(ctx context.Context, driver Driver, form formatter.Form) (field.Settings, error) {
	if driver == nil {
		return nil, fmt.Errorf("prompt: driver is required")
	}
	return fill(ctx, driver, form, "")
}

func fill(ctx context.Context, driver Driver, form formatter.Form, heading string) (field.Settings, error) {
	values := make(field.Settings, len(form))
	for _, element := range form {
		switch el := element.(type) {
		case formatter.Checkbox:
			answer, err := driver.Confirm(ctx, ConfirmConfig{
				Message: message(heading, el.Title),
				Default: el.DefaultValue,
			})
			if err != nil {
				return nil, err
			}
			values[el.Key] = answer
		case formatter.Textfield:
			answer, err := driver.Input(ctx, InputConfig{
				Message: message(heading, el.Title),
				Default: el.DefaultValue,
			})
			if err != nil {
				return nil, err
			}
			values[el.Key] = answer
		case formatter.Fieldset:
			if err := driver.Info(ctx, el.Title); err != nil {
				return nil, err
			}
			nested, err := fill(ctx, driver, el.Children, el.Title)
			if err != nil {
				return nil, err
			}
			values[el.Key] = map[string]any(nested)
		case nil:
			continue
		default:
			return nil, fmt.Errorf("prompt: unsupported form element %T (%s)", element, element.ElementType())
		}
	}
	return values, nil
}

func message(heading, title string) string {
	if heading == "" {
		return title
	}
	return heading + " - " + title
}

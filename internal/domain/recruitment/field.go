package recruitment

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/tamilsociety/tls-platform/internal/domain/bilingual"
)

type FieldType string

const (
	FieldText        FieldType = "text"
	FieldTextarea    FieldType = "textarea"
	FieldEmail       FieldType = "email"
	FieldPhone       FieldType = "phone"
	FieldNumber      FieldType = "number"
	FieldDate        FieldType = "date"
	FieldSelect      FieldType = "select"
	FieldMultiSelect FieldType = "multiselect"
	FieldCheckbox    FieldType = "checkbox"
	FieldRadio       FieldType = "radio"
	FieldFile        FieldType = "file"
	FieldURL         FieldType = "url"
)

var knownFieldTypes = map[FieldType]bool{
	FieldText: true, FieldTextarea: true, FieldEmail: true, FieldPhone: true,
	FieldNumber: true, FieldDate: true, FieldSelect: true, FieldMultiSelect: true,
	FieldCheckbox: true, FieldRadio: true, FieldFile: true, FieldURL: true,
}

// HasOptions reports whether answers must come from the field's option list.
func (t FieldType) HasOptions() bool {
	return t == FieldSelect || t == FieldMultiSelect || t == FieldRadio
}

type FieldValidation struct {
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
}

// FormField is one question of a recruitment form.
type FormField struct {
	ID          string           `json:"id"`
	Label       bilingual.Text   `json:"label"`
	Type        FieldType        `json:"type"`
	Options     []bilingual.Text `json:"options,omitempty"`
	Required    bool             `json:"required"`
	Order       int              `json:"order"`
	Placeholder *bilingual.Text  `json:"placeholder,omitempty"`
	Validation  *FieldValidation `json:"validation,omitempty"`
}

// DisplayName is used in error messages about the field.
func (f FormField) DisplayName() string {
	if name := f.Label.String(); name != "" {
		return name
	}
	return f.ID
}

// NormalizeFields fills ids, types and order, checks each definition and
// returns the list sorted by order. Missing ids become field_<millis>_<index>.
func NormalizeFields(fields []FormField, now time.Time) ([]FormField, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("at least one field is required")
	}

	out := make([]FormField, len(fields))
	seen := make(map[string]bool, len(fields))
	stamp := now.UnixMilli()

	for i, f := range fields {
		f.ID = strings.TrimSpace(f.ID)
		if f.ID == "" {
			f.ID = fmt.Sprintf("field_%d_%d", stamp, i)
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("duplicate field id '%s'", f.ID)
		}
		seen[f.ID] = true

		if f.Label.IsZero() {
			return nil, fmt.Errorf("field %d: label is required", i+1)
		}
		f.Label = f.Label.Or().Sanitized()

		if f.Type == "" {
			f.Type = FieldText
		}
		f.Type = FieldType(strings.ToLower(string(f.Type)))
		if !knownFieldTypes[f.Type] {
			return nil, fmt.Errorf("field '%s': unknown type '%s'", f.ID, f.Type)
		}
		if f.Type.HasOptions() && len(f.Options) == 0 {
			return nil, fmt.Errorf("field '%s': options are required for type '%s'", f.ID, f.Type)
		}
		for j := range f.Options {
			f.Options[j] = f.Options[j].Or().Sanitized()
		}
		if f.Placeholder != nil {
			p := f.Placeholder.Or().Sanitized()
			f.Placeholder = &p
		}

		if v := f.Validation; v != nil {
			if v.Pattern != "" {
				if _, err := regexp.Compile(v.Pattern); err != nil {
					return nil, fmt.Errorf("field '%s': invalid pattern: %v", f.ID, err)
				}
			}
			if v.MinLength != nil && v.MaxLength != nil && *v.MinLength > *v.MaxLength {
				return nil, fmt.Errorf("field '%s': minLength exceeds maxLength", f.ID)
			}
			if v.Min != nil && v.Max != nil && *v.Min > *v.Max {
				return nil, fmt.Errorf("field '%s': min exceeds max", f.ID)
			}
		}

		if f.Order == 0 {
			f.Order = i
		}
		out[i] = f
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].Order < out[b].Order })
	return out, nil
}

package application

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/tamilsociety/tls-platform/internal/apierrors"
	"github.com/tamilsociety/tls-platform/internal/domain/bilingual"
	"github.com/tamilsociety/tls-platform/internal/domain/recruitment"
	"github.com/tamilsociety/tls-platform/pkg/sanitize"
)

var (
	validate   = validator.New()
	phoneChars = regexp.MustCompile(`^\+?[0-9 ()\-.]{6,20}$`)
)

// isBlank is how a required field counts as unanswered.
func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	}
	return false
}

// checkAnswers enforces required fields in display order, then checks every
// present answer against its field definition.
func checkAnswers(fields []recruitment.FormField, answers map[string]any) error {
	for _, f := range fields {
		if f.Required && isBlank(answers[f.ID]) {
			return apierrors.Validation("Required field '%s' is missing", f.DisplayName())
		}
	}

	for _, f := range fields {
		v, ok := answers[f.ID]
		if !ok || isBlank(v) {
			continue
		}
		if err := checkAnswer(f, v); err != nil {
			return apierrors.Validation("Field '%s' %s", f.DisplayName(), err.Error())
		}
	}
	return nil
}

func checkAnswer(f recruitment.FormField, v any) error {
	switch f.Type {
	case recruitment.FieldEmail:
		s, ok := v.(string)
		if !ok || validate.Var(strings.TrimSpace(s), "email") != nil {
			return fmt.Errorf("must be a valid email address")
		}
	case recruitment.FieldURL:
		s, ok := v.(string)
		if !ok || validate.Var(strings.TrimSpace(s), "url") != nil {
			return fmt.Errorf("must be a valid URL")
		}
	case recruitment.FieldPhone:
		s, ok := v.(string)
		if !ok || !phoneChars.MatchString(strings.TrimSpace(s)) {
			return fmt.Errorf("must be a valid phone number")
		}
	case recruitment.FieldNumber:
		n, ok := toNumber(v)
		if !ok {
			return fmt.Errorf("must be a number")
		}
		if rule := f.Validation; rule != nil {
			if rule.Min != nil && n < *rule.Min {
				return fmt.Errorf("must be at least %v", *rule.Min)
			}
			if rule.Max != nil && n > *rule.Max {
				return fmt.Errorf("must be at most %v", *rule.Max)
			}
		}
		return nil
	case recruitment.FieldDate:
		s, ok := v.(string)
		if !ok || !isDate(s) {
			return fmt.Errorf("must be a date")
		}
	case recruitment.FieldSelect, recruitment.FieldRadio:
		s, ok := v.(string)
		if !ok || !hasOption(f.Options, s) {
			return fmt.Errorf("must be one of the listed options")
		}
	case recruitment.FieldMultiSelect:
		items, ok := v.([]any)
		if !ok {
			return fmt.Errorf("must be a list of options")
		}
		for _, item := range items {
			s, ok := item.(string)
			if !ok || !hasOption(f.Options, s) {
				return fmt.Errorf("must only contain listed options")
			}
		}
		return nil
	case recruitment.FieldCheckbox:
		switch val := v.(type) {
		case bool:
			return nil
		case []any:
			if len(f.Options) == 0 {
				return nil
			}
			for _, item := range val {
				s, ok := item.(string)
				if !ok || !hasOption(f.Options, s) {
					return fmt.Errorf("must only contain listed options")
				}
			}
			return nil
		default:
			return fmt.Errorf("must be checked or a list of options")
		}
	case recruitment.FieldFile:
		return nil
	}

	s, isString := v.(string)
	if !isString {
		if f.Type == recruitment.FieldText || f.Type == recruitment.FieldTextarea {
			return fmt.Errorf("must be text")
		}
		return nil
	}
	return checkTextRules(f.Validation, s)
}

func checkTextRules(rule *recruitment.FieldValidation, s string) error {
	if rule == nil {
		return nil
	}
	n := utf8.RuneCountInString(s)
	if rule.MinLength != nil && n < *rule.MinLength {
		return fmt.Errorf("must be at least %d characters", *rule.MinLength)
	}
	if rule.MaxLength != nil && n > *rule.MaxLength {
		return fmt.Errorf("must be at most %d characters", *rule.MaxLength)
	}
	if rule.Pattern != "" {
		re, err := regexp.Compile(rule.Pattern)
		if err == nil && !re.MatchString(s) {
			return fmt.Errorf("has an invalid format")
		}
	}
	return nil
}

func toNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return n, err == nil
	}
	return 0, false
}

func isDate(s string) bool {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// hasOption matches either language of an option label.
func hasOption(options []bilingual.Text, s string) bool {
	s = strings.TrimSpace(s)
	for _, o := range options {
		if strings.EqualFold(o.En, s) || strings.EqualFold(o.Ta, s) {
			return true
		}
	}
	return false
}

// cleanAnswers strips markup from free-text answers before they are stored.
func cleanAnswers(answers map[string]any) map[string]any {
	out := make(map[string]any, len(answers))
	for k, v := range answers {
		if s, ok := v.(string); ok {
			out[k] = sanitize.Text(s)
			continue
		}
		out[k] = v
	}
	return out
}

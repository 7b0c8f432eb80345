package bilingual

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/tamilsociety/tls-platform/pkg/sanitize"
)

// Text is a value carried in English and Tamil. Stored as two columns when
// embedded in a gorm model.
type Text struct {
	En string `json:"en" gorm:"column:en;type:text"`
	Ta string `json:"ta" gorm:"column:ta;type:text"`
}

// UnmarshalJSON accepts a bare string (used for both languages), an
// {en, ta} object, or null.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Text{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = FromString(s)
		return nil
	}

	if data[0] != '{' {
		return errors.New("bilingual text must be a string or an {en, ta} object")
	}

	var raw struct {
		En string `json:"en"`
		Ta string `json:"ta"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Text{En: raw.En, Ta: raw.Ta}
	return nil
}

func FromString(s string) Text {
	return Text{En: s, Ta: s}
}

// Complete reports whether both languages are present.
func (t Text) Complete() bool {
	return strings.TrimSpace(t.En) != "" && strings.TrimSpace(t.Ta) != ""
}

func (t Text) IsZero() bool {
	return strings.TrimSpace(t.En) == "" && strings.TrimSpace(t.Ta) == ""
}

// Or fills a missing language from the other one.
func (t Text) Or() Text {
	if strings.TrimSpace(t.En) == "" {
		t.En = t.Ta
	}
	if strings.TrimSpace(t.Ta) == "" {
		t.Ta = t.En
	}
	return t
}

func (t Text) Sanitized() Text {
	return Text{En: sanitize.Text(t.En), Ta: sanitize.Text(t.Ta)}
}

// String prefers English.
func (t Text) String() string {
	if t.En != "" {
		return t.En
	}
	return t.Ta
}

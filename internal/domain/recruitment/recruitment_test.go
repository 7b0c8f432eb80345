package recruitment

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tamilsociety/tls-platform/internal/domain/bilingual"
)

func day(d int) *time.Time {
	t := time.Date(2025, time.May, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart *time.Time
		aEnd   *time.Time
		bStart *time.Time
		bEnd   *time.Time
		want   bool
	}{
		{"intersecting", day(1), day(10), day(5), day(15), true},
		{"disjoint after", day(16), day(20), day(5), day(15), false},
		{"touching end", day(10), day(20), day(1), day(10), false},
		{"open new start", nil, day(3), day(5), day(15), false},
		{"open new end", day(14), nil, day(5), day(15), true},
		{"both unbounded", nil, nil, day(5), day(15), true},
		{"existing unbounded", day(1), day(2), nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
		})
	}
}

func TestDisplayStatusPriority(t *testing.T) {
	now := *day(10)
	limit := 1

	f := &Form{IsActive: false, MaxResponses: &limit, CurrentResponses: 1, EndDate: day(1)}
	assert.Equal(t, DisplayInactive, f.DisplayStatusAt(now))

	f.IsActive = true
	assert.Equal(t, DisplayFull, f.DisplayStatusAt(now))

	f.CurrentResponses = 0
	assert.Equal(t, DisplayExpired, f.DisplayStatusAt(now))

	f.EndDate = nil
	f.StartDate = day(20)
	assert.Equal(t, DisplayUpcoming, f.DisplayStatusAt(now))

	f.StartDate = day(2)
	assert.Equal(t, DisplayOpen, f.DisplayStatusAt(now))
}

func TestVocabularies(t *testing.T) {
	st, ok := ParseStatus("Approved")
	require.True(t, ok)
	assert.Equal(t, StatusAccepted, st)
	assert.Equal(t, "approved", st.AdminName())

	st, ok = ParseStatus("shortlisted")
	require.True(t, ok)
	assert.Equal(t, StatusWaitlisted, st)

	st, ok = ParseStatus("submitted")
	require.True(t, ok)
	assert.Equal(t, StatusPending, st)

	_, ok = ParseStatus("archived")
	assert.False(t, ok)

	role, ok := ParseRole("participant")
	require.True(t, ok)
	assert.Equal(t, RoleParticipants, role)
	assert.Equal(t, "participant", role.ApplicantName())
	assert.Equal(t, "crew", RoleCrew.ApplicantName())

	_, ok = ParsePriority("urgent")
	assert.True(t, ok)
	_, ok = ParsePriority("critical")
	assert.False(t, ok)
}

func TestNormalizeFields(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	fields, err := NormalizeFields([]FormField{
		{Label: bilingual.FromString("Name"), Required: true, Order: 2},
		{ID: "email", Label: bilingual.Text{En: "Email"}, Type: "EMAIL", Order: 1},
	}, now)
	require.NoError(t, err)

	require.Len(t, fields, 2)
	assert.Equal(t, "email", fields[0].ID)
	assert.Equal(t, FieldEmail, fields[0].Type)
	assert.Equal(t, "Email", fields[0].Label.Ta)
	assert.Equal(t, "field_1700000000000_0", fields[1].ID)
	assert.Equal(t, FieldText, fields[1].Type)
}

func TestNormalizeFieldsRejects(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name   string
		fields []FormField
		want   string
	}{
		{"empty", nil, "at least one field"},
		{"no label", []FormField{{ID: "a"}}, "label is required"},
		{"unknown type", []FormField{{ID: "a", Label: bilingual.FromString("A"), Type: "slider"}}, "unknown type"},
		{"select without options", []FormField{{ID: "a", Label: bilingual.FromString("A"), Type: FieldSelect}}, "options are required"},
		{"duplicate ids", []FormField{{ID: "a", Label: bilingual.FromString("A")}, {ID: "a", Label: bilingual.FromString("B")}}, "duplicate"},
		{"bad pattern", []FormField{{ID: "a", Label: bilingual.FromString("A"), Validation: &FieldValidation{Pattern: "("}}}, "invalid pattern"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeFields(tt.fields, now)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.want), err.Error())
		})
	}
}

func TestAnswersDecoding(t *testing.T) {
	var fromArray Answers
	require.NoError(t, json.Unmarshal([]byte(`[{"key":"name","value":"A"},{"id":"age","value":3},{"value":"dropped"}]`), &fromArray))
	assert.Equal(t, Answers{"name": "A", "age": float64(3)}, fromArray)

	var fromObject Answers
	require.NoError(t, json.Unmarshal([]byte(`{"name":"B"}`), &fromObject))
	assert.Equal(t, "B", fromObject["name"])

	var bad Answers
	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &bad))
}

func TestUpdateDTOPresence(t *testing.T) {
	var dto UpdateFormDTO
	require.NoError(t, json.Unmarshal([]byte(`{"id":"f1","projectItemId":null,"endDate":"2025-05-10"}`), &dto))

	assert.True(t, dto.ProjectItemID.Set)
	assert.Nil(t, dto.ProjectItemID.Value)
	assert.False(t, dto.StartDate.Set)
	require.True(t, dto.EndDate.Set)
	assert.Equal(t, *day(10), dto.EndDate.Value.Time)
	assert.False(t, dto.MaxResponses.Set)
}

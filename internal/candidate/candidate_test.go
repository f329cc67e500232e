package candidate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func TestAgeAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		dob    *Date
		want   int
		wantOK bool
	}{
		{name: "birthday passed", dob: NewDate(2000, time.January, 1), want: 25, wantOK: true},
		{name: "birthday today", dob: NewDate(2000, time.March, 15), want: 25, wantOK: true},
		{name: "birthday tomorrow", dob: NewDate(2000, time.March, 16), want: 24, wantOK: true},
		{name: "unknown", dob: nil, wantOK: false},
		{name: "in the future", dob: NewDate(2030, time.January, 1), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := (&Attributes{DateOfBirth: tt.dob}).AgeAt(now)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCurrentAffiliation(t *testing.T) {
	a := &Attributes{Clubs: []Affiliation{
		{Club: "Old FC", Left: NewDate(2022, time.June, 30)},
		{Club: "Now FC", ContractUntil: NewDate(2025, time.June, 30)},
		{Club: "Loan FC"},
	}}

	current := a.CurrentAffiliation()
	require.NotNil(t, current)
	assert.Equal(t, "Now FC", current.Club)

	assert.Nil(t, (&Attributes{}).CurrentAffiliation())

	var nilAttrs *Attributes
	assert.Nil(t, nilAttrs.CurrentAffiliation())
}

func TestMonthsToContractEnd(t *testing.T) {
	a := &Attributes{Clubs: []Affiliation{{Club: "Now FC", ContractUntil: NewDate(2025, time.June, 13)}}}

	months, ok := a.MonthsToContractEnd(now)
	require.True(t, ok)
	assert.InDelta(t, 3.0, months, 0.001)

	_, ok = (&Attributes{Clubs: []Affiliation{{Club: "Now FC"}}}).MonthsToContractEnd(now)
	assert.False(t, ok)
}

func TestMonthsToContractEndIgnoresTimeOfDay(t *testing.T) {
	a := &Attributes{Clubs: []Affiliation{{Club: "Now FC", ContractUntil: NewDate(2025, time.March, 15)}}}

	for _, at := range []time.Time{
		time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 15, 23, 59, 0, 0, time.UTC),
		time.Date(2025, time.March, 15, 9, 30, 0, 0, time.FixedZone("CET", 3600)),
	} {
		months, ok := a.MonthsToContractEnd(at)
		require.True(t, ok)
		assert.Zero(t, months, at.String())
	}
}

func TestToday(t *testing.T) {
	got := Today(time.Date(2025, time.March, 15, 0, 30, 0, 0, time.FixedZone("EST", -5*3600)))
	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestDateJSON(t *testing.T) {
	var a Attributes
	require.NoError(t, json.Unmarshal([]byte(`{
		"date_of_birth": "1999-07-04T00:00:00Z",
		"clubs": [{"club": "Now FC", "joined": "2021-07-01", "left": null}]
	}`), &a))

	require.NotNil(t, a.DateOfBirth)
	assert.Equal(t, "1999-07-04", a.DateOfBirth.String())
	assert.Nil(t, a.Clubs[0].Left)
	assert.Equal(t, "2021-07-01", a.Clubs[0].Joined.String())

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"date_of_birth": "1999-07-04",
		"clubs": [{"club": "Now FC", "joined": "2021-07-01"}]
	}`, string(out))

	_, err = ParseDate("04/07/1999")
	assert.Error(t, err)
}

func TestValidateDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{name: "single", doc: `{"name": "A", "position": "ST", "market_value": 1000}`},
		{name: "array", doc: `[{"name": "A"}, {"name": "B", "date_of_birth": "2001-02-03"}]`},
		{name: "empty object", doc: `{}`},
		{name: "negative value", doc: `{"market_value": -1}`, wantErr: true},
		{name: "bad date", doc: `{"date_of_birth": "yesterday"}`, wantErr: true},
		{name: "wrong type", doc: `{"position": 9}`, wantErr: true},
		{name: "scalar document", doc: `"player"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateDocument([]byte(tt.doc))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidDocument)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	single := filepath.Join(dir, "single.json")
	require.NoError(t, os.WriteFile(single, []byte(`{"name": "Solo", "market_value": 250000}`), 0o600))
	list, err := LoadFile(single)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Solo", list[0].Label())
	require.NotNil(t, list[0].MarketValue)
	assert.Equal(t, 250000.0, *list[0].MarketValue)

	many := filepath.Join(dir, "many.json")
	require.NoError(t, os.WriteFile(many, []byte(`[{"id": "p1"}, {"id": "p2", "nationality": "Brazil"}]`), 0o600))
	list, err = LoadFile(many)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p1", list[0].Label())
	assert.Equal(t, "Brazil", list[1].Nationality)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"market_value": "a lot"}`), 0o600))
	_, err = LoadFile(bad)
	assert.ErrorIs(t, err, ErrInvalidDocument)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

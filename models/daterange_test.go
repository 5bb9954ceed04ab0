package models_test

import (
	"testing"
	"time"

	"hotel-frontdesk/models"

	"github.com/stretchr/testify/assert"
)

func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDateRange_Conflicts(t *testing.T) {
	cases := []struct {
		name      string
		existing  models.DateRange
		candidate models.DateRange
		want      bool
	}{
		{"overlapping", models.Definite(d("2024-01-10"), d("2024-01-15")), models.Definite(d("2024-01-14"), d("2024-01-16")), true},
		{"contained", models.Definite(d("2024-01-10"), d("2024-01-15")), models.Definite(d("2024-01-11"), d("2024-01-12")), true},
		{"back to back after", models.Definite(d("2024-01-10"), d("2024-01-15")), models.Definite(d("2024-01-15"), d("2024-01-18")), false},
		{"back to back before", models.Definite(d("2024-01-10"), d("2024-01-15")), models.Definite(d("2024-01-05"), d("2024-01-10")), false},
		{"open existing, earlier candidate", models.OpenEnded(d("2024-01-10")), models.Definite(d("2024-01-01"), d("2024-01-03")), true},
		{"open existing, same start", models.OpenEnded(d("2024-01-10")), models.Definite(d("2024-01-10"), d("2024-01-11")), true},
		{"open existing, later candidate", models.OpenEnded(d("2024-01-10")), models.Definite(d("2024-01-20"), d("2024-01-21")), false},
		{"open candidate before end", models.Definite(d("2024-01-10"), d("2024-01-15")), models.OpenEnded(d("2024-01-12")), true},
		{"open candidate at end", models.Definite(d("2024-01-10"), d("2024-01-15")), models.OpenEnded(d("2024-01-15")), false},
		{"both open", models.OpenEnded(d("2024-01-10")), models.OpenEnded(d("2024-01-09")), true},
		{"both open, later candidate", models.OpenEnded(d("2024-01-10")), models.OpenEnded(d("2024-01-20")), true},
		{"both open, same start", models.OpenEnded(d("2024-01-10")), models.OpenEnded(d("2024-01-10")), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.existing.Conflicts(tc.candidate))
		})
	}
}

func TestDateRange_Nights(t *testing.T) {
	n, ok := models.Definite(d("2024-02-27"), d("2024-03-02")).Nights()
	assert.True(t, ok)
	assert.Equal(t, 4, n, "leap day counts")

	_, ok = models.OpenEnded(d("2024-02-27")).Nights()
	assert.False(t, ok)
}

func TestDateRange_TruncatesToCalendarDay(t *testing.T) {
	late := time.Date(2024, 1, 10, 23, 30, 0, 0, time.UTC)
	r := models.RangeOf(late, nil)
	assert.True(t, r.IsOpenEnded())
	assert.Equal(t, d("2024-01-10"), r.Start())
	assert.Nil(t, r.EndPtr())

	out := d("2024-01-12")
	r = models.RangeOf(late, &out)
	end, ok := r.End()
	assert.True(t, ok)
	assert.Equal(t, out, end)
}

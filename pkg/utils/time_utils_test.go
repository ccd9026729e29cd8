package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNights(t *testing.T) {
	cases := []struct {
		in, out string
		want    int
	}{
		{"2026-10-01", "2026-10-04", 3},
		{"2026-10-01", "2026-10-01", 1},
		{"2026-10-05", "2026-10-01", 1},
		{"", "2026-10-01", 1},
		{"not a date", "2026-10-03", 1},
		{"2026-10-01T12:00:00+05:30", "2026-10-03T11:00:00+05:30", 2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Nights(c.in, c.out), "%s -> %s", c.in, c.out)
	}
}

func TestParseDateIST(t *testing.T) {
	ts, ok := ParseDateIST("2026-10-19")
	assert.True(t, ok)
	assert.Equal(t, "2026-10-19T00:00:00+05:30", FormatRFC3339IST(ts))

	_, ok = ParseDateIST("  ")
	assert.False(t, ok)
}

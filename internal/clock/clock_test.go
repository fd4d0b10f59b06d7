package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed_TodayUsesInstantLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 22:30 UTC on the 18th is already the 19th at UTC+3.
	at := time.Date(2026, 10, 18, 22, 30, 0, 0, time.UTC).In(loc)

	assert.Equal(t, "2026-10-19", Fixed{At: at}.Today())
}

func TestSystem_DefaultsToLocal(t *testing.T) {
	c := NewSystem(nil)
	assert.Equal(t, time.Local, c.Location)
	assert.Len(t, c.Today(), len(DateLayout))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "valid", in: "2026-10-19", want: "2026-10-19"},
		{name: "leap day", in: "2024-02-29", want: "2024-02-29"},
		{name: "not a leap year", in: "2025-02-29", wantErr: true},
		{name: "datetime rejected", in: "2026-10-19T10:00:00", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "garbage", in: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2026-03-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", got)

	_, err = AddDays("bad", 1)
	assert.Error(t, err)
}

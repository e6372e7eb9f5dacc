package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in      string
		want    Month
		wantErr bool
	}{
		{in: "January", want: January},
		{in: "December", want: December},
		{in: "Jun", wantErr: true},
		{in: "june", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMonth(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMonth() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMonth() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMonth_Ordinal(t *testing.T) {
	for i, m := range Months {
		assert.Equal(t, i, m.Ordinal())
	}
	assert.Equal(t, -1, Month("Smarch").Ordinal())

	// calendar order, not alphabetical
	assert.True(t, April.Ordinal() > March.Ordinal())
	assert.True(t, August.Ordinal() < December.Ordinal())
}

func TestMonth_Between(t *testing.T) {
	assert.True(t, June.Between(June, June))
	assert.True(t, February.Between(January, March))
	assert.False(t, April.Between(January, March))
	assert.False(t, Month("Jun").Between(January, December))
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, []Month{November, December}, MonthsBetween(November, December))
	assert.Equal(t, []Month{January, February}, MonthsBetween(January, February))
	assert.Equal(t, Months, MonthsBetween(January, December))
	assert.Empty(t, MonthsBetween(March, February))
}

func TestMonthOf(t *testing.T) {
	assert.Equal(t, September, MonthOf(time.Date(2023, time.September, 4, 0, 0, 0, 0, time.UTC)))
}

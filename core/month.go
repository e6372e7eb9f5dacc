package core

import (
	"fmt"
	"time"
)

// Month is a calendar month persisted by its English name.
// Months are always compared by their calendar ordinal, never alphabetically.
type Month string

const (
	January   Month = "January"
	February  Month = "February"
	March     Month = "March"
	April     Month = "April"
	May       Month = "May"
	June      Month = "June"
	July      Month = "July"
	August    Month = "August"
	September Month = "September"
	October   Month = "October"
	November  Month = "November"
	December  Month = "December"
)

// Months lists every Month in calendar order.
var Months = []Month{
	January, February, March, April, May, June,
	July, August, September, October, November, December,
}

var monthOrdinals = func() map[Month]int {
	m := make(map[Month]int, len(Months))
	for i, month := range Months {
		m[month] = i
	}
	return m
}()

// ParseMonth returns the Month named s. Names are matched exactly: "Jun" or "june" are rejected.
func ParseMonth(s string) (Month, error) {
	m := Month(s)
	if !m.Valid() {
		return "", fmt.Errorf("invalid month %q", s)
	}
	return m, nil
}

// MonthOf returns the Month of t.
func MonthOf(t time.Time) Month {
	return Months[t.Month()-1]
}

func (m Month) Valid() bool {
	_, ok := monthOrdinals[m]
	return ok
}

// Ordinal returns the calendar position of m (January=0 ... December=11), or -1 for an unknown month.
func (m Month) Ordinal() int {
	if i, ok := monthOrdinals[m]; ok {
		return i
	}
	return -1
}

// Between reports whether m lies in the inclusive calendar interval [from, to].
func (m Month) Between(from, to Month) bool {
	ord := m.Ordinal()
	return ord >= 0 && ord >= from.Ordinal() && ord <= to.Ordinal()
}

func (m Month) String() string { return string(m) }

// MonthsBetween returns the months of the inclusive interval [from, to] in calendar order.
// The result is empty when from comes after to.
func MonthsBetween(from, to Month) []Month {
	start, end := from.Ordinal(), to.Ordinal()
	if start < 0 || end < 0 || start > end {
		return []Month{}
	}
	out := make([]Month, 0, end-start+1)
	out = append(out, Months[start:end+1]...)
	return out
}

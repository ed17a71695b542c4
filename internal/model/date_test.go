package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2026, time.February, 28), d)

	_, err = ParseDate("28-02-2026")
	assert.Error(t, err)
	_, err = ParseDate("2026-13-01")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateComparisons(t *testing.T) {
	a := NewDate(2026, time.January, 31)
	b := NewDate(2026, time.February, 1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(NewDate(2026, time.January, 31)))
}

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	// 23:59 local is still the same calendar day.
	late := time.Date(2026, time.March, 3, 23, 59, 59, 0, time.Local)
	assert.Equal(t, NewDate(2026, time.March, 3), DateOf(late))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.July, 9)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-07-09"`, string(b))

	var got Date
	require.NoError(t, json.Unmarshal(b, &got))
	assert.True(t, got.Equal(d))

	var zero Date
	require.NoError(t, json.Unmarshal([]byte("null"), &zero))
	assert.True(t, zero.IsZero())
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2026, time.May, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, NewDate(2026, time.May, 5), d)

	require.NoError(t, d.Scan("2026-06-06"))
	assert.Equal(t, NewDate(2026, time.June, 6), d)

	require.NoError(t, d.Scan([]byte("2026-07-07")))
	assert.Equal(t, NewDate(2026, time.July, 7), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(123))
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2026, time.April, 4).Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.April, 4, 0, 0, 0, 0, time.UTC), v)

	v, err = (Date{}).Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

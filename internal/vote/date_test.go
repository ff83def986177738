package vote

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 5}, d)
	assert.Equal(t, "2024-03-05", d.String())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "2024-13-01", "05.03.2024", "2024-03-05T10:00:00Z"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseDate(s)
			assert.Error(t, err)
		})
	}
}

func TestDateOf_UsesLocation(t *testing.T) {
	berlin := time.FixedZone("CET", 2*60*60)
	// 23:30 UTC is already the next day two hours east.
	ts := time.Date(2024, time.June, 1, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-06-01", DateOf(ts).String())
	assert.Equal(t, "2024-06-02", DateOf(ts.In(berlin)).String())
}

func TestDate_AddDaysAndBefore(t *testing.T) {
	d := Date{Year: 2024, Month: time.February, Day: 28}

	next := d.AddDays(1)
	assert.Equal(t, "2024-02-29", next.String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, "2024-02-27", d.AddDays(-1).String())

	assert.True(t, d.Before(next))
	assert.False(t, next.Before(d))
	assert.False(t, d.Before(d))
	assert.True(t, next.Equal(d.AddDays(1)))
	assert.False(t, next.Equal(d))
}

func TestDate_IsZero(t *testing.T) {
	assert.True(t, Date{}.IsZero())
	assert.False(t, Date{Year: 2024, Month: time.January, Day: 1}.IsZero())
}

func TestDate_JSON(t *testing.T) {
	d := Date{Year: 2024, Month: time.July, Day: 9}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-07-09"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

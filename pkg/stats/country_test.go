package stats

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPopulation(name string, value float64) *Population {
	return &Population{Source: "test", Regions: Regions{{Name: name, Value: value}}}
}

func dailyRecords(country string, confirmed, deaths []float64) []Record {
	start := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	rs := make([]Record, len(confirmed))
	for i := range confirmed {
		rs[i] = Record{Date: start.AddDate(0, 0, i), Country: country, Confirmed: confirmed[i]}
		if deaths != nil {
			rs[i].Deaths = deaths[i]
		}
	}
	return rs
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestCalculateCountryJumpAfterRecoveryWindow(t *testing.T) {
	// 15 days at 100, then one day at 150. The lag applies from index 15,
	// so the jump has to land there to show up as 50 currently infected.
	confirmed := append(repeat(100, 15), 150)
	cs, err := CalculateCountry("Germany", dailyRecords("Germany", confirmed, nil),
		testPopulation("Germany", 100), DefaultCountryParams())
	require.NoError(t, err)
	require.Equal(t, 16, cs.Len())

	assert.Equal(t, 50.0, cs.CurrentlyInfected[15])
	assert.Equal(t, 150000.0, cs.Confirmed100k[15])
	// Before the recovery window everything still counts as infected.
	assert.Equal(t, 100.0, cs.CurrentlyInfected[14])
	assert.Equal(t, 100000.0, cs.CurrentlyInfected100k[0])
}

func TestCalculateCountryCurrentlyInfected(t *testing.T) {
	confirmed := []float64{
		1, 2, 4, 8, 16, 32, 64, 100, 120, 140,
		150, 150, 150, 150, 150, 120, 150, 300, 310, 320,
	}
	cs, err := CalculateCountry("X", dailyRecords("X", confirmed, nil), testPopulation("X", 1000), DefaultCountryParams())
	require.NoError(t, err)

	for i := range confirmed {
		assert.GreaterOrEqual(t, cs.CurrentlyInfected[i], 0.0, "index %d", i)
		if i >= 15 {
			assert.Equal(t, max(0, confirmed[i]-confirmed[i-15]), cs.CurrentlyInfected[i], "index %d", i)
		} else {
			assert.Equal(t, confirmed[i], cs.CurrentlyInfected[i], "index %d", i)
		}
	}
	// A downward revision is clamped instead of going negative.
	assert.Equal(t, 119.0, cs.CurrentlyInfected[15])
}

func TestCalculateCountryDeathWindow(t *testing.T) {
	deaths := []float64{
		0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
		10, 11, 12, 13, 14, 10, 5, 20, 40, 40,
	}
	cs, err := CalculateCountry("X", dailyRecords("X", repeat(100, len(deaths)), deaths),
		testPopulation("X", 100000), DefaultCountryParams())
	require.NoError(t, err)

	for i := range deaths {
		assert.GreaterOrEqual(t, cs.Deaths100k14d[i], 0.0, "index %d", i)
	}
	assert.Equal(t, 13.0, cs.Deaths100k14d[13])
	assert.Equal(t, 14.0, cs.Deaths100k14d[14])
	assert.Equal(t, 9.0, cs.Deaths100k14d[15])
	assert.Equal(t, 3.0, cs.Deaths100k14d[16])
	assert.Equal(t, 17.0, cs.Deaths100k14d[17])
}

func TestCalculateCountryEstInfected(t *testing.T) {
	confirmed := append(repeat(100, 15), 200)
	deaths := append(repeat(0, 15), 3.14)
	cs, err := CalculateCountry("X", dailyRecords("X", confirmed, deaths), testPopulation("X", 1000), DefaultCountryParams())
	require.NoError(t, err)

	// No one presumed recovered yet: guarded to zero.
	for i := 0; i < 15; i++ {
		assert.Equal(t, 0.0, cs.EstInfected100k[i])
	}
	// recovered = 200 - 100 = 100; 3.14/0.0157*200/100 = 400 per 1000 residents.
	assert.InDelta(t, 40000.0, cs.EstInfected100k[15], 1e-6)
}

func TestCalculateCountryPopulationScaling(t *testing.T) {
	confirmed := []float64{10, 20, 30, 40}
	deaths := []float64{1, 2, 3, 4}
	full, err := CalculateCountry("X", dailyRecords("X", confirmed, deaths), testPopulation("X", 5000), DefaultCountryParams())
	require.NoError(t, err)
	half, err := CalculateCountry("X", dailyRecords("X", confirmed, deaths), testPopulation("X", 2500), DefaultCountryParams())
	require.NoError(t, err)

	for _, m := range []Metric{Confirmed100k, Deaths100k, CurrentlyInfected100k, EstInfected100k, Deaths100k14d} {
		for i := range confirmed {
			assert.InDelta(t, 2*full.Values(m)[i], half.Values(m)[i], 1e-9, "%s[%d]", m, i)
		}
	}
	for _, m := range []Metric{Confirmed, Deaths, CurrentlyInfected} {
		assert.Equal(t, full.Values(m), half.Values(m), m.String())
	}
}

func TestCalculateCountrySortsRecords(t *testing.T) {
	rs := dailyRecords("X", []float64{1, 2, 3}, nil)
	rs[0], rs[2] = rs[2], rs[0]

	cs, err := CalculateCountry("X", rs, testPopulation("X", 10), DefaultCountryParams())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, cs.Confirmed)
	assert.True(t, cs.Dates[0].Before(cs.Dates[1]))
	// The caller's slice is left untouched.
	assert.Equal(t, 3.0, rs[0].Confirmed)
}

func TestCalculateCountryErrors(t *testing.T) {
	rs := dailyRecords("X", []float64{1}, nil)

	t.Run("unknown country", func(t *testing.T) {
		_, err := CalculateCountry("Atlantis", rs, CountryPopulation(), DefaultCountryParams())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownCountry))
	})

	t.Run("zero population", func(t *testing.T) {
		_, err := CalculateCountry("X", rs, testPopulation("X", 0), DefaultCountryParams())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidPopulation))
	})

	t.Run("invalid params", func(t *testing.T) {
		p := DefaultCountryParams()
		p.Lethality = 0
		_, err := CalculateCountry("X", rs, testPopulation("X", 10), p)
		assert.Error(t, err)

		p = DefaultCountryParams()
		p.RecoveryDays = 0
		_, err = CalculateCountry("X", rs, testPopulation("X", 10), p)
		assert.Error(t, err)
	})
}

func TestCountryPopulation(t *testing.T) {
	pop := CountryPopulation()
	for _, c := range []string{"Germany", "Korea, South", "US", "United Kingdom", "Cote d'Ivoire"} {
		v, err := pop.Residents(c)
		require.NoError(t, err, c)
		assert.Greater(t, v, 0.0)
	}
	v, err := pop.Residents("Germany")
	require.NoError(t, err)
	assert.Equal(t, 83122889.0, v)

	// Tables are fresh copies.
	pop.Regions.Find("Germany").Value = 1
	v, err = CountryPopulation().Residents("Germany")
	require.NoError(t, err)
	assert.Equal(t, 83122889.0, v)
}

package pricing

import (
	"testing"
	"time"

	"camperrent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFallback = FallbackRates{
	Name:              "Temporada Baja",
	PriceLessThanWeek: 95,
	PriceOneWeek:      85,
	PriceTwoWeeks:     75,
	PriceThreeWeeks:   65,
	MinDays:           2,
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func highSeason() *domain.Season {
	return &domain.Season{
		ID:                "s-high",
		Name:              "Temporada Alta",
		StartDate:         date(2026, time.July, 1),
		EndDate:           date(2026, time.August, 31),
		PriceLessThanWeek: 145,
		PriceOneWeek:      135,
		PriceTwoWeeks:     125,
		PriceThreeWeeks:   115,
		MinDays:           5,
		IsActive:          true,
	}
}

func TestQuote_TwoDaysBillThree(t *testing.T) {
	e := NewEngine(testFallback)

	q := e.Quote(date(2026, time.March, 10), 2, nil)

	assert.Equal(t, 2, q.Days)
	assert.Equal(t, 3, q.PricingDays)
	assert.True(t, q.HasTwoDayPricing)
	assert.Equal(t, 285.0, q.Total) // 3 * 95
}

func TestQuote_WeekTier(t *testing.T) {
	e := NewEngine(testFallback)

	q := e.Quote(date(2026, time.March, 10), 7, nil)

	assert.Equal(t, 7, q.PricingDays)
	assert.Equal(t, 595.0, q.Total) // 7 * 85
	assert.Equal(t, 85.0, q.AvgPerDay)
	assert.Equal(t, 665.0, q.BaseTotal) // 7 * 95
	assert.True(t, q.HasDurationDiscount)
	assert.InDelta(t, 10.53, q.DurationDiscountPct, 0.01)
}

func TestQuote_TierBoundaries(t *testing.T) {
	e := NewEngine(testFallback)

	assert.Equal(t, 95.0, e.Quote(date(2026, time.March, 1), 6, nil).AvgPerDay)
	assert.Equal(t, 85.0, e.Quote(date(2026, time.March, 1), 7, nil).AvgPerDay)
	assert.Equal(t, 75.0, e.Quote(date(2026, time.March, 1), 14, nil).AvgPerDay)
	assert.Equal(t, 65.0, e.Quote(date(2026, time.March, 1), 21, nil).AvgPerDay)
}

func TestQuote_CrossSeasonStay(t *testing.T) {
	e := NewEngine(testFallback)
	seasons := []*domain.Season{highSeason()}

	// June 28 pickup, 7 days: 3 fallback days then 4 high-season days.
	// Week tier applies to both seasons because the whole stay is 7 days.
	q := e.Quote(date(2026, time.June, 28), 7, seasons)

	require.Len(t, q.Breakdown, 2)
	assert.Equal(t, "Temporada Baja", q.Breakdown[0].Season)
	assert.Equal(t, 3, q.Breakdown[0].Days)
	assert.Equal(t, 85.0, q.Breakdown[0].Rate)
	assert.Equal(t, "Temporada Alta", q.Breakdown[1].Season)
	assert.Equal(t, 4, q.Breakdown[1].Days)
	assert.Equal(t, 135.0, q.Breakdown[1].Rate)

	assert.Equal(t, 3*85.0+4*135.0, q.Total)
	assert.Equal(t, "Temporada Alta", q.DominantSeason)
	assert.Equal(t, 5, q.MinDays)
}

func TestQuote_MinDaysFollowsDominantSeason(t *testing.T) {
	e := NewEngine(testFallback)
	seasons := []*domain.Season{highSeason()}

	// June 27 pickup, 5 days: four fallback days and a single high-season
	// day. The brush with the stricter season must not raise the advisory
	// minimum; it belongs to the dominant season.
	q := e.Quote(date(2026, time.June, 27), 5, seasons)

	assert.Equal(t, "Temporada Baja", q.DominantSeason)
	assert.Equal(t, 2, q.MinDays)
}

func TestQuote_SeasonBoundariesInclusive(t *testing.T) {
	e := NewEngine(testFallback)
	seasons := []*domain.Season{highSeason()}

	first := e.Quote(date(2026, time.July, 1), 1, seasons)
	assert.Equal(t, "Temporada Alta", first.DominantSeason)

	last := e.Quote(date(2026, time.August, 31), 1, seasons)
	assert.Equal(t, "Temporada Alta", last.DominantSeason)

	after := e.Quote(date(2026, time.September, 1), 1, seasons)
	assert.Equal(t, "Temporada Baja", after.DominantSeason)
}

func TestQuote_InactiveSeasonIgnored(t *testing.T) {
	e := NewEngine(testFallback)
	s := highSeason()
	s.IsActive = false

	q := e.Quote(date(2026, time.July, 10), 3, []*domain.Season{s})
	assert.Equal(t, "Temporada Baja", q.DominantSeason)
	assert.Equal(t, 285.0, q.Total)
}

func TestQuote_Deterministic(t *testing.T) {
	e := NewEngine(testFallback)
	seasons := []*domain.Season{highSeason()}

	a := e.Quote(date(2026, time.June, 28), 10, seasons)
	b := e.Quote(date(2026, time.June, 28), 10, seasons)
	assert.Equal(t, a, b)
}

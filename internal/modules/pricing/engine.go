package pricing

import (
	"math"
	"time"

	"camperrent/internal/domain"
)

// FallbackRates price any day not covered by a configured season. They are
// injected at startup from configuration.
type FallbackRates struct {
	Name              string
	PriceLessThanWeek float64
	PriceOneWeek      float64
	PriceTwoWeeks     float64
	PriceThreeWeeks   float64
	MinDays           int
}

type BreakdownEntry struct {
	Season   string  `json:"season"`
	Days     int     `json:"days"`
	Rate     float64 `json:"rate"`
	Subtotal float64 `json:"subtotal"`
}

type Quote struct {
	Days             int  `json:"days"`
	PricingDays      int  `json:"pricing_days"`
	HasTwoDayPricing bool `json:"has_two_day_pricing"`

	Total     float64 `json:"total"`
	AvgPerDay float64 `json:"avg_per_day"`

	// BaseTotal is what the stay would cost with no duration tiers, every
	// day at its season's short-stay rate.
	BaseTotal           float64 `json:"base_total"`
	BaseAvgPerDay       float64 `json:"base_avg_per_day"`
	DurationDiscountPct float64 `json:"duration_discount_pct"`
	HasDurationDiscount bool    `json:"has_duration_discount"`

	Breakdown      []BreakdownEntry `json:"breakdown"`
	DominantSeason string           `json:"dominant_season"`

	// MinDays is the dominant season's minimum stay. Informational only,
	// never enforced.
	MinDays int `json:"min_days"`
}

type Engine struct {
	fallback FallbackRates
}

func NewEngine(fallback FallbackRates) *Engine {
	return &Engine{fallback: fallback}
}

// Quote walks the stay one calendar day at a time. Each day is priced at
// its own season's rate, but the rate tier is chosen once, from the whole
// stay's billed length. A two-day rental bills three days.
func (e *Engine) Quote(pickupDate time.Time, days int, seasons []*domain.Season) Quote {
	q := Quote{Days: days, PricingDays: days}
	if days == 2 {
		q.PricingDays = 3
		q.HasTwoDayPricing = true
	}

	start := time.Date(pickupDate.Year(), pickupDate.Month(), pickupDate.Day(), 0, 0, 0, 0, time.UTC)

	type bucket struct {
		name    string
		days    int
		rate    float64
		minDays int
	}
	var buckets []bucket

	for i := 0; i < q.PricingDays; i++ {
		d := start.AddDate(0, 0, i)

		name := e.fallback.Name
		rate := tierRate(e.fallback.PriceLessThanWeek, e.fallback.PriceOneWeek, e.fallback.PriceTwoWeeks, e.fallback.PriceThreeWeeks, q.PricingDays)
		base := e.fallback.PriceLessThanWeek
		minDays := e.fallback.MinDays

		for _, s := range seasons {
			if !s.IsActive || !s.Contains(d) {
				continue
			}
			name = s.Name
			rate = tierRate(s.PriceLessThanWeek, s.PriceOneWeek, s.PriceTwoWeeks, s.PriceThreeWeeks, q.PricingDays)
			base = s.PriceLessThanWeek
			minDays = s.MinDays
			break
		}

		q.Total += rate
		q.BaseTotal += base

		found := false
		for j := range buckets {
			if buckets[j].name == name {
				buckets[j].days++
				found = true
				break
			}
		}
		if !found {
			buckets = append(buckets, bucket{name: name, days: 1, rate: rate, minDays: minDays})
		}
	}

	dominant := 0
	for i, b := range buckets {
		q.Breakdown = append(q.Breakdown, BreakdownEntry{
			Season:   b.name,
			Days:     b.days,
			Rate:     b.rate,
			Subtotal: roundCents(float64(b.days) * b.rate),
		})
		if b.days > buckets[dominant].days {
			dominant = i
		}
	}
	if len(buckets) > 0 {
		q.DominantSeason = buckets[dominant].name
		q.MinDays = buckets[dominant].minDays
	}

	q.Total = roundCents(q.Total)
	q.BaseTotal = roundCents(q.BaseTotal)
	q.AvgPerDay = roundCents(q.Total / float64(q.PricingDays))
	q.BaseAvgPerDay = roundCents(q.BaseTotal / float64(q.PricingDays))
	if q.BaseTotal > q.Total {
		q.HasDurationDiscount = true
		q.DurationDiscountPct = roundCents((1 - q.Total/q.BaseTotal) * 100)
	}
	return q
}

// tierRate picks the daily rate by the billed length of the whole stay.
func tierRate(lessThanWeek, oneWeek, twoWeeks, threeWeeks float64, pricingDays int) float64 {
	switch {
	case pricingDays >= 21:
		return threeWeeks
	case pricingDays >= 14:
		return twoWeeks
	case pricingDays >= 7:
		return oneWeek
	default:
		return lessThanWeek
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

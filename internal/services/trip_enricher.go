package services

import (
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"tripsync/internal/models/request_models"
	"tripsync/internal/models/response_models"
	"tripsync/pkg/utils"
)

const (
	defaultTripNights          = 3
	defaultTransportPerNight   = 30.0
	defaultActivitiesPerNight  = 50.0
	defaultTaxesFeesRate       = 0.12
	estimatorDataSource        = "tripsync price estimator"
	defaultAssumptionsEstimate = "Flight and hotel prices are estimates for one traveler in USD based on route distance, destination price level and accommodation class."
)

type TripEnricherInterface interface {
	Enrich(candidates []response_models.TripCandidate, req request_models.PreferenceRequest) []response_models.TripCandidate
}

// TripEnricher settles every candidate's cost breakdown and ranks the list.
// With repricing on, flight and hotel costs always come from the estimator;
// with it off, model-provided costs are kept and only derived fields are
// recomputed.
type TripEnricher struct {
	estimator PriceEstimatorInterface
	reprice   bool
	logger    *zap.Logger
}

func NewTripEnricher(estimator PriceEstimatorInterface, repriceWithEstimator bool, logger *zap.Logger) *TripEnricher {
	return &TripEnricher{estimator: estimator, reprice: repriceWithEstimator, logger: logger}
}

func (e *TripEnricher) Enrich(candidates []response_models.TripCandidate, req request_models.PreferenceRequest) []response_models.TripCandidate {
	out := make([]response_models.TripCandidate, len(candidates))
	for i, c := range candidates {
		out[i] = e.enrichOne(c.Clone(), req)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})
	return out
}

func (e *TripEnricher) enrichOne(c response_models.TripCandidate, req request_models.PreferenceRequest) response_models.TripCandidate {
	nights := TripNights(c, req)
	cb := &c.CostBreakdown
	cb.HotelNights = nights

	if e.reprice {
		startDate := c.StartDate
		if startDate == "" {
			startDate = req.StartDate
		}
		place := pricedPlace(c)
		cb.FlightUSD = e.estimator.EstimateFlightPrice(req.DepartureLocation, place, startDate)
		cb.HotelPerNightUSD = e.estimator.EstimateHotelPrice(place, accommodationFor(c, req.Budget), req.Budget)
		cb.HotelTotalUSD = roundUSD(cb.HotelPerNightUSD * float64(nights))

		if cb.TransportUSD <= 0 {
			cb.TransportUSD = defaultTransportPerNight * float64(nights)
		}
		if cb.ActivitiesUSD <= 0 {
			cb.ActivitiesUSD = defaultActivitiesPerNight * float64(nights)
		}
		if cb.TaxesFeesUSD <= 0 {
			cb.TaxesFeesUSD = roundUSD(defaultTaxesFeesRate * (cb.FlightUSD + cb.HotelTotalUSD))
		}
		cb.TotalUSD = roundUSD(cb.ComponentSum())

		if !containsString(c.DataSources, estimatorDataSource) {
			c.DataSources = append(c.DataSources, estimatorDataSource)
		}
		if c.Assumptions == "" {
			c.Assumptions = defaultAssumptionsEstimate
		}
	} else {
		if cb.HotelTotalUSD <= 0 && cb.HotelPerNightUSD > 0 {
			cb.HotelTotalUSD = roundUSD(cb.HotelPerNightUSD * float64(nights))
		}
		if cb.TotalUSD <= 0 {
			cb.TotalUSD = roundUSD(cb.ComponentSum())
		}
		if cb.TotalUSD <= 0 {
			cb.TotalUSD = c.BudgetUSD
		}
	}

	cb.PerPersonUSD = cb.TotalUSD
	c.BudgetUSD = cb.TotalUSD
	if c.DurationDays < 1 {
		c.DurationDays = nights + 1
	}
	c.MatchScore = math.Max(0, math.Min(100, c.MatchScore))

	e.logger.Debug("trip candidate enriched",
		zap.String("id", c.ID),
		zap.Int("nights", nights),
		zap.Float64("flight_usd", cb.FlightUSD),
		zap.Float64("hotel_per_night_usd", cb.HotelPerNightUSD),
		zap.Float64("total_usd", cb.TotalUSD))
	return c
}

// TripNights prefers the candidate's own dates, then the requested dates,
// then durationDays, then a three-night default.
func TripNights(c response_models.TripCandidate, req request_models.PreferenceRequest) int {
	if nights, ok := utils.NightsBetween(c.StartDate, c.EndDate); ok {
		return nights
	}
	if nights, ok := utils.NightsBetween(req.StartDate, req.EndDate); ok {
		return nights
	}
	if c.DurationDays > 0 {
		return c.DurationDays
	}
	return defaultTripNights
}

// pricedPlace is the location the estimator prices: the destination, or the
// title when the model left the destination blank.
func pricedPlace(c response_models.TripCandidate) string {
	if place := strings.TrimSpace(c.Destination); place != "" {
		return place
	}
	return strings.TrimSpace(c.Title)
}

func accommodationFor(c response_models.TripCandidate, budget int) string {
	if c.Accommodations != "" {
		return c.Accommodations
	}
	switch {
	case budget <= 33:
		return string(ThreeStarHotel)
	case budget <= 66:
		return string(FourStarHotel)
	default:
		return string(FiveStarHotel)
	}
}

func roundUSD(v float64) float64 {
	return math.Round(v*100) / 100
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

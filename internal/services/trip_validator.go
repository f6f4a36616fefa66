package services

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"tripsync/internal/metrics"
	"tripsync/internal/models/request_models"
	"tripsync/internal/models/response_models"
)

const (
	// zeroFlightTotalFloorUSD is the total below which a free flight from a
	// known origin is implausible.
	zeroFlightTotalFloorUSD = 1000
	// breakdownToleranceUSD is the rounding slack allowed between the
	// component sum and the stated total.
	breakdownToleranceUSD = 10
)

type TripValidatorInterface interface {
	Validate(candidates []response_models.TripCandidate, req request_models.PreferenceRequest) []response_models.TripCandidate
}

type TripValidator struct {
	logger *zap.Logger
}

func NewTripValidator(logger *zap.Logger) *TripValidator {
	return &TripValidator{logger: logger}
}

// Validate caps the list at req.MaxResults and then keeps, in order, the
// candidates that pass every rule. Survivors are not modified.
func (v *TripValidator) Validate(candidates []response_models.TripCandidate, req request_models.PreferenceRequest) []response_models.TripCandidate {
	if req.MaxResults > 0 && len(candidates) > req.MaxResults {
		metrics.CandidateDropoutsTotal.WithLabelValues(metrics.DropoutTruncated).Add(float64(len(candidates) - req.MaxResults))
		candidates = candidates[:req.MaxResults]
	}

	wanted := requestedPlace(req.Destination)
	survivors := make([]response_models.TripCandidate, 0, len(candidates))

	for _, c := range candidates {
		if reason := v.rejectReason(c, req, wanted); reason != "" {
			metrics.CandidateDropoutsTotal.WithLabelValues(reason).Inc()
			v.logger.Info("trip candidate rejected",
				zap.String("id", c.ID),
				zap.String("destination", c.Destination),
				zap.String("reason", reason),
				zap.Float64("total_usd", c.TotalCost()))
			continue
		}
		v.checkBreakdown(c)
		survivors = append(survivors, c)
	}
	return survivors
}

func (v *TripValidator) rejectReason(c response_models.TripCandidate, req request_models.PreferenceRequest, wanted string) string {
	if wanted != "" && !MatchesDestination(c, wanted) {
		return metrics.DropoutDestination
	}
	total := c.TotalCost()
	if total < MinimumTripTotalUSD {
		return metrics.DropoutTotalFloor
	}
	if req.DepartureLocation != "" && c.CostBreakdown.FlightUSD == 0 && total < zeroFlightTotalFloorUSD {
		return metrics.DropoutZeroFlight
	}
	return ""
}

// checkBreakdown only logs; a mismatch never removes a candidate.
func (v *TripValidator) checkBreakdown(c response_models.TripCandidate) {
	cb := c.CostBreakdown
	if cb.TotalUSD == 0 {
		return
	}
	if diff := math.Abs(cb.ComponentSum() - cb.TotalUSD); diff > breakdownToleranceUSD {
		metrics.PriceAnomaliesTotal.Inc()
		v.logger.Warn("cost breakdown does not add up",
			zap.String("id", c.ID),
			zap.Float64("components_usd", cb.ComponentSum()),
			zap.Float64("total_usd", cb.TotalUSD),
			zap.Float64("difference_usd", diff))
	}
}

// requestedPlace is the first comma-delimited segment of the requested
// destination, lower-cased.
func requestedPlace(destination string) string {
	first, _, _ := strings.Cut(destination, ",")
	return strings.ToLower(strings.TrimSpace(first))
}

// MatchesDestination reports whether the candidate's destination (or title,
// when the destination is blank) contains wanted or is contained by it.
func MatchesDestination(c response_models.TripCandidate, wanted string) bool {
	got := strings.TrimSpace(c.Destination)
	if got == "" {
		got = strings.TrimSpace(c.Title)
	}
	got = strings.ToLower(got)
	if got == "" {
		return false
	}
	return strings.Contains(got, wanted) || strings.Contains(wanted, got)
}

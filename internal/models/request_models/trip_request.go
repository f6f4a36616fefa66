package request_models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"tripsync/pkg/utils"
)

const DefaultSliderValue = 50

// SliderValue is a 0-100 dial. The mobile client forwards route params
// verbatim, so both 42 and "42" are accepted.
type SliderValue int

func (s *SliderValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		data = []byte(strings.TrimSpace(raw))
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("slider value %s is not a number", string(data))
	}
	*s = SliderValue(int(f))
	return nil
}

// TripPreferenceRequest is the wire shape of POST /api/generate-trip.
type TripPreferenceRequest struct {
	Budget            *SliderValue `json:"budget" binding:"omitempty,min=0,max=100"`
	TravelStyle       *SliderValue `json:"travelStyle" binding:"omitempty,min=0,max=100"`
	Planning          *SliderValue `json:"planning" binding:"omitempty,min=0,max=100"`
	DepartureLocation string       `json:"departureLocation"`
	Destination       string       `json:"destination"`
	StartDate         string       `json:"startDate"`
	EndDate           string       `json:"endDate"`
	MaxResults        *SliderValue `json:"maxResults" binding:"omitempty,min=1"`
}

// PreferenceRequest is a normalized request: every default applied and every
// string trimmed. Field order is the canonical key order.
type PreferenceRequest struct {
	Budget            int    `json:"budget"`
	TravelStyle       int    `json:"travelStyle"`
	Planning          int    `json:"planning"`
	DepartureLocation string `json:"departureLocation"`
	Destination       string `json:"destination"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	MaxResults        int    `json:"maxResults"`
}

func (r TripPreferenceRequest) ToPreference(defaultMaxResults, maxResultsLimit int) (PreferenceRequest, error) {
	p := PreferenceRequest{
		Budget:            sliderOrDefault(r.Budget, DefaultSliderValue),
		TravelStyle:       sliderOrDefault(r.TravelStyle, DefaultSliderValue),
		Planning:          sliderOrDefault(r.Planning, DefaultSliderValue),
		DepartureLocation: strings.TrimSpace(r.DepartureLocation),
		Destination:       strings.TrimSpace(r.Destination),
		StartDate:         strings.TrimSpace(r.StartDate),
		EndDate:           strings.TrimSpace(r.EndDate),
		MaxResults:        sliderOrDefault(r.MaxResults, defaultMaxResults),
	}
	if err := p.Validate(maxResultsLimit); err != nil {
		return PreferenceRequest{}, err
	}
	return p, nil
}

func (p PreferenceRequest) Validate(maxResultsLimit int) error {
	sliders := []struct {
		name  string
		value int
	}{
		{"budget", p.Budget},
		{"travelStyle", p.TravelStyle},
		{"planning", p.Planning},
	}
	for _, s := range sliders {
		if s.value < 0 || s.value > 100 {
			return fmt.Errorf("%w: %s must be between 0 and 100, got %d", utils.ErrInvalidPreference, s.name, s.value)
		}
	}
	if p.MaxResults < 1 || p.MaxResults > maxResultsLimit {
		return fmt.Errorf("%w: maxResults must be between 1 and %d, got %d", utils.ErrInvalidPreference, maxResultsLimit, p.MaxResults)
	}
	return nil
}

// CanonicalKey serializes the request with a fixed field order so that equal
// preference sets always produce the same cache key.
func (p PreferenceRequest) CanonicalKey() string {
	b, _ := json.Marshal(p)
	return string(b)
}

func sliderOrDefault(v *SliderValue, def int) int {
	if v == nil {
		return def
	}
	return int(*v)
}

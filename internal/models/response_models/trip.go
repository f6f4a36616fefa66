package response_models

// CostBreakdown holds every cost component in USD for a single traveler.
type CostBreakdown struct {
	FlightUSD        float64 `json:"flightUSD"`
	HotelPerNightUSD float64 `json:"hotelPerNightUSD"`
	HotelNights      int     `json:"hotelNights"`
	HotelTotalUSD    float64 `json:"hotelTotalUSD"`
	TransportUSD     float64 `json:"transportUSD"`
	ActivitiesUSD    float64 `json:"activitiesUSD"`
	TaxesFeesUSD     float64 `json:"taxesFeesUSD"`
	TotalUSD         float64 `json:"totalUSD"`
	PerPersonUSD     float64 `json:"perPersonUSD"`
}

// ComponentSum adds the five components that make up TotalUSD.
func (c CostBreakdown) ComponentSum() float64 {
	return c.FlightUSD + c.HotelTotalUSD + c.TransportUSD + c.ActivitiesUSD + c.TaxesFeesUSD
}

type TripCandidate struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Destination    string        `json:"destination"`
	StartDate      string        `json:"startDate"`
	EndDate        string        `json:"endDate"`
	DurationDays   int           `json:"durationDays"`
	BudgetUSD      float64       `json:"budgetUSD"`
	Currency       string        `json:"currency"`
	Activities     []string      `json:"activities"`
	Latitude       *float64      `json:"latitude,omitempty"`
	Longitude      *float64      `json:"longitude,omitempty"`
	Accommodations string        `json:"accommodations"`
	ImageURL       string        `json:"imageUrl,omitempty"`
	Description    string        `json:"description"`
	MatchScore     float64       `json:"matchScore"`
	Itinerary      []string      `json:"itinerary"`
	CostBreakdown  CostBreakdown `json:"costBreakdown"`
	Assumptions    string        `json:"assumptions"`
	DataSources    []string      `json:"dataSources"`
}

// TotalCost is the stated total, falling back to BudgetUSD when the model left
// the breakdown total empty.
func (t TripCandidate) TotalCost() float64 {
	if t.CostBreakdown.TotalUSD > 0 {
		return t.CostBreakdown.TotalUSD
	}
	return t.BudgetUSD
}

func (t TripCandidate) Clone() TripCandidate {
	c := t
	c.Activities = cloneStrings(t.Activities)
	c.Itinerary = cloneStrings(t.Itinerary)
	c.DataSources = cloneStrings(t.DataSources)
	if t.Latitude != nil {
		lat := *t.Latitude
		c.Latitude = &lat
	}
	if t.Longitude != nil {
		lng := *t.Longitude
		c.Longitude = &lng
	}
	return c
}

func CloneTrips(trips []TripCandidate) []TripCandidate {
	out := make([]TripCandidate, len(trips))
	for i, t := range trips {
		out[i] = t.Clone()
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

type GenerateTripResponse struct {
	Success bool            `json:"success"`
	Trips   []TripCandidate `json:"trips"`
	Cached  bool            `json:"cached"`
}

type TripErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Kind    string `json:"kind"`
	Raw     string `json:"raw,omitempty"`
	TraceID string `json:"traceId,omitempty"`
}

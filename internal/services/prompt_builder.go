package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"tripsync/internal/models/request_models"
	"tripsync/pkg/utils"
)

// MinimumTripTotalUSD is the floor below which a trip is considered
// unrealistic, both in the prompt and in validation.
const MinimumTripTotalUSD = 300

type PromptBuilderInterface interface {
	Build(req request_models.PreferenceRequest) utils.Prompt
}

type PromptBuilder struct {
	schemaHint string
}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{schemaHint: TripsSchemaHint()}
}

// tripItemSchema describes a single entry of the reply's trips array.
func tripItemSchema() map[string]any {
	number := map[string]any{"type": "number", "minimum": 0}
	str := map[string]any{"type": "string"}
	strList := map[string]any{"type": "array", "items": str}
	optionalNumber := map[string]any{"type": []string{"number", "null"}}

	return map[string]any{
		"type": "object",
		"anyOf": []any{
			map[string]any{"required": []string{"destination"}},
			map[string]any{"required": []string{"title"}},
		},
		"properties": map[string]any{
			"id":             str,
			"title":          str,
			"destination":    str,
			"startDate":      str,
			"endDate":        str,
			"durationDays":   map[string]any{"type": "integer", "minimum": 0},
			"budgetUSD":      number,
			"currency":       str,
			"activities":     strList,
			"latitude":       optionalNumber,
			"longitude":      optionalNumber,
			"accommodations": str,
			"imageUrl":       str,
			"description":    str,
			"matchScore":     map[string]any{"type": "number"},
			"itinerary":      strList,
			"assumptions":    str,
			"dataSources":    strList,
			"costBreakdown": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"flightUSD":        number,
					"hotelPerNightUSD": number,
					"hotelNights":      map[string]any{"type": "integer", "minimum": 0},
					"hotelTotalUSD":    number,
					"transportUSD":     number,
					"activitiesUSD":    number,
					"taxesFeesUSD":     number,
					"totalUSD":         number,
					"perPersonUSD":     number,
				},
			},
		},
	}
}

// TripsSchemaHint renders the JSON Schema of a complete reply. Map keys are
// marshalled in sorted order, so the output is stable.
func TripsSchemaHint() string {
	schema := map[string]any{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": []string{"trips"},
		"properties": map[string]any{
			"trips": map[string]any{
				"type":  "array",
				"items": tripItemSchema(),
			},
		},
	}
	b, _ := json.Marshal(schema)
	return string(b)
}

const replyExample = `{
  "trips": [
    {
      "id": "trip-1",
      "title": "string",
      "destination": "City, Country",
      "startDate": "MM/DD/YYYY",
      "endDate": "MM/DD/YYYY",
      "durationDays": 5,
      "budgetUSD": 1850,
      "currency": "JPY",
      "activities": ["string"],
      "latitude": 35.68,
      "longitude": 139.69,
      "accommodations": "4-star hotel",
      "description": "string",
      "matchScore": 87,
      "itinerary": ["Day 1: ...", "Day 2: ..."],
      "costBreakdown": {
        "flightUSD": 950,
        "hotelPerNightUSD": 160,
        "hotelNights": 4,
        "hotelTotalUSD": 640,
        "transportUSD": 80,
        "activitiesUSD": 120,
        "taxesFeesUSD": 60,
        "totalUSD": 1850,
        "perPersonUSD": 1850
      },
      "assumptions": "string",
      "dataSources": ["string"]
    }
  ]
}`

func (b *PromptBuilder) Build(req request_models.PreferenceRequest) utils.Prompt {
	return utils.Prompt{
		SystemText: b.systemText(req),
		UserText:   b.userText(req),
		SchemaHint: b.schemaHint,
		JSONMode:   true,
	}
}

func (b *PromptBuilder) systemText(req request_models.PreferenceRequest) string {
	var sb strings.Builder

	sb.WriteString("You are a travel planning engine that designs realistic trips with itemized costs.\n")
	sb.WriteString("You reply with a single JSON object and nothing else.\n\n")

	sb.WriteString("CRITICAL REQUIREMENTS:\n")
	if constraint := destinationConstraint(req); constraint != "" {
		fmt.Fprintf(&sb, "- %s\n", constraint)
	}
	sb.WriteString("- Every trip is for exactly ONE traveler. All costs are for one person.\n")
	sb.WriteString("- All numeric cost fields are in USD. Set \"currency\" to the destination's local currency code for display only; never convert the numbers.\n")
	sb.WriteString("- costBreakdown.totalUSD must equal flightUSD + hotelTotalUSD + transportUSD + activitiesUSD + taxesFeesUSD, and perPersonUSD must equal totalUSD.\n")
	sb.WriteString("- hotelTotalUSD must equal hotelPerNightUSD * hotelNights.\n\n")

	sb.WriteString("REALISTIC PRICE RANGES (one traveler, round trip):\n")
	for _, tier := range []RouteTier{RouteDomestic, RouteShortInternational, RouteMediumInternational, RouteLongInternational} {
		band := FlightBand(tier)
		fmt.Fprintf(&sb, "- %s flights: at least $%.0f, typically $%.0f-$%.0f\n", tierLabel(tier), band.Min, band.Min, band.Max)
	}
	for _, tier := range []PriceTier{PriceTierBudget, PriceTierMid, PriceTierPremium} {
		low := hotelBands[ThreeStarHotel][tier]
		high := hotelBands[LuxuryResort][tier]
		fmt.Fprintf(&sb, "- Hotels in %s-priced destinations: $%.0f-$%.0f per night depending on category\n", tier, low.Min, high.Max)
	}
	fmt.Fprintf(&sb, "- Never propose a trip whose totalUSD is below $%d.\n", MinimumTripTotalUSD)
	if req.DepartureLocation != "" {
		sb.WriteString("- The departure city is known, so flightUSD must be greater than zero.\n")
	}

	sb.WriteString("\nOUTPUT RULES:\n")
	sb.WriteString("- Return ONLY the JSON data object. Do not repeat or describe the schema.\n")
	sb.WriteString("- No markdown, no code fences, no comments, no text before or after the JSON.\n")
	return sb.String()
}

func (b *PromptBuilder) userText(req request_models.PreferenceRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Suggest exactly %d trips for one traveler.\n\n", req.MaxResults)

	sb.WriteString("Traveler preferences (0-100 scales):\n")
	fmt.Fprintf(&sb, "- Budget: %d (%s)\n", req.Budget, describeBudget(req.Budget))
	fmt.Fprintf(&sb, "- Travel style: %d (%s)\n", req.TravelStyle, describeTravelStyle(req.TravelStyle))
	fmt.Fprintf(&sb, "- Planning: %d (%s)\n", req.Planning, describePlanning(req.Planning))

	if req.DepartureLocation != "" {
		fmt.Fprintf(&sb, "- Departing from: %s\n", req.DepartureLocation)
	} else {
		sb.WriteString("- Departure city unknown; assume a departure from the United States.\n")
	}

	if req.Destination != "" {
		fmt.Fprintf(&sb, "- Destination: %s\n", req.Destination)
	} else {
		sb.WriteString("- Destination: anywhere; choose diverse destinations that fit the preferences.\n")
	}

	switch {
	case req.StartDate != "" && req.EndDate != "":
		fmt.Fprintf(&sb, "- Dates: %s to %s", req.StartDate, req.EndDate)
		if nights, ok := utils.NightsBetween(req.StartDate, req.EndDate); ok {
			fmt.Fprintf(&sb, " (%d nights, use hotelNights = %d)", nights, nights)
		}
		sb.WriteString("\n")
	case req.StartDate != "":
		fmt.Fprintf(&sb, "- Departure date: %s; pick a suitable trip length.\n", req.StartDate)
	default:
		sb.WriteString("- Dates are flexible; propose 3-7 day trips with MM/DD/YYYY dates.\n")
	}

	if constraint := destinationConstraint(req); constraint != "" {
		fmt.Fprintf(&sb, "\nIMPORTANT: %s\n", constraint)
	}

	sb.WriteString("\nEach trip needs a 5-8 step itinerary, a matchScore from 0 to 100 describing how well it fits the preferences, ")
	sb.WriteString("and short assumptions explaining how costs were estimated.\n\n")
	sb.WriteString("Reply with JSON in exactly this shape:\n")
	sb.WriteString(replyExample)
	sb.WriteString("\n")
	return sb.String()
}

func destinationConstraint(req request_models.PreferenceRequest) string {
	if req.Destination == "" {
		return ""
	}
	return fmt.Sprintf("Every trip MUST be located in %s. Do not suggest any other city, region or country.", req.Destination)
}

func tierLabel(t RouteTier) string {
	switch t {
	case RouteDomestic:
		return "Domestic"
	case RouteShortInternational:
		return "Short international"
	case RouteMediumInternational:
		return "Medium international"
	default:
		return "Long international"
	}
}

func describeBudget(v int) string {
	switch {
	case v <= 33:
		return "budget-friendly: economy flights, 3-star hotels, free or cheap activities"
	case v <= 66:
		return "moderate: comfortable 4-star hotels and a few paid experiences"
	default:
		return "luxury: premium flights, 5-star hotels or resorts, exclusive experiences"
	}
}

func describeTravelStyle(v int) string {
	switch {
	case v <= 33:
		return "fast and direct: nonstop flights, efficient routes, packed days"
	case v <= 66:
		return "balanced between speed and comfort"
	default:
		return "scenic and relaxed: comfortable routes and a slow pace"
	}
}

func describePlanning(v int) string {
	switch {
	case v <= 33:
		return "flexible: open to shifting dates and loose itineraries"
	case v <= 66:
		return "some structure with free time"
	default:
		return "certain: fixed dates and a detailed day-by-day schedule"
	}
}

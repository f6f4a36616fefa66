package services

import (
	"math"
	"math/rand/v2"
	"regexp"
	"strings"

	"tripsync/pkg/utils"
)

type RouteTier string

const (
	RouteDomestic            RouteTier = "domestic"
	RouteShortInternational  RouteTier = "short_international"
	RouteMediumInternational RouteTier = "medium_international"
	RouteLongInternational   RouteTier = "long_international"
)

type PriceTier string

const (
	PriceTierBudget  PriceTier = "budget"
	PriceTierMid     PriceTier = "mid"
	PriceTierPremium PriceTier = "premium"
)

type AccommodationType string

const (
	ThreeStarHotel AccommodationType = "3-star hotel"
	FourStarHotel  AccommodationType = "4-star hotel"
	FiveStarHotel  AccommodationType = "5-star hotel"
	FiveStarResort AccommodationType = "5-star resort"
	LuxuryResort   AccommodationType = "luxury resort"
)

// PriceBand bounds an estimate in USD.
type PriceBand struct {
	Min float64
	Max float64
	Avg float64
}

func (b PriceBand) scale(factor float64) PriceBand {
	return PriceBand{Min: b.Min * factor, Max: b.Max * factor, Avg: b.Avg * factor}
}

// perturb moves center by up to 10% of the band width and clamps the result.
func (b PriceBand) perturb(center, jitter float64) float64 {
	if jitter > 1 {
		jitter = 1
	} else if jitter < -1 {
		jitter = -1
	}
	v := center + jitter*0.1*(b.Max-b.Min)
	v = math.Round(v*100) / 100
	return math.Min(b.Max, math.Max(b.Min, v))
}

type region string

const (
	regionNorthAmerica  region = "north_america"
	regionLatinAmerica  region = "latin_america"
	regionSouthAmerica  region = "south_america"
	regionEurope        region = "europe"
	regionMiddleEast    region = "middle_east"
	regionAfrica        region = "africa"
	regionSouthAsia     region = "south_asia"
	regionEastAsia      region = "east_asia"
	regionSoutheastAsia region = "southeast_asia"
	regionOceania       region = "oceania"
)

type locationRule struct {
	keywords []string
	country  string
	region   region
}

// locationRules is checked in order; the first rule with a matching keyword
// wins, so more specific names sit above broader ones.
var locationRules = []locationRule{
	{[]string{"new mexico", "texas", "austin", "houston", "dallas", "san antonio", "new york", "manhattan", "brooklyn",
		"california", "los angeles", "san francisco", "san diego", "seattle", "portland", "chicago", "boston",
		"miami", "orlando", "florida", "las vegas", "nevada", "denver", "colorado", "aspen", "hawaii", "honolulu",
		"maui", "alaska", "anchorage", "nashville", "tennessee", "new orleans", "louisiana", "atlanta", "phoenix",
		"arizona", "utah", "washington, dc", "washington dc", "united states", "usa", "u.s."}, "US", regionNorthAmerica},
	{[]string{"canada", "toronto", "vancouver", "montreal", "quebec", "banff", "calgary"}, "CA", regionNorthAmerica},
	{[]string{"mexico", "cancun", "tulum", "cabo", "puerto vallarta", "oaxaca"}, "MX", regionLatinAmerica},
	{[]string{"puerto rico", "san juan"}, "US", regionNorthAmerica},
	{[]string{"bahamas", "jamaica", "cuba", "dominican", "punta cana", "aruba", "barbados", "st. lucia",
		"turks", "cayman", "caribbean"}, "CARIB", regionLatinAmerica},
	{[]string{"costa rica", "belize", "guatemala", "panama", "nicaragua", "honduras"}, "CENTAM", regionLatinAmerica},
	{[]string{"brazil", "rio de janeiro", "sao paulo"}, "BR", regionSouthAmerica},
	{[]string{"argentina", "buenos aires", "patagonia"}, "AR", regionSouthAmerica},
	{[]string{"peru", "lima", "cusco", "machu picchu"}, "PE", regionSouthAmerica},
	{[]string{"colombia", "bogota", "medellin", "cartagena"}, "CO", regionSouthAmerica},
	{[]string{"chile", "santiago", "ecuador", "galapagos", "bolivia", "uruguay"}, "SA", regionSouthAmerica},
	{[]string{"united kingdom", "england", "london", "scotland", "edinburgh", "wales", "ireland", "dublin"}, "GB", regionEurope},
	{[]string{"france", "paris", "nice", "lyon", "provence"}, "FR", regionEurope},
	{[]string{"italy", "rome", "florence", "venice", "milan", "amalfi", "tuscany", "sicily"}, "IT", regionEurope},
	{[]string{"spain", "madrid", "barcelona", "seville", "ibiza", "mallorca"}, "ES", regionEurope},
	{[]string{"portugal", "lisbon", "porto", "madeira"}, "PT", regionEurope},
	{[]string{"germany", "berlin", "munich", "netherlands", "amsterdam", "belgium", "brussels", "austria", "vienna",
		"switzerland", "zurich", "geneva", "zermatt", "czech", "prague", "hungary", "budapest", "poland", "krakow",
		"greece", "athens", "santorini", "mykonos", "croatia", "dubrovnik", "iceland", "reykjavik", "norway", "oslo",
		"sweden", "stockholm", "denmark", "copenhagen", "finland", "helsinki", "monaco", "europe"}, "EU", regionEurope},
	{[]string{"turkey", "istanbul", "cappadocia"}, "TR", regionMiddleEast},
	{[]string{"dubai", "abu dhabi", "united arab emirates", "uae", "qatar", "doha", "israel", "jordan", "petra",
		"oman", "saudi"}, "ME", regionMiddleEast},
	{[]string{"morocco", "marrakech", "egypt", "cairo", "kenya", "nairobi", "tanzania", "zanzibar", "south africa",
		"cape town", "namibia", "botswana", "africa"}, "AF", regionAfrica},
	{[]string{"india", "delhi", "mumbai", "goa", "jaipur", "nepal", "kathmandu", "sri lanka", "maldives"}, "IN", regionSouthAsia},
	{[]string{"japan", "tokyo", "kyoto", "osaka", "hokkaido", "okinawa"}, "JP", regionEastAsia},
	{[]string{"south korea", "korea", "seoul", "busan"}, "KR", regionEastAsia},
	{[]string{"china", "beijing", "shanghai", "hong kong", "taiwan", "taipei"}, "CN", regionEastAsia},
	{[]string{"thailand", "bangkok", "phuket", "chiang mai", "vietnam", "hanoi", "ho chi minh", "da nang",
		"indonesia", "bali", "jakarta", "singapore", "malaysia", "kuala lumpur", "philippines", "manila", "palawan",
		"cambodia", "siem reap", "laos"}, "SEA", regionSoutheastAsia},
	{[]string{"australia", "sydney", "melbourne", "new zealand", "auckland", "queenstown", "fiji", "bora bora",
		"tahiti", "french polynesia"}, "OC", regionOceania},
}

type regionPair struct{ a, b region }

var shortHaulPairs = map[regionPair]bool{
	{regionNorthAmerica, regionLatinAmerica}: true,
	{regionLatinAmerica, regionSouthAmerica}: true,
	{regionEurope, regionMiddleEast}:         true,
	{regionEastAsia, regionSoutheastAsia}:    true,
	{regionSouthAsia, regionSoutheastAsia}:   true,
	{regionSouthAsia, regionMiddleEast}:      true,
	{regionSoutheastAsia, regionOceania}:     true,
	{regionMiddleEast, regionAfrica}:         true,
}

var mediumHaulPairs = map[regionPair]bool{
	{regionNorthAmerica, regionEurope}:       true,
	{regionNorthAmerica, regionSouthAmerica}: true,
	{regionLatinAmerica, regionEurope}:       true,
	{regionEurope, regionAfrica}:             true,
	{regionEurope, regionSouthAsia}:          true,
	{regionEastAsia, regionSouthAsia}:        true,
	{regionEastAsia, regionOceania}:          true,
	{regionMiddleEast, regionSoutheastAsia}:  true,
}

func hasPair(set map[regionPair]bool, a, b region) bool {
	return set[regionPair{a, b}] || set[regionPair{b, a}]
}

var flightBands = map[RouteTier]PriceBand{
	RouteDomestic:            {Min: 150, Max: 600, Avg: 320},
	RouteShortInternational:  {Min: 250, Max: 900, Avg: 520},
	RouteMediumInternational: {Min: 500, Max: 1400, Avg: 850},
	RouteLongInternational:   {Min: 800, Max: 2200, Avg: 1350},
}

type tierRule struct {
	keywords []string
	tier     PriceTier
}

var destinationTierRules = []tierRule{
	{[]string{"switzerland", "zurich", "geneva", "zermatt", "iceland", "reykjavik", "norway", "oslo", "monaco",
		"maldives", "bora bora", "french polynesia", "tahiti", "dubai", "singapore", "london", "paris",
		"new york", "manhattan", "san francisco", "hawaii", "maui", "aspen", "copenhagen", "venice", "amalfi",
		"santorini", "st. barts"}, PriceTierPremium},
	{[]string{"bali", "indonesia", "thailand", "bangkok", "chiang mai", "phuket", "vietnam", "hanoi",
		"ho chi minh", "cambodia", "siem reap", "laos", "india", "nepal", "sri lanka", "philippines", "mexico",
		"oaxaca", "peru", "cusco", "colombia", "bolivia", "ecuador", "guatemala", "nicaragua", "morocco", "egypt",
		"turkey", "istanbul"}, PriceTierBudget},
}

var hotelBands = map[AccommodationType]map[PriceTier]PriceBand{
	ThreeStarHotel: {
		PriceTierBudget:  {Min: 40, Max: 90, Avg: 60},
		PriceTierMid:     {Min: 80, Max: 160, Avg: 120},
		PriceTierPremium: {Min: 150, Max: 280, Avg: 210},
	},
	FourStarHotel: {
		PriceTierBudget:  {Min: 70, Max: 150, Avg: 100},
		PriceTierMid:     {Min: 140, Max: 260, Avg: 190},
		PriceTierPremium: {Min: 250, Max: 450, Avg: 340},
	},
	FiveStarHotel: {
		PriceTierBudget:  {Min: 120, Max: 250, Avg: 170},
		PriceTierMid:     {Min: 250, Max: 450, Avg: 340},
		PriceTierPremium: {Min: 450, Max: 900, Avg: 620},
	},
	FiveStarResort: {
		PriceTierBudget:  {Min: 150, Max: 300, Avg: 220},
		PriceTierMid:     {Min: 300, Max: 550, Avg: 420},
		PriceTierPremium: {Min: 550, Max: 1100, Avg: 780},
	},
	LuxuryResort: {
		PriceTierBudget:  {Min: 250, Max: 500, Avg: 360},
		PriceTierMid:     {Min: 450, Max: 900, Avg: 650},
		PriceTierPremium: {Min: 800, Max: 2000, Avg: 1200},
	},
}

// PriceEstimatorInterface prices flights and hotel nights without calling
// any external pricing API.
type PriceEstimatorInterface interface {
	EstimateFlightPrice(origin, destination, date string) float64
	EstimateHotelPrice(destination, accommodationType string, budgetLevel int) float64
}

type PriceEstimator struct {
	jitter func() float64
}

func NewPriceEstimator() *PriceEstimator {
	return NewPriceEstimatorWithJitter(func() float64 { return rand.Float64()*2 - 1 })
}

// NewPriceEstimatorWithJitter uses jitter as the source of noise; it must
// return values in [-1, 1].
func NewPriceEstimatorWithJitter(jitter func() float64) *PriceEstimator {
	return &PriceEstimator{jitter: jitter}
}

func (p *PriceEstimator) EstimateFlightPrice(origin, destination, date string) float64 {
	band := FlightBand(ClassifyRoute(origin, destination))
	center := band.Avg
	if isPeakTravelDate(date) {
		center += 0.1 * (band.Max - band.Min)
	}
	return band.perturb(center, p.jitter())
}

func (p *PriceEstimator) EstimateHotelPrice(destination, accommodationType string, budgetLevel int) float64 {
	band := HotelBand(NormalizeAccommodation(accommodationType), DestinationPriceTier(destination), budgetLevel)
	return band.perturb(band.Avg, p.jitter())
}

func FlightBand(tier RouteTier) PriceBand {
	if band, ok := flightBands[tier]; ok {
		return band
	}
	return flightBands[RouteMediumInternational]
}

// HotelBand returns the nightly band for an accommodation type and tier,
// scaled by 0.7 + 0.3*budgetLevel/100.
func HotelBand(acc AccommodationType, tier PriceTier, budgetLevel int) PriceBand {
	bands, ok := hotelBands[acc]
	if !ok {
		bands = hotelBands[FourStarHotel]
	}
	band, ok := bands[tier]
	if !ok {
		band = bands[PriceTierMid]
	}
	budgetLevel = max(0, min(100, budgetLevel))
	return band.scale(0.7 + 0.3*float64(budgetLevel)/100)
}

// ClassifyRoute buckets a route by distance. An empty origin is treated as a
// US departure; an unrecognised destination is priced as medium haul.
func ClassifyRoute(origin, destination string) RouteTier {
	dest, ok := lookupLocation(destination)
	if !ok {
		return RouteMediumInternational
	}
	from, ok := lookupLocation(origin)
	if !ok {
		from = locationRules[0]
	}

	switch {
	case from.country == dest.country:
		return RouteDomestic
	case from.region == dest.region, hasPair(shortHaulPairs, from.region, dest.region):
		return RouteShortInternational
	case hasPair(mediumHaulPairs, from.region, dest.region):
		return RouteMediumInternational
	default:
		return RouteLongInternational
	}
}

func DestinationPriceTier(destination string) PriceTier {
	text := strings.ToLower(destination)
	for _, rule := range destinationTierRules {
		if containsKeyword(text, rule.keywords) {
			return rule.tier
		}
	}
	return PriceTierMid
}

func NormalizeAccommodation(s string) AccommodationType {
	text := strings.ToLower(s)
	has := func(words ...string) bool { return containsAny(text, words) }
	stars := starRating(text)

	switch {
	case has("luxury"):
		return LuxuryResort
	case has("resort") && stars == 5:
		return FiveStarResort
	case stars == 5:
		return FiveStarHotel
	case stars > 0 && stars <= 3, has("hostel", "guesthouse", "guest house", "budget"):
		return ThreeStarHotel
	default:
		return FourStarHotel
	}
}

var starPattern = regexp.MustCompile(`\b(one|two|three|four|five|[1-5])[\s-]*(?:stars?\b|\*|★)`)

var starWords = map[string]int{"one": 1, "two": 2, "three": 3, "four": 4, "five": 5}

// starRating reads a "5-star", "five star" or "4*" style rating from
// lower-cased text; 0 means none was found.
func starRating(text string) int {
	m := starPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	if n, ok := starWords[m[1]]; ok {
		return n
	}
	return int(m[1][0] - '0')
}

func lookupLocation(text string) (locationRule, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return locationRule{}, false
	}
	for _, rule := range locationRules {
		if containsKeyword(text, rule.keywords) {
			return rule, true
		}
	}
	return locationRule{}, false
}

func isPeakTravelDate(date string) bool {
	t, ok := utils.ParseTripDate(date)
	if !ok {
		return false
	}
	switch t.Month() {
	case 6, 7, 8, 12:
		return true
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// containsKeyword reports whether any keyword occurs in text as a whole word,
// so "nice" does not match "venice".
func containsKeyword(text string, keywords []string) bool {
	for _, k := range keywords {
		for from := 0; from < len(text); {
			i := strings.Index(text[from:], k)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(k)
			if (start == 0 || !isWordByte(text[start-1])) && (end == len(text) || !isWordByte(text[end])) {
				return true
			}
			from = start + 1
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b >= 0x80
}

package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"tripsync/internal/metrics"
	"tripsync/internal/models/response_models"
	"tripsync/pkg/utils"
)

const tripsKey = `"trips"`

type ResponseExtractorInterface interface {
	Extract(raw string) ([]response_models.TripCandidate, error)
}

type ResponseExtractor struct {
	itemSchema *gojsonschema.Schema
	logger     *zap.Logger
}

func NewResponseExtractor(logger *zap.Logger) (*ResponseExtractor, error) {
	b, err := json.Marshal(tripItemSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal trip schema: %w", err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		return nil, fmt.Errorf("compile trip schema: %w", err)
	}
	return &ResponseExtractor{itemSchema: schema, logger: logger}, nil
}

// Extract recovers the trips in raw model output. Entries that do not match
// the trip schema are dropped with a warning; the rest are decoded in order.
func (e *ResponseExtractor) Extract(raw string) ([]response_models.TripCandidate, error) {
	_, items, err := ExtractPayload(raw)
	if err != nil {
		return nil, err
	}

	trips := make([]response_models.TripCandidate, 0, len(items))
	for i, item := range items {
		trip, err := e.decodeCandidate(item)
		if err != nil {
			metrics.CandidateDropoutsTotal.WithLabelValues(metrics.DropoutSchema).Inc()
			e.logger.Warn("dropping malformed trip candidate", zap.Int("index", i), zap.Error(err))
			continue
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

func (e *ResponseExtractor) decodeCandidate(item any) (response_models.TripCandidate, error) {
	var trip response_models.TripCandidate

	obj, ok := item.(map[string]any)
	if !ok {
		return trip, fmt.Errorf("candidate is %T, not an object", item)
	}

	obj = dropNulls(obj)

	result, err := e.itemSchema.Validate(gojsonschema.NewGoLoader(obj))
	if err != nil {
		return trip, fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return trip, fmt.Errorf("schema mismatch: %s", strings.Join(msgs, "; "))
	}

	b, err := json.Marshal(obj)
	if err != nil {
		return trip, err
	}
	if err := json.Unmarshal(b, &trip); err != nil {
		return trip, fmt.Errorf("decode candidate: %w", err)
	}
	if strings.TrimSpace(trip.ID) == "" {
		trip.ID = uuid.NewString()
	}
	return trip, nil
}

// dropNulls removes null-valued keys, recursing into nested objects. Models
// often send null for fields they could not fill; null means absent here.
func dropNulls(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case nil:
			continue
		case map[string]any:
			out[k] = dropNulls(val)
		default:
			out[k] = v
		}
	}
	return out
}

// ExtractPayload finds the first JSON object in raw that carries a trips
// array. It never panics; every failure maps to a GenerationError.
//
// Candidates are tried in order: the fence-stripped text as a whole, then the
// objects enclosing each "trips" key (innermost first), then the text from
// the last '{' to the end. An object that parses but holds no trips array
// does not stop the search, so a schema followed by data yields the data.
func ExtractPayload(raw string) (map[string]any, []any, error) {
	cleaned := utils.StripCodeFences(raw)
	if cleaned == "" {
		return nil, nil, utils.NewGenerationError(utils.ErrNoTextualOutput, raw, nil)
	}

	var schemaOnly map[string]any
	for _, candidate := range candidateObjects(cleaned) {
		obj, ok := parseObject(candidate)
		if !ok {
			continue
		}
		if trips, found := locateTrips(obj); found {
			return obj, trips, nil
		}
		if schemaOnly == nil {
			schemaOnly = obj
		}
	}

	if schemaOnly != nil {
		return nil, nil, utils.NewGenerationError(utils.ErrSchemaEcho, raw, nil)
	}
	return nil, nil, utils.NewGenerationError(utils.ErrExtractionFailed, raw, nil)
}

func candidateObjects(text string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	add(text)

	foundEnclosing := false
	for from := 0; from < len(text); {
		i := strings.Index(text[from:], tripsKey)
		if i < 0 {
			break
		}
		pos := from + i
		from = pos + len(tripsKey)

		open, inString := utils.EnclosingObjects(text, pos)
		if inString {
			continue
		}
		for _, start := range open {
			foundEnclosing = true
			add(utils.BalancedObject(text, start))
		}
	}
	if !foundEnclosing {
		if first := strings.IndexByte(text, '{'); first >= 0 {
			add(utils.BalancedObject(text, first))
		}
	}

	if last := strings.LastIndexByte(text, '{'); last >= 0 {
		add(strings.TrimSpace(text[last:]))
	}
	return out
}

func parseObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// locateTrips looks for a trips array at the top level, under parameters (a
// function-call style wrapper), then one level down in any nested object.
func locateTrips(obj map[string]any) ([]any, bool) {
	if trips, ok := obj["trips"].([]any); ok {
		return trips, true
	}
	if params, ok := obj["parameters"].(map[string]any); ok {
		if trips, ok := params["trips"].([]any); ok {
			return trips, true
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		nested, ok := obj[k].(map[string]any)
		if !ok {
			continue
		}
		if trips, ok := nested["trips"].([]any); ok {
			return trips, true
		}
	}
	return nil, false
}

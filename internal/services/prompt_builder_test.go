package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripsync/internal/models/request_models"
)

func tokyoRequest() request_models.PreferenceRequest {
	return request_models.PreferenceRequest{
		Budget:            20,
		TravelStyle:       30,
		Planning:          50,
		DepartureLocation: "Austin, Texas",
		Destination:       "Tokyo, Japan",
		StartDate:         "06/01/2026",
		EndDate:           "06/05/2026",
		MaxResults:        3,
	}
}

func TestPromptBuilder_Deterministic(t *testing.T) {
	b := NewPromptBuilder()
	assert.Equal(t, b.Build(tokyoRequest()), b.Build(tokyoRequest()))
	assert.Equal(t, NewPromptBuilder().Build(tokyoRequest()), b.Build(tokyoRequest()))
}

func TestPromptBuilder_DestinationInBothMessages(t *testing.T) {
	p := NewPromptBuilder().Build(tokyoRequest())

	constraint := "Every trip MUST be located in Tokyo, Japan."
	assert.Contains(t, p.SystemText, constraint)
	assert.Contains(t, p.UserText, constraint)
}

func TestPromptBuilder_AnywhereHasNoConstraint(t *testing.T) {
	req := tokyoRequest()
	req.Destination = ""
	p := NewPromptBuilder().Build(req)

	assert.NotContains(t, p.SystemText, "MUST be located")
	assert.NotContains(t, p.UserText, "MUST be located")
	assert.Contains(t, p.UserText, "Destination: anywhere")
}

func TestPromptBuilder_PolicyText(t *testing.T) {
	p := NewPromptBuilder().Build(tokyoRequest())

	assert.Contains(t, p.SystemText, "exactly ONE traveler")
	assert.Contains(t, p.SystemText, "in USD")
	assert.Contains(t, p.SystemText, "below $300")
	assert.Contains(t, p.SystemText, "Long international flights: at least $800")
	assert.Contains(t, p.SystemText, "flightUSD must be greater than zero")
	assert.Contains(t, p.SystemText, "Return ONLY the JSON data object")
	assert.Contains(t, p.UserText, "Departing from: Austin, Texas")
	assert.Contains(t, p.UserText, "4 nights, use hotelNights = 4")
	assert.Contains(t, p.UserText, `"costBreakdown"`)
	assert.True(t, p.JSONMode)
}

func TestPromptBuilder_PassesMaxResultsThrough(t *testing.T) {
	req := tokyoRequest()
	req.MaxResults = 9
	p := NewPromptBuilder().Build(req)
	assert.Contains(t, p.UserText, "Suggest exactly 9 trips")
}

func TestPromptBuilder_SliderDescriptions(t *testing.T) {
	req := tokyoRequest()
	req.Budget = 90
	req.TravelStyle = 80
	req.Planning = 10
	p := NewPromptBuilder().Build(req)

	assert.Contains(t, p.UserText, "Budget: 90 (luxury")
	assert.Contains(t, p.UserText, "Travel style: 80 (scenic and relaxed")
	assert.Contains(t, p.UserText, "Planning: 10 (flexible")
}

func TestTripsSchemaHint_IsValidSchema(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(TripsSchemaHint()), &schema))

	props := schema["properties"].(map[string]any)
	trips := props["trips"].(map[string]any)
	assert.Equal(t, "array", trips["type"])
	items := trips["items"].(map[string]any)
	assert.Contains(t, items["properties"], "costBreakdown")
	assert.Equal(t, TripsSchemaHint(), TripsSchemaHint())
}

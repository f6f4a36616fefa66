package request_models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripsync/pkg/utils"
)

func TestTripPreferenceRequest_Defaults(t *testing.T) {
	var req TripPreferenceRequest
	require.NoError(t, json.Unmarshal([]byte(`{"destination":"  Tokyo, Japan "}`), &req))

	p, err := req.ToPreference(4, 10)
	require.NoError(t, err)

	assert.Equal(t, PreferenceRequest{
		Budget:      50,
		TravelStyle: 50,
		Planning:    50,
		Destination: "Tokyo, Japan",
		MaxResults:  4,
	}, p)
}

func TestTripPreferenceRequest_AcceptsStringSliders(t *testing.T) {
	var req TripPreferenceRequest
	body := `{"budget":"20","travelStyle":30,"maxResults":"3"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	p, err := req.ToPreference(4, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Budget)
	assert.Equal(t, 30, p.TravelStyle)
	assert.Equal(t, 50, p.Planning)
	assert.Equal(t, 3, p.MaxResults)
}

func TestTripPreferenceRequest_ZeroIsNotDefaulted(t *testing.T) {
	var req TripPreferenceRequest
	require.NoError(t, json.Unmarshal([]byte(`{"budget":0,"planning":null}`), &req))

	p, err := req.ToPreference(4, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Budget)
	assert.Equal(t, 50, p.Planning)
}

func TestSliderValue_RejectsGarbage(t *testing.T) {
	for _, body := range []string{`{"budget":"cheap"}`, `{"planning":""}`, `{"maxResults":true}`} {
		var req TripPreferenceRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}

func TestPreferenceRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		p    PreferenceRequest
		ok   bool
	}{
		{"valid", PreferenceRequest{Budget: 0, TravelStyle: 100, Planning: 50, MaxResults: 1}, true},
		{"budget too high", PreferenceRequest{Budget: 101, MaxResults: 4}, false},
		{"planning negative", PreferenceRequest{Planning: -1, MaxResults: 4}, false},
		{"max results zero", PreferenceRequest{MaxResults: 0}, false},
		{"max results above limit", PreferenceRequest{MaxResults: 11}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate(10)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, utils.ErrInvalidPreference))
		})
	}
}

func TestPreferenceRequest_CanonicalKey(t *testing.T) {
	a := PreferenceRequest{Budget: 20, TravelStyle: 30, Planning: 50, Destination: "Tokyo", MaxResults: 4}
	b := a
	assert.Equal(t, a.CanonicalKey(), b.CanonicalKey())
	assert.Equal(t,
		`{"budget":20,"travelStyle":30,"planning":50,"departureLocation":"","destination":"Tokyo","startDate":"","endDate":"","maxResults":4}`,
		a.CanonicalKey())

	b.MaxResults = 3
	assert.NotEqual(t, a.CanonicalKey(), b.CanonicalKey())
}

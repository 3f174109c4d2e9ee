package catalog

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLesson_UnmarshalJSON_IDNormalization(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		expectedID string
	}{
		{"numeric id", `{"id": 5, "subject": "Maths", "location": "Moka", "price": 800, "spaces": 4}`, "5"},
		{"string id", `{"id": "abc123", "subject": "Maths", "location": "Moka", "price": 800, "spaces": 4}`, "abc123"},
		{"mongo style _id", `{"_id": "64f1", "subject": "Maths", "location": "Moka", "price": 800, "spaces": 4}`, "64f1"},
		{"_id wins over id", `{"_id": "64f1", "id": 5, "subject": "Maths", "location": "Moka", "price": 800, "spaces": 4}`, "64f1"},
		{"missing both", `{"subject": "Maths", "location": "Moka", "price": 800, "spaces": 4}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Lesson
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &l))
			assert.Equal(t, tt.expectedID, l.ID)
		})
	}
}

func TestLesson_UnmarshalJSON_Fields(t *testing.T) {
	payload := `{"id": 1, "subject": "Mathematics", "location": "Port Louis", "price": 1000, "spaces": 5}`

	var l Lesson
	require.NoError(t, json.Unmarshal([]byte(payload), &l))

	assert.Equal(t, "Mathematics", l.Subject)
	assert.Equal(t, "Port Louis", l.Location)
	assert.True(t, l.Price.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 5, l.Spaces)
}

func TestLesson_UnmarshalJSON_PriceAsString(t *testing.T) {
	payload := `{"id": 1, "subject": "Maths", "location": "Moka", "price": "950.50", "spaces": 5}`

	var l Lesson
	require.NoError(t, json.Unmarshal([]byte(payload), &l))
	assert.True(t, l.Price.Equal(decimal.RequireFromString("950.50")))
}

func TestLesson_UnmarshalJSON_NegativeSpacesFloored(t *testing.T) {
	payload := `{"id": 1, "subject": "Maths", "location": "Moka", "price": 800, "spaces": -3}`

	var l Lesson
	require.NoError(t, json.Unmarshal([]byte(payload), &l))
	assert.Equal(t, 0, l.Spaces)
}

func TestLesson_MarshalJSON_RoundTrip(t *testing.T) {
	in := Lesson{
		ID:       "7",
		Subject:  "Music – Ravanne",
		Location: "Vacoas",
		Price:    decimal.NewFromInt(850),
		Spaces:   3,
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":850`)

	var out Lesson
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Subject, out.Subject)
	assert.True(t, in.Price.Equal(out.Price))
	assert.Equal(t, in.Spaces, out.Spaces)
}

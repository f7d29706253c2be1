package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	type address struct {
		City string `json:"city"`
	}

	var addr address
	require.NoError(t, Value([]byte(`{"city":"Hangzhou"}`), &addr))
	assert.Equal(t, "Hangzhou", addr.City)

	assert.Error(t, Value([]byte(`"not an object"`), &addr))
}

func TestTouchedFields(t *testing.T) {
	declared := []string{"city", "zip", "country"}

	tests := []struct {
		name    string
		body    string
		touched []string
	}{
		{
			name:    "exact match",
			body:    `{"city":"Hangzhou","other":1}`,
			touched: []string{"city"},
		},
		{
			name:    "case insensitive fallback",
			body:    `{"City":"Hangzhou","ZIP":"310000"}`,
			touched: []string{"city", "zip"},
		},
		{
			name:    "explicit null is not touched",
			body:    `{"city":null,"zip":"310000"}`,
			touched: []string{"zip"},
		},
		{
			name:    "nothing matches",
			body:    `{"foo":1,"bar":2}`,
			touched: nil,
		},
		{
			name:    "empty object",
			body:    `{}`,
			touched: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			touched, err := TouchedFields([]byte(tt.body), declared)
			require.NoError(t, err)
			assert.Equal(t, tt.touched, touched)
		})
	}
}

func TestTouchedFieldsInvalidBody(t *testing.T) {
	_, err := TouchedFields([]byte(`[1,2,3]`), []string{"city"})
	assert.Error(t, err)
}

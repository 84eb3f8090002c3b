package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probe struct {
	Intent string `json:"intent"`
}

func TestExtractObjectStrict(t *testing.T) {
	var p probe
	method, ok := extractObject(`{"intent":"weather_query"}`, &p)
	require.True(t, ok)
	assert.Equal(t, parseStrict, method)
	assert.Equal(t, "weather_query", p.Intent)
}

func TestExtractObjectStripsFences(t *testing.T) {
	raw := "```json\n{\"intent\":\"packing_list\"}\n```"

	var p probe
	method, ok := extractObject(raw, &p)
	require.True(t, ok)
	assert.Equal(t, parseStrippedFences, method)
	assert.Equal(t, "packing_list", p.Intent)
}

func TestExtractObjectBalancedObject(t *testing.T) {
	raw := `Sure! Here is the classification: {"intent":"currency_conversion"} hope that helps.`

	var p probe
	method, ok := extractObject(raw, &p)
	require.True(t, ok)
	assert.Equal(t, parseBalancedObject, method)
	assert.Equal(t, "currency_conversion", p.Intent)
}

func TestExtractObjectHandlesBracesInStrings(t *testing.T) {
	raw := `noise {"intent":"itinerary_planning","notes":"user wrote {weird} stuff"} trailing`

	var p probe
	method, ok := extractObject(raw, &p)
	require.True(t, ok)
	assert.Equal(t, parseBalancedObject, method)
	assert.Equal(t, "itinerary_planning", p.Intent)
}

func TestExtractObjectFails(t *testing.T) {
	var p probe
	method, ok := extractObject("no json at all", &p)
	assert.False(t, ok)
	assert.Equal(t, parseFailed, method)
}

func TestFirstBalancedObjectNested(t *testing.T) {
	got, ok := firstBalancedObject(`x {"a":{"b":1}} y {"c":2}`)
	require.True(t, ok)
	assert.Equal(t, `{"a":{"b":1}}`, got)
}

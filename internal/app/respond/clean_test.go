package respond

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanOutputDropsPlanningPreamble(t *testing.T) {
	in := "The user wants an itinerary.\nMy plan is to list days.\nDay 1: Colosseum\nDay 2: Vatican"
	assert.Equal(t, "Day 1: Colosseum\nDay 2: Vatican", CleanOutput(in))
}

func TestCleanOutputDropsShortSoftFiller(t *testing.T) {
	in := "Okay, here we go!\nDay 1: Trastevere walk"
	assert.Equal(t, "Day 1: Trastevere walk", CleanOutput(in))
}

func TestCleanOutputKeepsLongOkayLine(t *testing.T) {
	in := "Okay, so for your five day trip to Rome with kids I would suggest starting slowly.\nDay 1: arrival"
	assert.Equal(t, in, CleanOutput(in))
}

func TestCleanOutputDropsWeatherIntro(t *testing.T) {
	in := "Here's the weather for your trip:\nExpect mild days."
	assert.Equal(t, "Expect mild days.", CleanOutput(in))
}

func TestCleanOutputOnlyLeadingRunIsDropped(t *testing.T) {
	in := "Day 1: Colosseum\nThe user might also like day trips."
	assert.Equal(t, in, CleanOutput(in))
}

func TestCleanOutputAllFillerFallsBackToOriginal(t *testing.T) {
	in := "Okay!"
	assert.Equal(t, "Okay!", CleanOutput(in))
}

func TestCleanOutputEmpty(t *testing.T) {
	assert.Equal(t, "", CleanOutput(""))
}

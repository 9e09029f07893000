package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hypewear-studio/models"
)

func TestRepairRecentersOutOfRangeAxes(t *testing.T) {
	elements := []models.DesignElement{
		{ID: "a", X: 150, Y: 40},  // x out of range
		{ID: "b", X: 30, Y: -5},   // y out of range
		{ID: "c", X: 110, Y: 200}, // both out of range
		{ID: "d", X: 0, Y: 100},   // boundary values are valid
	}

	repaired := Repair(elements)

	assert.Equal(t, 3, repaired)
	assert.Equal(t, 50.0, elements[0].X)
	assert.Equal(t, 40.0, elements[0].Y) // in-range axis untouched
	assert.Equal(t, 30.0, elements[1].X)
	assert.Equal(t, 50.0, elements[1].Y)
	assert.Equal(t, 50.0, elements[2].X)
	assert.Equal(t, 50.0, elements[2].Y)
	assert.Equal(t, 0.0, elements[3].X)
	assert.Equal(t, 100.0, elements[3].Y)
}

func TestRepairIsIdempotent(t *testing.T) {
	elements := []models.DesignElement{
		{ID: "a", X: 150, Y: -20},
		{ID: "b", X: 12, Y: 88},
	}

	first := Repair(elements)
	assert.Equal(t, 1, first)

	second := Repair(elements)
	assert.Equal(t, 0, second)
	assert.Equal(t, 50.0, elements[0].X)
	assert.Equal(t, 50.0, elements[0].Y)
}

func TestRepairEmptyAndNil(t *testing.T) {
	assert.Equal(t, 0, Repair(nil))
	assert.Equal(t, 0, Repair([]models.DesignElement{}))
}

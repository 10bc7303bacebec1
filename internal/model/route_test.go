package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDestinationTotalValue(t *testing.T) {
	dest := Destination{Items: []Item{
		// Quantidade informada: valor × quantidade.
		{Value: 10, Quantity: 3, WeightKg: 500},
		// Sem quantidade: valor × peso (venda por tonelada/kg).
		{Value: 2, Quantity: 0, WeightKg: 100},
	}}

	assert.InDelta(t, 10*3+2*100, dest.TotalValue(), 0.001)
}

func TestDestinationTotalValue_Empty(t *testing.T) {
	assert.Zero(t, Destination{}.TotalValue())
}

func TestRouteTotalWeightKg(t *testing.T) {
	route := Route{Destinations: []Destination{
		{Items: []Item{
			{WeightKg: 50, Quantity: 4},
			// Quantidade ausente conta como 1.
			{WeightKg: 30, Quantity: 0},
		}},
		{Items: []Item{
			{WeightKg: 10, Quantity: 2},
		}},
	}}

	assert.InDelta(t, 50*4+30+10*2, route.TotalWeightKg(), 0.001)
}

func TestRouteTotalValue_SumsDestinations(t *testing.T) {
	route := Route{Destinations: []Destination{
		{Items: []Item{{Value: 5, Quantity: 2}}},
		{Items: []Item{{Value: 7, Quantity: 1}}},
	}}

	assert.InDelta(t, 17, route.TotalValue(), 0.001)
}

func TestRouteNormalize(t *testing.T) {
	route := Route{Status: "em_andamento"}
	route.Normalize()
	assert.Equal(t, StatusEmPercurso, route.Status)
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	cases := []struct {
		raw  WorkStatus
		want WorkStatus
	}{
		{"pendente", StatusPendente},
		{"em_carregamento", StatusEmCarregamento},
		{"em_percurso", StatusEmPercurso},
		{"entregue", StatusEntregue},
		{"planejada", StatusPendente},
		{"em_andamento", StatusEmPercurso},
		{"concluida", StatusEntregue},
		{"cancelada", StatusEntregue},
		{"  Planejada  ", StatusPendente},
		{"EM_ANDAMENTO", StatusEmPercurso},
		{"", ""},
		{"rascunho", "rascunho"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeStatus(tc.raw), "raw=%q", tc.raw)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusEntregue.IsTerminal())
	assert.True(t, WorkStatus("concluida").IsTerminal())
	assert.True(t, WorkStatus("cancelada").IsTerminal())
	assert.False(t, StatusPendente.IsTerminal())
	assert.False(t, StatusEmCarregamento.IsTerminal())
	assert.False(t, StatusEmPercurso.IsTerminal())
	assert.False(t, WorkStatus("planejada").IsTerminal())
}

func TestIsActive(t *testing.T) {
	assert.True(t, StatusPendente.IsActive())
	assert.True(t, StatusEmCarregamento.IsActive())
	assert.True(t, StatusEmPercurso.IsActive())
	assert.True(t, WorkStatus("em_andamento").IsActive())
	assert.False(t, StatusEntregue.IsActive())
	assert.False(t, WorkStatus("rascunho").IsActive())
}

func TestStatusFilterValues(t *testing.T) {
	values := StatusFilterValues(StatusEntregue)
	assert.ElementsMatch(t, []WorkStatus{"entregue", "concluida", "cancelada"}, values)

	values = StatusFilterValues("planejada")
	assert.ElementsMatch(t, []WorkStatus{"pendente", "planejada"}, values)

	values = StatusFilterValues(StatusEmCarregamento)
	assert.ElementsMatch(t, []WorkStatus{"em_carregamento"}, values)
}

func TestValidTruckStatus(t *testing.T) {
	for _, s := range []TruckStatus{TruckDisponivel, TruckEmRota, TruckParado, TruckManutencao} {
		assert.True(t, ValidTruckStatus(s))
	}
	assert.False(t, ValidTruckStatus("voando"))
	assert.False(t, ValidTruckStatus(""))
}

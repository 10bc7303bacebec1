package model

import "strings"

// WorkStatus é o vocabulário corrente de status compartilhado por entregas e
// rotas. Registros antigos podem carregar o vocabulário legado (planejada,
// em_andamento, concluida, cancelada), aceito na leitura e normalizado aqui;
// código novo nunca grava os aliases.
type WorkStatus string

const (
	StatusPendente       WorkStatus = "pendente"
	StatusEmCarregamento WorkStatus = "em_carregamento"
	StatusEmPercurso     WorkStatus = "em_percurso"
	StatusEntregue       WorkStatus = "entregue"
)

var legacyStatusAliases = map[WorkStatus]WorkStatus{
	"planejada":    StatusPendente,
	"em_andamento": StatusEmPercurso,
	// concluida e cancelada são ambos terminais; o vocabulário corrente não
	// tem estado de cancelamento, então os dois colapsam em entregue.
	"concluida": StatusEntregue,
	"cancelada": StatusEntregue,
}

// NormalizeStatus colapsa aliases legados no enum corrente de quatro valores.
// Valores desconhecidos passam inalterados.
func NormalizeStatus(raw WorkStatus) WorkStatus {
	s := WorkStatus(strings.ToLower(strings.TrimSpace(string(raw))))
	if canonical, ok := legacyStatusAliases[s]; ok {
		return canonical
	}
	return s
}

// StatusFilterValues devolve o valor canônico e os aliases legados que
// normalizam para ele, para uso em cláusulas IN de filtros e contagens.
func StatusFilterValues(s WorkStatus) []WorkStatus {
	canonical := NormalizeStatus(s)
	values := []WorkStatus{canonical}
	for alias, target := range legacyStatusAliases {
		if target == canonical {
			values = append(values, alias)
		}
	}
	return values
}

// IsTerminal indica se o status encerra a entidade para fins de atribuição
// corrente: uma vez entregue, a entrega/rota nunca mais é "atual".
func (s WorkStatus) IsTerminal() bool {
	return NormalizeStatus(s) == StatusEntregue
}

// IsActive indica pertencimento ao conjunto ativo usado na resolução de
// atribuições; o mesmo conjunto de três valores vale para entregas e rotas.
func (s WorkStatus) IsActive() bool {
	switch NormalizeStatus(s) {
	case StatusPendente, StatusEmCarregamento, StatusEmPercurso:
		return true
	}
	return false
}

// TruckStatus é o vocabulário de status dos caminhões.
type TruckStatus string

const (
	TruckDisponivel TruckStatus = "disponivel"
	TruckEmRota     TruckStatus = "em_rota"
	TruckParado     TruckStatus = "parado"
	TruckManutencao TruckStatus = "manutencao"
)

// ValidTruckStatus valida entrada de formulário antes de qualquer mutação.
func ValidTruckStatus(s TruckStatus) bool {
	switch s {
	case TruckDisponivel, TruckEmRota, TruckParado, TruckManutencao:
		return true
	}
	return false
}

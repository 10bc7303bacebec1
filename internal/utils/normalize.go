package utils

import (
	"strconv"
	"strings"
)

// NormalizePlate normaliza a placa do caminhão para um formato único.
// Remove espaços, hífens e converte para maiúsculas.
func NormalizePlate(raw string) string {
	normalized := strings.TrimSpace(raw)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ToUpper(normalized)
	return normalized
}

// NormalizeID converte um identificador vindo de JSON para a forma canônica
// em string. Coleções exportadas do sistema antigo carregam ids ora como
// string, ora como número.
func NormalizeID(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// SameID compara dois ids já canonizados, tolerando espaços residuais.
func SameID(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return a == b
}

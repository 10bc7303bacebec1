package model

import (
	"encoding/json"

	"frota-service/internal/utils"
)

// FlexID aceita ids vindos do cliente tanto como string quanto como número e
// os canoniza em string uma única vez, na fronteira JSON. Internamente todo
// id é string; comparações frouxas não existem depois deste ponto.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = FlexID(utils.NormalizeID(raw))
	return nil
}

func (f FlexID) String() string {
	return string(f)
}

// Ptr devolve nil para ids vazios, preservando a semântica "sem atribuição".
func (f FlexID) Ptr() *string {
	if f == "" {
		return nil
	}
	s := string(f)
	return &s
}

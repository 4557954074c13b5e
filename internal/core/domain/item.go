package domain

import "time"

// ItemStatus represents the operational state of a piece of equipment.
// Values are kept in Portuguese to match the stored data and the UI.
type ItemStatus string

const (
	StatusOperacao   ItemStatus = "Em Operação"
	StatusInativo    ItemStatus = "Inativo"
	StatusManutencao ItemStatus = "Em Manutenção"
)

// ValidItemStatus reports whether s is a recognised status.
func ValidItemStatus(s ItemStatus) bool {
	switch s {
	case StatusOperacao, StatusInativo, StatusManutencao:
		return true
	}
	return false
}

// Item is a piece of equipment tracked for maintenance.
type Item struct {
	ID              string     `json:"id" bson:"_id,omitempty"`
	Nome            string     `json:"nome" bson:"nome"`
	Descricao       string     `json:"descricao" bson:"descricao"`
	Localizacao     string     `json:"localizacao" bson:"localizacao"`
	Status          ItemStatus `json:"status" bson:"status"`
	LastMaintenance time.Time  `json:"last_maintenance,omitempty" bson:"last_maintenance,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	CreatedBy       string     `json:"created_by,omitempty" bson:"created_by,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	UpdatedBy       string     `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
}

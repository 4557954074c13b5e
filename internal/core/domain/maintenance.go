package domain

import "time"

// MaintenanceType classifies a maintenance intervention.
type MaintenanceType string

const (
	MaintenancePreventiva  MaintenanceType = "Preventiva"
	MaintenanceCorretiva   MaintenanceType = "Corretiva"
	MaintenanceEmergencial MaintenanceType = "Emergencial"
)

// ValidMaintenanceType reports whether t is a recognised type.
func ValidMaintenanceType(t MaintenanceType) bool {
	switch t {
	case MaintenancePreventiva, MaintenanceCorretiva, MaintenanceEmergencial:
		return true
	}
	return false
}

// Maintenance records a single maintenance event performed on an item.
// Logging one returns the item to "Em Operação" and stamps its last
// maintenance date.
type Maintenance struct {
	ID            string          `json:"id" bson:"_id,omitempty"`
	ItemID        string          `json:"item_id" bson:"item_id"`
	Type          MaintenanceType `json:"type" bson:"type"`
	Description   string          `json:"description" bson:"description"`
	PerformedAt   time.Time       `json:"performed_at" bson:"performed_at"`
	Technician    string          `json:"technician" bson:"technician"`
	NextScheduled *time.Time      `json:"next_scheduled,omitempty" bson:"next_scheduled,omitempty"`
	CreatedAt     time.Time       `json:"created_at" bson:"created_at"`
	CreatedBy     string          `json:"created_by" bson:"created_by"`
}

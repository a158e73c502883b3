package entities

import "time"

// EquipmentHistory - запись аудита. Только добавляется, никогда не меняется.
type EquipmentHistory struct {
	ID          string    `json:"id" db:"id"`
	EquipmentID string    `json:"equipment_id" db:"equipment_id"`
	Action      string    `json:"action" db:"action"`
	Description string    `json:"description" db:"description"`
	User        string    `json:"user" db:"actor"`
	Timestamp   time.Time `json:"timestamp" db:"created_at"`
}

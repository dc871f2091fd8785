package models

import (
	"github.com/google/uuid"
)

// VehicleType enumerates the supported vehicle categories.
type VehicleType string

const (
	VehicleTypeCar        VehicleType = "car"
	VehicleTypeMotorcycle VehicleType = "motorcycle"
)

// ValidVehicleType reports whether t is a known vehicle type.
func ValidVehicleType(t VehicleType) bool {
	return t == VehicleTypeCar || t == VehicleTypeMotorcycle
}

// Vehicle belongs to a client. It has no organization_id of its own: tenant
// ownership is derived through Client.OrganizationID.
type Vehicle struct {
	BaseModel

	VehicleType VehicleType `json:"vehicle_type" gorm:"type:varchar(20);not null"`
	Plate       string      `json:"plate" gorm:"type:varchar(20);not null;index"`
	Model       string      `json:"model" gorm:"type:varchar(100);not null"`
	Year        *int        `json:"year"`
	Color       string      `json:"color" gorm:"type:varchar(50)"`

	ClientID uuid.UUID `json:"client_id" gorm:"type:uuid;not null;index"`
	Client   *Client   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

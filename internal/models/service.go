package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is a wash service offered by an organization for a vehicle type.
type Service struct {
	BaseModel

	Name        string          `json:"name" gorm:"type:varchar(100);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	// Duration is the expected service time in minutes.
	Duration    int         `json:"duration" gorm:"not null"`
	VehicleType VehicleType `json:"vehicle_type" gorm:"type:varchar(20);not null"`

	OrganizationID uuid.UUID     `json:"organization_id" gorm:"type:uuid;not null;index"`
	Organization   *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

func (Service) TableName() string {
	return "services"
}

func (s *Service) OwnerOrganization() uuid.UUID {
	return s.OrganizationID
}

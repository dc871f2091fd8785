package models

import (
	"github.com/google/uuid"
)

// Branch is a physical location of an organization.
type Branch struct {
	BaseModel

	Name        string `json:"name" gorm:"type:varchar(255);not null;index"`
	Code        string `json:"code" gorm:"type:varchar(50);not null"`
	Description string `json:"description" gorm:"type:varchar(500)"`

	Address string `json:"address" gorm:"type:varchar(500);not null"`
	Phone   string `json:"phone" gorm:"type:varchar(20)"`
	Email   string `json:"email" gorm:"type:varchar(255)"`

	ManagerName  string `json:"manager_name" gorm:"type:varchar(255)"`
	ManagerPhone string `json:"manager_phone" gorm:"type:varchar(20)"`

	IsMain bool `json:"is_main" gorm:"not null;default:false"`

	OrganizationID uuid.UUID     `json:"organization_id" gorm:"type:uuid;not null;index"`
	Organization   *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

func (Branch) TableName() string {
	return "branches"
}

func (b *Branch) OwnerOrganization() uuid.UUID {
	return b.OrganizationID
}

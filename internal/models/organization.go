package models

import (
	"github.com/google/uuid"
)

// OrganizationType distinguishes the main administrator organization from
// sub-organizations.
type OrganizationType string

const (
	OrganizationTypeMain   OrganizationType = "main"
	OrganizationTypeBranch OrganizationType = "branch"
)

// Organization is the tenant isolation root.
type Organization struct {
	BaseModel

	Name      string `json:"name" gorm:"type:varchar(255);not null;index"`
	LegalName string `json:"legal_name" gorm:"type:varchar(255)"`
	TaxID     string `json:"tax_id" gorm:"type:varchar(50);index"`

	Email   string `json:"email" gorm:"type:varchar(255)"`
	Phone   string `json:"phone" gorm:"type:varchar(20)"`
	Address string `json:"address" gorm:"type:text"`
	City    string `json:"city" gorm:"type:varchar(100)"`
	Website string `json:"website" gorm:"type:varchar(255)"`
	LogoURL string `json:"logo_url" gorm:"type:varchar(500)"`

	OrganizationType     OrganizationType `json:"organization_type" gorm:"type:varchar(20);not null;default:'branch'"`
	ParentOrganizationID *uuid.UUID       `json:"parent_organization_id" gorm:"type:uuid"`

	ParentOrganization *Organization `json:"parent_organization,omitempty" gorm:"foreignKey:ParentOrganizationID"`
}

func (Organization) TableName() string {
	return "organizations"
}

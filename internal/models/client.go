package models

import (
	"github.com/google/uuid"
)

// Client is a customer of the organization.
type Client struct {
	BaseModel

	FullName string `json:"full_name" gorm:"type:varchar(255);not null;index"`
	Email    string `json:"email" gorm:"type:varchar(255)"`
	Phone    string `json:"phone" gorm:"type:varchar(20);not null"`
	Address  string `json:"address" gorm:"type:text"`

	OrganizationID uuid.UUID     `json:"organization_id" gorm:"type:uuid;not null;index"`
	Organization   *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`

	Vehicles []Vehicle `json:"vehicles,omitempty" gorm:"foreignKey:ClientID"`
}

func (Client) TableName() string {
	return "clients"
}

func (c *Client) OwnerOrganization() uuid.UUID {
	return c.OrganizationID
}

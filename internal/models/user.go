package models

import (
	"github.com/google/uuid"
)

// UserRole enumerates the access levels of an authentication principal.
type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleAdmin      UserRole = "admin"
	RoleManager    UserRole = "manager"
	RoleEmployee   UserRole = "employee"
	RoleViewer     UserRole = "viewer"
)

// ValidUserRole reports whether r is a known role.
func ValidUserRole(r UserRole) bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleManager, RoleEmployee, RoleViewer:
		return true
	}
	return false
}

// User is the authentication principal.
type User struct {
	BaseModel

	Email          string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	HashedPassword string `json:"-" gorm:"type:varchar(255);not null"`

	FullName string `json:"full_name" gorm:"type:varchar(255);not null"`
	Phone    string `json:"phone" gorm:"type:varchar(20)"`

	IsSuperuser   bool     `json:"is_superuser" gorm:"not null;default:false"`
	Role          UserRole `json:"role" gorm:"type:varchar(20);not null;default:'employee'"`
	EmailVerified bool     `json:"email_verified" gorm:"not null;default:false"`

	OrganizationID uuid.UUID     `json:"organization_id" gorm:"type:uuid;not null;index"`
	Organization   *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) OwnerOrganization() uuid.UUID {
	return u.OrganizationID
}

// CanAccessOrganization reports whether the user may read rows owned by the
// given organization. Superusers see everything.
func (u *User) CanAccessOrganization(orgID uuid.UUID) bool {
	return u.IsSuperuser || u.OrganizationID == orgID
}

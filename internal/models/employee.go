package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType enumerates Colombian identity document types.
type DocumentType string

const (
	DocumentTypeCC DocumentType = "CC"
	DocumentTypeCE DocumentType = "CE"
	DocumentTypeTI DocumentType = "TI"
	DocumentTypePP DocumentType = "PP"
)

// ValidDocumentType reports whether t is a known document type.
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentTypeCC, DocumentTypeCE, DocumentTypeTI, DocumentTypePP:
		return true
	}
	return false
}

// EmployeeStatus is the employment status, independent of the soft-delete flag.
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

// Employee is a worker of the organization, optionally attached to a branch.
type Employee struct {
	BaseModel

	FullName       string       `json:"full_name" gorm:"type:varchar(255);not null;index"`
	DocumentType   DocumentType `json:"document_type" gorm:"type:varchar(5);not null"`
	DocumentNumber string       `json:"document_number" gorm:"type:varchar(50);not null"`
	Email          string       `json:"email" gorm:"type:varchar(255)"`
	Phone          string       `json:"phone" gorm:"type:varchar(20);not null"`
	Address        string       `json:"address" gorm:"type:varchar(500)"`

	Position  string         `json:"position" gorm:"type:varchar(100);not null"`
	StartDate *time.Time     `json:"start_date" gorm:"type:date"`
	Status    EmployeeStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`

	OrganizationID uuid.UUID     `json:"organization_id" gorm:"type:uuid;not null;index"`
	Organization   *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`

	BranchID *uuid.UUID `json:"branch_id" gorm:"type:uuid"`
	Branch   *Branch    `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) OwnerOrganization() uuid.UUID {
	return e.OrganizationID
}

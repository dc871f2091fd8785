package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel carries the columns shared by every entity: a server-assigned
// uuid primary key, timestamps and the soft-delete flag.
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
}

// BeforeCreate assigns the id and forces the active flag on. Callers never
// control either value; soft deletion is the only way to clear the flag.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.IsActive = true
	return nil
}

// GetID returns the primary key.
func (b *BaseModel) GetID() uuid.UUID {
	return b.ID
}

// ActiveFlag reports whether the row is soft-deleted.
func (b *BaseModel) ActiveFlag() bool {
	return b.IsActive
}

// Deactivate marks the row soft-deleted.
func (b *BaseModel) Deactivate() {
	b.IsActive = false
}

// TenantOwned is implemented by entities that carry their own
// organization_id. Vehicles deliberately do not implement it; their tenant
// is derived through the owning client.
type TenantOwned interface {
	OwnerOrganization() uuid.UUID
}

package models

import "time"

// Part types for custom pipe assemblies.
const (
	PartTypeStarter = "starter"
	PartTypeRing    = "ring"
	PartTypeTop     = "top"
)

// Product represents a finished catalog product. A product may optionally
// reference a default part combination (starter/ring/top) for display.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,min=3,max=100"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Price       float64   `json:"price" gorm:"not null;check:price >= 0" validate:"required,gt=0"`
	Version     string    `json:"version" gorm:"type:varchar(50)"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(255)"`
	StarterID   *uint     `json:"starter_id"`
	RingID      *uint     `json:"ring_id"`
	TopID       *uint     `json:"top_id"`
	Stock       int       `json:"stock" validate:"gte=0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Part represents one independently priced component of a custom assembly.
type Part struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Type     string  `json:"type" gorm:"type:varchar(20);not null;index" validate:"required,oneof=starter ring top"`
	Name     string  `json:"name" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Price    float64 `json:"price" gorm:"not null;check:price >= 0" validate:"gte=0"`
	ImageURL string  `json:"image_url" gorm:"type:varchar(255)"`
	Stock    int     `json:"stock" gorm:"default:100"`
}

package models

import "time"

// Food is a catalog entry with nutrition facts. Values are expected to be
// non-negative but the store does not enforce it.
type Food struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null;index" json:"name"`
	Calories      float64   `gorm:"not null;default:0" json:"calories"`
	Protein       float64   `gorm:"not null;default:0" json:"protein"`
	Carbohydrates float64   `gorm:"not null;default:0" json:"carbohydrates"`
	Fat           float64   `gorm:"not null;default:0" json:"fat"`
	Sodium        float64   `gorm:"not null;default:0" json:"sodium"`
	Sugar         float64   `gorm:"not null;default:0" json:"sugar"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

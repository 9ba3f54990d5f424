package models

import "time"

// User owns zero or more meals. Deleting a user that still owns meals is
// rejected by the meals.user_id foreign key (ON DELETE RESTRICT).
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	Age       int       `gorm:"not null;default:0" json:"age"`
	Weight    float64   `gorm:"not null;default:0" json:"weight"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// Meal belongs to exactly one user and lists its foods through MealFood rows.
type Meal struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Type      string         `gorm:"size:100;not null" json:"type"`
	Date      datatypes.Date `gorm:"not null;index" json:"date"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	User      *User          `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// MealFood links a meal to a food. The composite primary key keeps each
// (meal, food) pair unique; both sides cascade on delete.
type MealFood struct {
	MealID uint  `gorm:"primaryKey;autoIncrement:false" json:"meal_id"`
	FoodID uint  `gorm:"primaryKey;autoIncrement:false;index" json:"food_id"`
	Meal   *Meal `gorm:"foreignKey:MealID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Food   *Food `gorm:"foreignKey:FoodID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (MealFood) TableName() string {
	return "meal_foods"
}

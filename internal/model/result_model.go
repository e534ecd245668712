package model

import (
	"time"

	"gorm.io/datatypes"
)

// PitchResult stores one user record as a JSON document.
type PitchResult struct {
	UserName  string         `gorm:"type:varchar(255);primaryKey"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (PitchResult) TableName() string {
	return "pitch_results"
}

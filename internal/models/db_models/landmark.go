package db_models

import "github.com/lib/pq"

// Landmark is a monastery visitors search around. ID is a stable slug.
type Landmark struct {
	ID       string  `gorm:"primaryKey;size:64"`
	Name     string  `gorm:"not null"`
	Location string  `gorm:"size:255"`
	District string  `gorm:"index"`
	Lat      float64 `gorm:"not null"`
	Lng      float64 `gorm:"not null"`
	Category string  `gorm:"default:'monastery'"`
	// Aliases are alternate slugs and local names ("pemiongchi").
	Aliases   pq.StringArray `gorm:"type:text[]"`
	CreatedAt int64          `gorm:"autoCreateTime"`
	UpdatedAt int64          `gorm:"autoUpdateTime"`
}

package models

// Category is a globally unique transaction label.
type Category struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

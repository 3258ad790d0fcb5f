package models

import "time"

// Employee represents one staff record. The id is assigned by the active
// backend's allocator at creation time and never changes afterwards.
// ImagePath is the public-relative location of an uploaded image and stays
// nil until one is uploaded.
type Employee struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement" bson:"id"`
	ImagePath   *string   `json:"imagePath" bson:"imagePath"`
	Name        string    `json:"name" gorm:"not null" bson:"name"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null" bson:"email"`
	Mobile      string    `json:"mobile" bson:"mobile"`
	Designation string    `json:"designation" bson:"designation"`
	Gender      string    `json:"gender" bson:"gender"`
	Courses     []string  `json:"courses" gorm:"serializer:json" bson:"courses"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// EmployeeUpdate carries the full replacement set of updatable fields for an
// employee. ImagePath holds the resolved effective path: either a freshly
// stored upload or the value the row already had. ID and CreatedAt are never
// part of an update.
type EmployeeUpdate struct {
	Name        string
	Email       string
	Mobile      string
	Designation string
	Gender      string
	Courses     []string
	ImagePath   *string
}

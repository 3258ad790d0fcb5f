package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User holds a set of login credentials for the admin panel.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey" bson:"-"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null" bson:"username"`
	PasswordHash string    `json:"-" gorm:"not null" bson:"passwordHash"` // "-" means don't include in JSON responses
	CreatedAt    time.Time `json:"created_at" bson:"createdAt"`
}

// SetPassword hashes the given password and sets it on the user model.
func (u *User) SetPassword(password string, cost int) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the given password matches the user's hashed password.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

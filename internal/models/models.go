package models

import (
	"time"
)

// User is an API account. The bcrypt hash never serializes and the type
// exposes nothing that returns it to handlers.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"      json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null"  json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"                      json:"-"`
	IsAdmin      bool      `gorm:"default:false"                 json:"is_admin"`
	CreatedAt    time.Time `json:"date_created"`
	UpdatedAt    time.Time `json:"date_modified"`
}

type Book struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	Title     string    `gorm:"size:150;not null"            json:"title"`
	ISBN      string    `gorm:"size:10;uniqueIndex;not null" json:"isbn"`
	CreatedAt time.Time `json:"date_created"`
	UpdatedAt time.Time `json:"date_modified"`
}

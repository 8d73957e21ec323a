package postgres

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Name      string  `gorm:"size:255;not null"`
	Email     string  `gorm:"size:255;not null;uniqueIndex"`
	Password  string  `gorm:"size:255;not null"`                     // bcrypt hash
	APIToken  *string `gorm:"column:api_token;size:255;uniqueIndex"` // NULL until issued; NULLs never collide
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// ArticleSchema represents the database schema for the articles table.
type ArticleSchema struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"size:255;not null"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the ArticleSchema model.
func (ArticleSchema) TableName() string {
	return "articles"
}

// AutoMigrate creates or updates the users and articles tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserSchema{}, &ArticleSchema{})
}

// isUniqueViolation reports whether err came from a unique constraint.
// Not every dialector translates errors, so driver messages are checked as well.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE 23505")
}

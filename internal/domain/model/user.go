package model

import "time"

type User struct {
	ID           int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string       `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	FirstName    string       `gorm:"type:varchar(150)" json:"first_name"`
	LastName     string       `gorm:"type:varchar(150)" json:"last_name"`
	Email        string       `gorm:"type:varchar(254)" json:"email"`
	PasswordHash string       `gorm:"column:password_hash;not null" json:"-"`
	IsActive     bool         `gorm:"not null;default:true" json:"is_active"`
	IsSuperuser  bool         `gorm:"not null;default:false" json:"is_superuser"`
	Permissions  []Permission `gorm:"many2many:user_permissions;constraint:OnDelete:CASCADE" json:"-"`
	LastLoginAt  *time.Time   `json:"last_login_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

package model

import "time"

// ログインセッション。IDはアクセストークンのjtiになる。
// ログアウトでRevokedAtを埋め、以後そのトークンは使えない。
type Session struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"user_id"`
	User      User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserAgent string     `gorm:"type:varchar(255);not null" json:"user_agent"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expires_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

package database

import "time"

// Target is a registered remote host a client id maps to. The password is
// fernet-encrypted at rest; it is decrypted only on the connect path.
type Target struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID  string    `gorm:"uniqueIndex;not null;size:64" json:"client_id"`
	Name      string    `json:"name"`
	Host      string    `gorm:"not null" json:"host"`
	Port      int       `gorm:"not null;default:22" json:"port"`
	Username  string    `gorm:"not null" json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Setting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

package models

import "time"

// AdminAccount is an operator-provisioned login for the fulfillment dashboard.
// There is no self-service registration; the bootstrap path in the auth
// service inserts at most one account from environment configuration.
type AdminAccount struct {
	AdminID      int       `gorm:"primaryKey;column:admin_id" json:"adminId"`
	Email        string    `gorm:"column:email;unique" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (AdminAccount) TableName() string {
	return "admin_accounts"
}

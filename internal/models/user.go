package models

type UserRole string

const (
	UserRoleJobseeker UserRole = "jobseeker"
	UserRoleEmployer  UserRole = "employer"
	UserRoleAdmin     UserRole = "admin"
)

type UserStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null"`
	Name         string     `gorm:"not null"`
	Avatar       string
	Title        string // e.g. "Senior Backend Engineer"
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'jobseeker'"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'"`
	IsVerified   bool       `gorm:"default:false"` // verified employment; verified reviews auto-approve
}

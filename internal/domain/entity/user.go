package entity

// User represents a cashier account in the system
type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Username       string `gorm:"size:255;not null" json:"username"`
	Login          string `gorm:"size:255;unique;not null" json:"login"`
	HashedPassword string `gorm:"size:255;not null" json:"hashed_password"`

	// Relationships
	Receipts []Receipt `gorm:"foreignKey:UserID" json:"-"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

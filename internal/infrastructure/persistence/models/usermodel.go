package models

// RoleModel represents the database persistence model for roles
type RoleModel struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"uniqueIndex;not null;size:64"`
}

func (RoleModel) TableName() string {
	return TableRoles
}

// UserModel represents the database persistence model for console accounts
type UserModel struct {
	ID       uint      `gorm:"primarykey"`
	Username string    `gorm:"uniqueIndex;not null;size:64"`
	Password string    `gorm:"not null;size:255"`
	RoleID   uint      `gorm:"not null;index"`
	Role     RoleModel `gorm:"foreignKey:RoleID"`
}

func (UserModel) TableName() string {
	return TableUsers
}

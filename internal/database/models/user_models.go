package models

import "time"

type User struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string     `gorm:"uniqueIndex;not null" json:"username"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	Firstname string     `gorm:"not null" json:"firstname"`
	Lastname  string     `gorm:"not null" json:"lastname"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt *time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type Employee struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Position  string     `gorm:"column:position" json:"position"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`
	CreatedAt *time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Assets []EmployeeAsset `gorm:"foreignKey:EmployeeID" json:"assets"`
}

// EmployeeAsset is one row per product currently held by an employee. The
// set of rows for an employee must always match the products whose
// currentOwner is that employee.
type EmployeeAsset struct {
	EmployeeID int64     `gorm:"primaryKey;autoIncrement:false" json:"employeeId"`
	ProductID  int64     `gorm:"primaryKey;autoIncrement:false" json:"productId"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TrackingMode string

const (
	TrackingModeAsset      TrackingMode = "ASSET"
	TrackingModeConsumable TrackingMode = "CONSUMABLE"
)

type ProductStatus string

const (
	StatusAvailable   ProductStatus = "AVAILABLE"
	StatusAssigned    ProductStatus = "ASSIGNED"
	StatusUnusable    ProductStatus = "UNUSABLE"
	StatusMaintenance ProductStatus = "MAINTENANCE"
)

type MovementAction string

const (
	ActionIn       MovementAction = "IN"
	ActionOut      MovementAction = "OUT"
	ActionUsed     MovementAction = "USED"
	ActionReturn   MovementAction = "RETURN"
	ActionDisburst MovementAction = "DISBURST"
	ActionDeleted  MovementAction = "DELETED"
)

type ProductOrigin string

const (
	OriginRequisition ProductOrigin = "Requisition"
	OriginManualEntry ProductOrigin = "Manual Entry"
)

type Category struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"uniqueIndex;not null" json:"name"`
	Description *string    `gorm:"size:255" json:"description"`
	CreatedAt   *time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type Vendor struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string     `gorm:"uniqueIndex;not null" json:"name"`
	ContactPerson *string    `gorm:"size:100" json:"contactPerson"`
	Phone         *string    `gorm:"size:50" json:"phone"`
	Email         *string    `gorm:"size:100" json:"email"`
	Address       *string    `gorm:"size:255" json:"address"`
	IsActive      bool       `gorm:"default:true" json:"isActive"`
	CreatedAt     *time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     *time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ItemType is the catalog definition of a kind of item. The tracking mode
// decides whether units are individually tracked products (ASSET) or a bare
// aggregate quantity (CONSUMABLE).
type ItemType struct {
	ID           int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string       `gorm:"uniqueIndex;not null" json:"name"`
	CategoryID   int64        `gorm:"not null" json:"categoryId"`
	TrackingMode TrackingMode `gorm:"size:20;not null" json:"trackingMode"`
	IsActive     bool         `gorm:"default:true" json:"isActive"`
	CreatedAt    *time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    *time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Product is one physical unit of an ASSET type. ProductID is the generated
// human-readable identifier (type code + zero-padded serial) and never
// changes after first persistence.
type Product struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID      string          `gorm:"uniqueIndex;size:20;not null" json:"productId"`
	Name           string          `gorm:"not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	TypeID         int64           `gorm:"not null;index" json:"typeId"`
	Price          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	Status         ProductStatus   `gorm:"size:20;not null" json:"status"`
	CurrentOwnerID *int64          `gorm:"index" json:"currentOwner"`
	Origin         ProductOrigin   `gorm:"size:20;not null" json:"origin"`
	RequisitionID  *int64          `json:"requisitionId"`
	CreatedAt      *time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      *time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`

	Type           *ItemType       `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	CurrentOwner   *Employee       `gorm:"foreignKey:CurrentOwnerID" json:"owner,omitempty"`
	CustodyHistory []CustodyRecord `gorm:"foreignKey:ProductID" json:"history,omitempty"`
}

// CustodyRecord is one handover of a product to an employee. ReturnDate and
// ReturnBy stay null while the product is still out.
type CustodyRecord struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID      int64      `gorm:"not null;index" json:"-"`
	EmployeeID     int64      `gorm:"not null" json:"employee"`
	HandoverDate   time.Time  `gorm:"not null" json:"handoverDate"`
	HandedOverByID int64      `gorm:"not null" json:"handedOverBy"`
	ReturnDate     *time.Time `json:"returnDate"`
	ReturnByID     *int64     `json:"returnBy"`
}

// InventoryRecord is the per-type stock ledger, exactly one row per ItemType.
// For ASSET types Quantity is total units ever added minus deletions and the
// three status counters partition the in-use part; for CONSUMABLE types
// Quantity is remaining stock and UsedQuantity is total consumed. The two
// arithmetics intentionally differ.
type InventoryRecord struct {
	ID                  int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	TypeID              int64      `gorm:"uniqueIndex;not null" json:"typeId"`
	Quantity            int64      `gorm:"not null;default:0" json:"quantity"`
	UsedQuantity        int64      `gorm:"not null;default:0" json:"usedQuantity"`
	UnusableQuantity    int64      `gorm:"not null;default:0" json:"unUseableQuantity"`
	MaintenanceQuantity int64      `gorm:"not null;default:0" json:"underMaintenanceQuantity"`
	CreatedAt           *time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt           *time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Type      *ItemType       `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	Movements []StockMovement `gorm:"foreignKey:InventoryID" json:"history,omitempty"`
}

// StockMovement is an immutable audit row, appended once per ledger call.
type StockMovement struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	InventoryID   int64          `gorm:"not null;index" json:"-"`
	Action        MovementAction `gorm:"size:20;not null" json:"action"`
	Quantity      int64          `gorm:"not null" json:"quantity"`
	RequisitionID *int64         `json:"requisitionId"`
	UserID        int64          `gorm:"not null" json:"user"`
	Date          time.Time      `gorm:"not null" json:"date"`
}

// SerialCounter backs identifier generation. Seq is only ever touched by an
// atomic increment-and-read, one row per partition key (type code or
// requisition month prefix).
type SerialCounter struct {
	Key string `gorm:"primaryKey;size:32"`
	Seq int64  `gorm:"not null"`
}

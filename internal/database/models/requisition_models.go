package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type RequisitionStatus string

const (
	RequisitionRequested RequisitionStatus = "Requested"
	RequisitionApproved  RequisitionStatus = "Approved"
	RequisitionRejected  RequisitionStatus = "Rejected"
)

type StringArray []string

func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = []string{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan StringArray: %v", value)
	}

	return json.Unmarshal(bytes, a)
}

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Requisition is an approval-gated purchase request. RequisitionID is the
// generated REQ+MMYY+sequence identifier; totals are recomputed from the
// items on every create and action transition.
type Requisition struct {
	ID                     int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	RequisitionID          string            `gorm:"uniqueIndex;size:20;not null" json:"requisitionID"`
	Status                 RequisitionStatus `gorm:"size:20;not null" json:"status"`
	TotalQuantityRequested int64             `gorm:"not null;default:0" json:"totalQuantityRequested"`
	TotalQuantityApproved  int64             `gorm:"not null;default:0" json:"totalQuantityApproved"`
	TotalEstimatedCost     decimal.Decimal   `gorm:"type:decimal(18,2);not null" json:"totalEstimatedCost"`
	TotalApprovedCost      decimal.Decimal   `gorm:"type:decimal(18,2);not null" json:"totalApprovedCost"`
	RequestedByID          int64             `gorm:"not null" json:"requestedBy"`
	ActionByID             *int64            `json:"actionBy"`
	ActionAt               *time.Time        `json:"actionAt"`
	CreatedAt              *time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt              *time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`

	Items []RequisitionItem `gorm:"foreignKey:RequisitionID" json:"items"`
}

// RequisitionItem is one line of a requisition. AddedToInventory counts the
// units already turned into inventory and may never exceed QuantityApproved.
// A type appears at most once per requisition.
type RequisitionItem struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	RequisitionID     int64           `gorm:"not null;index:idx_req_type,unique" json:"-"`
	TypeID            int64           `gorm:"not null;index:idx_req_type,unique" json:"typeId"`
	VendorID          *int64          `json:"vendor"`
	QuantityRequested int64           `gorm:"not null" json:"quantityRequested"`
	QuantityApproved  int64           `gorm:"not null;default:0" json:"quantityApproved"`
	EstimatedCost     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"estimatedCost"`
	ApprovedCost      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"approvedCost"`
	VendorApprovedID  *int64          `json:"vendorApproved"`
	AddedToInventory  int64           `gorm:"not null;default:0" json:"addedToInventory"`
	Documents         StringArray     `gorm:"type:text" json:"documents"`
}

package models

import "time"

// Coupon discount types.
const (
	CouponTypePercent = "percent"
	CouponTypeFixed   = "fixed"
	CouponTypeGift    = "gift"
	CouponTypeOther   = "other"
)

// Coupon lifecycle statuses.
const (
	CouponStatusActive   = "active"
	CouponStatusPaused   = "paused"
	CouponStatusExpired  = "expired"
	CouponStatusDepleted = "depleted"
)

// Approval states shared by coupons and businesses.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Coupon is a redeemable discount offered by a business.
type Coupon struct {
	ID              string     `json:"id,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	BusinessID      string     `json:"businessId"`
	Type            string     `json:"type"`
	DiscountValue   float64    `json:"discountValue,omitempty"`
	DiscountPercent float64    `json:"discountPercent,omitempty"`
	Code            string     `json:"code"`
	StartsAt        time.Time  `json:"startsAt"`
	EndsAt          time.Time  `json:"endsAt"`
	RedemptionLimit *int       `json:"redemptionLimit,omitempty"`
	Redemptions     int        `json:"redemptions,omitempty"`
	Rules           string     `json:"rules,omitempty"`
	Status          string     `json:"status,omitempty"`
	Approval        string     `json:"approval,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	ImageURL        string     `json:"imageUrl,omitempty"`
	Highlighted     bool       `json:"highlighted,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// CouponList is the paginated response of the coupon listing endpoint.
type CouponList struct {
	Coupons    []Coupon   `json:"coupons"`
	Pagination Pagination `json:"pagination"`
}

// CouponStats summarizes the coupon inventory for the back-office dashboard.
type CouponStats struct {
	Total            int `json:"total"`
	Active           int `json:"active"`
	Paused           int `json:"paused"`
	Expired          int `json:"expired"`
	Pending          int `json:"pending"`
	TotalRedemptions int `json:"totalRedemptions"`
}

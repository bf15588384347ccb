// Package trade holds order, cart, refund, complaint and review payloads.
package trade

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderRefunded   OrderStatus = "REFUNDED"
)

var orderStatuses = []OrderStatus{
	OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled, OrderRefunded,
}

// ParseOrderStatus accepts any case, e.g. "shipped".
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range orderStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Order is one customer purchase as the merchant sees it.
type Order struct {
	OrderID    int64           `json:"orderId"`
	OrderSize  int             `json:"orderSize"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     OrderStatus     `json:"status"`
	Paid       bool            `json:"paid"`
	TrackingID string          `json:"trackingId,omitempty"`
	CreatedAt  string          `json:"createdAt,omitempty"`
	UpdatedAt  string          `json:"updatedAt,omitempty"`
}

// OrderFilter narrows the merchant order list. The zero value lists everything.
type OrderFilter struct {
	Status OrderStatus `json:"status,omitempty"`
}

// StatusUpdate is the body of an order status change.
type StatusUpdate struct {
	Status OrderStatus `json:"status" validate:"required"`
}

// TrackingUpdate is the body of a tracking id change.
type TrackingUpdate struct {
	TrackingID string `json:"trackingId" validate:"required"`
}

// Cart is the signed-in customer's cart.
type Cart struct {
	CartID int64      `json:"cartId"`
	Items  []CartItem `json:"items"`
}

// Total sums price minus discount times quantity over all items.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		unit := item.Price.Sub(item.Discount)
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// CartItem is one line in a cart.
type CartItem struct {
	ItemID    int64           `json:"itemId"`
	ProductID int64           `json:"productId,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
}

// AddCartItem puts a product into the cart.
type AddCartItem struct {
	ItemID   int64 `json:"itemId" validate:"required"`
	Quantity int   `json:"quantity,omitempty"`
}

// QuantityUpdate is the body of a cart quantity change.
type QuantityUpdate struct {
	Quantity int `json:"quantity"`
}

// RefundStatus is the review state of a refund.
type RefundStatus string

const (
	RefundPending   RefundStatus = "PENDING"
	RefundApproved  RefundStatus = "APPROVED"
	RefundRejected  RefundStatus = "REJECTED"
	RefundProcessed RefundStatus = "PROCESSED"
)

// Refund is a refund request as stored by the backend.
type Refund struct {
	RefundID      int64           `json:"refundId"`
	OrderID       int64           `json:"orderId,omitempty"`
	Reason        string          `json:"reason"`
	Amount        decimal.Decimal `json:"amount"`
	Status        RefundStatus    `json:"status"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	BankName      string          `json:"bankName,omitempty"`
	AccountName   string          `json:"accountName,omitempty"`
	RequestedAt   string          `json:"requestedAt,omitempty"`
	ProcessedAt   string          `json:"processedAt,omitempty"`
}

// RefundRequest is the customer's refund form.
type RefundRequest struct {
	Reason        string          `json:"reason" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	BankName      string          `json:"bankName,omitempty"`
	AccountName   string          `json:"accountName,omitempty"`
}

// ComplaintStatus is the handling state of a complaint.
type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "PENDING"
	ComplaintInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintResolved   ComplaintStatus = "RESOLVED"
	ComplaintRejected   ComplaintStatus = "REJECTED"
)

// Complaint is a customer complaint about an order.
type Complaint struct {
	ComplaintID int64           `json:"complaintId"`
	OrderID     int64           `json:"orderId,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Status      ComplaintStatus `json:"status"`
	CreatedAt   string          `json:"createdAt,omitempty"`
	ResolvedAt  string          `json:"resolvedAt,omitempty"`
}

// ComplaintRequest is the customer's complaint form.
type ComplaintRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category,omitempty"`
}

// Review is a customer's rating of a merchant.
type Review struct {
	ReviewID   int64  `json:"reviewId"`
	MerchantID int64  `json:"merchantId,omitempty"`
	CustomerID int64  `json:"customerId,omitempty"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// ReviewInput is the review form.
type ReviewInput struct {
	MerchantID int64  `json:"merchantId" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment,omitempty"`
}

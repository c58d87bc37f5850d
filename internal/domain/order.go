package domain

import "time"

// Order status constants.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment status constants. Payment status moves independently of the
// fulfillment status.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Payment method constants.
const (
	PaymentMethodCard       = "card"
	PaymentMethodCOD        = "cod"
	PaymentMethodUPI        = "upi"
	PaymentMethodNetBanking = "netbanking"
)

// Order represents a customer order. Line prices are captured from the
// catalog at creation time and never recomputed afterward.
type Order struct {
	ID                string       `json:"id"`
	UserID            string       `json:"user_id"`
	Status            string       `json:"status"`
	PaymentMethod     string       `json:"payment_method"`
	PaymentStatus     string       `json:"payment_status"`
	Items             []OrderLine  `json:"items"`
	TotalAmount       int64        `json:"total_amount"`
	ShippingAddressID string       `json:"shipping_address_id"`
	ShippingAddress   *Address     `json:"shipping_address,omitempty"`
	User              *UserSummary `json:"user,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// OrderLine represents a line item in an order. UnitPrice is the catalog
// price at the moment the order was created.
type OrderLine struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice int64           `json:"unit_price"`
	Product   *ProductSummary `json:"product,omitempty"`
}

// LineTotal returns quantity times the captured unit price.
func (l *OrderLine) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Total sums all line totals. The stored TotalAmount must always equal
// this value.
func (o *Order) Total() int64 {
	var total int64
	for i := range o.Items {
		total += o.Items[i].LineTotal()
	}
	return total
}

// ProductSummary is the expanded product view embedded in order responses.
type ProductSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image *Image `json:"image,omitempty"`
}

// UserSummary is the expanded user view embedded in order responses.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ValidOrderStatuses returns all valid order statuses.
func ValidOrderStatuses() []string {
	return []string{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
}

// IsValidOrderStatus checks if a status string is a valid order status.
// Any valid status may follow any other; there is no transition graph.
func IsValidOrderStatus(status string) bool {
	for _, s := range ValidOrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// ValidPaymentStatuses returns all valid payment statuses.
func ValidPaymentStatuses() []string {
	return []string{
		PaymentStatusPending,
		PaymentStatusPaid,
		PaymentStatusFailed,
		PaymentStatusRefunded,
	}
}

// IsValidPaymentStatus checks if a status string is a valid payment status.
func IsValidPaymentStatus(status string) bool {
	for _, s := range ValidPaymentStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// ValidPaymentMethods returns all accepted payment methods.
func ValidPaymentMethods() []string {
	return []string{
		PaymentMethodCard,
		PaymentMethodCOD,
		PaymentMethodUPI,
		PaymentMethodNetBanking,
	}
}

// IsValidPaymentMethod checks if a method string is an accepted payment method.
func IsValidPaymentMethod(method string) bool {
	for _, m := range ValidPaymentMethods() {
		if m == method {
			return true
		}
	}
	return false
}

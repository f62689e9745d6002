package models

// Order status ids. Orders are created PENDING and only the status
// changes afterwards.
const (
	OrderStatusPending   uint = 1
	OrderStatusPaid      uint = 2
	OrderStatusCompleted uint = 3
	OrderStatusCancelled uint = 4
)

// Payment status ids.
const (
	PaymentStatusPending   uint = 1
	PaymentStatusCompleted uint = 2
	PaymentStatusFailed    uint = 3
)

// Seller request status ids.
const (
	SellerRequestPending  uint = 1
	SellerRequestApproved uint = 2
	SellerRequestRejected uint = 3
)

var orderStatusNames = map[uint]string{
	OrderStatusPending:   "pending",
	OrderStatusPaid:      "paid",
	OrderStatusCompleted: "completed",
	OrderStatusCancelled: "cancelled",
}

var paymentStatusNames = map[uint]string{
	PaymentStatusPending:   "pending",
	PaymentStatusCompleted: "completed",
	PaymentStatusFailed:    "failed",
}

var sellerRequestStatusNames = map[uint]string{
	SellerRequestPending:  "pending",
	SellerRequestApproved: "approved",
	SellerRequestRejected: "rejected",
}

func OrderStatusName(id uint) string { return orderStatusNames[id] }

func ValidOrderStatus(id uint) bool {
	_, ok := orderStatusNames[id]
	return ok
}

func PaymentStatusName(id uint) string { return paymentStatusNames[id] }

func ValidPaymentStatus(id uint) bool {
	_, ok := paymentStatusNames[id]
	return ok
}

func SellerRequestStatusName(id uint) string { return sellerRequestStatusNames[id] }

func ValidSellerRequestStatus(id uint) bool {
	_, ok := sellerRequestStatusNames[id]
	return ok
}

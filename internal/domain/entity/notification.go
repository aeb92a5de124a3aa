package entity

import (
	"strconv"
	"time"
)

// NotificationKind classifies a user notification
type NotificationKind string

// Notification kinds created by the core
const (
	NotificationDeliveryAvailable NotificationKind = "DELIVERY_AVAILABLE"
	NotificationDeliveryAssigned  NotificationKind = "DELIVERY_ASSIGNED"
	NotificationDeliveryUpdate    NotificationKind = "DELIVERY_UPDATE"
	NotificationCodeVerified      NotificationKind = "CODE_VERIFIED"
	NotificationReturnScheduled   NotificationKind = "RETURN_SCHEDULED"
	NotificationPointsDebited     NotificationKind = "POINTS_DEBITED"
	NotificationPointsCredited    NotificationKind = "POINTS_CREDITED"
	NotificationPaymentReceived   NotificationKind = "PAYMENT_RECEIVED"
)

// Notification is a message addressed to one user
type Notification struct {
	ID        uint64
	UserID    uint64
	Kind      NotificationKind
	Title     string
	Message   string
	RelatedID string
	Read      bool
	CreatedAt time.Time
}

// RelatedIDOf formats a numeric id for the RelatedID field
func RelatedIDOf(id uint64) string {
	return strconv.FormatUint(id, 10)
}

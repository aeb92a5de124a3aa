package entity

// BorrowStatus is the lifecycle state of a borrow request
type BorrowStatus string

// Borrow request states
const (
	BorrowStatusPending  BorrowStatus = "PENDING"
	BorrowStatusAccepted BorrowStatus = "ACCEPTED"
	BorrowStatusRejected BorrowStatus = "REJECTED"
	BorrowStatusReturned BorrowStatus = "RETURNED"
)

// BorrowRequest is the borrow context owned by the request CRUD layer.
// The core reads it and performs the PENDING to ACCEPTED transition together
// with the point transfer.
type BorrowRequest struct {
	ID         uint64
	BookID     uint64
	OwnerID    uint64
	BorrowerID uint64
	Status     BorrowStatus
	PointsCost int64
}

// IsParty reports whether the user is the borrower or the owner
func (b *BorrowRequest) IsParty(userID uint64) bool {
	return userID != 0 && (userID == b.BorrowerID || userID == b.OwnerID)
}

package dto

import (
	"time"

	"github.com/amirhossein-jamali/lending-core/internal/domain/entity"
)

// CreateDeliveryRequest represents the API request for scheduling a delivery
type CreateDeliveryRequest struct {
	BorrowRequestID uint64 `json:"borrowRequestId" binding:"required"`
	PickupAddress   string `json:"pickupAddress" binding:"required,max=500"`
	DeliveryAddress string `json:"deliveryAddress" binding:"required,max=500"`
}

// UpdateStatusRequest represents the API request for advancing a delivery
type UpdateStatusRequest struct {
	Status        string  `json:"status" binding:"required"`
	TrackingNotes *string `json:"trackingNotes" binding:"omitempty,max=1000"`
}

// VerifyCodeRequest carries the code read out by the borrower at pickup
type VerifyCodeRequest struct {
	VerificationCode string `json:"verificationCode" binding:"required"`
}

// DeliveryResponse is the public view of a delivery job. It never carries the verification code.
type DeliveryResponse struct {
	ID                  uint64     `json:"id"`
	BorrowRequestID     uint64     `json:"borrowRequestId"`
	BookID              uint64     `json:"bookId"`
	OwnerID             uint64     `json:"ownerId"`
	BorrowerID          uint64     `json:"borrowerId"`
	IsReturn            bool       `json:"isReturn"`
	Status              string     `json:"status"`
	AgentID             *uint64    `json:"agentId"`
	PickupAddress       string     `json:"pickupAddress"`
	DeliveryAddress     string     `json:"deliveryAddress"`
	PaymentPolicy       string     `json:"paymentPolicy"`
	PaymentStatus       string     `json:"paymentStatus"`
	DeliveryFeePaise    int64      `json:"deliveryFeePaise"`
	CodeVerified        bool       `json:"codeVerified"`
	CodeVerifiedAt      *time.Time `json:"codeVerifiedAt,omitempty"`
	PickupCompletedAt   *time.Time `json:"pickupCompletedAt,omitempty"`
	DeliveryCompletedAt *time.Time `json:"deliveryCompletedAt,omitempty"`
	TrackingNotes       string     `json:"trackingNotes,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// CreateDeliveryResponse is returned once, to the borrower, when a job is created
type CreateDeliveryResponse struct {
	JobID            uint64           `json:"jobId"`
	VerificationCode string           `json:"verificationCode"`
	Delivery         DeliveryResponse `json:"delivery"`
}

// CodeResponse reveals the code to a party of the job; Code is null for anyone else
type CodeResponse struct {
	JobID uint64  `json:"jobId"`
	Code  *string `json:"code"`
}

// VerifyCodeResponse reports a successful verification
type VerifyCodeResponse struct {
	Verified        bool             `json:"verified"`
	AlreadyVerified bool             `json:"alreadyVerified"`
	VerifiedAt      time.Time        `json:"verifiedAt"`
	Delivery        DeliveryResponse `json:"delivery"`
}

// StatusResponse reports the job after a status request
type StatusResponse struct {
	Changed  bool             `json:"changed"`
	Delivery DeliveryResponse `json:"delivery"`
}

// DeliveryListResponse wraps a page of jobs
type DeliveryListResponse struct {
	Deliveries []DeliveryResponse `json:"deliveries"`
	Count      int                `json:"count"`
}

// ToDeliveryResponse maps a job to its public view
func ToDeliveryResponse(job *entity.DeliveryJob) DeliveryResponse {
	return DeliveryResponse{
		ID:                  job.ID,
		BorrowRequestID:     job.BorrowRequestID,
		BookID:              job.BookID,
		OwnerID:             job.OwnerID,
		BorrowerID:          job.BorrowerID,
		IsReturn:            job.IsReturn,
		Status:              string(job.Status),
		AgentID:             job.AgentID,
		PickupAddress:       job.PickupAddress,
		DeliveryAddress:     job.DeliveryAddress,
		PaymentPolicy:       string(job.PaymentPolicy),
		PaymentStatus:       string(job.PaymentStatus),
		DeliveryFeePaise:    job.FeePaise,
		CodeVerified:        job.CodeVerifiedAt != nil,
		CodeVerifiedAt:      job.CodeVerifiedAt,
		PickupCompletedAt:   job.PickupCompletedAt,
		DeliveryCompletedAt: job.DeliveryCompletedAt,
		TrackingNotes:       job.TrackingNotes,
		CreatedAt:           job.CreatedAt,
		UpdatedAt:           job.UpdatedAt,
	}
}

// ToDeliveryList maps a page of jobs
func ToDeliveryList(jobs []*entity.DeliveryJob) DeliveryListResponse {
	out := make([]DeliveryResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, ToDeliveryResponse(job))
	}
	return DeliveryListResponse{Deliveries: out, Count: len(out)}
}

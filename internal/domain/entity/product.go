package entity

import "time"

// SubmissionStatus is the moderation state of a submitted product.
// No operation transitions it away from pending yet; the field exists so
// the stored data stays forward-compatible with a moderation workflow.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusAccepted SubmissionStatus = "accepted"
	StatusRejected SubmissionStatus = "rejected"
)

// SubmittedProduct represents one product listing a business proposed for
// catalog inclusion. Owner fields are a snapshot taken at submission time
// and are deliberately not kept in sync with later profile edits.
type SubmittedProduct struct {
	ID                 string           `json:"id"`
	OwnerID            string           `json:"ownerId"`
	OwnerName          string           `json:"ownerName"`
	BusinessName       string           `json:"businessName"`
	ProductName        string           `json:"productName"`
	Category           string           `json:"category"`
	PriceRange         string           `json:"priceRange"`
	Description        string           `json:"description"`
	UniqueSellingPoint string           `json:"uniqueSellingPoint"`
	ProductionCapacity string           `json:"productionCapacity"`
	Certifications     string           `json:"certifications"`
	FulfillmentNotes   string           `json:"fulfillmentNotes"`
	MediaLink          string           `json:"mediaLink,omitempty"`
	ImageBase64        string           `json:"imageBase64,omitempty"`
	ImageMimeType      string           `json:"imageMimeType,omitempty"`
	SubmittedAt        time.Time        `json:"submittedAt"`
	Status             SubmissionStatus `json:"status"`
}

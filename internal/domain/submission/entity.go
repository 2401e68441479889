package submission

import (
	"time"

	"github.com/realitylabs/reality-check/internal/domain/analysis"
)

// ID is an opaque token assigned once at creation, never reused.
type ID string

// Aggregate root: one durable record per analysis request. The report body is
// denormalized into the record; only Verified mutates afterwards, false→true.
type Submission struct {
	ID        ID               `json:"id"`
	OwnerID   string           `json:"owner_id,omitempty"` // weak reference into the accounts directory; empty when anonymous
	Filename  string           `json:"filename"`
	Verdict   analysis.Verdict `json:"verdict"`
	Score     float64          `json:"score"`
	Details   map[string]any   `json:"details"`
	MediaURL  string           `json:"media_url,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	Verified  bool             `json:"verified"`
}

// Summary is the list projection; full details stay behind Get.
type Summary struct {
	ID        ID               `json:"id"`
	Filename  string           `json:"filename"`
	Verdict   analysis.Verdict `json:"verdict"`
	Score     float64          `json:"score"`
	CreatedAt time.Time        `json:"created_at"`
	Verified  bool             `json:"verified"`
}

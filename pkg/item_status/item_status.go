package item_status

import "strings"

// StatusCategory is derived from the status designations by keyword match.
type StatusCategory string

const (
	StatusPending   StatusCategory = "PENDING"
	StatusApproved  StatusCategory = "APPROVED"
	StatusRejected  StatusCategory = "REJECTED"
	StatusCancelled StatusCategory = "CANCELLED"
	StatusOther     StatusCategory = "OTHER"
)

// ItemStatus is the lifecycle label attached to planned items.
type ItemStatus struct {
	ID            int64
	DesignationAr string
	DesignationEn string
	DesignationFr string
}

var statusKeywords = []struct {
	category StatusCategory
	keywords []string
}{
	{StatusCancelled, []string{"cancel", "annul"}},
	{StatusRejected, []string{"reject", "refus", "rejet"}},
	{StatusApproved, []string{"approve", "approuv", "valid", "accept"}},
	{StatusPending, []string{"pending", "attente", "cours", "instance"}},
}

// Category classifies the status from the English and French designations.
// More terminal states are checked first so that "validation refused" maps
// to REJECTED, not APPROVED.
func (s ItemStatus) Category() StatusCategory {
	text := strings.ToLower(s.DesignationEn + " " + s.DesignationFr)
	for _, entry := range statusKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.category
			}
		}
	}
	return StatusOther
}

func ParseCategory(s string) (StatusCategory, bool) {
	switch strings.ToUpper(s) {
	case string(StatusPending):
		return StatusPending, true
	case string(StatusApproved):
		return StatusApproved, true
	case string(StatusRejected):
		return StatusRejected, true
	case string(StatusCancelled):
		return StatusCancelled, true
	case string(StatusOther):
		return StatusOther, true
	}
	return "", false
}

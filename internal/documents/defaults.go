package documents

import "visa-flow/internal/catalog"

// DefaultRequirements is the document set a new builder starts with.
func DefaultRequirements() []Requirement {
	return []Requirement{
		{
			ID:          "passport_copy",
			Name:        "Passport Copy",
			Enabled:     true,
			Description: "Scan of the passport bio-data page",
			Purpose:     "Identity verification",
			Format:      "PDF, JPG",
			Examples:    []string{"Bio-data page", "Observation page"},
		},
		{
			ID:          "photograph",
			Name:        "Photograph",
			Enabled:     true,
			Description: "Recent passport-size photograph on a white background",
			Purpose:     "Visa sticker and biometric match",
			Format:      "JPG",
			Examples:    []string{},
		},
		{
			ID:          "bank_statement",
			Name:        "Bank Statement",
			Description: "Statements covering the last six months",
			Purpose:     "Proof of funds",
			Format:      "PDF",
			Examples:    []string{"Salary account statement", "Savings account statement"},
		},
		{
			ID:          "admission_letter",
			Name:        "Admission Letter",
			Enabled:     true,
			Description: "Letter of admission from the host institution",
			Purpose:     "Proof of enrolment",
			Format:      "PDF",
			Examples:    []string{},
			Categories:  catalog.Categories{"Student"},
		},
		{
			ID:          "employment_contract",
			Name:        "Employment Contract",
			Enabled:     true,
			Description: "Signed contract or offer letter",
			Purpose:     "Proof of employment",
			Format:      "PDF",
			Examples:    []string{},
			Categories:  catalog.Categories{"Work"},
		},
		{
			ID:          "invitation_letter",
			Name:        "Business Invitation Letter",
			Description: "Invitation from the host company",
			Purpose:     "Purpose of visit",
			Format:      "PDF",
			Examples:    []string{},
			Categories:  catalog.Categories{"Business"},
		},
		{
			ID:          "medical_report",
			Name:        "Medical Report",
			Enabled:     true,
			Description: "Referral from a registered practitioner and hospital appointment",
			Purpose:     "Proof of treatment",
			Format:      "PDF",
			Examples:    []string{},
			Categories:  catalog.Categories{"Medical"},
		},
		{
			ID:          "travel_itinerary",
			Name:        "Travel Itinerary",
			Description: "Flight and hotel bookings",
			Purpose:     "Travel plans",
			Format:      "PDF",
			Examples:    []string{},
			Categories:  catalog.Categories{"Tourist", "Business", "Religious"},
		},
	}
}

package catalog

// DefaultCategories is the category list used when no catalog file overrides it.
var DefaultCategories = []string{"Business", "Tourist", "Student", "Work", "Medical", "Religious"}

// Stage ids of the default catalog.
const (
	StagePersonalInfo      = "PERSONAL_INFO"
	StagePassportInfo      = "PASSPORT_INFO"
	StageContactInfo       = "CONTACT_INFO"
	StageTravelInfo        = "TRAVEL_INFO"
	StageBusinessInfo      = "BUSINESS_INFO"
	StageEmploymentInfo    = "EMPLOYMENT_INFO"
	StageStudentInfo       = "STUDENT_INFO"
	StageMedicalInfo       = "MEDICAL_INFO"
	StageReligiousInfo     = "RELIGIOUS_INFO"
	StageAccommodationInfo = "ACCOMMODATION_INFO"
	StageFinancialInfo     = "FINANCIAL_INFO"
	StageSponsorInfo       = "SPONSOR_INFO"
	StageDocumentsUpload   = "DYNAMIC_DOCUMENTS_UPLOAD"
	StageReviewSubmit      = "REVIEW_SUBMIT"
	StagePayment           = "PAYMENT"
	StageConfirmation      = "CONFIRMATION"
)

// DefaultFixedStages are always first in every workflow.
func DefaultFixedStages() []Stage {
	return []Stage{
		{ID: StagePersonalInfo, Name: "Personal Information"},
		{ID: StagePassportInfo, Name: "Passport Details"},
		{ID: StageContactInfo, Name: "Contact Information"},
	}
}

// DefaultConditionalStages is the default canonical order of conditional stages.
func DefaultConditionalStages() []Stage {
	return []Stage{
		{ID: StageTravelInfo, Name: "Travel Information", Enabled: true, Categories: Categories{"Business", "Tourist", "Medical", "Religious"}},
		{ID: StageBusinessInfo, Name: "Business Details", Categories: Categories{"Business"}},
		{ID: StageEmploymentInfo, Name: "Employment Details", Categories: Categories{"Work", "Business"}},
		{ID: StageStudentInfo, Name: "Education Details", Categories: Categories{"Student"}},
		{ID: StageMedicalInfo, Name: "Medical Treatment Details", Categories: Categories{"Medical"}},
		{ID: StageReligiousInfo, Name: "Pilgrimage Details", Categories: Categories{"Religious"}},
		{ID: StageAccommodationInfo, Name: "Accommodation", Enabled: true},
		{ID: StageFinancialInfo, Name: "Financial Information"},
		{ID: StageSponsorInfo, Name: "Sponsor Information", Categories: Categories{"Student", "Medical"}},
		{ID: StageDocumentsUpload, Name: "Supporting Documents", Enabled: true},
	}
}

// DefaultFinalStages are always last in every workflow.
func DefaultFinalStages() []Stage {
	return []Stage{
		{ID: StageReviewSubmit, Name: "Review & Submit"},
		{ID: StagePayment, Name: "Payment"},
		{ID: StageConfirmation, Name: "Confirmation"},
	}
}

// DefaultCatalog returns a fresh catalog built from the default stage lists.
func DefaultCatalog() *Catalog {
	return MustNew(DefaultFixedStages(), DefaultConditionalStages(), DefaultFinalStages())
}

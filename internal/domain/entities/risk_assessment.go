package entities

// Age brackets accepted by the risk assessment
const (
	AgeUnder18 = "under-18"
	Age18To26  = "18-26"
	Age27To45  = "27-45"
	AgeOver45  = "over-45"
)

// Vaccination statuses accepted by the risk assessment
const (
	VaccinationNone    = "not-vaccinated"
	VaccinationPartial = "partially-vaccinated"
	VaccinationFull    = "fully-vaccinated"
	VaccinationUnknown = "unknown"
)

// Screening statuses accepted by the risk assessment
const (
	ScreeningNever   = "never"
	ScreeningOverdue = "overdue"
	ScreeningRegular = "regular"
)

// Risk factors accepted by the risk assessment
const (
	RiskFactorSmoking          = "smoking"
	RiskFactorMultiplePartners = "multiple-partners"
	RiskFactorImmunocompromise = "immunocompromised"
	RiskFactorOtherSTIs        = "other-stis"
)

// RiskAssessment holds the answers submitted by the quiz form
type RiskAssessment struct {
	Age         string   `json:"age"`
	Vaccination string   `json:"vaccination"`
	Screening   string   `json:"screening"`
	RiskFactors []string `json:"riskFactors"`
}

// RiskAssessmentResult holds the personalised recommendations
type RiskAssessmentResult struct {
	Recommendations []string `json:"recommendations"`
	Disclaimer      string   `json:"disclaimer"`
}

package services

import (
	"slices"
	"strings"

	"github.com/zatekoja/hpv-prevention/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/hpv-prevention/backend/pkg/errors"
)

// MsgAssessmentIncomplete is returned when a required answer is missing
const MsgAssessmentIncomplete = "Please fill out all required fields before submitting."

// AssessmentDisclaimer accompanies every set of recommendations
const AssessmentDisclaimer = "These recommendations are general guidance. Always consult with your healthcare provider for personalized medical advice."

var riskFactorAdvice = []struct {
	factor string
	advice string
}{
	{entities.RiskFactorSmoking, "Quit smoking to reduce HPV-related cancer risk and improve immune function"},
	{entities.RiskFactorMultiplePartners, "Practice safe sex consistently and consider limiting sexual partners"},
	{entities.RiskFactorImmunocompromise, "Work closely with your healthcare team for personalized screening and prevention plan"},
	{entities.RiskFactorOtherSTIs, "Get tested and treated for STIs, as they can increase HPV transmission risk"},
}

// RiskAssessmentService turns quiz answers into personalised recommendations
type RiskAssessmentService struct{}

// NewRiskAssessmentService creates a new risk assessment service
func NewRiskAssessmentService() *RiskAssessmentService {
	return &RiskAssessmentService{}
}

// Assess validates the answers and returns recommendations. Age, vaccination
// and screening are required; unrecognised values produce no advice for that
// question.
func (s *RiskAssessmentService) Assess(input entities.RiskAssessment) (*entities.RiskAssessmentResult, error) {
	age := strings.TrimSpace(input.Age)
	vaccination := strings.TrimSpace(input.Vaccination)
	screening := strings.TrimSpace(input.Screening)
	if age == "" || vaccination == "" || screening == "" {
		return nil, apperrors.NewValidationError(MsgAssessmentIncomplete)
	}

	var recs []string

	switch vaccination {
	case entities.VaccinationNone, entities.VaccinationPartial:
		switch age {
		case entities.AgeUnder18, entities.Age18To26:
			recs = append(recs, "Get HPV vaccination immediately - you are in the ideal age group for maximum protection")
		case entities.Age27To45:
			recs = append(recs, "Discuss HPV vaccination with your healthcare provider - may still provide benefits")
		default:
			recs = append(recs, "Discuss HPV vaccination with your healthcare provider to assess potential benefits")
		}
	case entities.VaccinationFull:
		recs = append(recs, "Excellent! You are protected against the most dangerous HPV types")
	case entities.VaccinationUnknown:
		recs = append(recs, "Check your vaccination records and consider getting vaccinated if not up to date")
	}

	switch screening {
	case entities.ScreeningNever, entities.ScreeningOverdue:
		if age != entities.AgeUnder18 {
			recs = append(recs, "Schedule cervical cancer screening (Pap test/HPV test) with your healthcare provider immediately")
		}
	case entities.ScreeningRegular:
		recs = append(recs, "Great job maintaining regular screening! Continue as recommended by your doctor")
	}

	for _, rf := range riskFactorAdvice {
		if slices.Contains(input.RiskFactors, rf.factor) {
			recs = append(recs, rf.advice)
		}
	}

	if recs == nil {
		recs = []string{}
	}
	return &entities.RiskAssessmentResult{
		Recommendations: recs,
		Disclaimer:      AssessmentDisclaimer,
	}, nil
}

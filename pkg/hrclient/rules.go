package hrclient

import "hr-interviews-go/internal/validation"

// EmployeeFormRules lists per-field checks for the employee form.
func EmployeeFormRules() []validation.FieldRule {
	return validation.FieldRules(CreateEmployeeRequest{})
}

// InterviewFormRules lists per-field checks for the interview form.
func InterviewFormRules() []validation.FieldRule {
	return validation.FieldRules(CreateInterviewRequest{})
}

// ValidateEmployee runs the form rules locally before a round trip.
func ValidateEmployee(req CreateEmployeeRequest) error {
	return validation.Struct(req)
}

func ValidateInterview(req CreateInterviewRequest) error {
	return validation.Struct(req)
}

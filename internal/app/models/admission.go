package models

// ApplicationStatus is the review state of an admission form
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusApproved ApplicationStatus = "Approved"
	StatusRejected ApplicationStatus = "Rejected"
)

// ApplicationIDPrefix starts every admission form id
const ApplicationIDPrefix = "APP-"

// EntryClasses are the classes a new student can apply for
var EntryClasses = []string{"JSS 1", "JSS 2", "JSS 3", "SSS 1", "SSS 2", "SSS 3"}

// AdmissionForm is one submitted application. Only fullName, email,
// admissionClass and passportPhoto are checked before submission.
type AdmissionForm struct {
	ID             string            `json:"id"`
	FullName       string            `json:"fullName" validate:"required"`
	Email          string            `json:"email" validate:"required"`
	Phone          string            `json:"phone"`
	DateOfBirth    string            `json:"dateOfBirth"`
	PreviousSchool string            `json:"previousSchool,omitempty"`
	GradeLevel     string            `json:"gradeLevel"`
	AdmissionClass string            `json:"admissionClass" validate:"required" message:"Class of admission required"`
	PassportPhoto  string            `json:"passportPhoto" validate:"required" message:"Photo required"`
	Status         ApplicationStatus `json:"status"`
	DateApplied    string            `json:"dateApplied"`
}

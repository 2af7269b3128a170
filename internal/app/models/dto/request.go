package dto

import "github.com/qmc/portal/internal/app/models"

// LoginRequest carries console credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returns the session token
type LoginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// StaffRequest creates or replaces a staff profile; the id comes from the path
type StaffRequest struct {
	Name           string   `json:"name"`
	Role           string   `json:"role"`
	Department     string   `json:"department"`
	ImageURL       string   `json:"imageUrl"`
	Email          string   `json:"email,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Qualifications []string `json:"qualifications,omitempty"`
	Bio            string   `json:"bio,omitempty"`
}

// ToProfile converts the request into a profile with the given id
func (r StaffRequest) ToProfile(id string) models.StaffProfile {
	return models.StaffProfile{
		ID:             id,
		Name:           r.Name,
		Role:           r.Role,
		Department:     r.Department,
		ImageURL:       r.ImageURL,
		Email:          r.Email,
		Phone:          r.Phone,
		Qualifications: r.Qualifications,
		Bio:            r.Bio,
	}
}

// PhotoRequest sets an image from a data URL or http(s) URL
type PhotoRequest struct {
	Image string `json:"image"`
}

// ChatRequest is a question for the admissions assistant
type ChatRequest struct {
	Query string `json:"query" validate:"required" message:"Please type a question"`
}

// ChatResponse is the assistant's answer
type ChatResponse struct {
	Reply string `json:"reply"`
}

// DraftFieldsRequest updates the text fields of an admission draft. Absent
// fields are left unchanged.
type DraftFieldsRequest struct {
	FullName       *string `json:"fullName"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	DateOfBirth    *string `json:"dateOfBirth"`
	PreviousSchool *string `json:"previousSchool"`
	GradeLevel     *string `json:"gradeLevel"`
	AdmissionClass *string `json:"admissionClass"`
}

// Apply copies the present fields onto form
func (r DraftFieldsRequest) Apply(form *models.AdmissionForm) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&form.FullName, r.FullName)
	set(&form.Email, r.Email)
	set(&form.Phone, r.Phone)
	set(&form.DateOfBirth, r.DateOfBirth)
	set(&form.PreviousSchool, r.PreviousSchool)
	set(&form.GradeLevel, r.GradeLevel)
	set(&form.AdmissionClass, r.AdmissionClass)
}

// CameraRequest starts the camera of a draft with the permission the browser reported
type CameraRequest struct {
	Permission string `json:"permission"`
}

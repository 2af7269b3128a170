package models

// DirectorID is the id of the profile featured as the director
const DirectorID = "0"

// StaffProfile is one faculty member
type StaffProfile struct {
	ID             string   `json:"id"`
	Name           string   `json:"name" validate:"required"`
	Role           string   `json:"role"`
	Department     string   `json:"department"`
	ImageURL       string   `json:"imageUrl"`
	Email          string   `json:"email,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Qualifications []string `json:"qualifications,omitempty"`
	Bio            string   `json:"bio,omitempty"`
}

// InitialStaff returns the roster seeded on first load of the staff page
func InitialStaff() []StaffProfile {
	return []StaffProfile{
		{
			ID:             "0",
			Name:           "Dr. Wahab Tajudeen Babatunde",
			Role:           "Executive Director of Studies",
			Department:     "Directorate",
			ImageURL:       DefaultDirectorImage,
			Email:          "director@qmc.edu.ng",
			Qualifications: []string{"Ph.D. Educational Management", "M.Ed.", "B.A. Ed."},
			Bio:            "A visionary leader dedicated to academic excellence. Seen here in his official regal traditional yellow lace attire, Dr. Wahab embodies the fusion of heritage and modern innovation that QMC represents.",
		},
		{
			ID:         "1",
			Name:       "Dr. Sarah Johnson",
			Role:       "Academic Principal",
			Department: "Administration",
			ImageURL:   "https://images.unsplash.com/photo-1544005313-94ddf0286df2?auto=format&fit=crop&q=80&w=800",
			Bio:        "Expert in secondary school curriculum development and pedagogical innovation.",
		},
		{
			ID:         "2",
			Name:       "Mr. David Okafor",
			Role:       "Head of STEM",
			Department: "Science",
			ImageURL:   "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?auto=format&fit=crop&q=80&w=800",
			Bio:        "Leading our robotics and coding initiatives across all grade levels.",
		},
		{
			ID:         "3",
			Name:       "Mrs. Linda Peters",
			Role:       "Humanities Coordinator",
			Department: "Arts",
			ImageURL:   "https://images.unsplash.com/photo-1573496359142-b8d87734a5a2?auto=format&fit=crop&q=80&w=800",
			Bio:        "Champion of literature and creative writing excellence.",
		},
	}
}

// FindStaff returns the index of the profile with id, or -1
func FindStaff(list []StaffProfile, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

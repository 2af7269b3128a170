package models

// SiteConfig is the branding shown in every page's chrome
type SiteConfig struct {
	CollegeName   string `json:"collegeName" validate:"required"`
	ShortName     string `json:"shortName" validate:"required"`
	Tagline       string `json:"tagline"`
	Mission       string `json:"mission"`
	Vision        string `json:"vision"`
	LogoURL       string `json:"logoUrl,omitempty"`
	AdmissionYear string `json:"admissionYear"`
}

// DefaultAdmissionYear is filled into stored configs that lack one
const DefaultAdmissionYear = "2024/2025"

// DefaultSiteConfig returns the branding used before any admin save
func DefaultSiteConfig() SiteConfig {
	return SiteConfig{
		CollegeName:   "Queen Marvellous College",
		ShortName:     "QMC",
		Tagline:       "Achieving Excellence Together",
		Mission:       "To foster an inclusive learning community dedicated to intellectual growth, personal integrity, and active global citizenship.",
		Vision:        "To be a premier global institution recognized for nurturing future leaders who possess both the competence and the conscience to change the world.",
		LogoURL:       "",
		AdmissionYear: DefaultAdmissionYear,
	}
}

// AdminCredentials is the single console login. Compared as plain strings.
type AdminCredentials struct {
	User string `json:"user" validate:"required"`
	Pass string `json:"pass" validate:"required"`
}

// DefaultAdminCredentials returns the login seeded on first use
func DefaultAdminCredentials() AdminCredentials {
	return AdminCredentials{User: "pazzyloia", Pass: "12345678"}
}

// Default images
const (
	DefaultHeroImage     = "https://images.unsplash.com/photo-1541339907198-e08756ebafe3?auto=format&fit=crop&q=80&w=1200"
	DefaultDirectorImage = "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?auto=format&fit=crop&q=80&w=800"
)

// CustomQuote switches the home page between a fixed quote and the generated one
type CustomQuote struct {
	Text       string `json:"text"`
	Author     string `json:"author"`
	IsOverride bool   `json:"isOverride"`
}

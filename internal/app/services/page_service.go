package services

import (
	"context"
	"strings"

	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/app/repositories"
	"github.com/qmc/portal/internal/pkg/aitext"
)

// FoundedYear is printed on the about page and the home hero
const FoundedYear = 2019

// homeStaffPreview is how many staff cards the home page shows
const homeStaffPreview = 4

// ConsoleTabs are the admin console tabs in display order
var ConsoleTabs = []string{"overview", "branding", "apps", "staff", "security", "logs"}

// Chrome is the navbar and footer data shared by every page
type Chrome struct {
	Config  models.SiteConfig `json:"config"`
	Contact aitext.School     `json:"contact"`
}

type HomePage struct {
	Tagline       string                `json:"tagline"`
	Quote         aitext.Quote          `json:"quote"`
	HeroImage     string                `json:"heroImage"`
	DirectorImage string                `json:"directorImage"`
	FoundedYear   int                   `json:"foundedYear"`
	Notices       []models.Notice       `json:"notices"`
	StaffPreview  []models.StaffProfile `json:"staffPreview"`
}

type AboutPage struct {
	CollegeName string `json:"collegeName"`
	Mission     string `json:"mission"`
	Vision      string `json:"vision"`
	FoundedYear int    `json:"foundedYear"`
}

type AdmissionsPage struct {
	AdmissionYear  string   `json:"admissionYear"`
	WelcomeMessage string   `json:"welcomeMessage"`
	EntryClasses   []string `json:"entryClasses"`
}

type AdminPage struct {
	Authenticated bool     `json:"authenticated"`
	Username      string   `json:"username,omitempty"`
	Tabs          []string `json:"tabs,omitempty"`
}

// PageService builds the view models of the public pages
type PageService interface {
	Chrome(ctx context.Context) (*Chrome, error)
	Home(ctx context.Context) (*HomePage, error)
	About(ctx context.Context) (*AboutPage, error)
	Admissions(ctx context.Context) (*AdmissionsPage, error)
	Staff(ctx context.Context, query string) (*StaffDirectory, error)
	Admin(ctx context.Context, token string) (*AdminPage, error)
}

type pageServiceImpl struct {
	repos   *repositories.Repositories
	quotes  QuoteService
	enquiry EnquiryService
	staff   StaffService
	console ConsoleService
	contact aitext.School
}

// NewPageService creates a new page service instance
func NewPageService(
	repos *repositories.Repositories,
	quotes QuoteService,
	enquiry EnquiryService,
	staff StaffService,
	console ConsoleService,
	contact aitext.School,
) PageService {
	return &pageServiceImpl{
		repos:   repos,
		quotes:  quotes,
		enquiry: enquiry,
		staff:   staff,
		console: console,
		contact: contact,
	}
}

func (s *pageServiceImpl) Chrome(ctx context.Context) (*Chrome, error) {
	cfg, err := s.repos.SiteConfigRepository.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &Chrome{Config: cfg, Contact: s.contact}, nil
}

// Home previews the first staff members as stored; an empty store shows none
func (s *pageServiceImpl) Home(ctx context.Context) (*HomePage, error) {
	cfg, err := s.repos.SiteConfigRepository.Get(ctx)
	if err != nil {
		return nil, err
	}
	quote, err := s.quotes.HomeQuote(ctx)
	if err != nil {
		return nil, err
	}

	content := s.repos.ContentRepository
	hero, err := content.HeroImage(ctx)
	if err != nil {
		return nil, err
	}
	director, err := content.DirectorImage(ctx)
	if err != nil {
		return nil, err
	}
	notices, err := content.Notices(ctx)
	if err != nil {
		return nil, err
	}

	staff, err := s.repos.StaffRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(staff) > homeStaffPreview {
		staff = staff[:homeStaffPreview]
	}

	return &HomePage{
		Tagline:       cfg.Tagline,
		Quote:         quote,
		HeroImage:     hero,
		DirectorImage: director,
		FoundedYear:   FoundedYear,
		Notices:       notices,
		StaffPreview:  staff,
	}, nil
}

func (s *pageServiceImpl) About(ctx context.Context) (*AboutPage, error) {
	cfg, err := s.repos.SiteConfigRepository.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &AboutPage{
		CollegeName: cfg.CollegeName,
		Mission:     cfg.Mission,
		Vision:      cfg.Vision,
		FoundedYear: FoundedYear,
	}, nil
}

func (s *pageServiceImpl) Admissions(ctx context.Context) (*AdmissionsPage, error) {
	cfg, err := s.repos.SiteConfigRepository.Get(ctx)
	if err != nil {
		return nil, err
	}
	welcome, err := s.enquiry.Welcome(ctx)
	if err != nil {
		return nil, err
	}
	return &AdmissionsPage{
		AdmissionYear:  cfg.AdmissionYear,
		WelcomeMessage: welcome,
		EntryClasses:   models.EntryClasses,
	}, nil
}

func (s *pageServiceImpl) Staff(ctx context.Context, query string) (*StaffDirectory, error) {
	return s.staff.Directory(ctx, query)
}

// Admin reports whether token belongs to a live session; a bad token only
// means the login form is shown
func (s *pageServiceImpl) Admin(_ context.Context, token string) (*AdminPage, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return &AdminPage{}, nil
	}
	claims, err := s.console.Authenticate(token)
	if err != nil {
		return &AdminPage{}, nil
	}
	return &AdminPage{Authenticated: true, Username: claims.Username, Tabs: ConsoleTabs}, nil
}

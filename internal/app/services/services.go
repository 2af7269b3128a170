package services

// Services defined in this package:
// - AuditService: Records operator actions in the capped audit trail
// - ConsoleService: Admin login, logout, session checks and credentials
// - BrandingService: Site identity and the featured images
// - StaffService: Faculty directory and its CRUD
// - AdmissionService: Application validation, drafts and the photo capture flow
// - RegistrationService: Issues student registration numbers
// - QuoteService: Home page quote and its manual override
// - EnquiryService: Admissions assistant
// - DashboardService: Console overview
// - PageService: View models of the public pages

package models

// Document keys of the site store
const (
	KeySiteConfig       = "qmc_site_config"
	KeyAdminCredentials = "qmc_admin_creds"
	KeyStaff            = "qmc_staff_data"
	KeyApplications     = "qmc_applications"
	KeyNotices          = "qmc_notices"
	KeyMediaGallery     = "qmc_media_gallery"
	KeyRegisteredCount  = "qmc_registered_count"
	KeyLastRegID        = "qmc_last_reg_id"
	KeyRegHistory       = "qmc_reg_history"
	KeyAuditLogs        = "qmc_audit_logs"
	KeyQuoteOverride    = "qmc_quote_override"
	KeyHeroImage        = "qmc_hero_image"
	KeyDirectorImage    = "qmc_director_image"
)

// AllKeys lists every document key in display order
var AllKeys = []string{
	KeySiteConfig,
	KeyAdminCredentials,
	KeyStaff,
	KeyApplications,
	KeyNotices,
	KeyMediaGallery,
	KeyRegisteredCount,
	KeyLastRegID,
	KeyRegHistory,
	KeyAuditLogs,
	KeyQuoteOverride,
	KeyHeroImage,
	KeyDirectorImage,
}

package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/app/repositories"
	"github.com/qmc/portal/internal/pkg/aitext"
	"github.com/qmc/portal/internal/pkg/auth"
	"github.com/qmc/portal/internal/pkg/events"
	"github.com/qmc/portal/internal/pkg/idgen"
	"github.com/qmc/portal/internal/pkg/kvstore"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

type testEnv struct {
	store    *kvstore.MemoryStore
	bus      *events.Bus
	repos    *repositories.Repositories
	sessions *auth.SessionService
	ai       *aitext.Service

	audit        AuditService
	console      ConsoleService
	branding     BrandingService
	staff        StaffService
	admissions   AdmissionService
	registration RegistrationService
	quotes       QuoteService
	enquiry      EnquiryService
	pages        PageService
}

func clockAt(t time.Time) Clock {
	return func() time.Time { return t }
}

func newTestEnv(t *testing.T, gen aitext.Generator) *testEnv {
	t.Helper()

	clock := clockAt(testNow)
	env := &testEnv{
		store: kvstore.NewMemoryStore(),
		bus:   events.NewBus(zerolog.Nop()),
	}
	env.repos = repositories.NewRepositories(env.store, env.bus, clock, zerolog.Nop())
	env.sessions = auth.NewSessionService(auth.SessionConfig{
		SecretKey:   "test-secret",
		TokenIssuer: "qmc-test",
	}, clock)
	env.ai = aitext.NewService(gen, time.Second, aitext.School{
		Name:    "Queen Marvellous College",
		Phone:   "07015002169",
		Address: "Pastor Tihunnu Street, Ikoga Zebbe",
		Town:    "Badagry",
		Values:  []string{"Excellence", "Integrity", "Leadership"},
	}, zerolog.Nop())

	env.audit = NewAuditService(env.repos.AuditRepository, env.repos.CredentialsRepository, idgen.NewSequence(0), clock, zerolog.Nop())
	env.console = NewConsoleService(env.repos.CredentialsRepository, env.sessions, env.audit, zerolog.Nop())
	env.branding = NewBrandingService(env.repos.SiteConfigRepository, env.repos.ContentRepository, env.audit)
	env.staff = NewStaffService(env.repos.StaffRepository, env.audit, idgen.NewSequence(100))
	env.admissions = NewAdmissionService(env.repos.ApplicationRepository, idgen.NewSequence(1700000000000), clock, zerolog.Nop())
	env.registration = NewRegistrationService(env.repos.RegistrationRepository, env.audit, clock)
	env.quotes = NewQuoteService(env.repos.ContentRepository, env.ai, env.audit)
	env.enquiry = NewEnquiryService(env.repos.SiteConfigRepository, env.ai)
	env.pages = NewPageService(env.repos, env.quotes, env.enquiry, env.staff, env.console, aitext.School{Phone: "07015002169"})
	return env
}

func (e *testEnv) logs(t *testing.T) []models.LogEntry {
	t.Helper()
	entries, err := e.audit.List(context.Background())
	require.NoError(t, err)
	return entries
}

func drain(sub *events.Subscription) []events.Event {
	var out []events.Event
	for {
		select {
		case ev := <-sub.C:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func pngFrame(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 160, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// pngHeaderOnly returns a tiny PNG whose IHDR claims w by h pixels.
func pngHeaderOnly(t *testing.T, w, h uint32) []byte {
	t.Helper()
	data := pngFrame(t, 2, 2)
	binary.BigEndian.PutUint32(data[16:20], w)
	binary.BigEndian.PutUint32(data[20:24], h)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

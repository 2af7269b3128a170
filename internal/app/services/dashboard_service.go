package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/app/repositories"
	"github.com/qmc/portal/internal/pkg/helpers"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// chartDays is the window of the applications chart
const chartDays = 7

// DayCount is one bar of the applications chart
type DayCount struct {
	Name string `json:"name"`
	Apps int    `json:"apps"`
}

// PortalStatus describes the host serving the registry
type PortalStatus struct {
	Status        string  `json:"status"`
	UptimeSeconds uint64  `json:"uptimeSeconds"`
	HostMemoryPct float64 `json:"hostMemoryPercent"`
	ProcessRSS    uint64  `json:"processRssBytes"`
}

// Dashboard is the overview tab of the admin console
type Dashboard struct {
	TotalStudents     int          `json:"totalStudents"`
	TotalStudentsText string       `json:"totalStudentsText"`
	PendingAdmissions int          `json:"pendingAdmissions"`
	ActiveFaculty     int          `json:"activeFaculty"`
	Portal            PortalStatus `json:"portal"`
	Momentum          []DayCount   `json:"momentum"`
}

// HostProbe reports the state of the machine running the portal
type HostProbe interface {
	Status(ctx context.Context) (PortalStatus, error)
}

type gopsutilProbe struct {
	pid int32
}

// NewHostProbe returns a HostProbe backed by gopsutil
func NewHostProbe() HostProbe {
	return &gopsutilProbe{pid: int32(os.Getpid())}
}

func (p *gopsutilProbe) Status(ctx context.Context) (PortalStatus, error) {
	st := PortalStatus{Status: "Live"}

	uptime, err := host.UptimeWithContext(ctx)
	if err != nil {
		return st, fmt.Errorf("error reading uptime: %w", err)
	}
	st.UptimeSeconds = uptime

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return st, fmt.Errorf("error reading memory: %w", err)
	}
	st.HostMemoryPct = vm.UsedPercent

	proc, err := process.NewProcessWithContext(ctx, p.pid)
	if err != nil {
		return st, fmt.Errorf("error reading process: %w", err)
	}
	info, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return st, fmt.Errorf("error reading process memory: %w", err)
	}
	st.ProcessRSS = info.RSS
	return st, nil
}

// DashboardService assembles the console overview
type DashboardService interface {
	Overview(ctx context.Context) (*Dashboard, error)
}

type dashboardServiceImpl struct {
	repos  *repositories.Repositories
	probe  HostProbe
	clock  Clock
	logger zerolog.Logger
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(repos *repositories.Repositories, probe HostProbe, clock Clock, logger zerolog.Logger) DashboardService {
	return &dashboardServiceImpl{repos: repos, probe: probe, clock: clock, logger: logger}
}

func (s *dashboardServiceImpl) Overview(ctx context.Context) (*Dashboard, error) {
	count, err := s.repos.RegistrationRepository.Count(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := s.repos.ApplicationRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	staff, err := s.repos.StaffRepository.ListOrSeed(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		TotalStudents:     count,
		TotalStudentsText: message.NewPrinter(language.English).Sprintf("%d", count),
		ActiveFaculty:     len(staff),
		Momentum:          momentum(apps, s.clock.now()),
	}
	for _, a := range apps {
		if a.Status == models.StatusPending {
			d.PendingAdmissions++
		}
	}

	if s.probe != nil {
		st, err := s.probe.Status(ctx)
		if err != nil {
			// the card still shows Live; the numbers are best effort
			s.logger.Warn().Err(err).Msg("Host probe failed")
		}
		d.Portal = st
	} else {
		d.Portal = PortalStatus{Status: "Live"}
	}
	return d, nil
}

// momentum counts applications of the last chartDays days per weekday,
// Monday first. Unparseable dates are skipped.
func momentum(apps []models.AdmissionForm, now time.Time) []DayCount {
	since := helpers.StartOfDay(now).AddDate(0, 0, -(chartDays - 1))
	counts := make(map[time.Weekday]int, chartDays)
	for _, a := range apps {
		applied, err := time.Parse(time.RFC3339, a.DateApplied)
		if err != nil {
			continue
		}
		applied = applied.In(now.Location())
		if applied.Before(since) || applied.After(now) {
			continue
		}
		counts[applied.Weekday()]++
	}

	out := make([]DayCount, 0, chartDays)
	for i := 1; i <= chartDays; i++ {
		day := time.Weekday(i % chartDays)
		out = append(out, DayCount{Name: day.String()[:3], Apps: counts[day]})
	}
	return out
}

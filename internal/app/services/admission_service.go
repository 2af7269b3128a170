package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/qmc/portal/internal/app/models"
	"github.com/qmc/portal/internal/app/models/dto"
	"github.com/qmc/portal/internal/app/repositories"
	"github.com/qmc/portal/internal/pkg/apperrors"
	"github.com/qmc/portal/internal/pkg/idgen"
	"github.com/qmc/portal/internal/pkg/imaging"
	"github.com/qmc/portal/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// DateAppliedLayout matches JavaScript's toISOString
const DateAppliedLayout = "2006-01-02T15:04:05.000Z07:00"

// DraftTTL is how long an untouched draft is kept
const DraftTTL = time.Hour

// DraftState is the position of a draft in the intake flow
type DraftState string

const (
	DraftEditing   DraftState = "Editing"
	DraftSubmitted DraftState = "Submitted"
)

// DraftView is what a client sees of a draft
type DraftView struct {
	ID         string               `json:"id"`
	State      DraftState           `json:"state"`
	Form       models.AdmissionForm `json:"form"`
	Errors     map[string]string    `json:"errors,omitempty"`
	CameraOpen bool                 `json:"cameraOpen"`
}

// FrameSink accepts preview frames from the browser
type FrameSink interface {
	PushFrame(r io.Reader) error
}

type draft struct {
	id        string
	state     DraftState
	form      models.AdmissionForm
	errs      map[string]string
	camera    imaging.Camera
	touchedAt time.Time
}

func (d *draft) view() *DraftView {
	v := &DraftView{
		ID:         d.id,
		State:      d.state,
		Form:       d.form,
		CameraOpen: d.camera != nil,
	}
	if len(d.errs) > 0 {
		v.Errors = make(map[string]string, len(d.errs))
		for k, msg := range d.errs {
			v.Errors[k] = msg
		}
	}
	return v
}

// releaseCamera closes and forgets the camera, if any
func (d *draft) releaseCamera() {
	if d.camera != nil {
		_ = d.camera.Close()
		d.camera = nil
	}
}

// AdmissionService validates and stores admission applications
type AdmissionService interface {
	Validate(form models.AdmissionForm) error
	Submit(ctx context.Context, form models.AdmissionForm) (*models.AdmissionForm, error)
	ListApplications(ctx context.Context) ([]models.AdmissionForm, error)

	NewDraft() *DraftView
	GetDraft(id string) (*DraftView, error)
	UpdateDraft(id string, fields dto.DraftFieldsRequest) (*DraftView, error)
	StartCamera(ctx context.Context, id string, camera imaging.Camera) (*DraftView, error)
	FeedFrame(id string, frame io.Reader) error
	CapturePhoto(ctx context.Context, id string) (*DraftView, error)
	CancelCamera(id string) (*DraftView, error)
	UploadPhoto(id string, file io.Reader) (*DraftView, error)
	SubmitDraft(ctx context.Context, id string) (*DraftView, error)
	ResetDraft(id string) (*DraftView, error)
	DiscardDraft(id string)
}

type admissionServiceImpl struct {
	appRepo *repositories.ApplicationRepository
	ids     idgen.Generator
	clock   Clock
	logger  zerolog.Logger

	mu     sync.Mutex
	drafts map[string]*draft
}

// NewAdmissionService creates a new admission service instance
func NewAdmissionService(
	appRepo *repositories.ApplicationRepository,
	ids idgen.Generator,
	clock Clock,
	logger zerolog.Logger,
) AdmissionService {
	return &admissionServiceImpl{
		appRepo: appRepo,
		ids:     ids,
		clock:   clock,
		logger:  logger,
		drafts:  make(map[string]*draft),
	}
}

// Validate checks only fullName, email, admissionClass and passportPhoto
func (s *admissionServiceImpl) Validate(form models.AdmissionForm) error {
	return validation.Struct(&form)
}

// Submit validates and appends form as a new Pending application. Nothing
// is written when validation fails. Submissions are not audited.
func (s *admissionServiceImpl) Submit(ctx context.Context, form models.AdmissionForm) (*models.AdmissionForm, error) {
	if err := s.Validate(form); err != nil {
		return nil, err
	}

	form.ID = models.ApplicationIDPrefix + s.ids.NewID()
	form.Status = models.StatusPending
	form.DateApplied = s.clock.now().UTC().Format(DateAppliedLayout)

	if err := s.appRepo.Append(ctx, form); err != nil {
		return nil, fmt.Errorf("error saving application: %w", err)
	}

	s.logger.Info().
		Str("id", form.ID).
		Str("admissionClass", form.AdmissionClass).
		Msg("Admission application received")
	return &form, nil
}

func (s *admissionServiceImpl) ListApplications(ctx context.Context) ([]models.AdmissionForm, error) {
	return s.appRepo.List(ctx)
}

// NewDraft opens an empty form and sweeps drafts idle for longer than DraftTTL
func (s *admissionServiceImpl) NewDraft() *DraftView {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.now()
	for id, d := range s.drafts {
		if now.Sub(d.touchedAt) > DraftTTL {
			d.releaseCamera()
			delete(s.drafts, id)
		}
	}

	d := &draft{id: uuid.NewString(), state: DraftEditing, touchedAt: now}
	s.drafts[d.id] = d
	return d.view()
}

// withDraft runs fn on the draft under the registry lock
func (s *admissionServiceImpl) withDraft(id string, fn func(d *draft) error) (*DraftView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[id]
	if !ok {
		return nil, apperrors.ErrDraftNotFound
	}
	d.touchedAt = s.clock.now()
	if err := fn(d); err != nil {
		return d.view(), err
	}
	return d.view(), nil
}

// editing rejects changes to a confirmed draft
func editing(d *draft) error {
	if d.state != DraftEditing {
		return apperrors.ErrDraftSubmitted
	}
	return nil
}

func (s *admissionServiceImpl) GetDraft(id string) (*DraftView, error) {
	return s.withDraft(id, func(*draft) error { return nil })
}

func (s *admissionServiceImpl) UpdateDraft(id string, fields dto.DraftFieldsRequest) (*DraftView, error) {
	return s.withDraft(id, func(d *draft) error {
		if err := editing(d); err != nil {
			return err
		}
		fields.Apply(&d.form)
		return nil
	})
}

// StartCamera opens camera for the draft. When the device cannot be opened
// the draft and its photo are left unchanged.
func (s *admissionServiceImpl) StartCamera(ctx context.Context, id string, camera imaging.Camera) (*DraftView, error) {
	return s.withDraft(id, func(d *draft) error {
		if err := editing(d); err != nil {
			return err
		}
		d.releaseCamera()

		if err := camera.Open(ctx); err != nil {
			s.logger.Warn().Err(err).Str("draft", id).Msg("Camera could not be opened")
			return apperrors.NewDeviceError("Unable to access camera. Please check permissions or upload a photo instead.", err)
		}
		d.camera = camera
		return nil
	})
}

func (s *admissionServiceImpl) FeedFrame(id string, frame io.Reader) error {
	var sink FrameSink
	_, err := s.withDraft(id, func(d *draft) error {
		cam, ok := d.camera.(FrameSink)
		if d.camera == nil || !ok {
			return apperrors.NewConflictError("camera is not running")
		}
		sink = cam
		return nil
	})
	if err != nil {
		return err
	}

	// the frame is read and decoded outside s.mu
	if err := sink.PushFrame(frame); err != nil {
		switch {
		case errors.Is(err, imaging.ErrFrameTooLarge):
			return apperrors.NewBadRequestError(fmt.Sprintf("frame is larger than %dx%d", imaging.MaxFrameDimension, imaging.MaxFrameDimension))
		case errors.Is(err, imaging.ErrNotImage):
			return apperrors.NewBadRequestError("frame is not a JPEG or PNG image")
		case errors.Is(err, imaging.ErrCameraClosed):
			return apperrors.NewConflictError("camera is not running")
		}
		return err
	}
	return nil
}

// CapturePhoto freezes the current frame into the passport photo and
// releases the camera
func (s *admissionServiceImpl) CapturePhoto(ctx context.Context, id string) (*DraftView, error) {
	return s.withDraft(id, func(d *draft) error {
		if err := editing(d); err != nil {
			return err
		}
		if d.camera == nil {
			return apperrors.NewConflictError("camera is not running")
		}

		frame, err := d.camera.Frame(ctx)
		if err != nil {
			return apperrors.NewDeviceError("No camera image to capture yet.", err)
		}
		photo, err := imaging.EncodeFrame(frame)
		if err != nil {
			return fmt.Errorf("error encoding photo: %w", err)
		}

		d.form.PassportPhoto = photo
		delete(d.errs, "passportPhoto")
		d.releaseCamera()
		return nil
	})
}

// CancelCamera releases the camera and keeps the existing photo
func (s *admissionServiceImpl) CancelCamera(id string) (*DraftView, error) {
	return s.withDraft(id, func(d *draft) error {
		d.releaseCamera()
		return nil
	})
}

// UploadPhoto replaces the passport photo with an uploaded image file
func (s *admissionServiceImpl) UploadPhoto(id string, file io.Reader) (*DraftView, error) {
	return s.withDraft(id, func(d *draft) error {
		if err := editing(d); err != nil {
			return err
		}
		photo, err := imaging.FromReader(file)
		if err != nil {
			return apperrors.NewValidationError().Add("passportPhoto", "Please upload an image file")
		}
		d.form.PassportPhoto = photo
		delete(d.errs, "passportPhoto")
		return nil
	})
}

// SubmitDraft validates the draft. Rejected drafts stay editable with their
// field errors; accepted ones are stored and become read-only until reset.
func (s *admissionServiceImpl) SubmitDraft(ctx context.Context, id string) (*DraftView, error) {
	return s.withDraft(id, func(d *draft) error {
		if err := editing(d); err != nil {
			return err
		}

		saved, err := s.Submit(ctx, d.form)
		if err != nil {
			var verr *apperrors.ValidationError
			if errors.As(err, &verr) {
				d.errs = verr.Fields
			}
			return err
		}

		d.releaseCamera()
		d.form = *saved
		d.errs = nil
		d.state = DraftSubmitted
		return nil
	})
}

// ResetDraft clears the form and returns it to editing
func (s *admissionServiceImpl) ResetDraft(id string) (*DraftView, error) {
	return s.withDraft(id, func(d *draft) error {
		d.releaseCamera()
		d.form = models.AdmissionForm{}
		d.errs = nil
		d.state = DraftEditing
		return nil
	})
}

func (s *admissionServiceImpl) DiscardDraft(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.drafts[id]; ok {
		d.releaseCamera()
		delete(s.drafts, id)
	}
}

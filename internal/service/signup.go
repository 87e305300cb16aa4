package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/workwise/backend/config"
	"github.com/pageza/workwise/backend/internal/models"
	"github.com/pageza/workwise/backend/internal/storage"
	"github.com/pageza/workwise/backend/internal/types"
)

// SignupResult is returned after a profile was persisted
type SignupResult struct {
	Identity *models.User
	Profile  *models.Profile
	Token    string
	// Created is true when the identity was registered by this submission
	Created bool
}

// SignupService runs the profile submission flow: identity, photo,
// display sync, profile record, and rollback when the record cannot be written.
type SignupService struct {
	auth     IAuthService
	profiles IProfileService
	photos   storage.PhotoStore
	limits   storage.PhotoLimits
	caps     config.Capabilities
	metrics  *Metrics
	log      *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

var _ ISignupService = (*SignupService)(nil)

// SignupDeps are the collaborators of the sign-up flow. Photos may be nil
// when no blob backend is configured.
type SignupDeps struct {
	Auth     IAuthService
	Profiles IProfileService
	Photos   storage.PhotoStore
	Limits   storage.PhotoLimits
	Caps     config.Capabilities
	Metrics  *Metrics
	Logger   *zap.Logger
}

func NewSignupService(deps SignupDeps) *SignupService {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &SignupService{
		auth:     deps.Auth,
		profiles: deps.Profiles,
		photos:   deps.Photos,
		limits:   deps.Limits,
		caps:     deps.Caps,
		metrics:  deps.Metrics,
		log:      log.Named("signup"),
		now:      time.Now,
		inFlight: map[string]struct{}{},
	}
}

// Submit validates the form and creates the profile.
//
// Errors: ValidationErrors, ErrSubmissionInProgress, ErrProfileExists,
// *IdentityError, or an error matching ErrSubmissionFailed after rollback.
func (s *SignupService) Submit(ctx context.Context, session types.SessionContext, form types.SignupForm) (*SignupResult, error) {
	started := s.now()
	log := s.log.With(zap.String("client", session.ClientKey))

	errs := ValidateSignup(form, session, started)
	if form.Photo != nil {
		if _, err := s.limits.Check(form.Photo); err != nil {
			errs["photo"] = "Photo must be a JPEG, PNG or WEBP image within the size limit"
		}
	}
	if len(errs) > 0 {
		s.metrics.submission(OutcomeInvalid, started)
		return nil, errs
	}

	release, ok := s.acquire(submissionKey(session, form))
	if !ok {
		s.metrics.submission(OutcomeInProgress, started)
		return nil, ErrSubmissionInProgress
	}
	defer release()

	name := strings.TrimSpace(form.Name)

	// Identity
	var (
		identity *models.User
		created  bool
	)
	if session.Authenticated() {
		identity = session.Identity
		exists, err := s.profiles.ProfileExists(ctx, identity.ID)
		if err != nil {
			// The unique index still refuses a second profile
			log.Warn("profile existence check failed", zap.Error(err))
		} else if exists {
			s.metrics.submission(OutcomeDuplicate, started)
			return nil, ErrProfileExists
		}
	} else {
		user, err := s.auth.CreateAccount(ctx, form.Email, form.Password, name)
		if err != nil {
			log.Warn("account creation failed", zap.Error(err))
			s.metrics.submission(OutcomeIdentity, started)
			return nil, identityError(err)
		}
		identity = user
		created = true
	}
	log = log.With(zap.String("identity_id", identity.ID.String()), zap.Bool("new_identity", created))

	// Photo
	var photoURL, uploadedURL string
	if form.Photo != nil {
		if s.caps.PhotoUpload && s.photos != nil {
			url, err := s.photos.UploadPhoto(ctx, identity.ID, form.Photo)
			if err != nil {
				log.Warn("photo upload failed, continuing without photo", zap.Error(err))
				s.metrics.degraded("photo_upload")
			} else {
				photoURL, uploadedURL = url, url
			}
		} else {
			log.Warn("photo upload unavailable, continuing without photo")
			s.metrics.degraded("photo_upload")
		}
	} else if identity.PhotoURL != "" {
		photoURL = identity.PhotoURL
	}

	// Display profile. A failed or unavailable upload keeps the photo the identity already has.
	undo := rollbackPlan{identityID: identity.ID, created: created, uploadedURL: uploadedURL}
	if s.caps.DisplaySync {
		displayPhoto := photoURL
		if displayPhoto == "" {
			displayPhoto = identity.PhotoURL
		}
		previousName, previousPhoto := identity.DisplayName, identity.PhotoURL
		if err := s.auth.UpdateDisplayProfile(ctx, identity.ID, name, displayPhoto); err != nil {
			log.Warn("display profile sync failed", zap.Error(err))
			s.metrics.degraded("display_sync")
		} else {
			identity.DisplayName = name
			identity.PhotoURL = displayPhoto
			if !created {
				undo.restoreDisplay = true
				undo.previousName, undo.previousPhoto = previousName, previousPhoto
			}
		}
	}

	// Profile record
	record, err := buildProfile(form, identity, photoURL, s.now())
	if err == nil {
		err = s.profiles.CreateProfile(ctx, identity.ID, record)
	}
	if err != nil {
		log.Error("profile persistence failed, rolling back", zap.Error(err))
		s.rollback(ctx, log, undo)
		if undo.restoreDisplay {
			identity.DisplayName, identity.PhotoURL = undo.previousName, undo.previousPhoto
		}
		s.metrics.submission(OutcomeRolledBack, started)
		return nil, submissionFailed(err)
	}

	token, err := s.auth.IssueToken(identity)
	if err != nil {
		log.Error("failed to issue session token", zap.Error(err))
	}

	log.Info("profile created")
	s.metrics.submission(OutcomeCreated, started)
	return &SignupResult{
		Identity: identity,
		Profile:  record,
		Token:    token,
		Created:  created,
	}, nil
}

// rollbackPlan records what a submission changed and may have to undo
type rollbackPlan struct {
	identityID  uuid.UUID
	created     bool
	uploadedURL string

	// set when a reused identity's display profile was overwritten
	restoreDisplay bool
	previousName   string
	previousPhoto  string
}

// rollback undoes what this submission changed. The steps run concurrently
// and are joined before returning; failures are only logged.
func (s *SignupService) rollback(ctx context.Context, log *zap.Logger, plan rollbackPlan) {
	// A cancelled request must not stop the cleanup
	ctx = context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	if plan.uploadedURL != "" && s.photos != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.photos.DeletePhoto(ctx, plan.uploadedURL)
			if err != nil {
				log.Error("rollback: photo delete failed", zap.String("url", plan.uploadedURL), zap.Error(err))
			}
			s.metrics.rollback("photo", err)
		}()
	}
	if plan.created {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.auth.DeleteIdentity(ctx, plan.identityID)
			if err != nil {
				log.Error("rollback: identity delete failed", zap.Error(err))
			}
			s.metrics.rollback("identity", err)
		}()
	} else if plan.restoreDisplay {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.auth.UpdateDisplayProfile(ctx, plan.identityID, plan.previousName, plan.previousPhoto)
			if err != nil {
				log.Error("rollback: display profile restore failed", zap.String("photo_url", plan.previousPhoto), zap.Error(err))
			}
			s.metrics.rollback("display_profile", err)
		}()
	}
	wg.Wait()
}

// submissionKey identifies the person submitting: the session identity when
// there is one, the normalized email otherwise.
func submissionKey(session types.SessionContext, form types.SignupForm) string {
	if session.Authenticated() {
		return "identity:" + session.Identity.ID.String()
	}
	return "email:" + normalizeEmail(form.Email)
}

// acquire marks key as being processed. An empty key is never guarded.
func (s *SignupService) acquire(key string) (func(), bool) {
	if key == "" {
		return func() {}, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[key]; busy {
		return nil, false
	}
	s.inFlight[key] = struct{}{}

	return func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}, true
}

func buildProfile(form types.SignupForm, identity *models.User, photoURL string, now time.Time) (*models.Profile, error) {
	dob, err := time.Parse(dateLayout, strings.TrimSpace(form.DateOfBirth))
	if err != nil {
		return nil, errors.New("invalid date of birth")
	}
	phone, _ := NormalizePhone(form.Phone)

	return &models.Profile{
		IdentityID:     identity.ID,
		Name:           strings.TrimSpace(form.Name),
		Email:          identity.Email,
		DateOfBirth:    dob,
		EducationLevel: form.EducationLevel,
		Summary:        strings.TrimSpace(form.Summary),
		Phone:          phone,
		Social: models.SocialLinks{
			LinkedIn:  strings.TrimSpace(form.LinkedIn),
			Facebook:  strings.TrimSpace(form.Facebook),
			Instagram: strings.TrimSpace(form.Instagram),
			Twitter:   strings.TrimSpace(form.Twitter),
			Website:   strings.TrimSpace(form.Website),
		},
		PhotoURL:           photoURL,
		Provider:           identity.Provider,
		TermsAccepted:      true,
		VerificationStatus: models.VerificationNone,
		CreatedAt:          now,
	}, nil
}

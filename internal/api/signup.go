package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/workwise/backend/internal/middleware"
	"github.com/pageza/workwise/backend/internal/service"
	"github.com/pageza/workwise/backend/internal/types"
)

const (
	dashboardPath = "/dashboard"
	// room for the text fields on top of the photo
	formOverhead = 1 << 20
)

type SignupHandler struct {
	signupService service.ISignupService
	maxPhotoBytes int64
	log           *zap.Logger
}

func NewSignupHandler(signupService service.ISignupService, maxPhotoBytes int64, log *zap.Logger) *SignupHandler {
	return &SignupHandler{
		signupService: signupService,
		maxPhotoBytes: maxPhotoBytes,
		log:           log.Named("signup"),
	}
}

func (h *SignupHandler) RegisterRoutes(router *gin.RouterGroup, resolver middleware.IdentityResolver, limiter *middleware.RateLimiter) {
	router.POST("/signup",
		limiter.PerClientMiddleware(),
		middleware.OptionalAuth(resolver),
		h.Submit,
	)
	router.GET("/signup/limit", limiter.StatusHandler())
}

// Submit accepts the sign-up form as multipart (with an optional "photo" file) or JSON
func (h *SignupHandler) Submit(c *gin.Context) {
	if h.maxPhotoBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxPhotoBytes+formOverhead)
	}

	form, err := h.bindForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
		return
	}

	session := types.SessionContext{ClientKey: c.ClientIP()}
	if identity, ok := middleware.IdentityFromContext(c); ok {
		session.Identity = identity
	}

	result, err := h.signupService.Submit(c.Request.Context(), session, form)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.SignupResponse{
		Token:    result.Token,
		Identity: result.Identity,
		Profile:  result.Profile,
		Redirect: dashboardPath,
	})
}

func (h *SignupHandler) bindForm(c *gin.Context) (types.SignupForm, error) {
	var form types.SignupForm

	switch c.ContentType() {
	case gin.MIMEMultipartPOSTForm:
	case gin.MIMEPOSTForm:
		if err := c.ShouldBind(&form); err != nil {
			return form, errors.New("invalid form data")
		}
		return form, nil
	default:
		if err := c.ShouldBindJSON(&form); err != nil {
			return form, errors.New("invalid request body")
		}
		return form, nil
	}

	if err := c.ShouldBind(&form); err != nil {
		return form, errors.New("invalid form data")
	}

	header, err := c.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return form, nil
	}
	if err != nil {
		return form, errors.New("invalid photo upload")
	}

	file, err := header.Open()
	if err != nil {
		return form, errors.New("invalid photo upload")
	}
	defer file.Close()

	// Read one byte past the limit so oversized photos are reported as such
	reader := io.Reader(file)
	if h.maxPhotoBytes > 0 {
		reader = io.LimitReader(file, h.maxPhotoBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return form, errors.New("invalid photo upload")
	}
	if len(data) > 0 {
		form.Photo = &types.PhotoFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	}
	return form, nil
}

func (h *SignupHandler) respondError(c *gin.Context, err error) {
	var (
		validationErrs service.ValidationErrors
		identityErr    *service.IdentityError
	)

	switch {
	case errors.As(err, &validationErrs):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:  "Please correct the highlighted fields.",
			Fields: validationErrs,
		})
	case errors.As(err, &identityErr):
		status, field, message := http.StatusBadRequest, "email", capitalize(identityErr.Error())
		switch {
		case errors.Is(err, service.ErrEmailInUse):
			status = http.StatusConflict
		case errors.Is(err, service.ErrWeakPassword):
			field = "password"
		default:
			// Backend failures are logged, not shown
			h.log.Error("identity creation failed", zap.Error(err))
			status, message = http.StatusBadGateway, "We could not create your account. Please try again."
		}
		c.JSON(status, types.ErrorResponse{
			Error:  message,
			Fields: map[string]string{field: message},
		})
	case errors.Is(err, service.ErrProfileExists):
		c.JSON(http.StatusConflict, gin.H{"error": "You already have a profile.", "redirect": dashboardPath})
	case errors.Is(err, service.ErrSubmissionInProgress):
		c.JSON(http.StatusConflict, types.ErrorResponse{Error: "Your profile is already being created."})
	case errors.Is(err, service.ErrSubmissionFailed):
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: service.ErrSubmissionFailed.Error()})
	default:
		h.log.Error("signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: service.ErrSubmissionFailed.Error()})
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"mentorconnect/internal/auth"
	apperrors "mentorconnect/internal/errors"
	"mentorconnect/internal/model"
	"mentorconnect/internal/service"
)

type stubValidator struct {
	validate *validator.Validate
}

func (v *stubValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// stubSessionService returns canned responses so handler tests exercise
// binding, claims extraction, and error mapping only.
type stubSessionService struct {
	request *model.SessionRequest
	err     error
}

func (s *stubSessionService) Create(_ context.Context, studentID, mentorID uint, topic, description string, scheduledAt time.Time) (*model.SessionRequest, error) {
	return s.request, s.err
}

func (s *stubSessionService) Respond(_ context.Context, requestID, actorID uint, decision service.Decision) (*model.SessionRequest, error) {
	return s.request, s.err
}

func (s *stubSessionService) Complete(_ context.Context, requestID, actorID uint) (*model.SessionRequest, error) {
	return s.request, s.err
}

func (s *stubSessionService) ListForUser(_ context.Context, userID uint) ([]model.SessionRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []model.SessionRequest{*s.request}, nil
}

func (s *stubSessionService) PendingForMentor(_ context.Context, mentorID uint) ([]model.SessionRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []model.SessionRequest{*s.request}, nil
}

func newSessionContext(t *testing.T, method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = &stubValidator{validate: validator.New()}

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{UserID: userID, Role: model.RoleStudent})
	c.Set("user", token)

	return c, rec
}

func TestSessionHandler_Create(t *testing.T) {
	t.Run("returns 201 with the created request", func(t *testing.T) {
		h := NewSessionHandler(&stubSessionService{request: &model.SessionRequest{
			ID:       1,
			MentorID: 2,
			Status:   model.SessionStatusPending,
		}})

		body := fmt.Sprintf(`{"mentor_id":2,"topic":"Intro to Go","scheduled_at":%q}`, time.Now().Add(24*time.Hour).Format(time.RFC3339))
		c, rec := newSessionContext(t, http.MethodPost, "/api/sessions", body, 1)

		assert.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"pending"`)
	})

	t.Run("rejects body missing required fields", func(t *testing.T) {
		h := NewSessionHandler(&stubSessionService{})

		c, _ := newSessionContext(t, http.MethodPost, "/api/sessions", `{"topic":"Intro to Go"}`, 1)

		err := h.Create(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("maps domain errors to status codes", func(t *testing.T) {
		h := NewSessionHandler(&stubSessionService{err: fmt.Errorf("%w: proposed time must be in the future", apperrors.ErrValidation)})

		body := fmt.Sprintf(`{"mentor_id":2,"topic":"Intro to Go","scheduled_at":%q}`, time.Now().Format(time.RFC3339))
		c, _ := newSessionContext(t, http.MethodPost, "/api/sessions", body, 1)

		err := h.Create(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestSessionHandler_Respond(t *testing.T) {
	t.Run("rejects decisions outside accept and decline", func(t *testing.T) {
		h := NewSessionHandler(&stubSessionService{})

		c, _ := newSessionContext(t, http.MethodPost, "/api/sessions/1/respond", `{"decision":"maybe"}`, 2)
		c.SetParamNames("id")
		c.SetParamValues("1")

		err := h.Respond(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("state conflicts surface as 409", func(t *testing.T) {
		h := NewSessionHandler(&stubSessionService{err: fmt.Errorf("%w: session request is no longer pending", apperrors.ErrState)})

		c, _ := newSessionContext(t, http.MethodPost, "/api/sessions/1/respond", `{"decision":"accept"}`, 2)
		c.SetParamNames("id")
		c.SetParamValues("1")

		err := h.Respond(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusConflict, httpErr.Code)
	})

	t.Run("rejects non-numeric id", func(t *testing.T) {
		h := NewSessionHandler(&stubSessionService{})

		c, _ := newSessionContext(t, http.MethodPost, "/api/sessions/abc/respond", `{"decision":"accept"}`, 2)
		c.SetParamNames("id")
		c.SetParamValues("abc")

		err := h.Respond(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestSessionHandler_Complete(t *testing.T) {
	t.Run("authorization failures surface as 403", func(t *testing.T) {
		h := NewSessionHandler(&stubSessionService{err: fmt.Errorf("%w: only the student or mentor may complete a session", apperrors.ErrAuthorization)})

		c, _ := newSessionContext(t, http.MethodPost, "/api/sessions/1/complete", "", 7)
		c.SetParamNames("id")
		c.SetParamValues("1")

		err := h.Complete(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("missing token yields 401", func(t *testing.T) {
		h := NewSessionHandler(&stubSessionService{})

		e := echo.New()
		req := httptest.NewRequest(http.MethodPost, "/api/sessions/1/complete", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")

		err := h.Complete(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

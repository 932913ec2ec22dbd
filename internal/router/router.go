package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"mentorconnect/internal/auth"
	"mentorconnect/internal/config"
	"mentorconnect/internal/errors"
	"mentorconnect/internal/handler"
	"mentorconnect/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	mentorHandler *handler.MentorHandler,
	sessionHandler *handler.SessionHandler,
	messageHandler *handler.MessageHandler,
	reviewHandler *handler.ReviewHandler,
	paymentHandler *handler.PaymentHandler,
	notificationHandler *handler.NotificationHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Mentor directory is browsable without an account
	api.GET("/mentors", mentorHandler.Search)
	api.GET("/mentors/:id", mentorHandler.Detail)
	api.GET("/mentors/:id/reviews", reviewHandler.ListForMentor)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
	}))

	// Profile routes
	secured.GET("/profile", profileHandler.Get)
	secured.PUT("/profile/student", profileHandler.UpdateStudent)
	secured.PUT("/profile/mentor", profileHandler.UpdateMentor)
	secured.PUT("/profile/availability", profileHandler.SetAvailability)

	// Session request routes
	secured.POST("/sessions", sessionHandler.Create)
	secured.GET("/sessions", sessionHandler.List)
	secured.GET("/sessions/pending", sessionHandler.Pending)
	secured.POST("/sessions/:id/respond", sessionHandler.Respond)
	secured.POST("/sessions/:id/complete", sessionHandler.Complete)
	secured.POST("/sessions/:id/pay", paymentHandler.Pay)

	// Payment routes
	secured.GET("/payments", paymentHandler.List)
	secured.POST("/payments/:id/refund", paymentHandler.Refund)

	// Messaging routes
	secured.POST("/messages", messageHandler.Send)
	secured.GET("/messages", messageHandler.Conversations)
	secured.GET("/messages/:id", messageHandler.History)

	// Review routes
	secured.POST("/reviews", reviewHandler.Submit)

	// Notification routes
	secured.GET("/notifications", notificationHandler.List)
	secured.GET("/notifications/unread", notificationHandler.UnreadCount)
	secured.POST("/notifications/:id/read", notificationHandler.MarkRead)

	// Admin routes
	admin := secured.Group("/admin", RequireRole(model.RoleAdmin))
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/sessions", adminHandler.RecentSessions)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users/:id/deactivate", adminHandler.DeactivateUser)
}

// RequireRole rejects callers whose token does not carry the given role.
func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok || claims.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: "insufficient role",
					Code:  "AUTHORIZATION_ERROR",
				})
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

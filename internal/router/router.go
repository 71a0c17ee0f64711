package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"gigboard/internal/auth"
	"gigboard/internal/config"
	apperr "gigboard/internal/errors"
	"gigboard/internal/handler"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Job     *handler.JobHandler
	Message *handler.MessageHandler
	Assist  *handler.AssistHandler
	Event   *handler.EventHandler
	Seed    *handler.SeedHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, tokens auth.TokenStoreInterface, h Handlers) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/seed", h.Seed.Seed)

	// Secured routes (require JWT authentication)
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey:    []byte(cfg.JWTSecret),
			SigningMethod: jwt.SigningMethodHS256.Alg(),
			TokenLookup:   "header:" + echo.HeaderAuthorization + ":Bearer ",
			ContextKey:    handler.ContextKeyUser,
			NewClaimsFunc: func(echo.Context) jwt.Claims { return new(auth.Claims) },
			ErrorHandler: func(c echo.Context, err error) error {
				return unauthorized("missing or invalid token")
			},
		}),
		rejectRevoked(tokens),
	)

	secured.POST("/auth/logout", h.Auth.Logout)

	secured.GET("/me", h.User.GetMe)
	secured.PUT("/me", h.User.UpdateMe)
	secured.GET("/me/postings", h.Job.ListPostings)
	secured.GET("/me/applications", h.Job.ListApplications)
	secured.GET("/users", h.User.ListUsers)
	secured.GET("/users/:id", h.User.GetUser)

	secured.GET("/jobs", h.Job.ListJobs)
	secured.POST("/jobs", h.Job.CreateJob)
	secured.POST("/jobs/suggestions", h.Assist.SuggestJobDetails)
	secured.GET("/jobs/:id", h.Job.GetJob)
	secured.POST("/jobs/:id/apply", h.Job.Apply)
	secured.POST("/jobs/:id/select", h.Job.SelectApplicant)
	secured.POST("/jobs/:id/complete", h.Job.Complete)
	secured.POST("/jobs/:id/pay", h.Job.Pay)
	secured.POST("/jobs/:id/cancel", h.Job.Cancel)
	secured.GET("/jobs/:id/events", h.Event.ListEvents)
	secured.GET("/jobs/:id/messages", h.Message.ListMessages)
	secured.POST("/jobs/:id/messages", h.Message.PostMessage)
	secured.POST("/jobs/:id/suggestions", h.Assist.SuggestReplies)
	secured.DELETE("/messages/:id", h.Message.DeleteMessage)
}

// rejectRevoked refuses refresh tokens used as bearer tokens and access tokens
// blacklisted by logout.
func rejectRevoked(tokens auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(handler.ContextKeyUser).(*jwt.Token)
			if !ok {
				return unauthorized("invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok || claims.Kind != auth.KindAccess {
				return unauthorized("invalid token")
			}
			revoked, err := tokens.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
			if err != nil {
				return err
			}
			if revoked {
				return unauthorized("token has been revoked")
			}
			return next(c)
		}
	}
}

func unauthorized(msg string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, apperr.ErrorResponse{
		Error: msg,
		Code:  "UNAUTHORIZED",
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates the request validator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

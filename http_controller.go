package auth

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RouteRegistrar captures the router methods used by the controller.
type RouteRegistrar interface {
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// AuthControllerRoutes are the mount points of the JSON auth API.
type AuthControllerRoutes struct {
	Users   string
	Login   string
	Refresh string
}

// AuthController handles the Noteful auth endpoints: user registration,
// credential login, and token refresh. All responses are JSON.
type AuthController struct {
	Debug      bool
	Logger     Logger
	Routes     *AuthControllerRoutes
	Auther     Authenticator
	Register   *RegisterUserHandler
	AuthScheme string
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

func WithAuthenticator(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithRepositoryManager(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Register = NewRegisterUserHandler(repo)
		return c
	}
}

func WithDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:     defLogger{},
		AuthScheme: "Bearer",
		Routes: &AuthControllerRoutes{
			Users:   "/api/users",
			Login:   "/api/login",
			Refresh: "/api/refresh",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Register == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the auth API on the given router group.
func RegisterAuthRoutes(app RouteRegistrar, opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Users, controller.RegistrationCreate)
	app.Post(controller.Routes.Login, controller.LoginPost)
	app.Post(controller.Routes.Refresh, controller.RefreshPost)

	return controller
}

// LoginRequest is the credentials body. Fields stay raw so a missing or
// non-string field can be rejected as a 400 before any lookup happens.
type LoginRequest struct {
	Username json.RawMessage `json:"username"`
	Password json.RawMessage `json:"password"`
}

// Credentials returns the typed username and password, reporting ok=false
// when either is absent or not a string.
func (r LoginRequest) Credentials() (string, string, bool) {
	username, ok := rawString(r.Username)
	if !ok {
		return "", "", false
	}

	password, ok := rawString(r.Password)
	if !ok {
		return "", "", false
	}

	return username, password, true
}

// RegistrationCreate handles POST /api/users.
func (a *AuthController) RegistrationCreate(ctx router.Context) error {
	payload := new(RegistrationCreatePayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register user parse payload", "error", err)
		return ctx.JSON(fiber.StatusBadRequest, ErrorResponse{
			Message: "Invalid JSON body",
		})
	}

	msg, err := payload.Validate()
	if err != nil {
		return a.handleError(ctx, err)
	}

	user, err := a.Register.Execute(ctx.Context(), msg)
	if err != nil {
		return a.handleError(ctx, err)
	}

	view := user.View()

	if a.Debug {
		a.Logger.Debug("registered user", "view", print.MaybePrettyJSON(view))
	}

	return ctx.JSON(fiber.StatusCreated, view)
}

// LoginPost handles POST /api/login.
func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return ctx.JSON(fiber.StatusBadRequest, ErrorResponse{
			Message: "Invalid JSON body",
		})
	}

	username, password, ok := payload.Credentials()
	if !ok {
		return a.handleError(ctx, ErrMissingCredentials)
	}

	token, err := a.Auther.Login(ctx.Context(), username, password)
	if err != nil {
		return a.handleError(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, TokenResponse{AuthToken: token})
}

// RefreshPost handles POST /api/refresh. The bearer token must be valid and
// not expired; the response carries a token whose expiry is >= the original.
func (a *AuthController) RefreshPost(ctx router.Context) error {
	raw := BearerTokenFromContext(ctx, a.AuthScheme)
	if raw == "" {
		return a.handleError(ctx, ErrMissingToken)
	}

	token, err := a.Auther.Refresh(ctx.Context(), raw)
	if err != nil {
		return a.handleError(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, TokenResponse{AuthToken: token})
}

func (a *AuthController) handleError(ctx router.Context, err error) error {
	status := statusForError(err)

	if status == fiber.StatusInternalServerError {
		a.Logger.Error("auth endpoint error", "error", err)
	} else {
		a.Logger.Debug("auth endpoint rejected request", "status", status, "error", err)
	}

	return ctx.JSON(status, ErrorResponse{Message: messageForError(err)})
}

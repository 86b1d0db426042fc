package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fintracker/internal/entities"
	"github.com/mrlokans/fintracker/internal/pages"
)

// User-facing form messages
const (
	MsgInvalidCredentials = "Invalid username or password!"
	MsgDatabaseError      = "Database error!"
	MsgAlreadyRegistered  = "Username or email is already registered!"
	MsgRegistered         = "User registered successfully!"
	MsgLogoutFailed       = "Error logging out"
)

// FormMessages is the data the login and register templates receive.
type FormMessages struct {
	ErrorMessage   string
	SuccessMessage string
}

// AuditLogger records authentication events. audit.Service satisfies it.
type AuditLogger interface {
	LogAuth(action entities.AuditAction, accountID uint, username, ipAddr, userAgent string, success bool, reason string)
}

// AuthController handles the login, registration and logout endpoints.
type AuthController struct {
	service  *Service
	sessions SessionStore
	pages    *pages.Composer
	audit    AuditLogger
}

// NewAuthController creates a new authentication controller.
// auditLogger may be nil.
func NewAuthController(service *Service, sessions SessionStore, composer *pages.Composer, auditLogger AuditLogger) *AuthController {
	return &AuthController{
		service:  service,
		sessions: sessions,
		pages:    composer,
		audit:    auditLogger,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router gin.IRouter) {
	anonymous := Enforce(ac.sessions, RequireAnonymous)

	router.GET("/login", anonymous, ac.LoginPage)
	router.POST("/login", anonymous, ac.Login)
	router.GET("/register", anonymous, ac.RegisterPage)
	router.POST("/register", anonymous, ac.Register)
	router.GET("/logout", ac.Logout)
	router.POST("/logout", ac.Logout)
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	ac.pages.RenderPage(c, "login", "Login", FormMessages{})
}

// RegisterPage renders the registration form.
func (ac *AuthController) RegisterPage(c *gin.Context) {
	ac.pages.RenderPage(c, "register", "Register", FormMessages{})
}

// Login handles the login form submission.
func (ac *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	account, err := ac.service.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		msg := MsgDatabaseError
		if errors.Is(err, ErrInvalidCredentials) {
			msg = MsgInvalidCredentials
		} else {
			log.Printf("Login failed for %q: %v", username, err)
		}
		ac.logAuth(c, entities.AuditActionLogin, 0, username, false, err.Error())
		ac.pages.RenderPage(c, "login", "Login", FormMessages{ErrorMessage: msg})
		return
	}

	if err := ac.sessions.CreateSession(c.Request, account); err != nil {
		log.Printf("Failed to create session for %q: %v", username, err)
		ac.logAuth(c, entities.AuditActionLogin, account.ID, username, false, "session: "+err.Error())
		ac.pages.RenderPage(c, "login", "Login", FormMessages{ErrorMessage: MsgDatabaseError})
		return
	}

	ac.logAuth(c, entities.AuditActionLogin, account.ID, account.Username, true, "")
	c.Redirect(http.StatusFound, RootPath)
}

// Register handles the registration form submission. A successful
// registration does not sign the visitor in.
func (ac *AuthController) Register(c *gin.Context) {
	input := RegistrationInput{
		Username: c.PostForm("username"),
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	account, err := ac.service.Register(c.Request.Context(), input)
	if err != nil {
		msg := MsgDatabaseError
		if errors.Is(err, ErrAlreadyRegistered) {
			msg = MsgAlreadyRegistered
		} else {
			log.Printf("Registration failed for %q: %v", input.Username, err)
		}
		ac.logAuth(c, entities.AuditActionRegister, 0, input.Username, false, err.Error())
		ac.pages.RenderPage(c, "register", "Register", FormMessages{ErrorMessage: msg})
		return
	}

	ac.logAuth(c, entities.AuditActionRegister, account.ID, account.Username, true, "")
	ac.pages.RenderPage(c, "register", "Register", FormMessages{SuccessMessage: MsgRegistered})
}

// Logout destroys the session and redirects to login.
func (ac *AuthController) Logout(c *gin.Context) {
	session := ac.sessions.CurrentSession(c.Request)

	if err := ac.sessions.DestroySession(c.Request); err != nil {
		log.Printf("Error destroying session: %v", err)
		c.String(http.StatusInternalServerError, MsgLogoutFailed)
		return
	}

	if session != nil {
		ac.logAuth(c, entities.AuditActionLogout, session.UserID, session.Username, true, "")
	}
	c.Redirect(http.StatusFound, LoginPath)
}

func (ac *AuthController) logAuth(c *gin.Context, action entities.AuditAction, accountID uint, username string, success bool, reason string) {
	if ac.audit == nil {
		return
	}
	ac.audit.LogAuth(action, accountID, username, c.ClientIP(), c.Request.UserAgent(), success, reason)
}

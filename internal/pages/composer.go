// Package pages renders HTML pages in two passes: the page-specific content
// template first, then the shared layout that wraps it.
//
// The layout receives the rendered content as Body together with the
// authentication display state, which the composer derives from the request
// itself so handlers only ever pass page data:
//
//	composer.RenderPage(c, "login", "Login", formMessages)
//
// If the content pass fails the layout pass never runs, and nothing but the
// generic error body reaches the client.
package pages

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// LayoutTemplate is the name of the shared chrome template.
const LayoutTemplate = "layout"

// RenderErrorBody is sent with a 500 when either pass fails.
const RenderErrorBody = "Error rendering page"

var (
	ErrContentRender = errors.New("content render failed")
	ErrLayoutRender  = errors.New("layout render failed")
)

// AuthState is the authentication display state shown in the layout.
type AuthState struct {
	IsAuthenticated bool
	Username        string // empty when anonymous
}

// AuthStateSource derives AuthState from the current request's session.
type AuthStateSource interface {
	AuthState(r *http.Request) AuthState
}

// PageRequest is consumed once by Compose.
type PageRequest struct {
	View  string
	Title string
	Data  any
}

// ContentData is what content templates see: {{.Title}} and {{.Data}}.
type ContentData struct {
	Title string
	Data  any
}

// LayoutData is what the layout template sees.
type LayoutData struct {
	Title           string
	Body            template.HTML
	IsAuthenticated bool
	Username        string
}

type Composer struct {
	templates *template.Template
	auth      AuthStateSource
}

// NewComposer parses every *.html file under templatesPath.
func NewComposer(templatesPath string, auth AuthStateSource) (*Composer, error) {
	pattern := filepath.Join(templatesPath, "*.html")
	tmpl, err := template.New("").Funcs(FuncMap()).ParseGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates %s: %w", pattern, err)
	}
	return New(tmpl, auth), nil
}

// New wraps an already parsed template set.
func New(tmpl *template.Template, auth AuthStateSource) *Composer {
	return &Composer{templates: tmpl, auth: auth}
}

// FuncMap holds the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"currentYear": currentYear,
	}
}

// Compose runs the content pass and, only if it succeeds, the layout pass.
func (p *Composer) Compose(r *http.Request, req PageRequest) ([]byte, error) {
	body, err := p.renderContent(req)
	if err != nil {
		return nil, err
	}

	state := p.authState(r)
	return p.renderLayout(LayoutData{
		Title:           req.Title,
		Body:            body,
		IsAuthenticated: state.IsAuthenticated,
		Username:        state.Username,
	})
}

// RenderPage writes exactly one response: the composed page with status 200,
// or the generic 500 body when composition fails.
func (p *Composer) RenderPage(c *gin.Context, view, title string, data any) {
	p.Render(c, http.StatusOK, PageRequest{View: view, Title: title, Data: data})
}

// Render is RenderPage with an explicit success status.
func (p *Composer) Render(c *gin.Context, status int, req PageRequest) {
	page, err := p.Compose(c.Request, req)
	if err != nil {
		log.Printf("Render error (%s): %v", req.View, err)
		c.String(http.StatusInternalServerError, RenderErrorBody)
		return
	}
	c.Data(status, "text/html; charset=utf-8", page)
}

func (p *Composer) renderContent(req PageRequest) (template.HTML, error) {
	var buf bytes.Buffer
	err := p.templates.ExecuteTemplate(&buf, req.View, ContentData{Title: req.Title, Data: req.Data})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrContentRender, req.View, err)
	}
	// Content templates are html/template output, already escaped
	return template.HTML(buf.String()), nil
}

func (p *Composer) renderLayout(data LayoutData) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.templates.ExecuteTemplate(&buf, LayoutTemplate, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLayoutRender, err)
	}
	return buf.Bytes(), nil
}

func (p *Composer) authState(r *http.Request) AuthState {
	if p.auth == nil || r == nil {
		return AuthState{}
	}
	return p.auth.AuthState(r)
}

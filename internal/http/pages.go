package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fintracker/internal/auth"
	"github.com/mrlokans/fintracker/internal/pages"
)

// PageData is what the home and summary templates receive.
type PageData struct {
	Username string
}

type PagesController struct {
	pages    *pages.Composer
	sessions auth.SessionStore
}

func NewPagesController(composer *pages.Composer, sessions auth.SessionStore) *PagesController {
	return &PagesController{pages: composer, sessions: sessions}
}

// Home handles GET /. It is open to everyone; signed-in visitors are greeted
// by name.
func (pc *PagesController) Home(c *gin.Context) {
	var data PageData
	if session := pc.sessions.CurrentSession(c.Request); session != nil {
		data.Username = session.Username
	}
	pc.pages.RenderPage(c, "index", "Home", data)
}

// Summary handles GET /summary behind RequireAuthenticated.
func (pc *PagesController) Summary(c *gin.Context) {
	pc.pages.RenderPage(c, "summary", "Summary", PageData{Username: auth.GetUsername(c)})
}

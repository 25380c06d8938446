package render

import (
	"embed"
	"html/template"
	"io"
	"io/fs"

	"github.com/edvin/dokdash/internal/inventory"
)

//go:embed static
var staticFS embed.FS

// AssetsPath is where the dashboard's own stylesheet and script are
// mounted. It stays clear of /assets/, which belongs to a STATIC_DIR bundle.
const AssetsPath = "/_dashboard/assets/"

// StaticFS holds the stylesheet and script served under AssetsPath.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page states, one visible at a time.
const (
	PageConfig  = "config"
	PageLoading = "loading"
	PageError   = "error"
	PageData    = "data"
	PageIDs     = "ids"
)

// NavItem is one sidebar entry.
type NavItem struct {
	ID    string
	Icon  string
	Title string
	Href  string
}

// NavContext carries the navigation state shared by the sidebar renderer
// and the handlers reacting to it.
type NavContext struct {
	Items     []NavItem
	Active    string
	Collapsed bool
}

// DefaultNav returns the dashboard and identifier entries.
func DefaultNav() NavContext {
	return NavContext{
		Items: []NavItem{
			{ID: PageData, Icon: "📊", Title: "Dashboard", Href: "/"},
			{ID: PageIDs, Icon: "🔑", Title: "All IDs", Href: "/ids"},
		},
		Active: PageData,
	}
}

// Title returns the title of the active item.
func (n NavContext) Title() string {
	for _, item := range n.Items {
		if item.ID == n.Active {
			return item.Title
		}
	}
	return "Dashboard"
}

// Page is everything needed to draw the full dashboard document.
type Page struct {
	State       string
	Nav         NavContext
	APIURL      string
	APIKey      string
	RememberKey bool
	Error       string
	Snapshot    *inventory.Snapshot
	Toast       string
	ToastFailed bool
}

type pageView struct {
	Page
	Title     string
	Dashboard *Node
	IDs       *Node
}

// Renderer draws full pages from the embedded templates.
type Renderer struct {
	pages *template.Template
}

func NewRenderer() (*Renderer, error) {
	pages, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the page. Both the data and identifier panels are drawn
// from the same snapshot; only the active one is visible.
func (r *Renderer) Render(w io.Writer, p Page) error {
	v := pageView{Page: p, Title: p.Nav.Title()}
	if p.Snapshot != nil {
		v.Dashboard = Dashboard(p.Snapshot.Projects, p.Snapshot.Totals)
		v.IDs = IDs(p.Snapshot.IDs)
	}
	return r.pages.ExecuteTemplate(w, "page", v)
}

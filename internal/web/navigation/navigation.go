// Package navigation carries the per-page navigation state the base layout
// renders: the page title, which header section is highlighted, and the
// breadcrumb trail.
package navigation

// BreadcrumbItem is one link of the breadcrumb trail. The active item is
// the current page and renders without a link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context is the navigation state a handler binds for one page render.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
}

// NewContext builds the navigation state for a page. Breadcrumbs are added
// with AddBreadcrumb, which chains.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb appends one trail entry and returns the context for
// chaining.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive reports whether section and page both match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive reports whether the given header section is the active
// one. The layout uses this to highlight the nav entry.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}

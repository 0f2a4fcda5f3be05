// Package access holds the page authorization model: the fixed page set, the
// visibility policy fetched from settings, and the route guard decision that
// maps (path, identity, visibility) to a render-or-redirect outcome.
package access

import "strings"

type PageKey string

const (
	PageHome       PageKey = "home"
	PageRules      PageKey = "rules"
	PageSchedule   PageKey = "schedule"
	PageAbout      PageKey = "about"
	PageKeymaps    PageKey = "keymaps"
	PagePrizes     PageKey = "prizes"
	PageGallery    PageKey = "gallery"
	PageResult     PageKey = "result"
	PageDashboard  PageKey = "dashboard"
	PageLogin      PageKey = "login"
	PageRegister   PageKey = "register"
	PageFAQ        PageKey = "faq"
	PageManagement PageKey = "management"
	PageAdminLogin PageKey = "admin-login"
)

// fallbackOrder is the fixed priority used when a navigation is denied. The
// first entry whose page is visible wins.
var fallbackOrder = []PageKey{
	PageHome, PageRules, PageSchedule, PageAbout, PageKeymaps,
	PagePrizes, PageGallery, PageResult, PageFAQ,
}

var pageKeys = map[PageKey]bool{
	PageHome: true, PageRules: true, PageSchedule: true, PageAbout: true,
	PageKeymaps: true, PagePrizes: true, PageGallery: true, PageResult: true,
	PageDashboard: true, PageLogin: true, PageRegister: true, PageFAQ: true,
	PageManagement: true, PageAdminLogin: true,
}

// KnownPage reports whether key names one of the fixed pages.
func KnownPage(key PageKey) bool { return pageKeys[key] }

// Visibility is the page-key to boolean mapping fetched once per app load. An
// absent key counts as visible, except result which stays hidden until the
// organizers publish it.
type Visibility map[PageKey]bool

func (v Visibility) Visible(key PageKey) bool {
	if value, ok := v[key]; ok {
		return value
	}
	return key != PageResult
}

// Identity is the resolved pair of the two independent identity types. Both
// may be present at once; the admin side takes precedence wherever the two
// would disagree.
type Identity struct {
	ParticipantID string
	AdminID       string
}

func (id Identity) HasParticipant() bool { return id.ParticipantID != "" }
func (id Identity) HasAdmin() bool       { return id.AdminID != "" }

type Action string

const (
	ActionRender      Action = "render"
	ActionRedirect    Action = "redirect"
	ActionUnavailable Action = "unavailable"
)

type Decision struct {
	Action Action
	Page   PageKey
}

// Decide is the route guard. It is total: every (path, identity, visibility)
// combination yields a decision and none panics or errors.
func Decide(path string, id Identity, vis Visibility) Decision {
	key, known := resolvePage(path)

	// The admin login page renders for everyone, always; otherwise there is
	// no way to establish an admin session once pages are locked down.
	if known && key == PageAdminLogin {
		return Decision{Action: ActionRender, Page: key}
	}

	if id.HasAdmin() {
		if !known {
			return Decision{Action: ActionRedirect, Page: fallbackOrder[0]}
		}
		return Decision{Action: ActionRender, Page: key}
	}

	if !known {
		return fallbackDecision(vis)
	}

	switch key {
	case PageDashboard:
		if id.HasParticipant() && vis.Visible(PageDashboard) {
			return Decision{Action: ActionRender, Page: key}
		}
		if vis.Visible(PageLogin) {
			return Decision{Action: ActionRedirect, Page: PageLogin}
		}
		return fallbackDecision(vis)
	case PageManagement:
		// Only an admin session admits management, handled above.
		return fallbackDecision(vis)
	default:
		if vis.Visible(key) {
			return Decision{Action: ActionRender, Page: key}
		}
		return fallbackDecision(vis)
	}
}

// Fallback returns the first visible page in priority order. ok is false when
// every candidate is hidden.
func Fallback(vis Visibility) (PageKey, bool) {
	for _, key := range fallbackOrder {
		if vis.Visible(key) {
			return key, true
		}
	}
	return "", false
}

func fallbackDecision(vis Visibility) Decision {
	if key, ok := Fallback(vis); ok {
		return Decision{Action: ActionRedirect, Page: key}
	}
	return Decision{Action: ActionUnavailable}
}

func resolvePage(path string) (PageKey, bool) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "", false
	}
	segment := strings.ToLower(strings.SplitN(trimmed, "/", 2)[0])
	key := PageKey(segment)
	if !pageKeys[key] {
		return "", false
	}
	return key, true
}

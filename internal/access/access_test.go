package access

import "testing"

func TestVisibilityDefaults(t *testing.T) {
	vis := Visibility{}
	for _, key := range []PageKey{PageHome, PageRules, PageDashboard, PageLogin, PageFAQ} {
		if !vis.Visible(key) {
			t.Fatalf("expected %s visible by default", key)
		}
	}
	if vis.Visible(PageResult) {
		t.Fatalf("expected result hidden by default")
	}
	if !(Visibility{PageResult: true}).Visible(PageResult) {
		t.Fatalf("expected explicit true to override result default")
	}
	if (Visibility{PageHome: false}).Visible(PageHome) {
		t.Fatalf("expected explicit false to hide home")
	}
}

func TestHiddenPageNeverRendersForNonAdmin(t *testing.T) {
	vis := Visibility{PagePrizes: false}
	for _, id := range []Identity{{}, {ParticipantID: "p-1"}} {
		decision := Decide("/prizes", id, vis)
		if decision.Action == ActionRender && decision.Page == PagePrizes {
			t.Fatalf("hidden page rendered for identity %+v", id)
		}
		if decision.Action != ActionRedirect || decision.Page != PageHome {
			t.Fatalf("expected redirect to home, got %+v", decision)
		}
	}
}

func TestAdminBypassesVisibility(t *testing.T) {
	vis := Visibility{}
	for _, key := range []PageKey{PageHome, PageRules, PageSchedule, PageAbout, PageKeymaps, PagePrizes, PageGallery, PageResult, PageDashboard, PageLogin, PageRegister, PageFAQ, PageManagement} {
		vis[key] = false
	}
	admin := Identity{AdminID: "admin"}
	for key := range vis {
		decision := Decide("/"+string(key), admin, vis)
		if decision.Action != ActionRender || decision.Page != key {
			t.Fatalf("expected admin to render %s, got %+v", key, decision)
		}
	}
}

func TestAdminLoginAlwaysRenders(t *testing.T) {
	vis := Visibility{PageHome: false}
	for _, id := range []Identity{{}, {ParticipantID: "p-1"}, {AdminID: "admin"}} {
		decision := Decide("/admin-login", id, vis)
		if decision.Action != ActionRender || decision.Page != PageAdminLogin {
			t.Fatalf("expected admin-login to render for %+v, got %+v", id, decision)
		}
	}
}

func TestDashboardRequiresParticipant(t *testing.T) {
	decision := Decide("/dashboard", Identity{}, Visibility{})
	if decision.Action != ActionRedirect || decision.Page != PageLogin {
		t.Fatalf("expected anonymous dashboard visit to redirect to login, got %+v", decision)
	}

	decision = Decide("/dashboard", Identity{ParticipantID: "p-1"}, Visibility{})
	if decision.Action != ActionRender || decision.Page != PageDashboard {
		t.Fatalf("expected participant to render dashboard, got %+v", decision)
	}
}

func TestHiddenDashboardRedirectsToLogin(t *testing.T) {
	vis := Visibility{PageDashboard: false}
	decision := Decide("/dashboard", Identity{ParticipantID: "p-1"}, vis)
	if decision.Action != ActionRedirect || decision.Page != PageLogin {
		t.Fatalf("expected redirect to login, got %+v", decision)
	}

	vis[PageLogin] = false
	decision = Decide("/dashboard", Identity{ParticipantID: "p-1"}, vis)
	if decision.Action != ActionRedirect || decision.Page != PageHome {
		t.Fatalf("expected redirect to first visible fallback, got %+v", decision)
	}
}

func TestManagementRequiresAdmin(t *testing.T) {
	decision := Decide("/management", Identity{ParticipantID: "p-1"}, Visibility{})
	if decision.Action != ActionRedirect || decision.Page != PageHome {
		t.Fatalf("expected participant to be bounced off management, got %+v", decision)
	}

	decision = Decide("/management", Identity{AdminID: "admin"}, Visibility{})
	if decision.Action != ActionRender || decision.Page != PageManagement {
		t.Fatalf("expected admin to render management, got %+v", decision)
	}
}

func TestRootAndUnknownPathsFallBack(t *testing.T) {
	vis := Visibility{PageHome: false, PageRules: false}
	for _, path := range []string{"/", "", "/nonsense", "/no/such/page"} {
		decision := Decide(path, Identity{}, vis)
		if decision.Action != ActionRedirect || decision.Page != PageSchedule {
			t.Fatalf("expected %q to redirect to schedule, got %+v", path, decision)
		}
	}
}

func TestFallbackPriorityOrder(t *testing.T) {
	vis := Visibility{}
	want := []PageKey{PageHome, PageRules, PageSchedule, PageAbout, PageKeymaps, PagePrizes, PageGallery, PageFAQ}
	for _, expected := range want {
		key, ok := Fallback(vis)
		if !ok || key != expected {
			t.Fatalf("expected fallback %s, got %s (ok=%v)", expected, key, ok)
		}
		vis[expected] = false
	}
	// result stays default-hidden, so hiding everything else exhausts the order
	if _, ok := Fallback(vis); ok {
		t.Fatalf("expected no fallback left")
	}
}

func TestAllPagesHiddenIsTerminal(t *testing.T) {
	vis := Visibility{}
	for _, key := range fallbackOrder {
		vis[key] = false
	}
	decision := Decide("/gallery", Identity{ParticipantID: "p-1"}, vis)
	if decision.Action != ActionUnavailable {
		t.Fatalf("expected terminal unavailable decision, got %+v", decision)
	}
}

func TestDecideIsTotal(t *testing.T) {
	paths := []string{"", "/", "/home", "/dashboard", "/management", "/admin-login", "/faq/extra", "/../weird", "///"}
	identities := []Identity{{}, {ParticipantID: "p"}, {AdminID: "a"}, {ParticipantID: "p", AdminID: "a"}}
	visibilities := []Visibility{nil, {}, {PageHome: false}, {PageResult: true}}
	for _, path := range paths {
		for _, id := range identities {
			for _, vis := range visibilities {
				decision := Decide(path, id, vis)
				if decision.Action == "" {
					t.Fatalf("empty decision for path=%q id=%+v vis=%v", path, id, vis)
				}
			}
		}
	}
}

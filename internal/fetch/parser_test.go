package fetch

import (
	"net/url"
	"strings"
	"testing"
)

const loginPage = `<!DOCTYPE html>
<html>
<head>
  <title>  PayPal -
    Log in </title>
  <meta name="description" content="Verify your account to avoid suspension">
  <meta property="og:description" content="ignored when a description exists">
  <style>body { color: red }</style>
  <script>var tracking = "do not include";</script>
</head>
<body>
  <h1>Your account is limited</h1>
  <p>Confirm your identity within 24 hours.</p>
  <form action="https://collector.example.net/steal" method="post">
    <input type="email" name="email">
    <input type="PASSWORD" name="pw">
  </form>
  <form action="/local"></form>
  <a href="/help">Help</a>
  <a href="https://login.example.com/privacy">Privacy</a>
  <a href="https://www.paypal.com/">Real site</a>
  <a href="https://other.example.org/">Other</a>
  <a href="#top">Top</a>
  <a href="mailto:x@example.com">Mail</a>
  <a href="javascript:void(0)">JS</a>
</body>
</html>`

// TestParse tests snapshot extraction from HTML.
func TestParse(t *testing.T) {
	t.Parallel()

	base, _ := url.Parse("https://login.example.com/signin")
	snap, err := Parse(strings.NewReader(loginPage), base, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("title is whitespace collapsed", func(t *testing.T) {
		t.Parallel()
		if snap.Title != "PayPal - Log in" {
			t.Errorf("Title = %q", snap.Title)
		}
	})

	t.Run("meta description wins over og", func(t *testing.T) {
		t.Parallel()
		if snap.Description != "Verify your account to avoid suspension" {
			t.Errorf("Description = %q", snap.Description)
		}
	})

	t.Run("password field detected", func(t *testing.T) {
		t.Parallel()
		if !snap.HasPasswordField {
			t.Error("expected HasPasswordField")
		}
	})

	t.Run("external form action", func(t *testing.T) {
		t.Parallel()
		if len(snap.ExternalFormActions) != 1 || snap.ExternalFormActions[0] != "collector.example.net" {
			t.Errorf("ExternalFormActions = %v", snap.ExternalFormActions)
		}
	})

	t.Run("links are counted by host", func(t *testing.T) {
		t.Parallel()
		if snap.InternalLinks != 2 {
			t.Errorf("InternalLinks = %d, expected 2", snap.InternalLinks)
		}
		if snap.ExternalLinks != 2 {
			t.Errorf("ExternalLinks = %d, expected 2", snap.ExternalLinks)
		}
	})

	t.Run("visible text excludes scripts styles and title", func(t *testing.T) {
		t.Parallel()
		if !strings.Contains(snap.Text, "Your account is limited Confirm your identity within 24 hours.") {
			t.Errorf("Text = %q", snap.Text)
		}
		for _, hidden := range []string{"tracking", "color: red", "Log in"} {
			if strings.Contains(snap.Text, hidden) {
				t.Errorf("Text should not contain %q: %q", hidden, snap.Text)
			}
		}
	})
}

// TestParseOGDescription tests the og:description fallback.
func TestParseOGDescription(t *testing.T) {
	t.Parallel()

	page := `<html><head><meta property="og:description" content="Claim your prize"></head><body></body></html>`
	snap, err := Parse(strings.NewReader(page), nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Description != "Claim your prize" {
		t.Errorf("Description = %q", snap.Description)
	}
}

// TestParseTextLimit tests truncation of visible text.
func TestParseTextLimit(t *testing.T) {
	t.Parallel()

	page := "<p>" + strings.Repeat("word ", 100) + "</p>"
	snap, err := Parse(strings.NewReader(page), nil, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Text != "word word word word ..." {
		t.Errorf("Text = %q", snap.Text)
	}
}

// TestSnapshotHints tests prompt hint rendering.
func TestSnapshotHints(t *testing.T) {
	t.Parallel()

	var nilSnap *Snapshot
	if nilSnap.Hints() != nil {
		t.Error("expected nil hints for nil snapshot")
	}

	snap := &Snapshot{
		URL:                 "http://a.example",
		FinalURL:            "https://b.example/login",
		StatusCode:          200,
		Title:               "Login",
		HasPasswordField:    true,
		ExternalFormActions: []string{"c.example"},
		InternalLinks:       1,
		ExternalLinks:       3,
	}
	joined := strings.Join(snap.Hints(), "\n")
	for _, want := range []string{
		"page fetched: HTTP 200",
		"redirected to: https://b.example/login",
		"page title: Login",
		"page contains a password field",
		"forms submit to other hosts: c.example",
		"links: 1 internal, 3 external",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("hints missing %q:\n%s", want, joined)
		}
	}
}

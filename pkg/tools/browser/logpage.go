package browser

import (
	"fmt"
	"strings"
	"time"
)

// dialogSelectors are tried in order to dismiss the login/confirmation
// dialogs the log page shows before rendering content. Button labels vary
// between the platform's login variants, so several are attempted and
// failures are ignored.
var dialogSelectors = []string{
	"text=确认",
	"text=确定",
	"text=登录",
	"button:has-text(\"OK\")",
	"button:has-text(\"Confirm\")",
}

// dialogClickTimeout bounds each dismissal attempt so a page without
// dialogs doesn't stall the flow.
const dialogClickTimeout = 2000.0

// PageResult is what the log page flow extracted.
type PageResult struct {
	URL         string
	Title       string
	Description string
	Text        string
}

// LogPage drives the platform's log detail page for one event.
type LogPage struct {
	manager *SessionManager
	pageURL string
}

// NewLogPage creates a log page flow against the given base page URL.
func NewLogPage(manager *SessionManager, pageURL string) *LogPage {
	return &LogPage{
		manager: manager,
		pageURL: pageURL,
	}
}

// URLFor builds the detail page URL for an event.
func (p *LogPage) URLFor(eventID string) string {
	return fmt.Sprintf("%s?p=%s", p.pageURL, eventID)
}

// Open navigates a fresh session to the event's log page, dismisses any
// login dialogs, waits for the content to settle and extracts the page
// text. The session is closed before returning.
func (p *LogPage) Open(eventID string, headless bool) (*PageResult, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("event ID cannot be empty")
	}

	if err := p.manager.Initialize(); err != nil {
		return nil, err
	}

	sessionName := "logpage-" + eventID
	session, err := p.manager.StartSession(sessionName, SessionOptions{
		Headless: headless,
	})
	if err != nil {
		return nil, err
	}
	defer p.manager.CloseSession(sessionName)

	pageURL := p.URLFor(eventID)
	if err := session.Navigate(pageURL, NavigateOptions{
		WaitUntil: "domcontentloaded",
	}); err != nil {
		return nil, err
	}

	p.dismissDialogs(session)

	// Give the page's log loader a moment after any auth redirect.
	time.Sleep(2 * time.Second)

	text, err := session.ExtractText(ExtractOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to extract log page text: %w", err)
	}

	result := &PageResult{
		URL:  session.CurrentURL,
		Text: strings.TrimSpace(text),
	}

	// Title and description come from the cleaned HTML; extraction
	// failures here don't invalidate the text we already have.
	if rawHTML, err := session.ExtractHTML(); err == nil {
		if cleaned, err := cleanHTML(rawHTML, DefaultMaxLength); err == nil {
			result.Title = cleaned.Title
			result.Description = cleaned.Description
		}
	}

	return result, nil
}

// dismissDialogs clicks through any login/confirmation dialogs. Selectors
// that don't match simply time out and are skipped.
func (p *LogPage) dismissDialogs(session *Session) {
	for _, selector := range dialogSelectors {
		err := session.Click(ClickOptions{
			Selector: selector,
			Timeout:  dialogClickTimeout,
		})
		if err == nil {
			// One dialog per page variant; stop after a successful click.
			return
		}
	}
}

// Package share builds share text for a quote and hands it to the OS browser
// as a pre-filled post.
package share

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/Snehil208001/QuoteVault/internal/quote"
)

const intentBase = "https://twitter.com/intent/tweet"

// Text returns the share string for a quote.
func Text(q quote.Quote) string {
	return fmt.Sprintf("%q — %s\n\nShared via QuoteVault", q.Text, q.Author)
}

// IntentURL returns the pre-filled post URL for a quote.
func IntentURL(q quote.Quote) string {
	params := url.Values{}
	params.Set("text", Text(q))
	return intentBase + "?" + params.Encode()
}

// Open launches the share intent in the default browser.
func Open(q quote.Quote) error {
	return openURL(IntentURL(q))
}

func openURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", rawURL).Start()
	case "linux":
		return exec.Command("xdg-open", rawURL).Start()
	case "windows":
		// Use rundll32 instead of cmd /c start to avoid shell interpretation
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL).Start()
	default:
		return exec.Command("xdg-open", rawURL).Start()
	}
}

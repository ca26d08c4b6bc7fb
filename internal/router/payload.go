package router

import (
	"net/url"
	"strings"
)

// recoveryMarker is the token the hosted auth service embeds in password
// recovery links, either as a query parameter or inside the fragment.
const recoveryMarker = "type=recovery"

// loginCallbackHost is the generic auth callback; it only signals recovery
// when the link also mentions it.
const loginCallbackHost = "login-callback"

// Payload is the opaque launch payload: a URI-like value handed to the
// process at start (deep link on mobile, --link flag or environment here).
// Consumed read-only by the router.
type Payload struct {
	raw      string
	fragment string
	host     string
}

// ParsePayload parses a raw launch link. An empty or unparsable link yields a
// zero payload, which never signals recovery.
func ParsePayload(raw string) Payload {
	p := Payload{raw: raw}
	if raw == "" {
		return p
	}
	u, err := url.Parse(raw)
	if err != nil {
		return p
	}
	p.fragment = u.Fragment
	p.host = u.Host
	return p
}

func (p Payload) Raw() string      { return p.raw }
func (p Payload) Fragment() string { return p.fragment }
func (p Payload) Host() string     { return p.host }

// SessionTokens extracts the access and refresh tokens the hosted auth
// service embeds in the link fragment of recovery (and magic-link) URLs.
// ok is false when the fragment carries no access token.
func (p Payload) SessionTokens() (access, refresh string, ok bool) {
	values, err := url.ParseQuery(p.fragment)
	if err != nil {
		return "", "", false
	}
	access = values.Get("access_token")
	if access == "" {
		return "", "", false
	}
	return access, values.Get("refresh_token"), true
}

// IsRecovery reports whether the payload signals a password-recovery launch:
// the marker in the raw form, the marker in the fragment, the dedicated
// recovery host, or the login callback carrying a recovery hint.
func (p Payload) IsRecovery(recoveryHost string) bool {
	if p.raw == "" {
		return false
	}
	if strings.Contains(p.raw, recoveryMarker) {
		return true
	}
	if strings.Contains(p.fragment, recoveryMarker) {
		return true
	}
	if recoveryHost != "" && p.host == recoveryHost {
		return true
	}
	if p.host == loginCallbackHost && strings.Contains(p.raw, "recovery") {
		return true
	}
	return false
}

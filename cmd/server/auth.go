package main

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	sessionCookieName = "cotizador_session"
	sessionTTL        = 12 * time.Hour
)

// authService gates the app behind a single shared PIN and keeps the
// operator signed in with an HMAC signed cookie.
type authService struct {
	pin           string
	sessionSecret []byte
	now           func() time.Time
}

// newAuthService signs sessions with sessionSecret. An empty secret is
// replaced with a random one, so sessions do not survive a restart.
func newAuthService(pin, sessionSecret string) (*authService, error) {
	secret := []byte(sessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	}
	return &authService{pin: pin, sessionSecret: secret, now: time.Now}, nil
}

func (a *authService) validatePIN(pin string) bool {
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(pin)), []byte(a.pin)) == 1
}

// createSessionValue encodes the expiry and signs it.
func (a *authService) createSessionValue() string {
	expires := strconv.FormatInt(a.now().Add(sessionTTL).Unix(), 10)
	payload := base64.RawURLEncoding.EncodeToString([]byte(expires))
	return payload + "." + a.sign(payload)
}

func (a *authService) verifySessionValue(value string) bool {
	parts := strings.Split(value, ".")
	if len(parts) != 2 {
		return false
	}

	payload := parts[0]
	provided, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	expected, _ := hex.DecodeString(a.sign(payload))
	if !hmac.Equal(provided, expected) {
		return false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return false
	}
	expires, err := strconv.ParseInt(string(decoded), 10, 64)
	if err != nil {
		return false
	}

	return a.now().Unix() < expires
}

func (a *authService) sign(payload string) string {
	mac := hmac.New(sha256.New, a.sessionSecret)
	_, _ = mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func (a *authService) setSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    a.createSessionValue(),
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *authService) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *authService) isAuthenticated(r *http.Request) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return false
	}
	return a.verifySessionValue(cookie.Value)
}

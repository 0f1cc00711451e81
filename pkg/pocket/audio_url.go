package pocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// AudioURL is a pre-signed, expiring link to a recording's audio.
type AudioURL struct {
	SignedURL string     `json:"signed_url"`
	ExpiresIn *int       `json:"expires_in"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (u *AudioURL) UnmarshalJSON(b []byte) error {
	var w struct {
		SignedURL *string   `json:"signed_url"`
		ExpiresIn *flexInt  `json:"expires_in"`
		ExpiresAt timestamp `json:"expires_at"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("audio url: %w", err)
	}
	out := AudioURL{ExpiresAt: w.ExpiresAt.ptr()}
	if w.SignedURL != nil {
		out.SignedURL = *w.SignedURL
	}
	if w.ExpiresIn != nil {
		n := int(*w.ExpiresIn)
		out.ExpiresIn = &n
	}
	*u = out
	return nil
}

// IsExpired is true when no expiry is known or it has passed.
func (u AudioURL) IsExpired() bool { return u.ExpiredAt(time.Now()) }

func (u AudioURL) ExpiredAt(now time.Time) bool {
	if u.ExpiresAt == nil {
		return true
	}
	return u.ExpiresAt.Before(now)
}

// SecondsUntilExpiry never goes below zero.
func (u AudioURL) SecondsUntilExpiry() int { return u.SecondsUntilExpiryAt(time.Now()) }

func (u AudioURL) SecondsUntilExpiryAt(now time.Time) int {
	if u.ExpiresAt == nil {
		return 0
	}
	secs := int(u.ExpiresAt.Unix() - now.Unix())
	if secs < 0 {
		return 0
	}
	return secs
}

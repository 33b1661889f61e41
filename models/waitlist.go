// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// WaitlistStatus is the state of the latest waitlist submission.
type WaitlistStatus string

const (
	WaitlistIdle    WaitlistStatus = "idle"
	WaitlistLoading WaitlistStatus = "loading"
	WaitlistSuccess WaitlistStatus = "success"
	WaitlistError   WaitlistStatus = "error"
)

// WaitlistEntry is a single waitlist signup.
type WaitlistEntry struct {
	Email            string    `json:"email" validate:"required,email"`
	Name             string    `json:"name" validate:"required"`
	Source           string    `json:"source"`
	StylePreference  string    `json:"style_preference"`
	Instagram        string    `json:"instagram,omitempty"`
	TikTok           string    `json:"tiktok,omitempty"`
	MarketingConsent bool      `json:"marketing_consent"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package auth

import (
	"net/http"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/rs/zerolog/log"

	"codeberg.org/testpro/testpro/core/cookie"
	"codeberg.org/testpro/testpro/core/untrusted"
)

const (
	// Implicit is the domain separation assertion bound into every session token.
	// Changing it invalidates all tokens issued so far.
	Implicit = "TestPro session v1"

	// sessionSubject is the subject claim every session token must carry.
	sessionSubject = "session"

	// nameClaim holds the display name of the user.
	nameClaim = "name"
)

// PasetoProvider verifies v4.public session tokens issued by the identity
// provider and projects their claims into a View.
type PasetoProvider struct {
	publicKey  paseto.V4AsymmetricPublicKey
	cookieName cookie.CookieName
	parser     paseto.Parser
}

// NewPasetoProvider returns a provider that reads the token from cookieName.
// An empty cookieName falls back to cookie.SessionCookie.
func NewPasetoProvider(publicKey paseto.V4AsymmetricPublicKey, cookieName cookie.CookieName) *PasetoProvider {
	if cookieName == "" {
		cookieName = cookie.SessionCookie
	}

	return &PasetoProvider{
		publicKey:  publicKey,
		cookieName: cookieName,
		parser: paseto.MakeParser([]paseto.Rule{
			paseto.NotExpired(),
			paseto.Subject(sessionSubject),
		}),
	}
}

// View implements Provider.
//
// Missing, expired or forged tokens yield Guest.
func (p *PasetoProvider) View(r *http.Request) View {
	raw := untrusted.GetCookie(r, p.cookieName)
	if raw == "" {
		return Guest
	}

	token, err := p.parser.ParseV4Public(p.publicKey, raw, []byte(Implicit))
	if err != nil {
		log.Debug().
			Err(err).
			Str("cookie", string(p.cookieName)).
			Msg("Rejected session token")

		return Guest
	}

	// A token without a name claim is still a valid session.
	name, _ := token.GetString(nameClaim)

	return View{
		IsAuthenticated: true,
		User:            &User{Name: name},
	}
}

// NewSecretKeyHex generates a fresh v4.public signing key in hex.
func NewSecretKeyHex() string {
	return paseto.NewV4AsymmetricSecretKey().ExportHex()
}

// IssueOptions describes a session token to sign.
type IssueOptions struct {
	Name     string
	TokenID  string
	IssuedAt time.Time
	TTL      time.Duration
}

// Issue signs a session token that PasetoProvider accepts.
//
// TestPro itself never issues sessions; this exists for cmd/gentoken and tests.
func Issue(secretKey paseto.V4AsymmetricSecretKey, opts IssueOptions) string {
	if opts.IssuedAt.IsZero() {
		opts.IssuedAt = time.Now()
	}

	token := paseto.NewToken()
	token.SetIssuedAt(opts.IssuedAt)
	token.SetNotBefore(opts.IssuedAt)
	token.SetExpiration(opts.IssuedAt.Add(opts.TTL))
	token.SetSubject(sessionSubject)

	if opts.TokenID != "" {
		token.SetJti(opts.TokenID)
	}

	if opts.Name != "" {
		token.SetString(nameClaim, opts.Name)
	}

	return token.V4Sign(secretKey, []byte(Implicit))
}

// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command gentoken creates a signing key pair and a session token for local
// testing of the paseto auth provider.
//
// The printed public key goes into auth.publicKey (TESTPRO_AUTH_PUBLIC_KEY);
// the token goes into the session cookie.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"codeberg.org/testpro/testpro/core/audit"
	"codeberg.org/testpro/testpro/core/auth"
)

var errNonPositiveTTL = errors.New("ttl must be positive")

type options struct {
	// SecretKeyHex signs the token. Empty generates a new key.
	SecretKeyHex string
	Name         string
	TTL          time.Duration
}

type result struct {
	SecretKeyHex string
	PublicKeyHex string
	TokenID      string
	Token        string
	Expires      time.Time
}

func main() {
	audit.SetDefaultLogger()

	var opts options

	flag.StringVar(&opts.SecretKeyHex, "key", os.Getenv("TESTPRO_AUTH_SECRET_KEY"), "hex v4.public secret key; a new one is generated when empty")
	flag.StringVar(&opts.Name, "name", "Ada Lovelace", "display name claim")
	flag.DurationVar(&opts.TTL, "ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	res, err := generate(opts, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate token")
	}

	if err := res.print(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("Failed to write output")
	}
}

func generate(opts options, now time.Time) (result, error) {
	if opts.TTL <= 0 {
		return result{}, errNonPositiveTTL
	}

	secretHex := opts.SecretKeyHex
	if secretHex == "" {
		secretHex = auth.NewSecretKeyHex()
	}

	secretKey, err := paseto.NewV4AsymmetricSecretKeyFromHex(secretHex)
	if err != nil {
		return result{}, fmt.Errorf("invalid secret key: %w", err)
	}

	id := uuid.NewString()

	return result{
		SecretKeyHex: secretHex,
		PublicKeyHex: secretKey.Public().ExportHex(),
		TokenID:      id,
		Token: auth.Issue(secretKey, auth.IssueOptions{
			Name:     opts.Name,
			TokenID:  id,
			IssuedAt: now,
			TTL:      opts.TTL,
		}),
		Expires: now.Add(opts.TTL),
	}, nil
}

func (r result) print(w io.Writer) error {
	_, err := fmt.Fprintf(w, "secret key: %s\npublic key: %s\ntoken id:   %s\nexpires:    %s\ntoken:      %s\n",
		r.SecretKeyHex, r.PublicKeyHex, r.TokenID, r.Expires.UTC().Format(time.RFC3339), r.Token)

	return err
}

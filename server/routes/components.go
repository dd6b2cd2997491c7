// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/goccy/go-yaml"

	"codeberg.org/testpro/testpro/core/devid"
	"codeberg.org/testpro/testpro/server/utils"
)

// ComponentsPage is the handler for /dev/components. It lists every
// registered element identifier as YAML, or as JSON with ?format=json.
func ComponentsPage(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Cache-Control", "no-store")

	registry := devid.Registry()

	var (
		body []byte
		err  error
	)

	switch utils.GetQueryParam(r, "format", "yaml") {
	case "json":
		w.Header().Set("Content-Type", "application/json")

		body, err = json.Marshal(registry)
	case "yaml":
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")

		body, err = yaml.Marshal(registry)
	default:
		w.WriteHeader(http.StatusBadRequest)

		_, err = fmt.Fprintln(w, "unsupported format")

		return err
	}

	if err != nil {
		return fmt.Errorf("encoding component registry: %w", err)
	}

	_, err = w.Write(body)

	return err
}

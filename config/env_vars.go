// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const dotEnvFile = ".env"

var (
	errExpectedPointerToStruct = errors.New("expected a pointer to a struct")
	errUnsupportedFieldType    = errors.New("unsupported field type")
)

var durationType = reflect.TypeFor[time.Duration]()

// envTag is a parsed `env:"NAME[,overwrite]"` struct tag.
type envTag struct {
	name      string
	overwrite bool
}

func parseEnvTag(field reflect.StructField) (envTag, bool) {
	raw, ok := field.Tag.Lookup("env")
	if !ok || raw == "" {
		return envTag{}, false
	}

	name, opts, _ := strings.Cut(raw, ",")

	return envTag{name: name, overwrite: opts == "overwrite"}, true
}

// readEnv fills the struct pointed to by target from the environment
// variables named in its `env` tags, descending into nested structs.
//
// A variable only replaces a field that still holds its zero value,
// unless the tag carries the "overwrite" option.
func readEnv(target any) error {
	ptr := reflect.ValueOf(target)
	if ptr.Kind() != reflect.Pointer || ptr.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %T", errExpectedPointerToStruct, target)
	}

	return readEnvStruct(ptr.Elem())
}

func readEnvStruct(v reflect.Value) error {
	t := v.Type()

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		field := v.Field(i)

		tag, tagged := parseEnvTag(sf)
		if !tagged {
			if field.Kind() == reflect.Struct {
				if err := readEnvStruct(field); err != nil {
					return err
				}
			}

			continue
		}

		raw, set := os.LookupEnv(tag.name)
		if !set || !field.CanSet() || (!tag.overwrite && !field.IsZero()) {
			continue
		}

		parsed, err := parseEnvValue(field.Type(), raw)
		if err != nil {
			return fmt.Errorf("%s (%s=%q): %w", sf.Name, tag.name, raw, err)
		}

		field.Set(parsed)
	}

	return nil
}

// parseEnvValue converts raw into a value of type t.
// Slices are comma separated lists of strings with empty items dropped.
func parseEnvValue(t reflect.Type, raw string) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	switch {
	case t == durationType:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return out, err
		}

		out.SetInt(int64(d))
	case t.Kind() == reflect.String:
		out.SetString(raw)
	case t.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return out, err
		}

		out.SetBool(b)
	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, t.Bits())
		if err != nil {
			return out, err
		}

		out.SetInt(n)
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.String:
		items := make([]string, 0, strings.Count(raw, ",")+1)

		for item := range strings.SplitSeq(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}

		out.Set(reflect.ValueOf(items).Convert(t))
	default:
		return out, fmt.Errorf("%w: %s", errUnsupportedFieldType, t)
	}

	return out, nil
}

// useDotEnv loads a .env file from the working directory or, failing
// that, from the directory holding the binary. A missing file is not an error.
func useDotEnv() error {
	var dirs []string

	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	} else {
		log.Warn().Err(err).Msg("Could not get current working directory")
	}

	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, dotEnvFile)

		data, err := os.ReadFile(path) // #nosec G304 -- fixed file name in known directories
		if errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Could not read .env file")

			return nil
		}

		applyDotEnv(path, data)

		return nil
	}

	log.Info().Msg("No .env file found, skipping")

	return nil
}

// applyDotEnv sets KEY=value pairs from data that are not already set.
// Blank lines and # comments are ignored, and one pair of matching
// quotes around a value is stripped.
func applyDotEnv(path string, data []byte) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' {
			continue
		}

		key, value, ok := strings.Cut(text, "=")
		if !ok {
			log.Warn().Str("path", path).Int("line", line).Msg("Invalid format in .env file")

			continue
		}

		key, value = strings.TrimSpace(key), unquote(strings.TrimSpace(value))

		if _, set := os.LookupEnv(key); set {
			continue
		}

		if err := os.Setenv(key, value); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Could not set environment variable")
		}
	}

	log.Info().Str("path", path).Msg("Loaded configuration from .env file")
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}

	return s
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from post titles.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonWord matches anything that isn't a word character or whitespace.
	// Accented letters are stripped, not transliterated: "Cómo" → "cmo".
	nonWord = regexp.MustCompile(`[^a-z0-9_\s-]`)
	// whitespace matches runs of spaces to collapse into one hyphen.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given title.
// Example: "Hablemos de ansiedad, hoy" → "hablemos-de-ansiedad-hoy"
//
// Slugs are not checked for uniqueness; lookup-by-slug resolves
// collisions by taking the newest post.
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonWord.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

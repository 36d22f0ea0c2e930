package content

import (
	"strconv"
	"strings"
)

// Row is one record from a tabular source, keyed by column header. Source
// files disagree on header casing and naming ("topic_id" vs "Topic ID" vs
// "topic"), so all field access goes through the synonym-tolerant lookup
// methods instead of direct map indexing.
type Row map[string]string

// normalizeKey folds a header to its canonical form: lower-cased, trimmed,
// spaces collapsed to underscores.
func normalizeKey(k string) string {
	k = strings.TrimSpace(strings.ToLower(k))
	return strings.ReplaceAll(k, " ", "_")
}

// Value returns the first non-empty value among the candidate keys, trying an
// exact match before the normalized (case- and space-insensitive) match, or
// def if no candidate resolves.
func (r Row) Value(def string, keys ...string) string {
	for _, key := range keys {
		if v, ok := r[key]; ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	for _, key := range keys {
		want := normalizeKey(key)
		for k, v := range r {
			if normalizeKey(k) == want && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	return def
}

// Has reports whether any candidate key resolves to a non-empty value.
func (r Row) Has(keys ...string) bool {
	return r.Value("", keys...) != ""
}

// Int resolves like Value and parses the result as an integer. Non-numeric
// values fall back to def rather than aborting the transform.
func (r Row) Int(def int, keys ...string) int {
	v := r.Value("", keys...)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		// Sheets sometimes store integers as "3.0".
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			return def
		}
		return int(f)
	}
	return n
}

// Float resolves like Value and parses the result as a float, falling back to
// def on non-numeric values.
func (r Row) Float(def float64, keys ...string) float64 {
	v := r.Value("", keys...)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

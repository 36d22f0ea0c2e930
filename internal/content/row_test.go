package content_test

import (
	"testing"

	"github.com/studyhub-app/studyhub-backend/internal/content"
)

func TestRow_Value(t *testing.T) {
	row := content.Row{
		"topic_id":   "t1",
		"Topic Name": "Newton's Laws",
		"ORDER":      "3",
		"blank":      "  ",
	}

	tests := []struct {
		name string
		keys []string
		def  string
		want string
	}{
		{"exact match", []string{"topic_id"}, "", "t1"},
		{"case insensitive", []string{"order"}, "", "3"},
		{"space vs underscore", []string{"topic_name"}, "", "Newton's Laws"},
		{"first synonym wins", []string{"topic_id", "id"}, "", "t1"},
		{"later synonym resolves", []string{"id", "topic_id"}, "", "t1"},
		{"missing returns default", []string{"subject_key"}, "fallback", "fallback"},
		{"blank value returns default", []string{"blank"}, "d", "d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := row.Value(tt.def, tt.keys...)
			if got != tt.want {
				t.Errorf("Value(%v) = %q, want %q", tt.keys, got, tt.want)
			}
		})
	}
}

func TestRow_Value_TrimsWhitespace(t *testing.T) {
	row := content.Row{"title": "  Forces  "}
	if got := row.Value("", "title"); got != "Forces" {
		t.Errorf("Value(title) = %q, want Forces", got)
	}
}

func TestRow_Int(t *testing.T) {
	row := content.Row{
		"order_index": "7",
		"duration":    "notanumber",
		"xp":          "15.0",
	}

	tests := []struct {
		name string
		keys []string
		def  int
		want int
	}{
		{"numeric", []string{"order_index"}, 0, 7},
		{"non-numeric falls back", []string{"duration"}, 20, 20},
		{"float-formatted integer", []string{"xp"}, 10, 15},
		{"missing falls back", []string{"nope"}, 42, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := row.Int(tt.def, tt.keys...)
			if got != tt.want {
				t.Errorf("Int(%v) = %d, want %d", tt.keys, got, tt.want)
			}
		})
	}
}

func TestRow_Float(t *testing.T) {
	row := content.Row{"ease": "2.5", "bad": "x"}

	if got := row.Float(0, "ease"); got != 2.5 {
		t.Errorf("Float(ease) = %v, want 2.5", got)
	}
	if got := row.Float(1.3, "bad"); got != 1.3 {
		t.Errorf("Float(bad) = %v, want fallback 1.3", got)
	}
}

func TestRow_Has(t *testing.T) {
	row := content.Row{"topic_id": "t1", "empty": ""}

	if !row.Has("topic_id") {
		t.Error("Has(topic_id) = false, want true")
	}
	if row.Has("empty") {
		t.Error("Has(empty) = true, want false for blank value")
	}
	if row.Has("missing") {
		t.Error("Has(missing) = true, want false")
	}
}

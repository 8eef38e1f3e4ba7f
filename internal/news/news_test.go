package news

import (
	"testing"
	"unicode/utf8"
)

func TestNewItemCleansInput(t *testing.T) {
	it, ok := NewItem("  Rocket <b>launch</b>\n today ", " https://x.example/a ", "<p>Lift&amp;off   at dawn</p>", 0)
	if !ok {
		t.Fatal("expected item")
	}
	if it.Title != "Rocket launch today" {
		t.Errorf("Title = %q", it.Title)
	}
	if it.Link != "https://x.example/a" {
		t.Errorf("Link = %q", it.Link)
	}
	if it.Summary != "Lift&off at dawn" {
		t.Errorf("Summary = %q", it.Summary)
	}

	if _, ok := NewItem(" <br/> ", "https://x", "", 0); ok {
		t.Error("blank title must be rejected")
	}
}

func TestNewItemTruncatesSummary(t *testing.T) {
	it, _ := NewItem("t", "", "ანბანი და სხვა ტექსტი", 5)
	if n := utf8.RuneCountInString(it.Summary); n != 5 {
		t.Errorf("summary has %d runes, want 5", n)
	}
	if !utf8.ValidString(it.Summary) {
		t.Error("truncation split a rune")
	}
}

func TestKeyAndSeen(t *testing.T) {
	tests := []struct {
		name string
		a, b Item
		dup  bool
	}{
		{"link case", Item{Title: "A", Link: "https://X.example/Post"}, Item{Title: "B", Link: "https://x.example/post"}, true},
		{"different links", Item{Title: "A", Link: "https://x/1"}, Item{Title: "A", Link: "https://x/2"}, false},
		{"title fallback", Item{Title: "Same  Title"}, Item{Title: "same title"}, true},
		{"link beats title", Item{Title: "Same", Link: "https://x/1"}, Item{Title: "Same"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Seen{}
			if !s.Add(tt.a) {
				t.Fatal("first add reported duplicate")
			}
			if got := !s.Add(tt.b); got != tt.dup {
				t.Errorf("duplicate = %v, want %v", got, tt.dup)
			}
		})
	}
}

func TestInEdition(t *testing.T) {
	all := Category{Name: "all"}
	only := Category{Name: "en", Editions: []string{"english"}}
	if !all.InEdition("morning") || !all.InEdition("english") {
		t.Error("category without editions should appear everywhere")
	}
	if only.InEdition("morning") || !only.InEdition("English") {
		t.Error("edition filter not applied")
	}
}

// Package rotation picks the day's entry from fixed-length content tables.
//
// Selection is derived from the calendar date only, so re-running on the same
// day always yields the same entries and no cursor needs to be stored.
package rotation

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Period is the length of every built-in table.
const Period = 30

//go:embed content.yaml
var contentYAML []byte

// Index maps a date to a position in a table of length n:
// (day of year - 1) mod n.
func Index(t time.Time, n int) int {
	if n <= 0 {
		return 0
	}
	return (t.YearDay() - 1) % n
}

// Tables holds the rotating content. All tables share one length.
type Tables struct {
	Quotes     []string   `yaml:"quotes"`
	Insights   []string   `yaml:"insights"`
	DayTips    [][]string `yaml:"day_tips"`
	BrandTips  [][]string `yaml:"brand_tips"`
	Tasks      [][]string `yaml:"tasks"`
	BrandTasks [][]string `yaml:"brand_tasks"`
}

// Entry is the content selected for one day.
type Entry struct {
	Index      int
	Quote      string
	Insight    string
	DayTips    []string
	BrandTips  []string
	Tasks      []string
	BrandTasks []string
}

// Load returns the embedded tables.
func Load() (*Tables, error) {
	return Parse(contentYAML)
}

// Parse decodes tables from YAML and checks they are aligned.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode rotation tables: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Len is the shared table length.
func (t *Tables) Len() int {
	return len(t.Quotes)
}

// ForDate selects the same index from every table.
func (t *Tables) ForDate(d time.Time) Entry {
	i := Index(d, t.Len())
	return Entry{
		Index:      i,
		Quote:      t.Quotes[i],
		Insight:    t.Insights[i],
		DayTips:    t.DayTips[i],
		BrandTips:  t.BrandTips[i],
		Tasks:      t.Tasks[i],
		BrandTasks: t.BrandTasks[i],
	}
}

func (t *Tables) validate() error {
	n := len(t.Quotes)
	if n == 0 {
		return fmt.Errorf("rotation tables are empty")
	}
	lengths := map[string]int{
		"insights":    len(t.Insights),
		"day_tips":    len(t.DayTips),
		"brand_tips":  len(t.BrandTips),
		"tasks":       len(t.Tasks),
		"brand_tasks": len(t.BrandTasks),
	}
	for name, l := range lengths {
		if l != n {
			return fmt.Errorf("rotation table %s has %d entries, want %d", name, l, n)
		}
	}
	return nil
}

package english

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var vocabularyYAML []byte

// vocabulary holds the lookup tables loaded from vocabulary.yaml.
type vocabulary struct {
	Cardinals      map[string]int    `yaml:"cardinals"`
	LastCardinals  []string          `yaml:"last_cardinals"`
	Units          map[string]string `yaml:"units"`
	UnitScale      map[string]int    `yaml:"unit_scale"`
	Seasons        map[string]string `yaml:"seasons"`
	WrittenDecades map[string]int    `yaml:"written_decades"`
	SpecialDecades map[string]int    `yaml:"special_decades"`
	Numbers        map[string]int    `yaml:"numbers"`
	Quantifiers    map[string]int    `yaml:"quantifiers"`
	Scales         map[string]int    `yaml:"scales"`
	Swift          map[string]int    `yaml:"swift"`
	FutureMarkers  []string          `yaml:"future_markers"`
	YearToDate     []string          `yaml:"year_to_date"`
	MonthToDate    []string          `yaml:"month_to_date"`
	YearBounds     struct {
		Min int `yaml:"min"`
		Max int `yaml:"max"`
	} `yaml:"year_bounds"`
	TokenBeforeDate string `yaml:"token_before_date"`
}

var (
	vocabOnce sync.Once
	vocab     *vocabulary
	vocabErr  error
)

// loadVocabulary parses the embedded tables once.
func loadVocabulary() (*vocabulary, error) {
	vocabOnce.Do(func() {
		v, err := parseVocabulary(vocabularyYAML)
		if err != nil {
			vocabErr = err
			return
		}
		vocab = v
	})
	return vocab, vocabErr
}

func parseVocabulary(data []byte) (*vocabulary, error) {
	v := new(vocabulary)
	if err := yaml.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("parsing vocabulary: %w", err)
	}
	if len(v.Cardinals) == 0 || len(v.Units) == 0 || len(v.Seasons) == 0 {
		return nil, fmt.Errorf("parsing vocabulary: missing tables")
	}
	if v.YearBounds.Min <= 0 || v.YearBounds.Max < v.YearBounds.Min {
		return nil, fmt.Errorf("parsing vocabulary: bad year bounds %d..%d", v.YearBounds.Min, v.YearBounds.Max)
	}
	return v, nil
}

// key folds case and collapses runs of whitespace, so "Two  Thousands"
// finds "two thousands".
func key(s string) string {
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}

// words returns the keys of a table, longest first, for building regex
// alternations.
func words[V any](tables ...map[string]V) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tables {
		for k := range t {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

// alternation joins words into a regex alternation. Spaces inside a word
// match any run of whitespace.
func alternation(ws []string) string {
	parts := make([]string, len(ws))
	for i, w := range ws {
		parts[i] = strings.ReplaceAll(regexpQuote(w), " ", `\s+`)
	}
	return strings.Join(parts, "|")
}

func regexpQuote(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$#`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

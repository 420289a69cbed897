// Package locale maps locale names to resolver configurations.
package locale

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/basecamp/dateperiod/internal/dateperiod"
	"github.com/basecamp/dateperiod/internal/locale/english"
)

// ErrUnsupported is returned for locales without a configuration.
var ErrUnsupported = errors.New("unsupported locale")

// Info describes a supported locale.
type Info struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

type entry struct {
	tag   language.Tag
	name  string
	build func() (dateperiod.Configuration, error)

	once sync.Once
	cfg  dateperiod.Configuration
	err  error
}

func (e *entry) config() (dateperiod.Configuration, error) {
	e.once.Do(func() {
		e.cfg, e.err = e.build()
	})
	return e.cfg, e.err
}

var entries = []*entry{
	{
		tag:   language.English,
		name:  "English",
		build: func() (dateperiod.Configuration, error) { return english.New() },
	},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(entries))
	for i, e := range entries {
		tags[i] = e.tag
	}
	return language.NewMatcher(tags)
}()

// Default is used when no locale is configured.
var Default = language.English

// Normalize turns a POSIX locale string ("en_US.UTF-8") or BCP 47 tag
// ("en-US") into a language tag. Empty, "C", "POSIX" and unparseable input
// yield Default.
func Normalize(raw string) language.Tag {
	if idx := strings.IndexByte(raw, '.'); idx != -1 {
		raw = raw[:idx]
	}
	if idx := strings.IndexByte(raw, '@'); idx != -1 {
		raw = raw[:idx]
	}
	raw = strings.ReplaceAll(strings.TrimSpace(raw), "_", "-")
	if raw == "C" || raw == "POSIX" {
		return Default
	}

	tag, err := language.Parse(raw)
	if err != nil || tag == language.Und {
		return Default
	}
	return tag
}

// Detect reads the locale from LC_ALL, LC_TIME or LANG.
func Detect() language.Tag {
	for _, name := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		if raw := os.Getenv(name); raw != "" {
			return Normalize(raw)
		}
	}
	return Default
}

// Lookup returns the configuration serving raw and the tag it was matched
// to.
func Lookup(raw string) (dateperiod.Configuration, language.Tag, error) {
	tag := Normalize(raw)
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return nil, tag, fmt.Errorf("%w: %s", ErrUnsupported, tag)
	}
	e := entries[idx]
	cfg, err := e.config()
	if err != nil {
		return nil, e.tag, fmt.Errorf("loading %s: %w", e.tag, err)
	}
	return cfg, e.tag, nil
}

// Supported lists the locales Lookup can serve.
func Supported() []Info {
	out := make([]Info, len(entries))
	for i, e := range entries {
		out[i] = Info{Tag: e.tag.String(), Name: e.name}
	}
	return out
}

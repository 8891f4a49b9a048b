package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/ini.v1"

	"github.com/KirkDiggler/lightmatch/internal/models"
)

//go:embed labels.ini
var defaultSource []byte

var langSection = regexp.MustCompile(`(?i)^([a-z]{2,3})\.labels$`)

// ErrNoLanguages is returned when a catalog source has no label sections
var ErrNoLanguages = errors.New("catalog has no [<lang>.labels] sections")

// Config holds configuration for the catalog
type Config struct {
	// Source overrides the embedded catalog; anything ini.Load accepts
	Source interface{}
}

// Catalog maps label ids to translations per language
type Catalog struct {
	codes        []string
	matcher      language.Matcher
	labels       map[string][]string
	translations map[string]map[string]string
	imagePath    string
}

// New loads a catalog from cfg.Source or the embedded default
func New(cfg *Config) (*Catalog, error) {
	var source interface{} = defaultSource
	if cfg != nil && cfg.Source != nil {
		source = cfg.Source
	}

	f, err := ini.LoadSources(ini.LoadOptions{
		SkipUnrecognizableLines: true,
	}, source)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	c := &Catalog{
		labels:       make(map[string][]string),
		translations: make(map[string]map[string]string),
		imagePath:    f.Section("catalog").Key("image_path").MustString("data"),
	}

	var tags []language.Tag
	for _, section := range f.Sections() {
		m := langSection.FindStringSubmatch(section.Name())
		if len(m) != 2 {
			continue
		}
		code := strings.ToLower(m[1])
		tag, err := language.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", code, err)
		}

		ids := section.KeyStrings()
		if len(ids) == 0 {
			continue
		}
		c.codes = append(c.codes, code)
		tags = append(tags, tag)
		c.labels[code] = ids
		c.translations[code] = make(map[string]string, len(ids))
		for _, key := range section.Keys() {
			c.translations[code][key.Name()] = key.String()
		}
	}

	if len(c.codes) == 0 {
		return nil, ErrNoLanguages
	}
	c.matcher = language.NewMatcher(tags)

	return c, nil
}

// Languages returns the language codes in catalog order
func (c *Catalog) Languages() []string {
	return append([]string(nil), c.codes...)
}

// Resolve maps any language tag onto a catalog language; unknown tags get the first language
func (c *Catalog) Resolve(lang string) string {
	if _, ok := c.labels[lang]; ok {
		return lang
	}
	_, index := language.MatchStrings(c.matcher, lang)
	return c.codes[index]
}

// Labels returns the label ids for a language
func (c *Catalog) Labels(lang string) []string {
	return append([]string(nil), c.labels[c.Resolve(lang)]...)
}

// Translate returns the display text for a label, or the id if it is unknown
func (c *Catalog) Translate(lang, id string) string {
	if text, ok := c.translations[c.Resolve(lang)][id]; ok {
		return text
	}
	return id
}

// ImagePath returns the image for a label in a language
func (c *Catalog) ImagePath(lang, id string) string {
	return path.Join(c.imagePath, c.Resolve(lang), "to", id+".jpg")
}

// Options builds answer options for ids in the given order
func (c *Catalog) Options(lang string, ids []string) []models.AnswerOption {
	options := make([]models.AnswerOption, 0, len(ids))
	for _, id := range ids {
		options = append(options, models.AnswerOption{
			Label:     id,
			Text:      c.Translate(lang, id),
			ImagePath: c.ImagePath(lang, id),
		})
	}
	return options
}

package i18nx

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Langs         []string `yaml:"langs" env:"I18N_LANGS"`
	Path          string   `yaml:"path" env:"I18N_PATH"`
	UnmarshalType string   `yaml:"unmarshal_type" env:"I18N_UNMARSHAL_TYPE"`
}

var (
	defaultLang   = language.Chinese
	bundle        = i18n.NewBundle(defaultLang)
	registerHooks = make([]func(), 0)
	localize      = &Localize{}
)

func Instance() *Localize {
	return localize
}

// RegisterHooks 注册消息加载钩子，在 Load 时统一执行
func RegisterHooks(f func()) {
	registerHooks = append(registerHooks, f)
}

func AddMessages(lang string, messages []*i18n.Message) {
	t, err := language.Parse(lang)
	if err != nil {
		panic(fmt.Errorf("lang is not support, err: %s", err.Error()))
	}
	if err := bundle.AddMessages(t, messages...); err != nil {
		panic(fmt.Errorf("add message failed, err: %s", err.Error()))
	}
}

func Load(c *Config) {
	var langs []string
	if len(c.Langs) == 0 {
		c.Langs = []string{"zh", "en"}
	}

	for _, lang := range c.Langs {
		t, err := language.Parse(lang)
		if err != nil {
			panic(fmt.Errorf("lang is not support, err: %s", err.Error()))
		}
		langs = append(langs, t.String())
	}

	for _, f := range registerHooks {
		f()
	}

	if c.UnmarshalType != "" {
		switch strings.ToUpper(c.UnmarshalType) {
		case "TOML":
			bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
		case "JSON":
			bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
		case "YAML":
			bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
		default:
			panic(fmt.Errorf("unmarshal type %s is not support", c.UnmarshalType))
		}
	}

	if c.Path != "" && pathExist(c.Path) {
		err := filepath.Walk(c.Path, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if path == c.Path {
				return nil
			}
			bundle.MustLoadMessageFile(path)
			return nil
		})
		if err != nil {
			panic(fmt.Errorf("load i18n files fail, err: %s", err.Error()))
		}
	}

	localize.localizers = make(map[string]*i18n.Localizer)
	for _, lang := range langs {
		localize.localizers[lang] = i18n.NewLocalizer(bundle, lang)
	}
}

type Localize struct {
	localizers map[string]*i18n.Localizer
}

// getLocalizer ensures a non-nil localizer.
// If not initialized via Load, it builds a temporary one
// using the requested lang with defaultLang as fallback.
func (m *Localize) getLocalizer(lang string) *i18n.Localizer {
	if m != nil && m.localizers != nil && m.localizers[lang] != nil {
		return m.localizers[lang]
	}
	return i18n.NewLocalizer(bundle, lang)
}

func (m *Localize) LocalizeData(lang, key string, data map[string]interface{}) (string, error) {
	return m.getLocalizer(lang).Localize(&i18n.LocalizeConfig{
		MessageID:    fmt.Sprintf("%s.%s", lang, key),
		TemplateData: data,
	})
}

func (m *Localize) Localize(lang, key string) (string, error) {
	return m.getLocalizer(lang).Localize(&i18n.LocalizeConfig{
		MessageID: fmt.Sprintf("%s.%s", lang, key),
	})
}

func pathExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

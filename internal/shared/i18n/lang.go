// Package i18n holds the UI message catalog and language negotiation.
package i18n

import (
	"golang.org/x/text/language"
)

// Lang is a supported UI language.
type Lang string

const (
	RU Lang = "ru"
	EN Lang = "en"
)

var tags = map[Lang]language.Tag{
	RU: language.Russian,
	EN: language.English,
}

// ParseLang maps a stored or configured value to Lang, defaulting to RU.
func ParseLang(s string) Lang {
	if Lang(s) == EN {
		return EN
	}
	return RU
}

// Negotiator picks the UI language from explicit choices and the Accept-Language header.
type Negotiator struct {
	matcher  language.Matcher
	fallback Lang
}

func NewNegotiator(fallback Lang) *Negotiator {
	supported := []language.Tag{tags[fallback]}
	for lang, tag := range tags {
		if lang != fallback {
			supported = append(supported, tag)
		}
	}
	return &Negotiator{matcher: language.NewMatcher(supported), fallback: fallback}
}

// Pick evaluates preferences in order; each may be a bare code or an Accept-Language value.
func (n *Negotiator) Pick(preferences ...string) Lang {
	tag, _ := language.MatchStrings(n.matcher, preferences...)
	base, _ := tag.Base()
	for lang, t := range tags {
		if b, _ := t.Base(); b == base {
			return lang
		}
	}
	return n.fallback
}

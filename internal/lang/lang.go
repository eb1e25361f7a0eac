// Package lang identifies supported source languages and provides the
// comment grammar for each of them.
package lang

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language is a supported source language.
type Language int

const (
	Unknown Language = iota
	C
	CPP
	Python
	Java
	JavaScript
)

var names = map[Language]string{
	Unknown:    "unknown",
	C:          "c",
	CPP:        "cpp",
	Python:     "python",
	Java:       "java",
	JavaScript: "javascript",
}

// aliases maps normalized language tokens to a Language.
var aliases = map[string]Language{
	"c":          C,
	"cpp":        CPP,
	"c++":        CPP,
	"python":     Python,
	"py":         Python,
	"java":       Java,
	"javascript": JavaScript,
	"js":         JavaScript,
}

// String returns the canonical language token.
func (l Language) String() string {
	if n, ok := names[l]; ok {
		return n
	}
	return names[Unknown]
}

// Parse normalizes a language identifier. Unrecognized tokens map to Unknown.
func Parse(id string) Language {
	if l, ok := aliases[strings.ToLower(strings.TrimSpace(id))]; ok {
		return l
	}
	return Unknown
}

// enryNames maps go-enry language names to a Language.
var enryNames = map[string]Language{
	"C":          C,
	"C++":        CPP,
	"Python":     Python,
	"Java":       Java,
	"JavaScript": JavaScript,
}

// Detect classifies a file by name and content.
// Files in any language other than the supported five are Unknown.
func Detect(filename string, content []byte) Language {
	name := enry.GetLanguage(filename, content)
	if l, ok := enryNames[name]; ok {
		return l
	}
	return Unknown
}

// MarshalText implements encoding.TextMarshaler.
func (l Language) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Language) UnmarshalText(text []byte) error {
	*l = Parse(string(text))
	return nil
}

// Package textutil holds small text helpers used to render help output and derive names.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// Wrap splits text into lines no longer than width. Words longer than width get a line of their
// own.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	var (
		lines         []string
		currentLine   []string
		currentLength int
	)
	for _, word := range words {
		if currentLength+len(word)+1 > width {
			if len(currentLine) > 0 {
				lines = append(lines, strings.Join(currentLine, " "))
				currentLine = []string{word}
				currentLength = len(word)
			} else {
				lines = append(lines, word)
			}
		} else {
			currentLine = append(currentLine, word)
			if currentLength == 0 {
				currentLength = len(word)
			} else {
				currentLength += len(word) + 1
			}
		}
	}
	if len(currentLine) > 0 {
		lines = append(lines, strings.Join(currentLine, " "))
	}
	return lines
}

// Hyphen converts a Go identifier such as "packageCommand" or "PackageCommand" into
// "package-command". Digits stay attached to the word before them, so "ids2" stays "ids2" and
// "file2Path" becomes "file2-path".
func Hyphen(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for name != "" {
		i := strings.IndexFunc(name, unicode.IsDigit)
		if i == 0 {
			j := strings.IndexFunc(name, func(r rune) bool { return !unicode.IsDigit(r) })
			if j < 0 {
				j = len(name)
			}
			b.WriteString(name[:j])
			name = name[j:]
			continue
		}
		if i < 0 {
			i = len(name)
		}
		word := name[:i]
		name = name[i:]
		r, _ := utf8.DecodeRuneInString(word)
		if b.Len() > 0 && (unicode.IsUpper(r) || r == '_' || r == '-') {
			b.WriteByte('-')
		}
		b.WriteString(strcase.ToKebab(strings.TrimLeft(word, "_-")))
	}
	return b.String()
}

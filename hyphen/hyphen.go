// Package hyphen finds hyphenation points with Liang's pattern algorithm.
//
// Dictionaries are registered per language and looked up by
// golang.org/x/text/language tag. A small English dictionary is built in.
package hyphen

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/language"
)

// Default minimum fragment lengths, in runes.
const (
	DefaultLeftMin  = 2
	DefaultRightMin = 2
)

// ErrBadPattern is wrapped by NewDictionary for malformed input.
var ErrBadPattern = errors.New("hyphen: malformed pattern")

// Dictionary holds Liang patterns and whole-word exceptions.
// It is immutable and safe for concurrent use.
type Dictionary struct {
	patterns   map[string][]uint8
	exceptions map[string][]int
	maxLen     int

	leftMin, rightMin int
}

// Option configures a Dictionary.
type Option func(*Dictionary)

// WithMinFragments sets how many runes must stay before and after a point.
func WithMinFragments(left, right int) Option {
	return func(d *Dictionary) {
		d.leftMin, d.rightMin = left, right
	}
}

// NewDictionary compiles patterns such as "hen5at" or ".un1" and exceptions
// written with explicit hyphens such as "ta-ble".
func NewDictionary(patterns, exceptions []string, opts ...Option) (*Dictionary, error) {
	d := &Dictionary{
		patterns:   make(map[string][]uint8, len(patterns)),
		exceptions: make(map[string][]int, len(exceptions)),
		leftMin:    DefaultLeftMin,
		rightMin:   DefaultRightMin,
	}
	for _, opt := range opts {
		opt(d)
	}
	for _, p := range patterns {
		if err := d.addPattern(p); err != nil {
			return nil, err
		}
	}
	for _, e := range exceptions {
		word := strings.ReplaceAll(e, "-", "")
		if word == "" {
			return nil, fmt.Errorf("%w: empty exception", ErrBadPattern)
		}
		var points []int
		pos := 0
		for _, r := range e {
			if r == '-' {
				points = append(points, pos)
				continue
			}
			pos++
		}
		d.exceptions[strings.ToLower(word)] = points
	}
	return d, nil
}

func (d *Dictionary) addPattern(p string) error {
	var letters []rune
	values := []uint8{0}
	for _, r := range p {
		if r >= '0' && r <= '9' {
			values[len(values)-1] = uint8(r - '0')
			continue
		}
		letters = append(letters, unicode.ToLower(r))
		values = append(values, 0)
	}
	if len(letters) == 0 {
		return fmt.Errorf("%w: %q", ErrBadPattern, p)
	}
	key := string(letters)
	if old, ok := d.patterns[key]; ok {
		for i := range values {
			values[i] = max(values[i], old[i])
		}
	}
	d.patterns[key] = values
	d.maxLen = max(d.maxLen, len(letters))
	return nil
}

// Points returns the rune offsets in word where a hyphen may be inserted,
// in increasing order. Offset i means between runes i-1 and i.
func (d *Dictionary) Points(word string) []int {
	lower := []rune(strings.ToLower(word))
	n := len(lower)
	if n < d.leftMin+d.rightMin {
		return nil
	}
	if pts, ok := d.exceptions[string(lower)]; ok {
		return d.clip(pts, n)
	}

	dotted := make([]rune, 0, n+2)
	dotted = append(dotted, '.')
	dotted = append(dotted, lower...)
	dotted = append(dotted, '.')

	// values[j] is the score of the gap before dotted[j].
	values := make([]uint8, len(dotted)+1)
	for i := range dotted {
		for l := 1; l <= d.maxLen && i+l <= len(dotted); l++ {
			pat, ok := d.patterns[string(dotted[i:i+l])]
			if !ok {
				continue
			}
			for j, v := range pat {
				values[i+j] = max(values[i+j], v)
			}
		}
	}

	var points []int
	for k := 1; k < n; k++ {
		// The gap before word rune k is the gap before dotted rune k+1.
		if values[k+1]%2 == 1 {
			points = append(points, k)
		}
	}
	return d.clip(points, n)
}

func (d *Dictionary) clip(points []int, n int) []int {
	out := points[:0:0]
	for _, p := range points {
		if p >= d.leftMin && n-p >= d.rightMin {
			out = append(out, p)
		}
	}
	return out
}

// Hyphenate returns word with sep inserted at every point.
func (d *Dictionary) Hyphenate(word, sep string) string {
	points := d.Points(word)
	if len(points) == 0 {
		return word
	}
	var b strings.Builder
	runes := []rune(word)
	last := 0
	for _, p := range points {
		b.WriteString(string(runes[last:p]))
		b.WriteString(sep)
		last = p
	}
	b.WriteString(string(runes[last:]))
	return b.String()
}

var (
	mu   sync.RWMutex
	dict = map[language.Base]*Dictionary{}
)

// Register makes d the dictionary for the base language of tag.
func Register(tag language.Tag, d *Dictionary) {
	base, _ := tag.Base()
	mu.Lock()
	defer mu.Unlock()
	dict[base] = d
}

// Lookup returns the dictionary registered for the base language of tag.
func Lookup(tag language.Tag) (*Dictionary, bool) {
	base, _ := tag.Base()
	mu.RLock()
	defer mu.RUnlock()
	d, ok := dict[base]
	return d, ok
}

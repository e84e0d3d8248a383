package hyphen

import (
	"golang.org/x/text/language"
)

// English is the built-in English dictionary. Its patterns cover common
// syllable boundaries (split between consonants, before common suffixes,
// after common prefixes) and keep digraphs together; it is far smaller than
// a full TeX pattern set.
var English *Dictionary

const consonants = "bcdfghjklmnpqrstvwxz"

// englishPatterns are written out; consonant pairs are generated. Patterns
// with the same letters are merged by taking the larger value per gap.
var englishPatterns = []string{
	// Keep digraphs and common clusters together.
	"c4h", "s4h", "t4h", "p4h", "w4h", "g4h", "r4h", "c4k", "q4u",
	"n4g.", "s4t.", "c4t.", "n4t.", "n4d.", "r4t.", "l4d.", "m4p.", "s4k.", "l4l.", "s4s.",
	"c4l", "b4l", "f4l", "g4l", "p4l", "s4l",
	"b4r", "c4r", "d4r", "f4r", "g4r", "p4r", "t4r",

	// Suffixes.
	"1tion", "1sion", "1ment", "1ness", "1less", "1ful.",
	"1able", "1ible", "1ture", "1sure",

	// Prefixes.
	".un1", ".dis1", ".pre1", ".mis1", ".non1", ".over1", ".under1", ".inter1",

	// Liang's worked example.
	"hy3ph", "he2n", "hena4", "hen5at", "1na", "n2at", "1tio", "2io",
}

var englishExceptions = []string{
	"ta-ble", "pro-ject", "pre-sent", "re-cord",
}

func init() {
	patterns := append([]string(nil), englishPatterns...)
	for _, a := range consonants {
		for _, b := range consonants {
			patterns = append(patterns, string(a)+"1"+string(b))
		}
	}
	d, err := NewDictionary(patterns, englishExceptions)
	if err != nil {
		panic(err)
	}
	English = d
	Register(language.English, d)
}

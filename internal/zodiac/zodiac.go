// Package zodiac defines the fixed set of zodiac signs users can register for.
package zodiac

import (
	"fmt"
	"strings"
)

// Sign is one of the twelve zodiac sign labels, e.g. "Aries".
type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

var all = []Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

var emoji = map[Sign]string{
	Aries: "♈", Taurus: "♉", Gemini: "♊", Cancer: "♋",
	Leo: "♌", Virgo: "♍", Libra: "♎", Scorpio: "♏",
	Sagittarius: "♐", Capricorn: "♑", Aquarius: "♒", Pisces: "♓",
}

// All returns the signs in calendar order. The returned slice is a copy.
func All() []Sign {
	out := make([]Sign, len(all))
	copy(out, all)
	return out
}

// Parse resolves a label case-insensitively.
func Parse(label string) (Sign, error) {
	for _, s := range all {
		if strings.EqualFold(string(s), strings.TrimSpace(label)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown zodiac sign %q", label)
}

// Valid reports whether s is one of the twelve labels.
func (s Sign) Valid() bool {
	_, ok := emoji[s]
	return ok
}

// Emoji returns the sign's symbol, or an empty string for unknown signs.
func (s Sign) Emoji() string {
	return emoji[s]
}

func (s Sign) String() string {
	return string(s)
}

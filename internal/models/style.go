package models

import (
	"errors"
	"fmt"
)

// Style selects the robohash image set used for a robot's avatar.
type Style string

const (
	StyleRobots   Style = "Robots"
	StyleMonsters Style = "Monsters"
	StyleAliens   Style = "Aliens"
	StyleCats     Style = "Cats"
)

const avatarBaseURL = "https://robohash.org/"

// Styles lists the selectable styles in display order.
var Styles = []Style{StyleRobots, StyleMonsters, StyleAliens, StyleCats}

var styleSuffixes = map[Style]string{
	StyleRobots:   ".png?set=set1",
	StyleMonsters: ".png?set=set2",
	StyleAliens:   ".png?set=set3",
	StyleCats:     ".png?set=set4",
}

var ErrAvatarInputs = errors.New("first name, last name and style are required")

func (s Style) Valid() bool {
	_, ok := styleSuffixes[s]
	return ok
}

func (s Style) Suffix() string {
	return styleSuffixes[s]
}

// ParseStyle matches a style name exactly.
func ParseStyle(name string) (Style, error) {
	s := Style(name)
	if !s.Valid() {
		return "", fmt.Errorf("unknown style %q", name)
	}
	return s, nil
}

// AvatarURL builds the robohash URL for a name and style. The same inputs
// always produce the same URL.
func AvatarURL(first, last string, style Style) (string, error) {
	if first == "" || last == "" || style == "" {
		return "", ErrAvatarInputs
	}
	if !style.Valid() {
		return "", fmt.Errorf("unknown style %q", style)
	}
	return avatarBaseURL + first + last + style.Suffix(), nil
}

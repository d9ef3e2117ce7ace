package model

import (
	"fmt"
	"strings"
)

// Speed is the persisted numeric speed rating of a crewmate.
type Speed int

const (
	SpeedSlow      Speed = 1
	SpeedNormal    Speed = 2
	SpeedFast      Speed = 3
	SpeedLightning Speed = 4
)

const (
	unknownSpeedLabel       = "Unknown"
	unknownSpeedDescription = "Speed capabilities unknown."
	unknownColorEmoji       = "🔘"
	unknownAbilityText      = "A unique and mysterious ability."
)

// SpeedOption ties the form value, display label and persisted number together.
type SpeedOption struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Numeric     Speed  `json:"numeric"`
	Description string `json:"description"`
}

var speedOptions = []SpeedOption{
	{Value: "slow", Label: "Slow", Numeric: SpeedSlow, Description: "Takes their time to think through every decision carefully."},
	{Value: "normal", Label: "Normal", Numeric: SpeedNormal, Description: "Moves at a steady, reliable pace through tasks."},
	{Value: "fast", Label: "Fast", Numeric: SpeedFast, Description: "Quick on their feet and efficient in completing missions."},
	{Value: "lightning", Label: "Lightning", Numeric: SpeedLightning, Description: "Blazingly fast - can complete tasks in record time!"},
}

// SpeedOptions returns the selectable speeds, slowest first.
func SpeedOptions() []SpeedOption {
	return append([]SpeedOption(nil), speedOptions...)
}

// SpeedFromOption maps a form value to its numeric speed. Unset or
// unrecognized values fall back to SpeedSlow.
func SpeedFromOption(value string) Speed {
	for _, o := range speedOptions {
		if o.Value == value {
			return o.Numeric
		}
	}
	return SpeedSlow
}

func (s Speed) option() (SpeedOption, bool) {
	for _, o := range speedOptions {
		if o.Numeric == s {
			return o, true
		}
	}
	return SpeedOption{}, false
}

// Valid reports whether s is one of the four defined ratings.
func (s Speed) Valid() bool {
	_, ok := s.option()
	return ok
}

func (s Speed) Label() string {
	if o, ok := s.option(); ok {
		return o.Label
	}
	return unknownSpeedLabel
}

func (s Speed) Description() string {
	if o, ok := s.option(); ok {
		return o.Description
	}
	return unknownSpeedDescription
}

// OptionValue is the form value to pre-select when editing. Ratings that
// do not map to an option pre-select "normal".
func (s Speed) OptionValue() string {
	if o, ok := s.option(); ok {
		return o.Value
	}
	return "normal"
}

// Color is a suggested crewmate color. Stored as free text, so values outside
// the suggested set are legal and render with fallbacks.
type Color string

const (
	ColorRed    Color = "Red"
	ColorBlue   Color = "Blue"
	ColorGreen  Color = "Green"
	ColorPink   Color = "Pink"
	ColorOrange Color = "Orange"
	ColorYellow Color = "Yellow"
	ColorBlack  Color = "Black"
	ColorWhite  Color = "White"
	ColorPurple Color = "Purple"
	ColorBrown  Color = "Brown"
	ColorCyan   Color = "Cyan"
	ColorLime   Color = "Lime"
)

var colors = []Color{
	ColorRed, ColorBlue, ColorGreen, ColorPink, ColorOrange, ColorYellow,
	ColorBlack, ColorWhite, ColorPurple, ColorBrown, ColorCyan, ColorLime,
}

var colorEmoji = map[Color]string{
	ColorRed:    "🔴",
	ColorBlue:   "🔵",
	ColorGreen:  "🟢",
	ColorPink:   "🩷",
	ColorOrange: "🟠",
	ColorYellow: "🟡",
	ColorBlack:  "⚫",
	ColorWhite:  "⚪",
	ColorPurple: "🟣",
	ColorBrown:  "🤎",
	ColorCyan:   "🩵",
	ColorLime:   "🟢",
}

func Colors() []Color {
	return append([]Color(nil), colors...)
}

func (c Color) Known() bool {
	_, ok := colorEmoji[c]
	return ok
}

func (c Color) Emoji() string {
	if e, ok := colorEmoji[c]; ok {
		return e
	}
	return unknownColorEmoji
}

func (c Color) Description() string {
	return fmt.Sprintf(
		"This crewmate stands out with their distinctive %s appearance, making them easily recognizable among the crew.",
		strings.ToLower(string(c)),
	)
}

// Ability is a suggested special ability, stored as free text.
type Ability string

const (
	AbilityInvisibility     Ability = "Invisibility"
	AbilitySuperSpeed       Ability = "Super Speed"
	AbilityTeleportation    Ability = "Teleportation"
	AbilityMindReading      Ability = "Mind Reading"
	AbilityShapeshifting    Ability = "Shapeshifting"
	AbilityTimeManipulation Ability = "Time Manipulation"
	AbilityForceFields      Ability = "Force Fields"
	AbilityHealing          Ability = "Healing"
	AbilityXRayVision       Ability = "X-Ray Vision"
	AbilitySuperStrength    Ability = "Super Strength"
)

var abilities = []Ability{
	AbilityInvisibility, AbilitySuperSpeed, AbilityTeleportation, AbilityMindReading, AbilityShapeshifting,
	AbilityTimeManipulation, AbilityForceFields, AbilityHealing, AbilityXRayVision, AbilitySuperStrength,
}

var abilityDescriptions = map[Ability]string{
	AbilityInvisibility:     "Can become completely invisible to avoid detection.",
	AbilitySuperSpeed:       "Moves faster than the eye can see.",
	AbilityTeleportation:    "Can instantly transport to any location.",
	AbilityMindReading:      "Can read the thoughts of other crewmates.",
	AbilityShapeshifting:    "Can change their appearance at will.",
	AbilityTimeManipulation: "Has control over the flow of time.",
	AbilityForceFields:      "Can create protective barriers around themselves.",
	AbilityHealing:          "Can heal themselves and other crewmates.",
	AbilityXRayVision:       "Can see through walls and objects.",
	AbilitySuperStrength:    "Possesses incredible physical strength.",
}

func Abilities() []Ability {
	return append([]Ability(nil), abilities...)
}

func (a Ability) Known() bool {
	_, ok := abilityDescriptions[a]
	return ok
}

func (a Ability) Description() string {
	if d, ok := abilityDescriptions[a]; ok {
		return d
	}
	return unknownAbilityText
}

type ColorOption struct {
	Name  Color  `json:"name"`
	Emoji string `json:"emoji"`
}

type AbilityOption struct {
	Name        Ability `json:"name"`
	Description string  `json:"description"`
}

// Options is everything a form needs to render its choices.
type Options struct {
	Speeds    []SpeedOption   `json:"speeds"`
	Colors    []ColorOption   `json:"colors"`
	Abilities []AbilityOption `json:"abilities"`
}

func LookupOptions() *Options {
	opts := &Options{
		Speeds:    SpeedOptions(),
		Colors:    make([]ColorOption, 0, len(colors)),
		Abilities: make([]AbilityOption, 0, len(abilities)),
	}
	for _, c := range colors {
		opts.Colors = append(opts.Colors, ColorOption{Name: c, Emoji: c.Emoji()})
	}
	for _, a := range abilities {
		opts.Abilities = append(opts.Abilities, AbilityOption{Name: a, Description: a.Description()})
	}
	return opts
}

package text

import "fmt"

// GlyphID is a glyph index within one font.
// Glyph IDs are not comparable across fonts; (Identity, GlyphID) is the only valid key.
type GlyphID uint16

// NotdefGlyph is the glyph every font renders for missing characters.
const NotdefGlyph GlyphID = 0

// Family is the generic family of a font.
type Family int

const (
	// FamilyNamed is a font identified only by Identity.Name.
	FamilyNamed Family = iota
	FamilySerif
	FamilySansSerif
	FamilyCursive
	FamilyMonospace
)

// String returns the CSS-style name of the family.
func (f Family) String() string {
	switch f {
	case FamilyNamed:
		return "named"
	case FamilySerif:
		return "serif"
	case FamilySansSerif:
		return "sans-serif"
	case FamilyCursive:
		return "cursive"
	case FamilyMonospace:
		return "monospace"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// Weight is a font weight in the CSS range 100..900.
type Weight uint16

// Standard font weights.
const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightRegular    Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// Valid reports whether w is a multiple of 100 between 100 and 900.
func (w Weight) Valid() bool {
	return w >= WeightThin && w <= WeightBlack && w%100 == 0
}

// Identity is the logical identity of a font.
// It is comparable and serves as the atlas cache key.
type Identity struct {
	Family    Family
	Name      string
	Weight    Weight
	Monospace bool
}

// String returns a compact description such as "sans-serif/Go/400".
func (id Identity) String() string {
	s := id.Family.String()
	if id.Name != "" {
		s += "/" + id.Name
	}
	s += fmt.Sprintf("/%d", id.Weight)
	if id.Monospace {
		s += "/mono"
	}
	return s
}

// Well-known identities registered by RegisterGoFonts.
var (
	DefaultIdentity = Identity{
		Family: FamilySansSerif,
		Name:   "Go",
		Weight: WeightRegular,
	}
	MonospaceIdentity = Identity{
		Family:    FamilyMonospace,
		Name:      "Go Mono",
		Weight:    WeightRegular,
		Monospace: true,
	}
)

// Direction is the primary direction of a text run.
type Direction int

const (
	// DirectionLTR is left-to-right text.
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text.
	DirectionRTL
)

// String returns "ltr" or "rtl".
func (d Direction) String() string {
	if d == DirectionRTL {
		return "rtl"
	}
	return "ltr"
}

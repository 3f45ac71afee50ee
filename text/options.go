package text

// FontOption configures Font creation.
type FontOption func(*fontConfig)

type fontConfig struct {
	collectionIndex int
}

func defaultFontConfig() fontConfig {
	return fontConfig{}
}

// WithCollectionIndex selects a font inside a TrueType/OpenType collection.
// Index 0 parses the data as a single font.
func WithCollectionIndex(i int) FontOption {
	return func(c *fontConfig) {
		c.collectionIndex = i
	}
}

// ShaperOption configures GoTextShaper.
type ShaperOption func(*shaperConfig)

type shaperConfig struct {
	language string
}

func defaultShaperConfig() shaperConfig {
	return shaperConfig{language: "en"}
}

// WithLanguage sets the BCP 47 language tag passed to the shaper.
// Invalid tags fall back to "en".
func WithLanguage(tag string) ShaperOption {
	return func(c *shaperConfig) {
		c.language = tag
	}
}

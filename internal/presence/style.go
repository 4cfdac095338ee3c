package presence

// Palette is the accent styling of a card.
type Palette struct {
	Background string
	Border     string
	Text       string
	Badge      string
	Glow       string
	Dot        string
}

var palettes = map[Kind]Palette{
	KindSpotify: {
		Background: "from-green-500/15 to-emerald-500/10",
		Border:     "border-green-500/30",
		Text:       "text-green-400",
		Badge:      "bg-green-500/20 border-green-400/40",
		Glow:       "shadow-green-500/20",
		Dot:        "bg-green-400",
	},
	KindCoding: {
		Background: "from-blue-500/15 to-indigo-500/10",
		Border:     "border-blue-500/30",
		Text:       "text-blue-400",
		Badge:      "bg-blue-500/20 border-blue-400/40",
		Glow:       "shadow-blue-500/20",
		Dot:        "bg-blue-400",
	},
	KindGaming: {
		Background: "from-red-500/15 to-pink-500/10",
		Border:     "border-red-500/30",
		Text:       "text-red-400",
		Badge:      "bg-red-500/20 border-red-400/40",
		Glow:       "shadow-red-500/20",
		Dot:        "bg-red-400",
	},
}

var defaultPalette = Palette{
	Background: "from-purple-500/15 to-violet-500/10",
	Border:     "border-purple-500/30",
	Text:       "text-purple-400",
	Badge:      "bg-purple-500/20 border-purple-400/40",
	Glow:       "shadow-purple-500/20",
	Dot:        "bg-purple-400",
}

var labels = map[Kind]string{
	KindSpotify: "NOW PLAYING",
	KindCoding:  "CODING",
	KindGaming:  "PLAYING",
}

// glyphs are the inline SVG bodies for built-in icons (24x24 viewBox).
var glyphs = map[Icon]string{
	IconSpotify: `<path d="M9 18V5l12-2v13"/><circle cx="6" cy="18" r="3"/><circle cx="18" cy="16" r="3"/>`,
	IconVSCode:  `<path d="m18 16 4-4-4-4"/><path d="m6 8-4 4 4 4"/><path d="m14.5 4-5 16"/>`,
	IconGaming:  `<line x1="6" x2="10" y1="11" y2="11"/><line x1="8" x2="8" y1="9" y2="13"/><line x1="15" x2="15.01" y1="12" y2="12"/><line x1="18" x2="18.01" y1="10" y2="10"/><path d="M17.32 5H6.68a4 4 0 0 0-3.978 3.59L2 15a3 3 0 0 0 3 3c1 0 1.5-.5 2-1l1.414-1.414A2 2 0 0 1 9.828 15h4.344a2 2 0 0 1 1.414.586L17 17c.5.5 1 1 2 1a3 3 0 0 0 3-3l-.702-6.41A4 4 0 0 0 17.32 5z"/>`,
}

const defaultGlyph = `<path d="M3 14h3a2 2 0 0 1 2 2v3a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2v-7a9 9 0 0 1 18 0v7a2 2 0 0 1-2 2h-1a2 2 0 0 1-2-2v-3a2 2 0 0 1 2-2h3"/>`

// Label is the category badge text for an activity type.
func Label(activityType string) string {
	if l, ok := labels[Kind(activityType)]; ok {
		return l
	}
	return "ACTIVE"
}

// Colors is the palette for an activity type.
func Colors(activityType string) Palette {
	if p, ok := palettes[Kind(activityType)]; ok {
		return p
	}
	return defaultPalette
}

// Glyph returns the SVG body for an icon, or a generic headphones glyph.
func Glyph(icon Icon) string {
	if g, ok := glyphs[icon]; ok {
		return g
	}
	return defaultGlyph
}

// VisualKind says what fills the card thumbnail.
type VisualKind int

const (
	VisualImage VisualKind = iota
	VisualIconImage
	VisualGlyph
)

// Visual picks the thumbnail: image, then icon image, then built-in glyph.
func (a Activity) Visual() (VisualKind, string) {
	switch {
	case a.Image != "":
		return VisualImage, a.Image
	case a.IconImage != "":
		return VisualIconImage, a.IconImage
	default:
		return VisualGlyph, Glyph(a.Icon)
	}
}

func (a Activity) Label() string { return Label(a.Type) }
func (a Activity) Colors() Palette { return Colors(a.Type) }
func (a Activity) IsSpotify() bool { return a.Type == string(KindSpotify) }

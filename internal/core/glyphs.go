package core

// Glyphs is the set of runes games draw with. Themes that target plain
// terminals use the ASCII set.
type Glyphs struct {
	Solid   rune
	Ball    rune
	Bullet  rune
	Ship    rune
	Rock    rune
	Food    rune
	Head    rune
	Body    rune
	Invader rune
	Net     rune
	Arrows  [4]rune // Heading right, down, left, up
}

var (
	// UnicodeGlyphs is used by colorful themes.
	UnicodeGlyphs = Glyphs{
		Solid: '█', Ball: '●', Bullet: '•', Ship: '▲', Rock: '◎',
		Food: '◆', Head: '■', Body: '□', Invader: 'Ѫ', Net: '│',
		Arrows: [4]rune{'▶', '▼', '◀', '▲'},
	}
	// ASCIIGlyphs is used by the mono theme.
	ASCIIGlyphs = Glyphs{
		Solid: '#', Ball: 'o', Bullet: '.', Ship: 'A', Rock: '@',
		Food: '*', Head: 'O', Body: 'o', Invader: 'W', Net: '|',
		Arrows: [4]rune{'>', 'v', '<', '^'},
	}
)

// GlyphsFor picks the glyph set for a theme name.
func GlyphsFor(s SettingsReader) Glyphs {
	if s != nil && s.Theme() == "mono" {
		return ASCIIGlyphs
	}
	return UnicodeGlyphs
}

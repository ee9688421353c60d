package model

// Colour is a 24-bit RGB value as used by role colours and embeds.
type Colour uint32

// R returns the red component.
func (c Colour) R() uint8 { return uint8(c >> 16) }

// G returns the green component.
func (c Colour) G() uint8 { return uint8(c >> 8) }

// B returns the blue component.
func (c Colour) B() uint8 { return uint8(c) }

// Tuple returns all three components.
func (c Colour) Tuple() (r, g, b uint8) {
	return c.R(), c.G(), c.B()
}

// A handful of the stock palette.
const (
	ColourBlurple Colour = 0x7289DA
	ColourRed     Colour = 0xE74C3C
	ColourGreen   Colour = 0x2ECC71
	ColourOrange  Colour = 0xE67E22
	ColourGold    Colour = 0xF1C40F
)

package printing

// Raw control bytes for ESC/POS compatible thermal printers.
const (
	escByte byte = 0x1B
	gsByte  byte = 0x1D
	lfByte  byte = 0x0A
)

var (
	cmdInitialize = []byte{escByte, '@'}
	cmdLineFeed   = []byte{lfByte}
	cmdPartialCut = []byte{gsByte, 'V', 0x01}
)

// cmdAlign selects text justification: 0 left, 1 center, 2 right.
func cmdAlign(a Alignment) []byte {
	var n byte
	switch a {
	case AlignCenter:
		n = 0x01
	case AlignRight:
		n = 0x02
	default:
		n = 0x00
	}
	return []byte{escByte, 'a', n}
}

func cmdEmphasis(on bool) []byte {
	var n byte
	if on {
		n = 0x01
	}
	return []byte{escByte, 'E', n}
}

func cmdFontScale(n byte) []byte {
	return []byte{gsByte, '!', n}
}

// fontScaleForPoints buckets a point size into the printer's character
// magnification register: normal up to 10pt, double height up to 15pt,
// double height and width above that.
func fontScaleForPoints(points int) byte {
	switch {
	case points <= 10:
		return 0x00
	case points <= 15:
		return 0x10
	default:
		return 0x11
	}
}

// asciiBytes encodes text for the printer's default code page. Runes
// outside the ASCII range print as '?'.
func asciiBytes(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		if r < 0x80 {
			out = append(out, byte(r))
		} else {
			out = append(out, '?')
		}
	}
	return out
}

package inject

// keyStroke is a virtual key code plus whether shift must be held.
type keyStroke struct {
	code  uint16
	shift bool
}

// usKeyMap maps characters to macOS virtual key codes for the US layout.
// The typed fallback only covers this set; anything else is skipped.
var usKeyMap = map[rune]keyStroke{
	'a': {0, false}, 's': {1, false}, 'd': {2, false}, 'f': {3, false},
	'h': {4, false}, 'g': {5, false}, 'z': {6, false}, 'x': {7, false},
	'c': {8, false}, 'v': {9, false}, 'b': {11, false}, 'q': {12, false},
	'w': {13, false}, 'e': {14, false}, 'r': {15, false}, 'y': {16, false},
	't': {17, false}, 'o': {31, false}, 'u': {32, false}, 'i': {34, false},
	'p': {35, false}, 'l': {37, false}, 'j': {38, false}, 'k': {40, false},
	'n': {45, false}, 'm': {46, false},

	'1': {18, false}, '2': {19, false}, '3': {20, false}, '4': {21, false},
	'5': {23, false}, '6': {22, false}, '7': {26, false}, '8': {28, false},
	'9': {25, false}, '0': {29, false},

	' ':  {49, false},
	'\n': {36, false},
	'\t': {48, false},

	'-': {27, false}, '=': {24, false}, '[': {33, false}, ']': {30, false},
	'\\': {42, false}, ';': {41, false}, '\'': {39, false}, ',': {43, false},
	'.': {47, false}, '/': {44, false}, '`': {50, false},

	'!': {18, true}, '@': {19, true}, '#': {20, true}, '$': {21, true},
	'%': {23, true}, '^': {22, true}, '&': {26, true}, '*': {28, true},
	'(': {25, true}, ')': {29, true},

	'_': {27, true}, '+': {24, true}, '{': {33, true}, '}': {30, true},
	'|': {42, true}, ':': {41, true}, '"': {39, true}, '<': {43, true},
	'>': {47, true}, '?': {44, true}, '~': {50, true},
}

// lookupKey resolves a character to a keystroke. Uppercase letters map to
// the lowercase key with shift held.
func lookupKey(r rune) (keyStroke, bool) {
	if r >= 'A' && r <= 'Z' {
		ks, ok := usKeyMap[r+('a'-'A')]
		if !ok {
			return keyStroke{}, false
		}
		ks.shift = true
		return ks, true
	}
	ks, ok := usKeyMap[r]
	return ks, ok
}

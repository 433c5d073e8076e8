package domain

// dniLetters maps the remainder of the numeric part modulo 23 to its control letter.
const dniLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

const (
	dniDigits = 8
	dniLength = dniDigits + 1
)

// DNILetter returns the control letter for an 8 digit string.
func DNILetter(digits string) (byte, bool) {
	if len(digits) != dniDigits {
		return 0, false
	}

	var n uint32
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint32(c-'0')
	}
	return dniLetters[n%uint32(len(dniLetters))], true
}

// ValidDNI reports whether code is 8 digits followed by the matching control
// letter. The letter is compared case-insensitively.
func ValidDNI(code string) bool {
	if len(code) != dniLength {
		return false
	}
	want, ok := DNILetter(code[:dniDigits])
	if !ok {
		return false
	}
	got := code[dniDigits]
	if got >= 'a' && got <= 'z' {
		got -= 'a' - 'A'
	}
	return got == want
}

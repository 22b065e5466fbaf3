// =============================================================================
// Cartorio Audit - Checksum Library
// =============================================================================
//
// Pure check-digit validators for the national identifiers that appear on
// notarial filings:
//   - CPF  : 11-digit individual taxpayer id, two modulo-11 check digits
//   - CNPJ : 14-digit entity taxpayer id (length check only, see below)
//   - CIB  : 8-character property identifier, numeric (modulo-11) or
//            alphanumeric (base-32, modulo-31) body
//
// All functions are deterministic, allocation-light and safe for concurrent
// use. They accept formatted input ("111.444.777-35", "1234567-0") and
// strip punctuation before validating.
//
// =============================================================================

package checksum

import "strings"

// =============================================================================
// CPF
// =============================================================================

// cpfWeightsFirst are the weights for the first check digit (over digits 1-9).
var cpfWeightsFirst = []int{10, 9, 8, 7, 6, 5, 4, 3, 2}

// cpfWeightsSecond are the weights for the second check digit (over digits 1-10).
var cpfWeightsSecond = []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}

// ValidCPF reports whether the value is a valid CPF number.
//
// The value is stripped of non-digit characters first. It must then be
// exactly 11 digits and must not be a sequence of identical digits
// (00000000000 through 99999999999 all pass the arithmetic but are not
// assignable numbers).
func ValidCPF(value string) bool {
	digits := OnlyDigits(value)
	if len(digits) != 11 {
		return false
	}
	if allSameDigit(digits) {
		return false
	}

	if cpfCheckDigit(digits, cpfWeightsFirst) != int(digits[9]-'0') {
		return false
	}
	return cpfCheckDigit(digits, cpfWeightsSecond) == int(digits[10]-'0')
}

// cpfCheckDigit computes one CPF check digit over len(weights) leading
// digits. Remainders 10 and 11 map to 0.
func cpfCheckDigit(digits string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

// =============================================================================
// CNPJ
// =============================================================================

// ValidCNPJ reports whether the value has the shape of a CNPJ number.
//
// Known limitation: only the 14-digit length is verified after stripping
// punctuation. The check-digit arithmetic is intentionally not implemented
// here; no normative source was available for the filing formats this
// validator serves, and a wrong rejection is worse than a loose acceptance.
func ValidCNPJ(value string) bool {
	return len(OnlyDigits(value)) == 14
}

// =============================================================================
// CIB (property identifier)
// =============================================================================

// cibAlphabet is the 32-symbol alphabet of the alphanumeric CIB scheme:
// digits 0-9 followed by the letters A-Z excluding I, L, O and U.
const cibAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// cibNumericWeights are the modulo-11 weights for a fully numeric body.
var cibNumericWeights = []int{8, 7, 6, 5, 4, 3, 2}

// cibAlphaWeights are the modulo-31 weights for an alphanumeric body.
var cibAlphaWeights = []int{4, 3, 9, 5, 7, 1, 8}

// ValidCIB reports whether the value is a valid 8-character property
// identifier (7-character body plus one check character).
//
// Fully numeric bodies use a modulo-11 scheme; bodies containing letters
// use the base-32 modulo-31 scheme over cibAlphabet. Before the alphabet
// lookup the letters I and L fold to the digit 1 and O folds to 0; the
// letter U is rejected outright because it has no equivalent symbol. This
// folding is the single canonical definition used by every caller.
func ValidCIB(value string) bool {
	s := strings.ToUpper(strings.TrimSpace(value))
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, ".", "")
	if len(s) != 8 {
		return false
	}

	body, check := s[:7], s[7]

	if isAllDigits(body) {
		return CIBNumericCheckDigit(body) == check
	}

	folded, ok := foldCIBBody(body)
	if !ok {
		return false
	}
	expected, ok := cibAlphaCheckChar(folded)
	if !ok {
		return false
	}
	// The supplied check character gets the same folding treatment so
	// "...O" and "...0" compare equal.
	checkFolded := foldCIBChar(check)
	return expected == checkFolded
}

// CIBNumericCheckDigit derives the check character for a 7-digit numeric
// body: modulo-11 over cibNumericWeights, remainders 0 and 1 map to '0',
// otherwise the digit is 11 minus the remainder.
func CIBNumericCheckDigit(body string) byte {
	sum := 0
	for i, w := range cibNumericWeights {
		sum += int(body[i]-'0') * w
	}
	r := sum % 11
	if r == 0 || r == 1 {
		return '0'
	}
	return byte('0' + 11 - r)
}

// cibAlphaCheckChar derives the check character for a folded alphanumeric
// body. Returns false when a body character is outside the alphabet.
func cibAlphaCheckChar(body string) (byte, bool) {
	sum := 0
	for i, w := range cibAlphaWeights {
		idx := strings.IndexByte(cibAlphabet, body[i])
		if idx < 0 {
			return 0, false
		}
		sum += idx * w
	}
	return cibAlphabet[sum%31], true
}

// foldCIBBody applies the I/L/O equivalence folding to a body. The second
// return is false when the body contains U.
func foldCIBBody(body string) (string, bool) {
	if strings.ContainsRune(body, 'U') {
		return "", false
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		b.WriteByte(foldCIBChar(body[i]))
	}
	return b.String(), true
}

// foldCIBChar maps I and L to '1' and O to '0'; every other character is
// returned unchanged.
func foldCIBChar(c byte) byte {
	switch c {
	case 'I', 'L':
		return '1'
	case 'O':
		return '0'
	}
	return c
}

// =============================================================================
// HELPERS
// =============================================================================

// OnlyDigits strips every non-digit character from the value.
func OnlyDigits(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if value[i] >= '0' && value[i] <= '9' {
			b.WriteByte(value[i])
		}
	}
	return b.String()
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func allSameDigit(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

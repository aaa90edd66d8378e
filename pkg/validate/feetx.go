package validate

const minFeeTxIDLen = 10

// IsFeeTxID reports whether s looks like a fee-payment transaction id: long
// enough to be a real tx hash and free of whitespace.
func IsFeeTxID(s string) bool {
	if len(s) < minFeeTxIDLen {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

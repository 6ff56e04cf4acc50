package utils

// ClearBytes overwrites b with zeros. Key material is released through it.
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

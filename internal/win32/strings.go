package win32

import "bytes"

// cutNUL returns b up to its first NUL byte.
func cutNUL(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

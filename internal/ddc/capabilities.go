package ddc

import (
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Capabilities is a parsed MCCS capability string.
type Capabilities struct {
	Raw   string
	Model string
	Type  string
	// Codes is every VCP code listed under vcp(...).
	Codes mapset.Set[byte]
	// Values holds the permitted values of codes that list them, e.g. 60(0F 11 12).
	Values map[byte][]byte
}

// ParseCapabilities extracts the model, type and VCP sections of raw. Unknown
// sections are ignored.
func ParseCapabilities(raw string) Capabilities {
	caps := Capabilities{
		Raw:    raw,
		Codes:  mapset.NewSet[byte](),
		Values: map[byte][]byte{},
	}
	caps.Model, _ = section(raw, "model")
	caps.Type, _ = section(raw, "type")

	body, ok := section(raw, "vcp")
	if !ok {
		return caps
	}

	var last byte
	haveLast := false
	for i := 0; i < len(body); {
		switch c := body[i]; {
		case c == '(':
			end := strings.IndexByte(body[i:], ')')
			if end < 0 {
				end = len(body) - i
			}
			if haveLast {
				caps.Values[last] = parseHexList(body[i+1 : i+end])
			}
			i += end + 1
		case isHex(c):
			j := i
			for j < len(body) && isHex(body[j]) {
				j++
			}
			if v, err := strconv.ParseUint(body[i:j], 16, 8); err == nil {
				last, haveLast = byte(v), true
				caps.Codes.Add(last)
			}
			i = j
		default:
			i++
		}
	}
	return caps
}

// Supports reports whether code is listed.
func (c Capabilities) Supports(code byte) bool {
	return c.Codes != nil && c.Codes.Contains(code)
}

// Inputs returns the labels of the input values listed for VCP 0x60.
func (c Capabilities) Inputs() []string {
	values := c.Values[VCPInputSource]
	labels := make([]string, 0, len(values))
	for _, v := range values {
		labels = append(labels, InputLabel(uint32(v)))
	}
	return labels
}

// SortedCodes returns the listed VCP codes in ascending order.
func (c Capabilities) SortedCodes() []byte {
	if c.Codes == nil {
		return nil
	}
	codes := c.Codes.ToSlice()
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// section returns the contents of name(...) with balanced parentheses.
func section(raw, name string) (string, bool) {
	lower := strings.ToLower(raw)
	idx := strings.Index(lower, name+"(")
	for idx > 0 && isIdent(lower[idx-1]) {
		next := strings.Index(lower[idx+1:], name+"(")
		if next < 0 {
			return "", false
		}
		idx += next + 1
	}
	if idx < 0 {
		return "", false
	}

	start := idx + len(name) + 1
	depth := 1
	for j := start; j < len(raw); j++ {
		switch raw[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return raw[start:j], true
			}
		}
	}
	return raw[start:], true
}

func parseHexList(s string) []byte {
	var out []byte
	for _, f := range strings.Fields(s) {
		if v, err := strconv.ParseUint(f, 16, 8); err == nil {
			out = append(out, byte(v))
		}
	}
	return out
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isIdent(c byte) bool {
	return isHex(c) || ('a' <= c && c <= 'z') || c == '_'
}

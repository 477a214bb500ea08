package wavefront

import (
	"bufio"
	"math"
	"strings"
)

// Token scanning primitives shared by the OBJ and MTL parsers. All helpers
// operate on a line string with an explicit position and return the new
// position past the consumed token, so a malformed suffix is skipped rather
// than left to desynchronize the next token.

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isDigit(c byte) bool {
	return c-'0' < 10
}

// skipSpace advances past a run of spaces and tabs.
func skipSpace(s string, pos int) int {
	for pos < len(s) && isSpace(s[pos]) {
		pos++
	}
	return pos
}

// tokenEnd returns the position of the first space, tab, or CR at or after
// pos, or len(s).
func tokenEnd(s string, pos int) int {
	for pos < len(s) && s[pos] != ' ' && s[pos] != '\t' && s[pos] != '\r' {
		pos++
	}
	return pos
}

// indexEnd is tokenEnd with '/' as an additional separator, used while
// scanning face index triples and tag count headers.
func indexEnd(s string, pos int) int {
	for pos < len(s) && s[pos] != '/' && s[pos] != ' ' && s[pos] != '\t' && s[pos] != '\r' {
		pos++
	}
	return pos
}

// hasKeyword reports whether s at pos starts with kw followed by a space,
// tab, or end of line. The guard keeps "v" from matching "vt" or "vn".
func hasKeyword(s string, pos int, kw string) bool {
	if !strings.HasPrefix(s[pos:], kw) {
		return false
	}
	rest := pos + len(kw)
	return rest >= len(s) || isSpace(s[rest]) || s[rest] == '\r'
}

// powTable holds negative powers of ten for the first fractional digits,
// so the common case avoids math.Pow entirely.
var powTable = [8]float64{1.0, 0.1, 0.01, 0.001, 0.0001, 0.00001, 0.000001, 0.0000001}

// parseDouble converts the longest valid numeric prefix of s into a float:
// optional sign, digit run, optional fractional part, optional exponent with
// sign (default '+'). It replicates the strtod subset needed for geometry
// data without strconv, which keeps multi-million-token files cheap to scan.
// Returns false when no valid digit run is found.
func parseDouble(s string) (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}

	mantissa := 0.0
	exponent := 0
	sign := byte('+')
	expSign := byte('+')

	cur := 0
	if s[cur] == '+' || s[cur] == '-' {
		sign = s[cur]
		cur++
	} else if !isDigit(s[cur]) {
		return 0, false
	}

	read := 0
	for cur < len(s) && isDigit(s[cur]) {
		mantissa = mantissa*10 + float64(s[cur]-'0')
		cur++
		read++
	}
	if read == 0 {
		return 0, false
	}

	if cur < len(s) && s[cur] == '.' {
		cur++
		read = 1
		for cur < len(s) && isDigit(s[cur]) {
			if read < len(powTable) {
				mantissa += float64(s[cur]-'0') * powTable[read]
			} else {
				mantissa += float64(s[cur]-'0') * math.Pow(10, float64(-read))
			}
			read++
			cur++
		}
	}

	if cur < len(s) && (s[cur] == 'e' || s[cur] == 'E') {
		cur++
		if cur < len(s) && (s[cur] == '+' || s[cur] == '-') {
			expSign = s[cur]
			cur++
		} else if cur >= len(s) || !isDigit(s[cur]) {
			return 0, false
		}
		read = 0
		for cur < len(s) && isDigit(s[cur]) {
			exponent = exponent*10 + int(s[cur]-'0')
			cur++
			read++
		}
		if read == 0 {
			return 0, false
		}
		if expSign == '-' {
			exponent = -exponent
		}
	}

	val := mantissa
	if exponent != 0 {
		val = math.Ldexp(mantissa*math.Pow(5, float64(exponent)), exponent)
	}
	if sign == '-' {
		val = -val
	}
	return val, true
}

// parseReal scans one float token starting at pos, returning def when the
// token is not a valid number. The cursor always advances past the token.
// A cursor at or past end of line returns def without reading.
func parseReal(s string, pos int, def float64) (float32, int) {
	pos = skipSpace(s, pos)
	if pos >= len(s) {
		return float32(def), pos
	}
	end := tokenEnd(s, pos)
	val := def
	if v, ok := parseDouble(s[pos:end]); ok {
		val = v
	}
	return float32(val), end
}

// parseReal2 scans two float tokens with per-component defaults.
func parseReal2(s string, pos int, defX, defY float64) (x, y float32, next int) {
	x, pos = parseReal(s, pos, defX)
	y, pos = parseReal(s, pos, defY)
	return x, y, pos
}

// parseReal3 scans three float tokens with per-component defaults.
func parseReal3(s string, pos int, defX, defY, defZ float64) (x, y, z float32, next int) {
	x, pos = parseReal(s, pos, defX)
	y, pos = parseReal(s, pos, defY)
	z, pos = parseReal(s, pos, defZ)
	return x, y, z, pos
}

// parseV scans a position with an optional weight, defaulting w to 1.
func parseV(s string, pos int) (x, y, z, w float32, next int) {
	x, pos = parseReal(s, pos, 0)
	y, pos = parseReal(s, pos, 0)
	z, pos = parseReal(s, pos, 0)
	w, pos = parseReal(s, pos, 1)
	return x, y, z, w, pos
}

// atoiPrefix converts the leading integer of s using C atoi semantics:
// optional sign, digit run, 0 when no digits are present.
func atoiPrefix(s string) int {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for i < len(s) && isDigit(s[i]) {
		n = n*10 + int(s[i]-'0')
		i++
	}
	if neg {
		return -n
	}
	return n
}

// parseInt scans one integer token, defaulting to 0 on malformed input.
// A cursor at or past end of line returns 0 without reading.
func parseInt(s string, pos int) (int, int) {
	pos = skipSpace(s, pos)
	if pos >= len(s) {
		return 0, pos
	}
	n := atoiPrefix(s[pos:])
	return n, tokenEnd(s, pos)
}

// parseString scans one whitespace-delimited token. A cursor at or past end
// of line returns an empty token without reading.
func parseString(s string, pos int) (string, int) {
	pos = skipSpace(s, pos)
	if pos >= len(s) {
		return "", pos
	}
	end := tokenEnd(s, pos)
	return s[pos:end], end
}

// parseOnOff scans an "on"/"off" token, returning def for anything else.
// A cursor at or past end of line returns def without reading.
func parseOnOff(s string, pos int, def bool) (bool, int) {
	pos = skipSpace(s, pos)
	if pos >= len(s) {
		return def, pos
	}
	end := tokenEnd(s, pos)
	val := def
	switch s[pos:end] {
	case "on":
		val = true
	case "off":
		val = false
	}
	return val, end
}

// fixIndex converts a raw 1-based file index into a zero-based offset.
// Negative indices are relative to the current element count n. A raw index
// of 0 is invalid in the format but clamps to 0 to match legacy loaders.
func fixIndex(idx, n int) int {
	if idx > 0 {
		return idx - 1
	}
	if idx == 0 {
		return 0
	}
	return n + idx
}

// parseTriple scans one face corner in v, v/vt, v//vn, or v/vt/vn form,
// normalizing each present component against the running attribute counts.
// Absent components stay -1.
func parseTriple(s string, pos int, vSize, vnSize, vtSize int) (Index, int) {
	idx := Index{Vertex: -1, TexCoord: -1, Normal: -1}

	idx.Vertex = fixIndex(atoiPrefix(s[pos:]), vSize)
	pos = indexEnd(s, pos)
	if pos >= len(s) || s[pos] != '/' {
		return idx, pos
	}
	pos++

	// v//vn
	if pos < len(s) && s[pos] == '/' {
		pos++
		idx.Normal = fixIndex(atoiPrefix(s[pos:]), vnSize)
		return idx, indexEnd(s, pos)
	}

	idx.TexCoord = fixIndex(atoiPrefix(s[pos:]), vtSize)
	pos = indexEnd(s, pos)
	if pos >= len(s) || s[pos] != '/' {
		return idx, pos
	}
	pos++
	idx.Normal = fixIndex(atoiPrefix(s[pos:]), vnSize)
	return idx, indexEnd(s, pos)
}

// parseRawTriple scans a face corner without index normalization; unset
// components stay 0. Used by the callback API, whose consumers receive the
// file's raw indices.
func parseRawTriple(s string, pos int) (Index, int) {
	var idx Index

	idx.Vertex = atoiPrefix(s[pos:])
	pos = indexEnd(s, pos)
	if pos >= len(s) || s[pos] != '/' {
		return idx, pos
	}
	pos++

	if pos < len(s) && s[pos] == '/' {
		pos++
		idx.Normal = atoiPrefix(s[pos:])
		return idx, indexEnd(s, pos)
	}

	idx.TexCoord = atoiPrefix(s[pos:])
	pos = indexEnd(s, pos)
	if pos >= len(s) || s[pos] != '/' {
		return idx, pos
	}
	pos++
	idx.Normal = atoiPrefix(s[pos:])
	return idx, indexEnd(s, pos)
}

// tagCounts holds the element counts from a tag header triple.
type tagCounts struct {
	ints    int
	floats  int
	strings int
}

// parseTagCounts scans the "ints/floats/strings" count header of a "t"
// directive. Missing trailing components stay 0.
func parseTagCounts(s string, pos int) (tagCounts, int) {
	var tc tagCounts

	tc.ints = atoiPrefix(s[pos:])
	pos = indexEnd(s, pos)
	if pos >= len(s) || s[pos] != '/' {
		return tc, pos
	}
	pos++
	tc.floats = atoiPrefix(s[pos:])
	pos = indexEnd(s, pos)
	if pos >= len(s) || s[pos] != '/' {
		return tc, pos
	}
	pos++
	tc.strings = atoiPrefix(s[pos:])
	return tc, indexEnd(s, pos)
}

// scanLines is a bufio.SplitFunc recognizing LF, CRLF, and bare CR line
// terminators. bufio.ScanLines only handles the first two; classic Mac OBJ
// exports still use bare CR.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			return i + 1, data[:i], nil
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if atEOF {
				return i + 1, data[:i], nil
			}
			// Need one more byte to tell CR from CRLF.
			return 0, nil, nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// newLineScanner wraps r in a scanner that honors all three line terminator
// conventions and tolerates very long lines.
func newLineScanner(r *bufio.Scanner) *bufio.Scanner {
	r.Split(scanLines)
	r.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return r
}

// trimLine strips trailing horizontal whitespace from an already
// terminator-free line.
func trimLine(s string) string {
	return strings.TrimRight(s, " \t")
}

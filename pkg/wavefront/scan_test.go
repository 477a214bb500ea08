package wavefront

import (
	"bufio"
	"math"
	"strings"
	"testing"
)

func TestParseDouble(t *testing.T) {
	tests := []struct {
		in       string
		expected float64
		ok       bool
	}{
		{"0", 0, true},
		{"1", 1, true},
		{"42", 42, true},
		{"-7", -7, true},
		{"+3", 3, true},
		{"3.14", 3.14, true},
		{"-0.5", -0.5, true},
		{".5", 0, false}, // digit run required before the dot
		{"1.", 1, true},
		{"1e3", 1000, true},
		{"1E3", 1000, true},
		{"2.5e-2", 0.025, true},
		{"1e+2", 100, true},
		{"6.02e23", 6.02e23, true},
		{"1e-8", 1e-8, true},
		{"0.123456789", 0.123456789, true},
		{"", 0, false},
		{"-", 0, false},
		{"+", 0, false},
		{"abc", 0, false},
		{"e5", 0, false},
		{"1e", 0, false},
		{"1e-", 0, false},
	}

	for _, tc := range tests {
		got, ok := parseDouble(tc.in)
		if ok != tc.ok {
			t.Errorf("parseDouble(%q) ok = %v, expected %v", tc.in, ok, tc.ok)
			continue
		}
		if !ok {
			continue
		}
		if math.Abs(got-tc.expected) > math.Abs(tc.expected)*1e-12 {
			t.Errorf("parseDouble(%q) = %g, expected %g", tc.in, got, tc.expected)
		}
	}
}

func TestParseReal_Defaults(t *testing.T) {
	// Malformed token keeps the default but still advances the cursor.
	val, pos := parseReal("abc 2.5", 0, 7.5)
	if val != 7.5 {
		t.Errorf("expected default 7.5 for malformed token, got %f", val)
	}
	if pos != 3 {
		t.Errorf("expected cursor at 3 after malformed token, got %d", pos)
	}

	val, _ = parseReal("abc 2.5", pos, 0)
	if val != 2.5 {
		t.Errorf("expected 2.5 after resync, got %f", val)
	}

	// Cursor past end of line returns the default without reading.
	val, pos = parseReal("1", 5, 9)
	if val != 9 || pos != 5 {
		t.Errorf("expected (9, 5) past end, got (%f, %d)", val, pos)
	}
}

func TestTokenHelpers_CursorPastEnd(t *testing.T) {
	// A cursor beyond the line must return the default with the cursor
	// untouched, never slice out of range.
	if val, pos := parseReal("1", 5, 9); val != 9 || pos != 5 {
		t.Errorf("parseReal past end = (%f, %d), expected (9, 5)", val, pos)
	}
	if n, pos := parseInt("1", 5); n != 0 || pos != 5 {
		t.Errorf("parseInt past end = (%d, %d), expected (0, 5)", n, pos)
	}
	if tok, pos := parseString("ab", 7); tok != "" || pos != 7 {
		t.Errorf("parseString past end = (%q, %d), expected (\"\", 7)", tok, pos)
	}
	if val, pos := parseOnOff("on", 9, true); !val || pos != 9 {
		t.Errorf("parseOnOff past end = (%v, %d), expected (true, 9)", val, pos)
	}

	// Cursor exactly at end of line behaves the same way.
	if val, pos := parseReal("x", 1, 4); val != 4 || pos != 1 {
		t.Errorf("parseReal at end = (%f, %d), expected (4, 1)", val, pos)
	}
	if tok, pos := parseString("x", 1); tok != "" || pos != 1 {
		t.Errorf("parseString at end = (%q, %d), expected (\"\", 1)", tok, pos)
	}
}

func TestParseReal_TrailingGarbage(t *testing.T) {
	// Token run is consumed whole, so "1.5x" parses the prefix and the
	// next token starts cleanly.
	val, pos := parseReal("1.5x 2", 0, 0)
	if val != 1.5 {
		t.Errorf("expected 1.5, got %f", val)
	}
	next, _ := parseReal("1.5x 2", pos, 0)
	if next != 2 {
		t.Errorf("expected 2 after resync, got %f", next)
	}
}

func TestFixIndex(t *testing.T) {
	tests := []struct {
		idx, n, expected int
	}{
		{1, 10, 0},   // 1-based to zero-based
		{10, 10, 9},  //
		{0, 10, 0},   // legacy clamp, not absent
		{-1, 10, 9},  // relative to running count
		{-10, 10, 0}, //
	}
	for _, tc := range tests {
		if got := fixIndex(tc.idx, tc.n); got != tc.expected {
			t.Errorf("fixIndex(%d, %d) = %d, expected %d", tc.idx, tc.n, got, tc.expected)
		}
	}
}

func TestHasKeyword_Guard(t *testing.T) {
	tests := []struct {
		line, kw string
		expected bool
	}{
		{"v 1 2 3", "v", true},
		{"vt 0 1", "v", false}, // prefix alone must not match
		{"vn 0 1 0", "v", false},
		{"vt 0 1", "vt", true},
		{"v", "v", true}, // end of line counts as a guard
		{"usemtl red", "usemtl", true},
		{"usemtlred", "usemtl", false},
		{"d 0.5", "d", true},
		{"disp file.png", "d", false},
	}
	for _, tc := range tests {
		if got := hasKeyword(tc.line, 0, tc.kw); got != tc.expected {
			t.Errorf("hasKeyword(%q, %q) = %v, expected %v", tc.line, tc.kw, got, tc.expected)
		}
	}
}

func TestParseTriple_Formats(t *testing.T) {
	tests := []struct {
		in       string
		expected Index
	}{
		{"3", Index{Vertex: 2, TexCoord: -1, Normal: -1}},
		{"3/5", Index{Vertex: 2, TexCoord: 4, Normal: -1}},
		{"3//7", Index{Vertex: 2, TexCoord: -1, Normal: 6}},
		{"3/5/7", Index{Vertex: 2, TexCoord: 4, Normal: 6}},
		{"-1/-1/-1", Index{Vertex: 9, TexCoord: 9, Normal: 9}},
		{"0", Index{Vertex: 0, TexCoord: -1, Normal: -1}},
	}
	for _, tc := range tests {
		got, _ := parseTriple(tc.in, 0, 10, 10, 10)
		if got != tc.expected {
			t.Errorf("parseTriple(%q) = %+v, expected %+v", tc.in, got, tc.expected)
		}
	}
}

func TestParseRawTriple(t *testing.T) {
	got, _ := parseRawTriple("3/5/7", 0)
	if (got != Index{Vertex: 3, TexCoord: 5, Normal: 7}) {
		t.Errorf("expected raw indices preserved, got %+v", got)
	}

	got, _ = parseRawTriple("-2//4", 0)
	if (got != Index{Vertex: -2, TexCoord: 0, Normal: 4}) {
		t.Errorf("expected raw v//vn form, got %+v", got)
	}
}

func TestParseTagCounts(t *testing.T) {
	tests := []struct {
		in       string
		expected tagCounts
	}{
		{"2/3/1", tagCounts{ints: 2, floats: 3, strings: 1}},
		{"2/3", tagCounts{ints: 2, floats: 3}},
		{"2", tagCounts{ints: 2}},
		{"", tagCounts{}},
	}
	for _, tc := range tests {
		got, _ := parseTagCounts(tc.in, 0)
		if got != tc.expected {
			t.Errorf("parseTagCounts(%q) = %+v, expected %+v", tc.in, got, tc.expected)
		}
	}
}

func TestParseInt_AtoiSemantics(t *testing.T) {
	tests := []struct {
		in       string
		expected int
	}{
		{"42", 42},
		{"-3", -3},
		{"+7", 7},
		{"12abc", 12},
		{"abc", 0},
		{"", 0},
	}
	for _, tc := range tests {
		got, _ := parseInt(tc.in, 0)
		if got != tc.expected {
			t.Errorf("parseInt(%q) = %d, expected %d", tc.in, got, tc.expected)
		}
	}
}

func TestParseOnOff(t *testing.T) {
	val, _ := parseOnOff("off rest", 0, true)
	if val {
		t.Error(`expected "off" to parse as false`)
	}
	val, _ = parseOnOff("on", 0, false)
	if !val {
		t.Error(`expected "on" to parse as true`)
	}
	val, _ = parseOnOff("maybe", 0, true)
	if !val {
		t.Error("expected unrecognized token to keep the default")
	}
}

func TestScanLines_Terminators(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []string
	}{
		{"lf", "a\nb\nc", []string{"a", "b", "c"}},
		{"crlf", "a\r\nb\r\nc\r\n", []string{"a", "b", "c"}},
		{"bare cr", "a\rb\rc", []string{"a", "b", "c"}},
		{"mixed", "a\nb\r\nc\rd", []string{"a", "b", "c", "d"}},
		{"trailing cr", "a\r", []string{"a"}},
	}
	for _, tc := range tests {
		scanner := newLineScanner(bufio.NewScanner(strings.NewReader(tc.in)))
		var got []string
		for scanner.Scan() {
			got = append(got, scanner.Text())
		}
		if len(got) != len(tc.expected) {
			t.Errorf("%s: got %d lines %q, expected %q", tc.name, len(got), got, tc.expected)
			continue
		}
		for i := range got {
			if got[i] != tc.expected[i] {
				t.Errorf("%s: line %d = %q, expected %q", tc.name, i, got[i], tc.expected[i])
			}
		}
	}
}

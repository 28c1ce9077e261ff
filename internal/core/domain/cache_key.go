package domain

import (
	"encoding/binary"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// SegmentKind distinguishes plain text segments from object segments.
type SegmentKind uint8

const (
	// SegmentText is a plain string segment such as "investments" or "detail".
	SegmentText SegmentKind = iota + 1
	// SegmentObject is a set of name/value fields, typically list filters.
	SegmentObject
)

// Field is a single name/value pair inside an object segment.
type Field struct {
	Name  string
	Value string
}

// Segment is one element of a CacheKey.
// Object fields are kept sorted by name so that two objects built from the same
// map compare equal regardless of iteration order.
type Segment struct {
	kind   SegmentKind
	text   string
	fields []Field
}

// Text creates a text segment.
func Text(s string) Segment {
	return Segment{kind: SegmentText, text: s}
}

// Object creates an object segment from a field map.
// Empty values are kept; callers that want "unset" filters to be ignored should
// drop them before building the segment.
func Object(fields map[string]string) Segment {
	fs := make([]Field, 0, len(fields))
	for name, value := range fields {
		fs = append(fs, Field{Name: name, Value: value})
	}
	slices.SortFunc(fs, func(a, b Field) int { return strings.Compare(a.Name, b.Name) })
	return Segment{kind: SegmentObject, fields: fs}
}

// Kind returns the segment kind.
func (s Segment) Kind() SegmentKind {
	return s.kind
}

// Fields returns a copy of the object fields, sorted by name.
func (s Segment) Fields() []Field {
	return slices.Clone(s.fields)
}

// Equal reports whether two segments are structurally equal.
func (s Segment) Equal(other Segment) bool {
	if s.kind != other.kind {
		return false
	}
	if s.kind == SegmentText {
		return s.text == other.text
	}
	return slices.Equal(s.fields, other.fields)
}

// String renders the segment for logs.
func (s Segment) String() string {
	if s.kind != SegmentObject {
		return s.text
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range s.fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.Name)
		b.WriteByte('=')
		b.WriteString(f.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// CacheKey is an ordered sequence of segments identifying one cached result set.
// A key addresses its own slot and, used as a prefix, all descendant slots.
type CacheKey struct {
	segments []Segment
}

// NewCacheKey creates a key from segments.
func NewCacheKey(segments ...Segment) CacheKey {
	return CacheKey{segments: slices.Clone(segments)}
}

// Key creates a key made only of text segments.
func Key(parts ...string) CacheKey {
	segs := make([]Segment, len(parts))
	for i, p := range parts {
		segs[i] = Text(p)
	}
	return CacheKey{segments: segs}
}

// Append returns a child key. The receiver is left untouched.
func (k CacheKey) Append(segments ...Segment) CacheKey {
	out := make([]Segment, 0, len(k.segments)+len(segments))
	out = append(out, k.segments...)
	out = append(out, segments...)
	return CacheKey{segments: out}
}

// Len returns the number of segments.
func (k CacheKey) Len() int {
	return len(k.segments)
}

// Segments returns a copy of the key's segments.
func (k CacheKey) Segments() []Segment {
	return slices.Clone(k.segments)
}

// Equal reports whether two keys are structurally equal.
func (k CacheKey) Equal(other CacheKey) bool {
	return slices.EqualFunc(k.segments, other.segments, Segment.Equal)
}

// HasPrefix reports whether prefix matches the leading segments of k.
// The empty key is a prefix of every key.
func (k CacheKey) HasPrefix(prefix CacheKey) bool {
	if len(prefix.segments) > len(k.segments) {
		return false
	}
	return slices.EqualFunc(k.segments[:len(prefix.segments)], prefix.segments, Segment.Equal)
}

// Hash returns a digest of the canonical encoding of the key.
// Every string is length-prefixed, so ["ab","c"] and ["a","bc"] never share an encoding.
func (k CacheKey) Hash() uint64 {
	d := xxhash.New()
	var buf [8]byte
	writeString := func(s string) {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
		_, _ = d.Write(buf[:])
		_, _ = d.WriteString(s)
	}

	for _, seg := range k.segments {
		_, _ = d.Write([]byte{byte(seg.kind)})
		switch seg.kind {
		case SegmentObject:
			binary.LittleEndian.PutUint64(buf[:], uint64(len(seg.fields)))
			_, _ = d.Write(buf[:])
			for _, f := range seg.fields {
				writeString(f.Name)
				writeString(f.Value)
			}
		default:
			writeString(seg.text)
		}
	}
	return d.Sum64()
}

// String renders the key as slash separated segments, e.g. "investments/list/{risk=low}".
func (k CacheKey) String() string {
	parts := make([]string, len(k.segments))
	for i, s := range k.segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, "/")
}

// Package codec implements the NKV record format.
//
// An NKV file is a one-line header followed by self-delimited text records,
// one per entry, in insertion order:
//
//	file    := "nkv1" LF record*
//	record  := key HT tag HT payload LF
//	tag     := "s" | "i" | "f" | "b"
//
// Keys and string payloads are backslash-escaped (\t \n \r \\) so a record is
// always exactly three tab-separated fields on one line. The kind tag is
// authoritative and explicit; the decoder additionally cross-checks numeric
// payload shape against the tag, so an integer record never silently decodes
// as a float (or vice versa).
//
// Encoding is a pure transform into a caller-supplied buffer; file I/O lives
// in the persistence package.
package codec

import (
	"bytes"
	"math"
	"strconv"

	"github.com/hupe1980/nkv/value"
)

// Header is the version line at the start of every non-empty NKV file.
const Header = "nkv1"

const (
	tagString = 's'
	tagInt    = 'i'
	tagFloat  = 'f'
	tagBool   = 'b'
)

// AppendHeader appends the NKV header line to buf.
func AppendHeader(buf []byte) []byte {
	buf = append(buf, Header...)
	return append(buf, '\n')
}

// AppendEntry appends one self-delimited record for (key, v) to buf.
func AppendEntry(buf []byte, key string, v value.Value) ([]byte, error) {
	if key == "" {
		return nil, &EncodingError{Key: key, Reason: "empty key"}
	}
	if !v.Kind.Valid() {
		return nil, &EncodingError{Key: key, Reason: "unsupported kind " + v.Kind.String()}
	}

	buf = appendEscaped(buf, key)
	buf = append(buf, '\t')

	switch v.Kind {
	case value.KindString:
		buf = append(buf, tagString, '\t')
		buf = appendEscaped(buf, v.S)
	case value.KindInt:
		buf = append(buf, tagInt, '\t')
		buf = strconv.AppendInt(buf, v.I64, 10)
	case value.KindFloat:
		buf = append(buf, tagFloat, '\t')
		buf = appendFloatPayload(buf, v.F64)
	case value.KindBool:
		buf = append(buf, tagBool, '\t')
		buf = strconv.AppendBool(buf, v.B)
	}

	return append(buf, '\n'), nil
}

// AppendBatch appends the header and one record per entry of m, in insertion
// order, in a single pass. This is the bulk-write path: one buffer, no
// per-entry file operations.
func AppendBatch(buf []byte, m *value.Map) ([]byte, error) {
	buf = AppendHeader(buf)

	var err error
	m.Range(func(key string, v value.Value) bool {
		buf, err = AppendEntry(buf, key, v)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Decode parses a serialized store back into an ordered map.
//
// Empty input decodes as an empty map. Anything else must start with the
// header line; malformed records are rejected with a CorruptionError rather
// than coerced.
func Decode(data []byte) (*value.Map, error) {
	if len(data) == 0 {
		return value.NewMap(), nil
	}

	rest, ok := bytes.CutPrefix(data, []byte(Header+"\n"))
	if !ok {
		return nil, corruptf(0, nil, "missing %q header", Header)
	}

	m := value.NewMap()
	rec := 0
	for len(rest) > 0 {
		rec++

		nl := bytes.IndexByte(rest, '\n')
		if nl < 0 {
			return nil, corruptf(rec, nil, "truncated record: missing terminator")
		}
		line := rest[:nl]
		rest = rest[nl+1:]

		if err := decodeRecord(m, line, rec); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func decodeRecord(m *value.Map, line []byte, rec int) error {
	t1 := bytes.IndexByte(line, '\t')
	if t1 < 0 {
		return corruptf(rec, nil, "missing kind tag")
	}
	rawKey, tail := line[:t1], line[t1+1:]

	t2 := bytes.IndexByte(tail, '\t')
	if t2 < 0 {
		return corruptf(rec, nil, "missing payload")
	}
	tag, payload := tail[:t2], tail[t2+1:]

	if bytes.IndexByte(payload, '\t') >= 0 {
		return corruptf(rec, nil, "unescaped delimiter in payload")
	}
	if len(tag) != 1 {
		return corruptf(rec, nil, "malformed kind tag %q", tag)
	}

	key, err := unescape(rawKey, rec)
	if err != nil {
		return err
	}
	if key == "" {
		return corruptf(rec, nil, "empty key")
	}
	if _, exists := m.Get(key); exists {
		return corruptf(rec, nil, "duplicate key %q", key)
	}

	v, err := decodePayload(tag[0], payload, rec)
	if err != nil {
		return err
	}
	m.Set(key, v)
	return nil
}

func decodePayload(tag byte, payload []byte, rec int) (value.Value, error) {
	switch tag {
	case tagString:
		s, err := unescape(payload, rec)
		if err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil

	case tagInt:
		// Shape first: a float-looking payload under an integer tag is
		// corruption, not something to round.
		if !intShape(payload) {
			return value.Value{}, corruptf(rec, nil, "integer tag with non-integer payload %q", payload)
		}
		n, err := strconv.ParseInt(string(payload), 10, 64)
		if err != nil {
			return value.Value{}, corruptf(rec, err, "integer payload %q out of range", payload)
		}
		return value.Int(n), nil

	case tagFloat:
		f, err := strconv.ParseFloat(string(payload), 64)
		if err != nil {
			return value.Value{}, corruptf(rec, err, "malformed float payload %q", payload)
		}
		if !floatShape(payload) && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return value.Value{}, corruptf(rec, nil, "float tag with integer-shaped payload %q", payload)
		}
		return value.Float(f), nil

	case tagBool:
		switch {
		case bytes.Equal(payload, []byte("true")):
			return value.Bool(true), nil
		case bytes.Equal(payload, []byte("false")):
			return value.Bool(false), nil
		default:
			return value.Value{}, corruptf(rec, nil, "malformed bool payload %q", payload)
		}

	default:
		return value.Value{}, corruptf(rec, nil, "unknown kind tag %q", tag)
	}
}

// appendFloatPayload formats f so the payload always keeps a float shape:
// a decimal point, an exponent, or an Inf/NaN spelling. Whole-valued floats
// get a forced ".0" so 42.0 never collapses to the integer shape "42".
func appendFloatPayload(buf []byte, f float64) []byte {
	start := len(buf)
	buf = strconv.AppendFloat(buf, f, 'g', -1, 64)
	if !floatShape(buf[start:]) && !math.IsInf(f, 0) && !math.IsNaN(f) {
		buf = append(buf, '.', '0')
	}
	return buf
}

func floatShape(b []byte) bool {
	for _, c := range b {
		if c == '.' || c == 'e' || c == 'E' {
			return true
		}
	}
	return false
}

func intShape(b []byte) bool {
	if len(b) > 0 && b[0] == '-' {
		b = b[1:]
	}
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func appendEscaped(buf []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\t':
			buf = append(buf, '\\', 't')
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\\':
			buf = append(buf, '\\', '\\')
		default:
			buf = append(buf, c)
		}
	}
	return buf
}

func unescape(b []byte, rec int) (string, error) {
	esc := bytes.IndexByte(b, '\\')
	if esc < 0 {
		return string(b), nil
	}

	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(b) {
			return "", corruptf(rec, nil, "unterminated escape")
		}
		switch b[i] {
		case 't':
			out = append(out, '\t')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case '\\':
			out = append(out, '\\')
		default:
			return "", corruptf(rec, nil, "invalid escape \\%c", b[i])
		}
	}
	return string(out), nil
}

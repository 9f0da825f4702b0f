package domain

import (
	"fmt"
	"math"
	"strconv"
)

// IDKind tells which representation an ID carries
type IDKind int

const (
	KindNull IDKind = iota
	KindNumber
	KindString
)

// ID identifies a candidate by its value field. The zero value is null.
// IDs are comparable and can be used as map keys. Integral numbers that fit
// an int64 are held exactly, so large integer ids never collide.
type ID struct {
	kind     IDKind
	integral bool
	i        int64
	f        float64
	str      string
}

// NullID is the absent identifier
var NullID = ID{}

// NumberID returns a numeric identifier. Integral values are stored as
// integers so NumberID(2) == IntID(2).
func NumberID(n float64) ID {
	if n == math.Trunc(n) && n >= math.MinInt64 && n < math.MaxInt64 {
		return IntID(int64(n))
	}
	return ID{kind: KindNumber, f: n}
}

// IntID returns an exact integer identifier
func IntID(n int64) ID {
	return ID{kind: KindNumber, integral: true, i: n}
}

// StringID returns a text identifier
func StringID(s string) ID {
	return ID{kind: KindString, str: s}
}

// IDOf converts a decoded value (TOML, JSON, literals) into an ID
func IDOf(v any) ID {
	switch x := v.(type) {
	case nil:
		return NullID
	case ID:
		return x
	case string:
		return StringID(x)
	case int:
		return IntID(int64(x))
	case int32:
		return IntID(int64(x))
	case int64:
		return IntID(x)
	case uint:
		return uintID(uint64(x))
	case uint32:
		return IntID(int64(x))
	case uint64:
		return uintID(x)
	case float32:
		return NumberID(float64(x))
	case float64:
		return NumberID(x)
	default:
		return StringID(fmt.Sprint(x))
	}
}

// uintID keeps unsigned values above int64 exact as text
func uintID(n uint64) ID {
	if n > math.MaxInt64 {
		return StringID(strconv.FormatUint(n, 10))
	}
	return IntID(int64(n))
}

// ParseID converts widget text back into an ID. When numeric is set the text
// is parsed as a number; text that does not parse stays a string ID and will
// not match any numeric candidate.
func ParseID(raw string, numeric bool) ID {
	if !numeric {
		return StringID(raw)
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return IntID(i)
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) {
		return StringID(raw)
	}
	return NumberID(n)
}

func (id ID) Kind() IDKind    { return id.kind }
func (id ID) IsNull() bool    { return id.kind == KindNull }
func (id ID) IsNumeric() bool { return id.kind == KindNumber }

// Number returns the numeric value, false for non-numeric IDs
func (id ID) Number() (float64, bool) {
	if id.integral {
		return float64(id.i), true
	}
	return id.f, id.kind == KindNumber
}

// String returns the text form the widget uses for this ID
func (id ID) String() string {
	switch id.kind {
	case KindNumber:
		if id.integral {
			return strconv.FormatInt(id.i, 10)
		}
		return strconv.FormatFloat(id.f, 'f', -1, 64)
	case KindString:
		return id.str
	default:
		return ""
	}
}

// Native returns the ID as a plain Go value for encoders
func (id ID) Native() any {
	switch id.kind {
	case KindNumber:
		if id.integral {
			return id.i
		}
		return id.f
	case KindString:
		return id.str
	default:
		return nil
	}
}

// GoString keeps test failure output readable
func (id ID) GoString() string {
	switch id.kind {
	case KindNumber:
		return "NumberID(" + id.String() + ")"
	case KindString:
		return strconv.Quote(id.str)
	default:
		return "NullID"
	}
}

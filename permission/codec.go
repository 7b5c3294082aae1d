package permission

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// encodedSize is the length of the binary form.
const encodedSize = 4

// EncodeSet returns the 4-byte big-endian form of s.
func EncodeSet(s Set) []byte {
	b := make([]byte, encodedSize)
	binary.BigEndian.PutUint32(b, uint32(s))
	return b
}

// DecodeSet strictly decodes the form produced by EncodeSet.
func DecodeSet(data []byte) (Set, error) {
	if len(data) != encodedSize {
		return 0, &ParseError{Kind: ErrInvalidLength, Input: strconv.Itoa(len(data))}
	}
	return fromBits(uint64(binary.BigEndian.Uint32(data)))
}

// MarshalBinary is EncodeSet.
func (s Set) MarshalBinary() ([]byte, error) {
	return EncodeSet(s), nil
}

// UnmarshalBinary is DecodeSet.
func (s *Set) UnmarshalBinary(data []byte) error {
	v, err := DecodeSet(data)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalJSON writes the canonical compact form, a bare number.
func (s Set) MarshalJSON() ([]byte, error) {
	return strconv.AppendUint(nil, uint64(s), 10), nil
}

// UnmarshalJSON accepts either a number, validated strictly, or a string of
// permission names (see ParseNames). Producers emit numbers; hand-edited
// fixtures may use names.
func (s *Set) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return &ParseError{Kind: ErrUnexpectedType}
	}

	var (
		v   Set
		err error
	)
	switch c := data[0]; {
	case c == '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return &ParseError{Kind: ErrUnexpectedType, Input: string(data)}
		}
		v, err = ParseNames(text)
	case c == '-' || (c >= '0' && c <= '9'):
		v, err = parseNumber(string(data), 10)
	case bytes.Equal(data, []byte("null")):
		return nil
	default:
		return &ParseError{Kind: ErrUnexpectedType, Input: string(data)}
	}
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText renders the name form ("read, write"). It is used for
// environment variables and flags; JSON and YAML keep the numeric form.
func (s Set) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts a decimal number, "none", or a name list.
func (s *Set) UnmarshalText(text []byte) error {
	v, err := parseText(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalYAML writes the numeric form.
func (s Set) MarshalYAML() (interface{}, error) {
	return uint32(s), nil
}

// UnmarshalYAML accepts an integer scalar, a name-list string, or a sequence
// of names.
func (s *Set) UnmarshalYAML(value *yaml.Node) error {
	var v Set
	switch value.Kind {
	case yaml.ScalarNode:
		switch value.ShortTag() {
		case "!!null":
			return nil
		case "!!int":
			parsed, err := parseNumber(value.Value, 0)
			if err != nil {
				return err
			}
			v = parsed
		case "!!str":
			parsed, err := ParseNames(value.Value)
			if err != nil {
				return err
			}
			v = parsed
		default:
			return &ParseError{Kind: ErrUnexpectedType, Input: value.Value}
		}
	case yaml.SequenceNode:
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
				return &ParseError{Kind: ErrUnexpectedType, Input: item.Value}
			}
			bit, err := ParseNames(item.Value)
			if err != nil {
				return err
			}
			v |= bit
		}
	default:
		return &ParseError{Kind: ErrUnexpectedType}
	}
	*s = v
	return nil
}

// parseNumber validates an integer literal. A negative value is reported
// separately from an out-of-range or unknown-bit value.
func parseNumber(text string, base int) (Set, error) {
	text = strings.TrimSpace(text)
	if strings.ContainsAny(text, ".eE") && base == 10 {
		return 0, &ParseError{Kind: ErrUnexpectedType, Input: text}
	}
	if strings.HasPrefix(text, "-") {
		v, err := strconv.ParseInt(text, base, 64)
		if err != nil || v < 0 {
			return 0, &ParseError{Kind: ErrNegativeValue, Input: text}
		}
		return 0, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(text, "+"), base, 64)
	if err != nil {
		return 0, &ParseError{Kind: ErrInvalidBits, Input: text}
	}
	return fromBits(v)
}

func fromBits(v uint64) (Set, error) {
	if v > uint64(^uint32(0)) {
		return 0, &ParseError{Kind: ErrInvalidBits, Input: strconv.FormatUint(v, 10)}
	}
	set, ok := FromBitsChecked(uint32(v))
	if !ok {
		return 0, &ParseError{Kind: ErrInvalidBits, Input: strconv.FormatUint(v, 10)}
	}
	return set, nil
}

func parseText(text string) (Set, error) {
	trimmed := strings.TrimSpace(text)
	switch {
	case strings.EqualFold(trimmed, "none"):
		return 0, nil
	case trimmed != "" && (trimmed[0] == '-' || (trimmed[0] >= '0' && trimmed[0] <= '9')):
		return parseNumber(trimmed, 10)
	default:
		return ParseNames(trimmed)
	}
}

package keys

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// aliases maps bracketed names (lowercase, without brackets) to keys.
// Canonical names from Key.String are included so notation round-trips.
var aliases = map[string]Key{
	"space":     Space,
	"lt":        Char('<'),
	"left":      Left,
	"right":     Right,
	"up":        Up,
	"down":      Down,
	"enter":     Enter,
	"cr":        Enter,
	"return":    Enter,
	"esc":       Escape,
	"escape":    Escape,
	"bs":        Backspace,
	"backspace": Backspace,
	"tab":       Tab,
	"del":       Special(CodeDelete),
	"delete":    Special(CodeDelete),
	"home":      Special(CodeHome),
	"end":       Special(CodeEnd),
	"c-c":       Special(CodeCtrlC),
	"ctrl+c":    Special(CodeCtrlC),
}

// Parse parses a single key specification.
//
// Supported formats:
//   - Single character: "a", "$", "0"
//   - Bracketed names: "<space>", "<enter>", "<esc>", "<bs>", "<lt>", "<left>"
//   - Aliases: "<cr>", "<return>", "<escape>", "<backspace>"
//   - Raw code points: "<u+1b>"
func Parse(spec string) (Key, error) {
	if spec == "" {
		return Key{}, ErrEmptySpec
	}
	seq, err := ParseSequence(spec)
	if err != nil {
		return Key{}, err
	}
	if len(seq) != 1 {
		return Key{}, fmt.Errorf("%w: %q is %d keys, expected one", ErrInvalidSpec, spec, len(seq))
	}
	return seq[0], nil
}

// ParseSequence parses a chord such as "dd", "<space>q" or "g<enter>".
// A literal space is rejected; spaces are written as "<space>".
func ParseSequence(spec string) (Sequence, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, ErrEmptySpec
	}

	var seq Sequence
	for i := 0; i < len(spec); {
		if spec[i] == '<' {
			end := strings.IndexByte(spec[i:], '>')
			if end < 0 {
				return nil, fmt.Errorf("%w: %q", ErrUnmatchedBracket, spec)
			}
			k, err := parseBracketed(spec[i+1 : i+end])
			if err != nil {
				return nil, err
			}
			seq = append(seq, k)
			i += end + 1
			continue
		}

		r, size := utf8.DecodeRuneInString(spec[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("%w: invalid utf-8 in %q", ErrInvalidSpec, spec)
		}
		if r == ' ' {
			return nil, fmt.Errorf("%w: literal space in %q, use <space>", ErrInvalidSpec, spec)
		}
		seq = append(seq, Char(r))
		i += size
	}
	return seq, nil
}

func parseBracketed(inner string) (Key, error) {
	name := strings.ToLower(strings.TrimSpace(inner))
	if name == "" {
		return Key{}, fmt.Errorf("%w: empty brackets", ErrInvalidSpec)
	}
	if k, ok := aliases[name]; ok {
		return k, nil
	}
	if hex, ok := strings.CutPrefix(name, "u+"); ok {
		n, err := strconv.ParseInt(hex, 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return Key{}, fmt.Errorf("%w: bad code point %q", ErrInvalidSpec, inner)
		}
		return Char(rune(n)), nil
	}
	return Key{}, fmt.Errorf("%w: unknown key name %q", ErrInvalidSpec, inner)
}

// MustParseSequence is like ParseSequence but panics on error.
// Intended for package-level defaults and tests.
func MustParseSequence(spec string) Sequence {
	seq, err := ParseSequence(spec)
	if err != nil {
		panic(err)
	}
	return seq
}

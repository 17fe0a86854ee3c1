package jsondiff

import (
	"fmt"
	"strconv"
	"strings"
)

// Pointer identifies a location in a value tree as an ordered sequence of
// reference tokens: object keys, or decimal-string indices for arrays. The
// empty pointer addresses the whole document. String form follows RFC 6901.
type Pointer []string

// Key returns a new pointer descending into the object member named k. The
// receiver is never modified.
func (p Pointer) Key(k string) Pointer {
	child := make(Pointer, len(p)+1)
	copy(child, p)
	child[len(p)] = k
	return child
}

// Index returns a new pointer descending into array element i.
func (p Pointer) Index(i int) Pointer {
	return p.Key(strconv.Itoa(i))
}

// Equal reports whether p and o consist of the same token sequence.
func (p Pointer) Equal(o Pointer) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// String encodes p in RFC 6901 string form. The empty pointer encodes as "".
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for _, tok := range p {
		b.WriteByte('/')
		b.WriteString(tokenEscaper.Replace(tok))
	}
	return b.String()
}

// ParsePointer decodes an RFC 6901 pointer string.
func ParsePointer(s string) (Pointer, error) {
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "/") {
		return nil, fmt.Errorf("invalid pointer %q: must begin with /", s)
	}
	parts := strings.Split(s[1:], "/")
	p := make(Pointer, len(parts))
	for i, part := range parts {
		tok, err := unescapeToken(part)
		if err != nil {
			return nil, fmt.Errorf("invalid pointer %q: %w", s, err)
		}
		p[i] = tok
	}
	return p, nil
}

var tokenEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func unescapeToken(tok string) (string, error) {
	if !strings.Contains(tok, "~") {
		return tok, nil
	}
	b := &strings.Builder{}
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i == len(tok)-1 {
			return "", fmt.Errorf("token %q ends with a bare ~", tok)
		}
		i++
		switch tok[i] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", fmt.Errorf("token %q contains invalid escape ~%c", tok, tok[i])
		}
	}
	return b.String(), nil
}

package snapshot

import (
	"fmt"
	"strings"
	"unicode"
)

// TypeRef is a parsed type reference string such as "Ns.List<Ns.Point>[]"
type TypeRef struct {
	Name      string
	Args      []TypeRef
	ArrayRank int
}

// String renders the reference in its canonical form
func (r TypeRef) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if len(r.Args) > 0 {
		b.WriteByte('<')
		for i, arg := range r.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(arg.String())
		}
		b.WriteByte('>')
	}
	for i := 0; i < r.ArrayRank; i++ {
		b.WriteString("[]")
	}
	return b.String()
}

// MaxTypeRefDepth bounds how deeply generic arguments may nest
const MaxTypeRefDepth = 32

// ParseTypeRef parses a type reference
func ParseTypeRef(s string) (TypeRef, error) {
	p := &refParser{src: s}
	ref, err := p.parse(0)
	if err != nil {
		return TypeRef{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return TypeRef{}, fmt.Errorf("unexpected %q at offset %d", p.src[p.pos], p.pos)
	}
	return ref, nil
}

type refParser struct {
	src string
	pos int
}

func (p *refParser) parse(depth int) (TypeRef, error) {
	if depth > MaxTypeRefDepth {
		return TypeRef{}, fmt.Errorf("generic arguments nest deeper than %d levels", MaxTypeRefDepth)
	}
	p.skipSpace()
	name, err := p.qualifiedName()
	if err != nil {
		return TypeRef{}, err
	}
	ref := TypeRef{Name: name}

	p.skipSpace()
	if p.peek('<') {
		p.pos++
		for {
			arg, err := p.parse(depth + 1)
			if err != nil {
				return TypeRef{}, err
			}
			ref.Args = append(ref.Args, arg)
			p.skipSpace()
			if p.peek(',') {
				p.pos++
				continue
			}
			if p.peek('>') {
				p.pos++
				break
			}
			return TypeRef{}, fmt.Errorf("expected ',' or '>' at offset %d", p.pos)
		}
	}

	for {
		p.skipSpace()
		if !p.peek('[') {
			break
		}
		p.pos++
		p.skipSpace()
		if !p.peek(']') {
			return TypeRef{}, fmt.Errorf("only single-dimensional arrays are supported (offset %d)", p.pos)
		}
		p.pos++
		ref.ArrayRank++
	}
	return ref, nil
}

func (p *refParser) qualifiedName() (string, error) {
	start := p.pos
	for {
		identStart := p.pos
		for p.pos < len(p.src) && isIdentRune(rune(p.src[p.pos])) {
			p.pos++
		}
		if p.pos == identStart {
			if p.pos >= len(p.src) {
				return "", fmt.Errorf("expected identifier at end of input")
			}
			return "", fmt.Errorf("expected identifier at offset %d", p.pos)
		}
		if !p.peek('.') {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos], nil
}

func (p *refParser) peek(c byte) bool {
	return p.pos < len(p.src) && p.src[p.pos] == c
}

func (p *refParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '`' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

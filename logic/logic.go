// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package logic parses and evaluates boolean expressions over numbered
// terminals, such as "0 AND (1 OR NOT 2)". Terminal N reads the N-th entry
// of the result vector handed to Evaluate.
package logic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/ava-labs/tokengate/utils/set"
)

var ErrEmptyExpression = errors.New("empty logic expression")

// ParseError locates a syntax error inside an expression. Offset is the rune
// index the parser gave up at.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid logic expression at offset %d: %s", e.Offset, e.Message)
}

type tokenKind uint8

const (
	tokenNumber tokenKind = iota
	tokenAnd
	tokenOr
	tokenNot
	tokenLeftParen
	tokenRightParen
)

type token struct {
	kind   tokenKind
	num    int
	offset int
}

func (t token) String() string {
	switch t.kind {
	case tokenNumber:
		return strconv.Itoa(t.num)
	case tokenAnd:
		return "AND"
	case tokenOr:
		return "OR"
	case tokenNot:
		return "NOT"
	case tokenLeftParen:
		return "("
	default:
		return ")"
	}
}

// Tree is an immutable parsed logic expression.
//
// Precedence is NOT over AND over OR, with AND and OR associating to the
// left, so "0 OR 1 AND NOT 2" parses as "0 OR (1 AND (NOT 2))".
type Tree struct {
	root      node
	terminals set.Set[int]
	max       int
}

// Parse builds the expression tree for [expr].
func Parse(expr string) (*Tree, error) {
	tokens, err := lex(expr)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, ErrEmptyExpression
	}

	p := &parser{
		tokens:    tokens,
		terminals: set.Set[int]{},
		max:       -1,
	}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		trailing := p.tokens[p.pos]
		return nil, &ParseError{
			Offset:  trailing.offset,
			Message: fmt.Sprintf("unexpected token %q", trailing.String()),
		}
	}
	return &Tree{
		root:      root,
		terminals: p.terminals,
		max:       p.max,
	}, nil
}

// Evaluate resolves the expression against [results]. Terminals beyond the
// end of [results] read as false.
func (t *Tree) Evaluate(results []bool) bool {
	return t.root.eval(results)
}

// MaxTerminal returns the largest terminal index the expression references.
func (t *Tree) MaxTerminal() int {
	return t.max
}

// Terminals returns the set of terminal indices the expression references.
func (t *Tree) Terminals() set.Set[int] {
	terminals := set.NewSet[int](t.terminals.Len())
	terminals.Union(t.terminals)
	return terminals
}

func (t *Tree) String() string {
	var sb strings.Builder
	t.root.append(&sb)
	return sb.String()
}

func lex(expr string) ([]token, error) {
	var tokens []token
	runes := []rune(expr)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokenLeftParen, offset: i})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokenRightParen, offset: i})
			i++
		case unicode.IsDigit(r):
			start := i
			for i < len(runes) && unicode.IsDigit(runes[i]) {
				i++
			}
			num, err := strconv.Atoi(string(runes[start:i]))
			if err != nil {
				return nil, &ParseError{
					Offset:  start,
					Message: fmt.Sprintf("invalid terminal %q", string(runes[start:i])),
				}
			}
			tokens = append(tokens, token{kind: tokenNumber, num: num, offset: start})
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && unicode.IsLetter(runes[i]) {
				i++
			}
			word := string(runes[start:i])
			switch strings.ToUpper(word) {
			case "AND":
				tokens = append(tokens, token{kind: tokenAnd, offset: start})
			case "OR":
				tokens = append(tokens, token{kind: tokenOr, offset: start})
			case "NOT":
				tokens = append(tokens, token{kind: tokenNot, offset: start})
			default:
				return nil, &ParseError{
					Offset:  start,
					Message: fmt.Sprintf("unknown keyword %q", word),
				}
			}
		default:
			return nil, &ParseError{
				Offset:  i,
				Message: fmt.Sprintf("invalid character %q", r),
			}
		}
	}
	return tokens, nil
}

type parser struct {
	tokens    []token
	pos       int
	terminals set.Set[int]
	max       int
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept(tokenOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &orNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.accept(tokenAnd) {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &andNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.accept(tokenNot) {
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &notNode{child: child}, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (node, error) {
	if p.pos >= len(p.tokens) {
		last := p.tokens[len(p.tokens)-1]
		return nil, &ParseError{
			Offset:  last.offset,
			Message: "unexpected end of expression",
		}
	}
	tok := p.tokens[p.pos]
	switch tok.kind {
	case tokenNumber:
		p.pos++
		p.terminals.Add(tok.num)
		if tok.num > p.max {
			p.max = tok.num
		}
		return termNode(tok.num), nil
	case tokenLeftParen:
		p.pos++
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.accept(tokenRightParen) {
			return nil, &ParseError{
				Offset:  tok.offset,
				Message: "missing closing parenthesis",
			}
		}
		return inner, nil
	default:
		return nil, &ParseError{
			Offset:  tok.offset,
			Message: fmt.Sprintf("unexpected token %q", tok.String()),
		}
	}
}

func (p *parser) accept(kind tokenKind) bool {
	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == kind {
		p.pos++
		return true
	}
	return false
}

type node interface {
	eval(results []bool) bool
	append(sb *strings.Builder)
}

type termNode int

func (n termNode) eval(results []bool) bool {
	i := int(n)
	return i < len(results) && results[i]
}

func (n termNode) append(sb *strings.Builder) {
	sb.WriteString(strconv.Itoa(int(n)))
}

type notNode struct {
	child node
}

func (n *notNode) eval(results []bool) bool {
	return !n.child.eval(results)
}

func (n *notNode) append(sb *strings.Builder) {
	sb.WriteString("NOT ")
	n.child.append(sb)
}

type andNode struct {
	left  node
	right node
}

func (n *andNode) eval(results []bool) bool {
	return n.left.eval(results) && n.right.eval(results)
}

func (n *andNode) append(sb *strings.Builder) {
	sb.WriteByte('(')
	n.left.append(sb)
	sb.WriteString(" AND ")
	n.right.append(sb)
	sb.WriteByte(')')
}

type orNode struct {
	left  node
	right node
}

func (n *orNode) eval(results []bool) bool {
	return n.left.eval(results) || n.right.eval(results)
}

func (n *orNode) append(sb *strings.Builder) {
	sb.WriteByte('(')
	n.left.append(sb)
	sb.WriteString(" OR ")
	n.right.append(sb)
	sb.WriteByte(')')
}

// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package sceneparser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hirdrac/rend/internal/rerr"
)

// NodeKind distinguishes the four node shapes a parsed scene file's
// syntax tree can hold.
type NodeKind int

const (
	NodeList NodeKind = iota
	NodeSymbol
	NodeNumber
	NodeString
)

// Node is one element of a parsed `(command arg...)` tree: a symbol,
// number, string, or a nested list whose Items hold its own elements
// (the first item conventionally the command keyword).
type Node struct {
	Kind   NodeKind
	Value  string
	Items  []*Node
	File   string
	Line   int
	Column int
}

func (n *Node) errorf(format string, args ...any) error {
	return fmt.Errorf("%s:%d:%d: %w", n.File, n.Line, n.Column, fmt.Errorf(format, args...))
}

// Parser turns scene files into a flat top-level Node sequence, splicing
// (include "path") targets in place and rejecting include cycles, all
// in one pass, using a Go slice of sibling Nodes in place of an
// intrusive linked list.
type Parser struct {
	active map[string]bool
}

// New returns a Parser ready to load a fresh scene file tree.
func New() *Parser {
	return &Parser{active: map[string]bool{}}
}

// ParseFile reads path and every file it (possibly transitively)
// includes, returning the flat top-level command sequence.
func (p *Parser) ParseFile(path string) ([]*Node, error) {
	return p.includeFile(path, nil)
}

func (p *Parser) includeFile(path string, src *Node) ([]*Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if p.active[abs] {
		if src != nil {
			return nil, src.errorf("%w: %s", rerr.ErrCircularInclude, path)
		}
		return nil, fmt.Errorf("%w: %s", rerr.ErrCircularInclude, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if src != nil {
			return nil, src.errorf("cannot open file %q: %v", path, err)
		}
		return nil, fmt.Errorf("cannot open file %q: %w", path, err)
	}

	p.active[abs] = true
	defer delete(p.active, abs)

	items, err := p.parseSequence(newLexer(data), path, 0)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// parseSequence reads sibling nodes until a matching RPAREN (depth > 0)
// or EOF (depth == 0), splicing any (include ...) node's target file's
// nodes directly into the returned sequence.
func (p *Parser) parseSequence(l *lexer, file string, depth int) ([]*Node, error) {
	var items []*Node
	for {
		tk, err := l.next()
		if err != nil {
			return nil, err
		}
		switch tk.kind {
		case tokEOF:
			if depth > 0 {
				return nil, fmt.Errorf("%s:%d:%d: unexpected end of file", file, tk.line, tk.column)
			}
			return items, nil

		case tokRParen:
			return items, nil

		case tokLParen:
			children, err := p.parseSequence(l, file, depth+1)
			if err != nil {
				return nil, err
			}
			n := &Node{Kind: NodeList, Items: children, File: file, Line: tk.line, Column: tk.column}
			if isInclude(n) {
				included, err := p.evalInclude(n, file)
				if err != nil {
					return nil, err
				}
				items = append(items, included...)
				continue
			}
			items = append(items, n)

		case tokSymbol:
			items = append(items, &Node{Kind: NodeSymbol, Value: tk.text, File: file, Line: tk.line, Column: tk.column})
		case tokNumber:
			items = append(items, &Node{Kind: NodeNumber, Value: tk.text, File: file, Line: tk.line, Column: tk.column})
		case tokString:
			items = append(items, &Node{Kind: NodeString, Value: tk.text, File: file, Line: tk.line, Column: tk.column})
		}
	}
}

func isInclude(n *Node) bool {
	return len(n.Items) > 0 && n.Items[0].Kind == NodeSymbol && strings.EqualFold(n.Items[0].Value, "include")
}

func (p *Parser) evalInclude(n *Node, file string) ([]*Node, error) {
	if len(n.Items) != 2 || n.Items[1].Kind != NodeString {
		return nil, n.errorf("'include' syntax error")
	}
	target := filepath.Join(filepath.Dir(file), n.Items[1].Value)
	return p.includeFile(target, n.Items[0])
}

package symbols

import (
	"fmt"
	"strings"

	"github.com/minic-lang/minic/internal/diag"
)

// color marks a class's DFS state for circular-inheritance detection.
type color int

const (
	white color = iota
	gray
	black
)

// checkCircularInheritance runs one DFS per unvisited class over the
// inherits-list graph; a gray class reached again is a back edge, i.e. a
// cycle, reported with the chain of class names that closes it.
func (b *Builder) checkCircularInheritance() {
	colors := make(map[string]color, len(b.classOrder))
	for _, name := range b.classOrder {
		if colors[name] == white {
			b.dfsInherits(name, colors, nil)
		}
	}
}

func (b *Builder) dfsInherits(name string, colors map[string]color, path []string) {
	colors[name] = gray
	path = append(path, name)

	ce := b.classes[name]
	for _, parent := range ce.Inherits {
		pname := parent.Class
		if _, exists := b.classes[pname]; !exists {
			continue
		}
		switch colors[pname] {
		case gray:
			cycle := append(append([]string{}, path...), pname)
			b.diags = append(b.diags, diag.New(ce.At, "circular inheritance",
				fmt.Sprintf("circular inheritance: %s", strings.Join(cycle, " -> "))))
		case white:
			b.dfsInherits(pname, colors, path)
		case black:
			// already fully explored on a different path; no new cycle
		}
	}

	colors[name] = black
}

// checkShadowedMembers warns when a class's own data member shares an
// identifier with a member reachable through its inherit list.
func (b *Builder) checkShadowedMembers() {
	for _, name := range b.classOrder {
		ce := b.classes[name]
		for _, e := range ce.Table.Entries() {
			v, ok := e.(*VariableEntry)
			if !ok {
				continue
			}
			if _, found := b.resolveInherited(ce, v.Name); found {
				b.diags = append(b.diags, diag.NewWarning(v.At, "shadowed member",
					fmt.Sprintf("%s.%s shadows an inherited member", name, v.Name)))
			}
		}
	}
}

// resolveInherited searches ce's transitive inherit list breadth-first,
// first hit wins — the same order C7's identifier resolution uses for
// inherited members, reused here only to decide shadowing at
// symbol-table build time.
func (b *Builder) resolveInherited(ce *ClassEntry, name string) (Entry, bool) {
	visited := map[string]bool{ce.Name: true}
	queue := make([]string, 0, len(ce.Inherits))
	for _, p := range ce.Inherits {
		queue = append(queue, p.Class)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true

		parent, ok := b.classes[cur]
		if !ok {
			continue
		}
		for _, e := range parent.Table.Entries() {
			if e.Ident() == name {
				return e, true
			}
		}
		for _, p := range parent.Inherits {
			queue = append(queue, p.Class)
		}
	}
	return nil, false
}

package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lacquerai/archetype/internal/catalog"
	"gopkg.in/yaml.v3"
)

// positionIndex maps document paths to the position of the node at that
// path. Paths are recorded in dotted form ("questions.q1.options[2]"),
// in keyed form for list items that carry an id, value or name, and as
// JSON pointers ("/questions/0/options/2") for schema errors.
type positionIndex struct {
	file      string
	positions map[string]catalog.Position
}

func newPositionIndex(root *yaml.Node, file string) *positionIndex {
	idx := &positionIndex{
		file:      file,
		positions: make(map[string]catalog.Position),
	}
	if root == nil {
		return idx
	}
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	idx.walk(root, []string{""}, "")
	return idx
}

func (idx *positionIndex) walk(node *yaml.Node, dotted []string, pointer string) {
	pos := catalog.Position{Line: node.Line, Column: node.Column, File: idx.file}
	for _, path := range dotted {
		if _, ok := idx.positions[path]; !ok {
			idx.positions[path] = pos
		}
	}
	if pointer == "" {
		idx.positions["/"] = pos
	} else {
		idx.positions[pointer] = pos
	}

	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			children := make([]string, len(dotted))
			for j, path := range dotted {
				children[j] = joinPath(path, key.Value)
			}
			idx.walk(value, children, pointer+"/"+escapePointer(key.Value))
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			name := itemKey(item)
			children := make([]string, 0, 2*len(dotted))
			for _, path := range dotted {
				children = append(children, fmt.Sprintf("%s[%d]", path, i))
				if name != "" {
					children = append(children, joinPath(path, name))
				}
			}
			idx.walk(item, children, pointer+"/"+strconv.Itoa(i))
		}
	}
}

// lookup returns the position of path or of its closest recorded ancestor.
func (idx *positionIndex) lookup(path string) catalog.Position {
	for {
		if pos, ok := idx.positions[path]; ok {
			return pos
		}
		if path == "" || path == "/" {
			return catalog.Position{Line: 1, Column: 1, File: idx.file}
		}
		path = parentPath(path)
	}
}

// lookupField prefers path.field over path.
func (idx *positionIndex) lookupField(path, field string) catalog.Position {
	if field != "" {
		if pos, ok := idx.positions[joinPath(path, field)]; ok {
			return pos
		}
	}
	return idx.lookup(path)
}

func parentPath(path string) string {
	if strings.HasPrefix(path, "/") {
		i := strings.LastIndex(path, "/")
		if i <= 0 {
			return "/"
		}
		return path[:i]
	}

	cut := strings.LastIndexAny(path, ".[")
	if cut < 0 {
		return ""
	}
	return path[:cut]
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// itemKey returns the identifying scalar of a list item mapping
func itemKey(node *yaml.Node) string {
	if node.Kind != yaml.MappingNode {
		return ""
	}
	for _, field := range []string{"id", "value", "name"} {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == field && node.Content[i+1].Kind == yaml.ScalarNode {
				return node.Content[i+1].Value
			}
		}
	}
	return ""
}

func escapePointer(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inspire

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
)

// Node is a read-only view of one value inside a raw JSON document. The zero
// Node is absent. Every accessor is total: looking up a key on an array, an
// index on an object, or anything on an absent node yields another absent
// node, so lookups chain without presence checks:
//
//	title, ok := hit.Key("metadata").Key("titles").First().Key("title").String()
//
// Nodes never copy or modify the underlying bytes.
type Node struct {
	data []byte
	kind jsonparser.ValueType
}

var errStop = errors.New("stop")

// Parse returns the root node of data. It fails when data is not a single,
// well-formed JSON value; accessors on the returned tree can then trust the
// bytes they walk.
func Parse(data []byte) (Node, error) {
	if !json.Valid(data) {
		return Node{}, errors.New("parsing JSON: invalid JSON document")
	}
	value, kind, _, err := jsonparser.Get(data)
	if err != nil {
		return Node{}, fmt.Errorf("parsing JSON: %w", err)
	}
	return Node{data: value, kind: kind}, nil
}

// Exists reports whether the node holds a value. JSON null counts as a value.
func (n Node) Exists() bool { return n.kind != jsonparser.NotExist }

// IsObject reports whether the node is a JSON object.
func (n Node) IsObject() bool { return n.kind == jsonparser.Object }

// Key returns the member name of an object node.
func (n Node) Key(name string) Node {
	if n.kind != jsonparser.Object || strings.HasPrefix(name, "[") {
		return Node{}
	}
	return n.get(name)
}

// Has reports whether an object node has the member name.
func (n Node) Has(name string) bool { return n.Key(name).Exists() }

// Index returns element i of an array node.
func (n Node) Index(i int) Node {
	if n.kind != jsonparser.Array || i < 0 {
		return Node{}
	}
	return n.get("[" + strconv.Itoa(i) + "]")
}

// First returns the first element of an array node. An empty array yields
// an absent node.
func (n Node) First() Node { return n.Index(0) }

func (n Node) get(key string) Node {
	value, kind, _, err := jsonparser.Get(n.data, key)
	if err != nil {
		return Node{}
	}
	return Node{data: value, kind: kind}
}

// Each calls fn for every element of an array node, in document order.
func (n Node) Each(fn func(Node)) {
	if n.kind != jsonparser.Array {
		return
	}
	_, _ = jsonparser.ArrayEach(n.data, func(value []byte, kind jsonparser.ValueType, _ int, err error) {
		if err != nil {
			return
		}
		fn(Node{data: value, kind: kind})
	})
}

// Members calls fn for every member of an object node in document order
// until fn returns false.
func (n Node) Members(fn func(key string, value Node) bool) {
	if n.kind != jsonparser.Object {
		return
	}
	_ = jsonparser.ObjectEach(n.data, func(key, value []byte, kind jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			name = string(key)
		}
		if !fn(name, Node{data: value, kind: kind}) {
			return errStop
		}
		return nil
	})
}

// String returns the unescaped value of a string node.
func (n Node) String() (string, bool) {
	if n.kind != jsonparser.String {
		return "", false
	}
	s, err := jsonparser.ParseString(n.data)
	if err != nil {
		return "", false
	}
	return s, true
}

// Text returns a string node's value or a number node's literal text. It
// accepts the loose typing of identifiers such as volumes and page numbers.
func (n Node) Text() (string, bool) {
	switch n.kind {
	case jsonparser.String:
		return n.String()
	case jsonparser.Number:
		return string(n.data), true
	}
	return "", false
}

// Int returns the value of an integral number node, or of a string node
// holding a base-10 integer.
func (n Node) Int() (int, bool) {
	switch n.kind {
	case jsonparser.Number:
		if v, err := jsonparser.ParseInt(n.data); err == nil {
			if v > math.MaxInt || v < math.MinInt {
				return 0, false
			}
			return int(v), true
		}
		f, err := jsonparser.ParseFloat(n.data)
		if err != nil || f != math.Trunc(f) || math.Abs(f) >= float64(math.MaxInt) {
			return 0, false
		}
		return int(f), true
	case jsonparser.String:
		s, ok := n.String()
		if !ok {
			return 0, false
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// Strings returns the string elements of an array node, skipping elements of
// other kinds. It returns nil for anything but an array.
func (n Node) Strings() []string {
	var out []string
	n.Each(func(el Node) {
		if s, ok := el.String(); ok {
			out = append(out, s)
		}
	})
	return out
}

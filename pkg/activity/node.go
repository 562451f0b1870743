// Package activity models the activity log: an ordered tree of categories where
// every node carries the minutes logged against it and its creation timestamp.
package activity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

const (
	timeKey      = "time"
	timestampKey = "timestamp"
)

// Tree is the root mapping of an activity log. It has no time of its own.
type Tree = Node

// Node is an ordered mapping. Keys holding objects are child activities, any
// other key is a scalar field such as time or timestamp.
type Node struct {
	keys     []string
	children map[string]*Node
	scalars  map[string]json.RawMessage
}

// New returns an empty node.
func New() *Node {
	return &Node{
		children: make(map[string]*Node),
		scalars:  make(map[string]json.RawMessage),
	}
}

// Keys returns the node keys in insertion order.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	return slices.Clone(n.keys)
}

// Len is the number of keys, scalars included.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.keys)
}

// IsEmpty reports whether the node has no keys at all.
func (n *Node) IsEmpty() bool {
	return n.Len() == 0
}

// Child returns the child activity stored under name.
func (n *Node) Child(name string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	c, ok := n.children[name]
	return c, ok
}

// Has reports whether name is a key of the node, child or scalar.
func (n *Node) Has(name string) bool {
	if n == nil {
		return false
	}
	if _, ok := n.children[name]; ok {
		return true
	}
	_, ok := n.scalars[name]
	return ok
}

// Time is the number of minutes logged at this node, zero when unset.
func (n *Node) Time() int {
	raw, ok := n.scalar(timeKey)
	if !ok {
		return 0
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}
	return v
}

// Timestamp is the creation time of the node, empty when unset.
func (n *Node) Timestamp() string {
	raw, ok := n.scalar(timestampKey)
	if !ok {
		return ""
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return v
}

func (n *Node) scalar(name string) (json.RawMessage, bool) {
	if n == nil {
		return nil, false
	}
	raw, ok := n.scalars[name]
	return raw, ok
}

// badTime reports a time field that is set but is not an integer.
func (n *Node) badTime() (json.RawMessage, bool) {
	raw, ok := n.scalar(timeKey)
	if !ok {
		return nil, false
	}
	var v int
	return raw, json.Unmarshal(raw, &v) != nil
}

func (n *Node) addMinutes(m int) {
	n.setScalar(timeKey, json.RawMessage(strconv.Itoa(n.Time()+m)))
}

func (n *Node) stamp(ts string) {
	if n.Timestamp() != "" {
		return
	}
	b, _ := json.Marshal(ts)
	n.setScalar(timestampKey, b)
}

func (n *Node) setScalar(name string, raw json.RawMessage) {
	if !n.Has(name) {
		n.keys = append(n.keys, name)
	}
	delete(n.children, name)
	n.scalars[name] = raw
}

func (n *Node) setChild(name string, c *Node) {
	if !n.Has(name) {
		n.keys = append(n.keys, name)
	}
	delete(n.scalars, name)
	n.children[name] = c
}

func (n *Node) ensureChild(name string) *Node {
	if c, ok := n.children[name]; ok {
		return c
	}
	c := New()
	n.setChild(name, c)
	return c
}

func (n *Node) remove(name string) bool {
	if !n.Has(name) {
		return false
	}
	delete(n.children, name)
	delete(n.scalars, name)
	n.keys = slices.DeleteFunc(n.keys, func(k string) bool { return k == name })
	return true
}

// Equal reports whether both nodes hold the same keys, in the same order, with
// equal values.
func (n *Node) Equal(o *Node) bool {
	if n.Len() != o.Len() {
		return false
	}
	for i, key := range n.keys {
		if o.keys[i] != key {
			return false
		}
		if c, ok := n.children[key]; ok {
			oc, ok := o.children[key]
			if !ok || !c.Equal(oc) {
				return false
			}
			continue
		}
		if !bytes.Equal(n.scalars[key], o.scalars[key]) {
			return false
		}
	}
	return true
}

// MarshalJSON writes the node as an object, keeping key order.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if n != nil {
		for i, key := range n.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := encodeKey(key)
			if err != nil {
				return nil, err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if c, ok := n.children[key]; ok {
				b, err := c.MarshalJSON()
				if err != nil {
					return nil, err
				}
				buf.Write(b)
				continue
			}
			buf.Write(n.scalars[key])
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeKey(key string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(key); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON reads an object, keeping key order. Nested objects become
// children, everything else is kept verbatim as a scalar.
func (n *Node) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("activity: expected an object, got %v", tok)
	}

	*n = *New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("activity: expected a key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && raw[0] == '{' {
			c := New()
			if err := c.UnmarshalJSON(raw); err != nil {
				return err
			}
			n.setChild(key, c)
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, raw); err != nil {
			return err
		}
		n.setScalar(key, compact.Bytes())
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

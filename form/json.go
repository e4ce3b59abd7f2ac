package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// String renders the node as compact JSON. Values with no JSON
// representation render as "<invalid>".
func (n *Node) String() string {
	out, err := n.MarshalJSON()
	if err != nil {
		return "<invalid>"
	}
	return string(out)
}

// MarshalJSON renders the tree as JSON, keeping map fields in
// insertion order. Invalid nodes and non-finite floats are errors.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(n.Bool))
	case IntType:
		buf.WriteString(strconv.FormatInt(n.Int, 10))
	case FloatType:
		if math.IsNaN(n.Float) || math.IsInf(n.Float, 0) {
			return fmt.Errorf("cannot marshal non-finite float %v", n.Float)
		}
		buf.WriteString(strconv.FormatFloat(n.Float, 'g', -1, 64))
	case StringType:
		out, err := json.Marshal(n.Str)
		if err != nil {
			return err
		}
		buf.Write(out)
	case ListType:
		buf.WriteByte('[')
		for i, v := range n.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := v.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case MapType:
		buf.WriteByte('{')
		for i, f := range n.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := n.Values[i].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot marshal %s node", n.Type)
	}
	return nil
}

// UnmarshalJSON parses a JSON document into the node, keeping object
// fields in document order. Whole numbers become int nodes, other
// numbers float nodes.
func (n *Node) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	res, err := readJSON(dec)
	if err != nil {
		return err
	}
	*n = *res
	return nil
}

func readJSON(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(t), nil
	case string:
		return FromString(t), nil
	case json.Number:
		node, err := FromAny(t)
		if err != nil {
			return nil, err
		}
		return node, nil
	case json.Delim:
		switch t {
		case '[':
			res := List()
			for dec.More() {
				el, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				res.Append(el)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return res, nil
		case '{':
			res := Map()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyTok)
				}
				val, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				res.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return res, nil
		}
	}
	return nil, fmt.Errorf("unexpected JSON token %v", tok)
}

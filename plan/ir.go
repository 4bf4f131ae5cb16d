package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// IR is the serialized plan handed over to the executor
//
//	{
//	  "op": "project",
//	  "options": { "cols": [0, 5] },
//	  "input": [ ... ]
//	}
//
// options and input are omitted when empty.
type IR struct {
	Op      string
	Options *Options
	Input   []*IR
}

func (self *IR) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	op, err := marshalValue(self.Op)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`{"op":`)
	buf.Write(op)

	if self.Options.Len() > 0 {
		opt, err := self.Options.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"options":`)
		buf.Write(opt)
	}

	if len(self.Input) > 0 {
		buf.WriteString(`,"input":[`)
		for idx, in := range self.Input {
			if idx > 0 {
				buf.WriteByte(',')
			}
			data, err := in.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte(']')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Indent returns the IR as indented JSON
func (self *IR) Indent() ([]byte, error) {
	data, err := self.MarshalJSON()
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if err := json.Indent(buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (self *IR) UnmarshalJSON(data []byte) error {
	ir, err := ParseIR(data)
	if err != nil {
		return err
	}
	*self = *ir
	return nil
}

// The IR is decoded through yaml.Node, which keeps the option order and
// accepts both JSON and YAML documents.
func irFromNode(n *yaml.Node, path string) (*IR, error) {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, errors.New("empty plan document")
		}
		return irFromNode(n.Content[0], path)
	}
	if n.Kind != yaml.MappingNode {
		return nil, errors.Errorf("%s: plan node must be an object", path)
	}

	out := &IR{}
	hasOp := false

	for idx := 0; idx+1 < len(n.Content); idx += 2 {
		key := n.Content[idx].Value
		val := n.Content[idx+1]

		switch key {
		case "op":
			if val.Kind != yaml.ScalarNode {
				return nil, errors.Errorf("%s: op must be a string", path)
			}
			out.Op = val.Value
			hasOp = true
			break

		case "options":
			if val.Kind != yaml.MappingNode {
				return nil, errors.Errorf("%s: options must be an object", path)
			}
			out.Options = NewOptions()
			for j := 0; j+1 < len(val.Content); j += 2 {
				var v interface{}
				if err := val.Content[j+1].Decode(&v); err != nil {
					return nil, errors.Wrapf(err, "%s: option %s", path, val.Content[j].Value)
				}
				out.Options.Set(val.Content[j].Value, v)
			}
			break

		case "input":
			if val.Kind != yaml.SequenceNode {
				return nil, errors.Errorf("%s: input must be an array", path)
			}
			for j, child := range val.Content {
				c, err := irFromNode(child, fmt.Sprintf("%s.input[%d]", path, j))
				if err != nil {
					return nil, err
				}
				out.Input = append(out.Input, c)
			}
			break

		default:
			return nil, errors.Errorf("%s: unknown field %q", path, key)
		}
	}

	if !hasOp {
		return nil, errors.Errorf("%s: op is missing", path)
	}
	return out, nil
}

// A JSON document is read through the token stream of json.Decoder, which
// keeps the key order and the number text. Nested option objects become
// *Options so their order survives as well.
func isJSONObject(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func jsonDelim(dec *json.Decoder, want json.Delim, path, what string) error {
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrapf(err, "%s: decode plan", path)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return errors.Errorf("%s: %s", path, what)
	}
	return nil
}

func jsonValue(dec *json.Decoder, path string) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrapf(err, "%s: decode plan", path)
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch d {
	case '{':
		return jsonObjectBody(dec, path)
	case '[':
		out := []interface{}{}
		for dec.More() {
			v, err := jsonValue(dec, fmt.Sprintf("%s[%d]", path, len(out)))
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, errors.Wrapf(err, "%s: decode plan", path)
		}
		return out, nil
	default:
		return nil, errors.Errorf("%s: unexpected %s", path, d)
	}
}

// the opening brace is already consumed
func jsonObjectBody(dec *json.Decoder, path string) (*Options, error) {
	out := NewOptions()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrapf(err, "%s: decode plan", path)
		}
		key := tok.(string)
		v, err := jsonValue(dec, path+"."+key)
		if err != nil {
			return nil, err
		}
		out.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrapf(err, "%s: decode plan", path)
	}
	return out, nil
}

func irFromJSON(dec *json.Decoder, path string) (*IR, error) {
	if err := jsonDelim(dec, '{', path, "plan node must be an object"); err != nil {
		return nil, err
	}

	out := &IR{}
	hasOp := false

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrapf(err, "%s: decode plan", path)
		}
		key := tok.(string)

		switch key {
		case "op":
			tok, err := dec.Token()
			if err != nil {
				return nil, errors.Wrapf(err, "%s: decode plan", path)
			}
			op, ok := tok.(string)
			if !ok {
				return nil, errors.Errorf("%s: op must be a string", path)
			}
			out.Op = op
			hasOp = true
			break

		case "options":
			if err := jsonDelim(dec, '{', path, "options must be an object"); err != nil {
				return nil, err
			}
			opts, err := jsonObjectBody(dec, path+".options")
			if err != nil {
				return nil, err
			}
			out.Options = opts
			break

		case "input":
			if err := jsonDelim(dec, '[', path, "input must be an array"); err != nil {
				return nil, err
			}
			for dec.More() {
				c, err := irFromJSON(dec, fmt.Sprintf("%s.input[%d]", path, len(out.Input)))
				if err != nil {
					return nil, err
				}
				out.Input = append(out.Input, c)
			}
			if _, err := dec.Token(); err != nil {
				return nil, errors.Wrapf(err, "%s: decode plan", path)
			}
			break

		default:
			return nil, errors.Errorf("%s: unknown field %q", path, key)
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrapf(err, "%s: decode plan", path)
	}

	if !hasOp {
		return nil, errors.Errorf("%s: op is missing", path)
	}
	return out, nil
}

func parseJSONIR(data []byte) (*IR, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	ir, err := irFromJSON(dec, "$")
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decode plan: trailing data after the plan")
	}
	return ir, nil
}

// ParseIR decodes a serialized plan without validating it against a catalog.
// A document starting with '{' is JSON, anything else is read as YAML.
func ParseIR(data []byte) (*IR, error) {
	if isJSONObject(data) {
		return parseJSONIR(data)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode plan")
	}
	return irFromNode(&doc, "$")
}

// Decode rebuilds a node tree from the IR, every builder rule is checked again
func (self *Builder) Decode(ir *IR) (*Node, error) {
	children := make([]*Node, 0, len(ir.Input))
	for _, in := range ir.Input {
		c, err := self.Decode(in)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}

	n, err := self.Create(ir.Op, children...)
	if err != nil {
		return nil, err
	}
	for _, o := range ir.Options.List() {
		if _, err := n.SetOption(o.Key, o.Value); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Parse decodes and validates a serialized plan
func (self *Builder) Parse(data []byte) (*Node, error) {
	ir, err := ParseIR(data)
	if err != nil {
		return nil, err
	}
	return self.Decode(ir)
}

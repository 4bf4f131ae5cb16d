package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Option struct {
	Key   string
	Value interface{}
}

// Options is an insertion ordered option map. The order has no meaning for the
// executor, it only keeps the serialized IR stable.
type Options struct {
	list []Option
}

func NewOptions() *Options {
	return &Options{}
}

func (self *Options) index(key string) int {
	if self == nil {
		return -1
	}
	for idx, o := range self.list {
		if o.Key == key {
			return idx
		}
	}
	return -1
}

// Set replaces the value in place when the key exists, otherwise appends
func (self *Options) Set(key string, value interface{}) {
	if idx := self.index(key); idx >= 0 {
		self.list[idx].Value = value
		return
	}
	self.list = append(self.list, Option{Key: key, Value: value})
}

func (self *Options) Get(key string) (interface{}, bool) {
	if idx := self.index(key); idx >= 0 {
		return self.list[idx].Value, true
	}
	return nil, false
}

func (self *Options) Has(key string) bool { return self.index(key) >= 0 }

func (self *Options) Len() int {
	if self == nil {
		return 0
	}
	return len(self.list)
}

func (self *Options) Keys() []string {
	out := make([]string, 0, self.Len())
	for _, o := range self.List() {
		out = append(out, o.Key)
	}
	return out
}

// List returns a copy of the options in insertion order
func (self *Options) List() []Option {
	if self == nil {
		return nil
	}
	out := make([]Option, len(self.list))
	copy(out, self.list)
	return out
}

func (self *Options) Clone() *Options {
	return &Options{list: self.List()}
}

// DeepClone copies the option values as well, so slices and maps are not
// shared with the copy
func (self *Options) DeepClone() *Options {
	out := self.List()
	for idx := range out {
		out[idx].Value = cloneValue(out[idx].Value)
	}
	return &Options{list: out}
}

func cloneValue(v interface{}) interface{} {
	switch x := v.(type) {
	case []int:
		return append([]int{}, x...)
	case []int64:
		return append([]int64{}, x...)
	case []float64:
		return append([]float64{}, x...)
	case []string:
		return append([]string{}, x...)
	case []interface{}:
		out := make([]interface{}, len(x))
		for idx, e := range x {
			out[idx] = cloneValue(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, e := range x {
			out[k] = cloneValue(e)
		}
		return out
	case *Options:
		return x.DeepClone()
	default:
		return v
	}
}

func (self *Options) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for idx, o := range self.List() {
		if idx > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalValue(o.Key)
		if err != nil {
			return nil, err
		}
		v, err := marshalValue(o.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (self *Options) String() string {
	data, err := self.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%s>", err)
	}
	return string(data)
}

// option value may be a predicate text carrying < > &, html escaping is off
func marshalValue(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

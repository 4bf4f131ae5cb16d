package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// On disk format of the catalog, which is the operators.json shipped with the
// byoo executor. A document starting with '{' is read as JSON, anything else
// as YAML.
//
//	{
//	  "csv read": { "child count": "none", "input file": true, "output file": false },
//	  "project":  { "child count": 1, "input file": false, "output file": false }
//	}
type fileEntry struct {
	ChildCount yaml.Node `yaml:"child count"`
	InputFile  bool      `yaml:"input file"`
	OutputFile bool      `yaml:"output file"`
}

type jsonEntry struct {
	ChildCount json.RawMessage `json:"child count"`
	InputFile  bool            `json:"input file"`
	OutputFile bool            `json:"output file"`
}

func parseChildCount(n *yaml.Node) (ChildCount, error) {
	if n.Kind != yaml.ScalarNode {
		return ChildCount{}, errors.New("child count must be a scalar")
	}
	return childCountFromText(n.Value)
}

// child count is either a json string or a json number
func parseJSONChildCount(raw json.RawMessage) (ChildCount, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ChildCount{}, errors.New("child count is missing")
	}
	switch raw[0] {
	case '"':
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return ChildCount{}, errors.Wrap(err, "child count")
		}
		return childCountFromText(v)
	case '{', '[', 't', 'f', 'n':
		return ChildCount{}, errors.New("child count must be a string or a number")
	default:
		return childCountFromText(string(raw))
	}
}

func childCountFromText(text string) (ChildCount, error) {
	v := strings.TrimSpace(text)
	switch strings.ToLower(v) {
	case "none":
		return None(), nil
	case "any":
		return Any(), nil
	default:
		break
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return ChildCount{}, errors.Errorf("invalid child count %q", text)
	}
	if i < 0 {
		return ChildCount{}, errors.Errorf("negative child count %d", i)
	}
	return Exact(i), nil
}

func parseJSON(data []byte) ([]Entry, error) {
	raw := map[string]jsonEntry{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decode operator catalog")
	}

	entries := make([]Entry, 0, len(raw))
	for name, je := range raw {
		cc, err := parseJSONChildCount(je.ChildCount)
		if err != nil {
			return nil, errors.Wrapf(err, "operator %q", name)
		}
		entries = append(entries, Entry{
			Name:       name,
			ChildCount: cc,
			InputFile:  je.InputFile,
			OutputFile: je.OutputFile,
		})
	}
	return entries, nil
}

func parseYAML(data []byte) ([]Entry, error) {
	raw := map[string]fileEntry{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decode operator catalog")
	}

	entries := make([]Entry, 0, len(raw))
	for name, fe := range raw {
		fe := fe
		cc, err := parseChildCount(&fe.ChildCount)
		if err != nil {
			return nil, errors.Wrapf(err, "operator %q", name)
		}
		entries = append(entries, Entry{
			Name:       name,
			ChildCount: cc,
			InputFile:  fe.InputFile,
			OutputFile: fe.OutputFile,
		})
	}
	return entries, nil
}

// Parse decodes a catalog document
func Parse(data []byte) (*Catalog, error) {
	var entries []Entry
	var err error

	if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) > 0 && trimmed[0] == '{' {
		entries, err = parseJSON(data)
	} else {
		entries, err = parseYAML(data)
	}
	if err != nil {
		return nil, err
	}

	c, err := New(entries...)
	if err != nil {
		return nil, errors.Wrap(err, "build operator catalog")
	}
	return c, nil
}

func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read operator catalog %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return c, nil
}

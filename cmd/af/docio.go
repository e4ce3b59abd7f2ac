package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/anyform/go-anyform/cborops"
	"github.com/anyform/go-anyform/codec"
	"github.com/anyform/go-anyform/form"
	"github.com/anyform/go-anyform/formops"
)

type docFormat int

const (
	jsonFormat docFormat = iota
	yamlFormat
	cborFormat
)

func (f docFormat) String() string {
	switch f {
	case jsonFormat:
		return "json"
	case yamlFormat:
		return "yaml"
	case cborFormat:
		return "cbor"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

func parseFormat(v string) (docFormat, error) {
	switch strings.ToLower(v) {
	case "json", "j":
		return jsonFormat, nil
	case "yaml", "yml", "y":
		return yamlFormat, nil
	case "cbor", "c":
		return cborFormat, nil
	}
	return 0, fmt.Errorf("unknown format %q", v)
}

// inputFormat resolves the format for one input: -I wins, then the file
// extension, then json.
func (cfg *MainConfig) inputFormat(arg string) docFormat {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".yaml", ".yml":
		return yamlFormat
	case ".cbor":
		return cborFormat
	}
	return jsonFormat
}

func (cfg *MainConfig) outputFormat() docFormat {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	return jsonFormat
}

// readArg loads every document in one file argument, "-" meaning stdin.
func (cfg *MainConfig) readArg(cc *cli.Context, arg string) ([]*form.Node, error) {
	var r io.Reader
	if arg == "-" {
		r = cc.In
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", arg, err)
	}
	docs, err := readDocs(data, cfg.inputFormat(arg))
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return docs, nil
}

func readDocs(data []byte, f docFormat) ([]*form.Node, error) {
	if f == cborFormat {
		return readCborDocs(data)
	}
	var docs []*form.Node
	chunks := bytes.Split(data, []byte("\n---\n"))
	for i, chunk := range chunks {
		if len(bytes.TrimSpace(chunk)) == 0 {
			continue
		}
		n, err := decodeDoc(chunk, f)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		docs = append(docs, n)
	}
	return docs, nil
}

func decodeDoc(data []byte, f docFormat) (*form.Node, error) {
	switch f {
	case jsonFormat:
		n := &form.Node{}
		if err := json.Unmarshal(data, n); err != nil {
			return nil, err
		}
		return n, nil
	case yamlFormat:
		var v any
		if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
			return nil, err
		}
		return yamlToNode(v)
	}
	return nil, fmt.Errorf("cannot decode %s documents", f)
}

// yamlToNode converts goccy's ordered decoding into a form tree, keeping
// mapping key order.
func yamlToNode(v any) (*form.Node, error) {
	switch t := v.(type) {
	case yaml.MapSlice:
		res := form.Map()
		for _, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("map key %v is not a string", item.Key)
			}
			val, err := yamlToNode(item.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			res.Set(key, val)
		}
		return res, nil
	case []any:
		res := form.List()
		for i, el := range t {
			val, err := yamlToNode(el)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			res.Append(val)
		}
		return res, nil
	default:
		return form.FromAny(v)
	}
}

func nodeToYAML(n *form.Node) any {
	switch n.Type {
	case form.MapType:
		ms := make(yaml.MapSlice, len(n.Fields))
		for i, field := range n.Fields {
			ms[i] = yaml.MapItem{Key: field, Value: nodeToYAML(n.Values[i])}
		}
		return ms
	case form.ListType:
		out := make([]any, len(n.Values))
		for i, v := range n.Values {
			out[i] = nodeToYAML(v)
		}
		return out
	default:
		return n.ToAny()
	}
}

func (cfg *MainConfig) writeDocs(w io.Writer, docs []*form.Node) error {
	f := cfg.outputFormat()
	if f == cborFormat {
		return cfg.writeCborDocs(w, docs)
	}
	n := len(docs)
	for i, doc := range docs {
		if err := writeDoc(w, doc, f); err != nil {
			return fmt.Errorf("error encoding result %d: %w", i, err)
		}
		if i < n-1 {
			if _, err := w.Write([]byte("\n---\n")); err != nil {
				return fmt.Errorf("error writing result %d: %w", i, err)
			}
		}
	}
	return nil
}

func writeDoc(w io.Writer, doc *form.Node, f docFormat) error {
	switch f {
	case jsonFormat:
		data, err := doc.MarshalJSON()
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err = w.Write(buf.Bytes())
		return err
	case yamlFormat:
		data, err := yaml.Marshal(nodeToYAML(doc))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("cannot encode %s documents", f)
}

// cbor documents are hex on text channels and raw concatenated encodings
// (a CBOR sequence) when writing to a file named by -o.
func (cfg *MainConfig) writeCborDocs(w io.Writer, docs []*form.Node) error {
	binary := cfg.Out != "" && cfg.Out != "-"
	for i, doc := range docs {
		raw := nodeToRaw(doc)
		if binary {
			if _, err := w.Write(raw); err != nil {
				return fmt.Errorf("error writing result %d: %w", i, err)
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%x\n", []byte(raw)); err != nil {
			return fmt.Errorf("error writing result %d: %w", i, err)
		}
	}
	return nil
}

// readCborDocs accepts hex (one document per line) or a binary CBOR
// sequence. All-hex bytes are tried as hex first and fall back to binary,
// since a short binary document can read as hex digits.
func readCborDocs(data []byte) ([]*form.Node, error) {
	if looksHex(data) {
		if docs, err := readCborHex(data); err == nil {
			return docs, nil
		}
	}
	return readCborBinary(data)
}

func looksHex(data []byte) bool {
	seen := false
	for _, b := range data {
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
		case '0' <= b && b <= '9', 'a' <= b && b <= 'f', 'A' <= b && b <= 'F':
			seen = true
		default:
			return false
		}
	}
	return seen
}

func readCborHex(data []byte) ([]*form.Node, error) {
	var docs []*form.Node
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		raw, err := hex.DecodeString(string(line))
		if err != nil {
			return nil, err
		}
		if err := cbor.Wellformed(raw); err != nil {
			return nil, err
		}
		docs = append(docs, rawToNode(raw))
	}
	return docs, nil
}

func readCborBinary(data []byte) ([]*form.Node, error) {
	var docs []*form.Node
	dec := cbor.NewDecoder(bytes.NewReader(data))
	for {
		var raw cbor.RawMessage
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, rawToNode(raw))
	}
	return docs, nil
}

func rawToNode(raw cbor.RawMessage) *form.Node {
	return codec.Convert(cborops.Default, formops.Default, raw)
}

func nodeToRaw(n *form.Node) cbor.RawMessage {
	return codec.Convert(formops.Default, cborops.Default, n)
}

package export

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/boxcode/boxutil/internal/boxcode"
)

// JSONExporter renders instructions as an ordered JSON array of
// {"cmd": ..., "args": [...]} objects. Output is compact unless Indent is set.
type JSONExporter struct {
	Indent string
}

type jsonInstruction struct {
	Cmd  string   `json:"cmd"`
	Args []string `json:"args"`
}

func (e *JSONExporter) Export(doc Document) (string, error) {
	out := make([]jsonInstruction, len(doc.Instructions))
	for i, in := range doc.Instructions {
		out[i] = jsonInstruction{Cmd: in.Command, Args: args(in)}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if e.Indent != "" {
		enc.SetIndent("", e.Indent)
	}
	if err := enc.Encode(out); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// DecodeJSON parses the JSON view back into instructions and validates them.
func DecodeJSON(data []byte) ([]boxcode.Instruction, error) {
	var raw []jsonInstruction
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	ins := make([]boxcode.Instruction, len(raw))
	for i, r := range raw {
		ins[i] = boxcode.Instruction{Command: r.Cmd}
		if len(r.Args) > 0 {
			ins[i].Args = r.Args
		}
	}
	if err := boxcode.Validate(ins); err != nil {
		return nil, err
	}
	return ins, nil
}

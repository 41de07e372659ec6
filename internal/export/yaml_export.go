package export

import (
	"gopkg.in/yaml.v3"
)

// YAMLExporter renders the same shape as JSONExporter as a YAML sequence.
type YAMLExporter struct{}

type yamlInstruction struct {
	Cmd  string   `yaml:"cmd"`
	Args []string `yaml:"args,flow"`
}

func (e *YAMLExporter) Export(doc Document) (string, error) {
	out := make([]yamlInstruction, len(doc.Instructions))
	for i, in := range doc.Instructions {
		out[i] = yamlInstruction{Cmd: in.Command, Args: args(in)}
	}
	b, err := yaml.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

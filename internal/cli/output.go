package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type field struct {
	Key   string
	Value string
}

// result is an ordered list of named output values.
type result []field

func (r result) write(w io.Writer, format string) error {
	switch format {
	case formatJSON:
		m := make(map[string]string, len(r))
		for _, f := range r {
			m[f.Key] = f.Value
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case formatYAML:
		ms := make(yaml.MapSlice, len(r))
		for i, f := range r {
			ms[i] = yaml.MapItem{Key: f.Key, Value: f.Value}
		}
		out, err := yaml.Marshal(ms)
		if err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		_, err = w.Write(out)
		return err
	default:
		if len(r) == 1 {
			_, err := fmt.Fprintln(w, r[0].Value)
			return err
		}
		for _, f := range r {
			if _, err := fmt.Fprintf(w, "%s: %s\n", f.Key, f.Value); err != nil {
				return err
			}
		}
		return nil
	}
}

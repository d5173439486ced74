package main

import (
	"encoding/json"
	"io"

	"github.com/core-tools/hsu-monit-go/pkg/monitcontrol"

	"github.com/jhunt/go-ansi"
	"gopkg.in/yaml.v3"
)

type output struct {
	w        io.Writer
	terminal bool
	format   string
}

func newOutput(w io.Writer, terminal bool, format string) *output {
	return &output{w: w, terminal: terminal, format: format}
}

func (o *output) render(result *monitcontrol.Result) error {
	if result.Summary == nil && result.Status == nil && o.terminal {
		request := result.Request
		if result.OK {
			ansi.Fprintf(o.w, "@G{✓ %s} @C{%s}\n", request.Command, request.Service)
		} else {
			ansi.Fprintf(o.w, "@R{✗ %s} @C{%s}\n", request.Command, request.Service)
		}
		return nil
	}
	return o.encode(result.Value())
}

func (o *output) encode(value interface{}) error {
	if o.format == "yaml" {
		encoder := yaml.NewEncoder(o.w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}
		return encoder.Close()
	}

	encoder := json.NewEncoder(o.w)
	if o.terminal {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(value)
}

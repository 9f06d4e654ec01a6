package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/kildom/xml2docx-sub000/pkg/docopt"
	"gopkg.in/yaml.v3"
)

func renderJSON(w io.Writer, doc *docopt.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func renderYAML(w io.Writer, doc *docopt.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

// dumpConfig 输出稳定，不包含指针地址
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func renderDump(w io.Writer, doc *docopt.Document) error {
	dumpConfig.Fdump(w, doc)
	return nil
}

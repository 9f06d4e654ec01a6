package engine

import (
	"fmt"

	"github.com/kildom/xml2docx-sub000/internal/config"
	"github.com/kildom/xml2docx-sub000/internal/diag"
	"github.com/kildom/xml2docx-sub000/internal/dom"
	"github.com/kildom/xml2docx-sub000/internal/xmlsrc"
)

// LibraryDefinitions 把别名库转换为 DEF 元素，供 WithPredefined 使用
func LibraryDefinitions(lib *config.AliasLibrary) ([]*dom.Element, error) {
	if lib == nil {
		return nil, nil
	}
	out := make([]*dom.Element, 0, len(lib.Aliases))
	for _, a := range lib.Aliases {
		def := dom.NewElement(a.DeclarationName())
		for k, v := range a.Attributes {
			def.Attributes[k] = v
		}
		if a.XML != "" {
			sink := diag.NewSink(nil)
			nodes, err := xmlsrc.ParseFragment(a.XML, sink)
			if err != nil {
				return nil, fmt.Errorf("alias %q: %w", a.Name, err)
			}
			def.Children = nodes
		}
		out = append(out, def)
	}
	return out, nil
}

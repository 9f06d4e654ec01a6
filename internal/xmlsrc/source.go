// Package xmlsrc 把 XML 源文件读取为 dom 树
//
// 使用 encoding/xml 的原始记号流，因此 "DEF:name"、"tag:alias" 这样带冒号的
// 名称按原样保留，不做命名空间处理。encoding/xml 不接受含多个冒号的名称，
// 这类标签名在记号化之前被屏蔽，解析时再按偏移量还原。
package xmlsrc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/kildom/xml2docx-sub000/internal/diag"
	"github.com/kildom/xml2docx-sub000/internal/dom"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	cdataStart = []byte("<![CDATA[")
)

// nameMask 替换标签名中第一个冒号之后的冒号，长度不变，偏移量和列号因此保持一致
const nameMask = '_'

// 跳过的标记区段：开始、结束
var opaqueSections = [][2]string{
	{"<!--", "-->"},
	{"<![CDATA[", "]]>"},
	{"<?", "?>"},
}

// Options 加载选项
type Options struct {
	// FallbackCharset 没有编码声明且内容不是合法 UTF-8 时使用的字符集
	FallbackCharset string
	// Name 错误信息中使用的源名称
	Name string
}

// Parse 读取完整的 XML 文档
// 语法错误作为 SOURCE 致命诊断写入 sink 并返回
func Parse(r io.Reader, sink diag.Reporter, opts Options) (*dom.Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, sink.Fatal(diag.Diagnostic{
			Code:    diag.CodeSource,
			Message: fmt.Sprintf("cannot read %s", sourceName(opts)),
		}, err)
	}
	data, err = toUTF8(data, opts.FallbackCharset)
	if err != nil {
		return nil, sink.Fatal(diag.Diagnostic{
			Code:    diag.CodeSource,
			Message: fmt.Sprintf("cannot decode %s", sourceName(opts)),
		}, err)
	}

	masked, names := maskNames(data)
	p := &parser{src: masked, names: names, sink: sink, name: sourceName(opts)}
	return p.document()
}

// ParseString 解析字符串形式的文档
func ParseString(s string, sink diag.Reporter) (*dom.Element, error) {
	return Parse(strings.NewReader(s), sink, Options{})
}

// ParseFragment 解析一段没有根元素的内容，返回其中的节点
func ParseFragment(s string, sink diag.Reporter) ([]dom.Node, error) {
	root, err := Parse(strings.NewReader("<fragment>"+s+"</fragment>"), sink, Options{Name: "fragment"})
	if err != nil {
		return nil, err
	}
	return root.Children, nil
}

func sourceName(opts Options) string {
	if opts.Name != "" {
		return opts.Name
	}
	return "input"
}

// toUTF8 去掉 BOM 并按声明的编码（或备用编码）转换为 UTF-8
func toUTF8(data []byte, fallback string) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	label := declaredEncoding(data)
	if label == "" {
		if utf8.Valid(data) || fallback == "" {
			return data, nil
		}
		label = fallback
	}
	if isUTF8(label) {
		return data, nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", label, err)
	}
	return out, nil
}

func isUTF8(label string) bool {
	l := strings.ToLower(label)
	return l == "utf-8" || l == "utf8" || l == "us-ascii" || l == "ascii"
}

// declaredEncoding 从 XML 声明中取出 encoding 的值
func declaredEncoding(data []byte) string {
	if !bytes.HasPrefix(data, []byte("<?xml")) {
		return ""
	}
	end := bytes.Index(data, []byte("?>"))
	if end < 0 {
		return ""
	}
	decl := string(data[:end])
	i := strings.Index(decl, "encoding")
	if i < 0 {
		return ""
	}
	rest := strings.TrimLeft(decl[i+len("encoding"):], " \t\r\n")
	rest, ok := strings.CutPrefix(rest, "=")
	if !ok {
		return ""
	}
	rest = strings.TrimLeft(rest, " \t\r\n")
	if rest == "" || (rest[0] != '"' && rest[0] != '\'') {
		return ""
	}
	q := rest[0]
	v, _, ok := strings.Cut(rest[1:], string(q))
	if !ok {
		return ""
	}
	return v
}

// maskNames 屏蔽含多个冒号的标签名，返回屏蔽后的内容和
// 标签起始偏移量到原始名称的映射
func maskNames(src []byte) ([]byte, map[int64]string) {
	var (
		out   []byte
		names map[int64]string
	)
	for i := 0; i < len(src); i++ {
		if src[i] != '<' {
			continue
		}
		if end, ok := skipOpaque(src, i); ok {
			i = end - 1
			continue
		}
		j := i + 1
		if j < len(src) && src[j] == '/' {
			j++
		}
		k := j
		for k < len(src) && !isNameEnd(src[k]) {
			k++
		}
		name := src[j:k]
		if bytes.Count(name, []byte(":")) > 1 {
			if out == nil {
				out = bytes.Clone(src)
			}
			if names == nil {
				names = make(map[int64]string)
			}
			names[int64(i)] = string(name)
			first := bytes.IndexByte(name, ':')
			for n := j + first + 1; n < k; n++ {
				if out[n] == ':' {
					out[n] = nameMask
				}
			}
		}
		i = k - 1
	}
	if out == nil {
		return src, nil
	}
	return out, names
}

// skipOpaque 如果 i 处是注释、CDATA 或处理指令，返回其结束之后的偏移量
func skipOpaque(src []byte, i int) (int, bool) {
	for _, sec := range opaqueSections {
		if !bytes.HasPrefix(src[i:], []byte(sec[0])) {
			continue
		}
		end := bytes.Index(src[i+len(sec[0]):], []byte(sec[1]))
		if end < 0 {
			return len(src), true
		}
		return i + len(sec[0]) + end + len(sec[1]), true
	}
	return 0, false
}

func isNameEnd(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '/', '>', '<', '=':
		return true
	}
	return false
}

type parser struct {
	src   []byte
	names map[int64]string
	sink  diag.Reporter
	name  string
	stack []*dom.Element
	root  *dom.Element
}

func (p *parser) fatal(pos dom.Position, cause error, format string, args ...interface{}) error {
	return p.sink.Fatal(diag.Diagnostic{
		Code:     diag.CodeSource,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	}, cause)
}

func (p *parser) document() (*dom.Element, error) {
	d := xml.NewDecoder(bytes.NewReader(p.src))
	d.Strict = true
	d.Entity = xml.HTMLEntity
	// 内容已经转换为 UTF-8
	d.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) { return in, nil }

	for {
		line, col := d.InputPos()
		pos := dom.Position{Line: line, Column: col}
		start := d.InputOffset()
		tok, err := d.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var se *xml.SyntaxError
			if errors.As(err, &se) {
				pos = dom.Position{Line: se.Line}
				return nil, p.fatal(pos, nil, "%s: %s", p.name, se.Msg)
			}
			return nil, p.fatal(pos, err, "%s: malformed XML", p.name)
		}
		raw := p.src[start:d.InputOffset()]
		if err := p.token(tok, raw, start, pos); err != nil {
			return nil, err
		}
	}

	if n := len(p.stack); n > 0 {
		open := p.stack[n-1]
		return nil, p.fatal(open.Pos, nil, "%s: unexpected end of input, <%s> is not closed", p.name, open.Name)
	}
	if p.root == nil {
		return nil, p.fatal(dom.Position{}, nil, "%s: no root element", p.name)
	}
	return p.root, nil
}

// elementName 返回标签的原始名称
func (p *parser) elementName(n xml.Name, offset int64) string {
	if orig, ok := p.names[offset]; ok {
		return orig
	}
	return qualified(n)
}

func (p *parser) token(tok xml.Token, raw []byte, offset int64, pos dom.Position) error {
	switch t := tok.(type) {
	case xml.StartElement:
		el := &dom.Element{
			Name:       p.elementName(t.Name, offset),
			Attributes: make(map[string]string, len(t.Attr)),
			Properties: map[string]*dom.Element{},
			Pos:        pos,
		}
		for _, a := range t.Attr {
			el.Attributes[qualified(a.Name)] = a.Value
		}
		if len(p.stack) == 0 {
			if p.root != nil {
				return p.fatal(pos, nil, "%s: more than one root element", p.name)
			}
			p.root = el
		} else {
			parent := p.stack[len(p.stack)-1]
			parent.Children = append(parent.Children, el)
		}
		p.stack = append(p.stack, el)

	case xml.EndElement:
		// RawToken 不检查标签配对
		name := p.elementName(t.Name, offset)
		n := len(p.stack)
		if n == 0 {
			return p.fatal(pos, nil, "%s: unexpected closing tag </%s>", p.name, name)
		}
		if open := p.stack[n-1]; open.Name != name {
			return p.fatal(pos, nil, "%s: element <%s> opened at %s closed by </%s>", p.name, open.Name, open.Pos, name)
		}
		p.stack = p.stack[:n-1]

	case xml.CharData:
		if len(p.stack) == 0 {
			if len(bytes.TrimSpace(t)) > 0 {
				return p.fatal(pos, nil, "%s: text outside of the root element", p.name)
			}
			return nil
		}
		parent := p.stack[len(p.stack)-1]
		if bytes.HasPrefix(raw, cdataStart) {
			parent.Children = append(parent.Children, &dom.CData{Value: string(t)})
		} else {
			parent.Children = append(parent.Children, &dom.Text{Value: string(t)})
		}
	}
	// 注释、处理指令和 DOCTYPE 被忽略
	return nil
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

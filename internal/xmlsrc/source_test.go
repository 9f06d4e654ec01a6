package xmlsrc

import (
	"bytes"
	"testing"

	"github.com/kildom/xml2docx-sub000/internal/diag"
	"github.com/kildom/xml2docx-sub000/internal/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsPrefixedNamesAndPositions(t *testing.T) {
	src := `<?xml version="1.0"?>
<document title="x">
  <DEF:Warn:Base color="red"/>
  <p:Warn>hi</p:Warn>
</document>`
	sink := diag.NewSink(nil)
	root, err := ParseString(src, sink)
	require.NoError(t, err)
	assert.Equal(t, 0, sink.Len())

	assert.Equal(t, "document", root.Name)
	assert.Equal(t, dom.Position{Line: 2, Column: 1}, root.Pos)
	assert.Equal(t, "x", root.Attributes["title"])

	els := root.Elements()
	require.Len(t, els, 2)
	assert.Equal(t, "DEF:Warn:Base", els[0].Name)
	assert.Equal(t, "red", els[0].Attributes["color"])
	assert.Equal(t, 3, els[0].Pos.Line)
	assert.Equal(t, 3, els[0].Pos.Column)
	assert.Equal(t, "p:Warn", els[1].Name)
	assert.Equal(t, "hi", els[1].TextContent())
}

func TestParseMultiColonNames(t *testing.T) {
	src := `<document><DEF:A:B:C/><p:A:B x="1">t</p:A:B><span:a:b/></document>`
	sink := diag.NewSink(nil)
	root, err := ParseString(src, sink)
	require.NoError(t, err)
	assert.Equal(t, 0, sink.Len())

	els := root.Elements()
	require.Len(t, els, 3)
	assert.Equal(t, "DEF:A:B:C", els[0].Name)
	assert.Equal(t, "p:A:B", els[1].Name)
	assert.Equal(t, "1", els[1].Attributes["x"])
	assert.Equal(t, "span:a:b", els[2].Name)
	// 屏蔽不改变长度，同一行后面的列号不受影响
	assert.Equal(t, dom.Position{Line: 1, Column: 45}, els[2].Pos)

	t.Run("结束标签不匹配", func(t *testing.T) {
		sink := diag.NewSink(nil)
		_, err := ParseString(`<document><p:A:B></p:A:C></document>`, sink)
		require.Error(t, err)
		assert.Contains(t, sink.Items()[0].Message, "<p:A:B> opened at 1:11 closed by </p:A:C>")
	})
}

func TestMaskNamesLeavesOpaqueSections(t *testing.T) {
	src := []byte(`<a:b:c><!-- <x:y:z> --><![CDATA[<q:r:s>]]><?pi <m:n:o>?></a:b:c>`)
	masked, names := maskNames(src)
	assert.Equal(t, `<a:b_c><!-- <x:y:z> --><![CDATA[<q:r:s>]]><?pi <m:n:o>?></a:b_c>`, string(masked))
	assert.Equal(t, map[int64]string{0: "a:b:c", 56: "a:b:c"}, names)
	assert.Equal(t, `<a:b:c>`, string(src[:7]))

	plain := []byte(`<p:Warn>x</p:Warn>`)
	out, names := maskNames(plain)
	assert.Equal(t, plain, out)
	assert.Nil(t, names)
}

func TestParseCDataAndEntities(t *testing.T) {
	sink := diag.NewSink(nil)
	root, err := ParseString(`<p>a&amp;b&nbsp;<![CDATA[<raw> ]]></p>`, sink)
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	assert.Equal(t, &dom.Text{Value: "a&b\u00a0"}, root.Children[0])
	assert.Equal(t, &dom.CData{Value: "<raw> "}, root.Children[1])
}

func TestParseErrorsAreFatal(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"标签不匹配", `<a><b></a>`, "closed by </a>"},
		{"未闭合", `<a><b/>`, ""},
		{"多个根元素", `<a/><b/>`, "more than one root element"},
		{"根外文本", `<a/>text`, "text outside of the root element"},
		{"空文档", ``, "no root element"},
		{"语法错误", `<a x=1/>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := diag.NewSink(nil)
			root, err := ParseString(tt.src, sink)
			require.Error(t, err)
			assert.Nil(t, root)
			assert.True(t, diag.IsFatal(err))
			require.Equal(t, 1, sink.Len())
			d := sink.Items()[0]
			assert.Equal(t, diag.CodeSource, d.Code)
			if tt.msg != "" {
				assert.Contains(t, d.Message, tt.msg)
			}
		})
	}
}

func TestParseCharsets(t *testing.T) {
	t.Run("BOM", func(t *testing.T) {
		src := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<a>ż</a>`)...)
		root, err := Parse(bytes.NewReader(src), diag.NewSink(nil), Options{})
		require.NoError(t, err)
		assert.Equal(t, "ż", root.TextContent())
	})

	t.Run("声明的编码", func(t *testing.T) {
		// ISO-8859-2 中 0xBF 为 ż
		src := append([]byte(`<?xml version="1.0" encoding="ISO-8859-2"?><a>`), 0xBF)
		src = append(src, []byte(`</a>`)...)
		root, err := Parse(bytes.NewReader(src), diag.NewSink(nil), Options{})
		require.NoError(t, err)
		assert.Equal(t, "ż", root.TextContent())
	})

	t.Run("备用编码", func(t *testing.T) {
		src := append([]byte(`<a>`), 0xE9)
		src = append(src, []byte(`</a>`)...)
		root, err := Parse(bytes.NewReader(src), diag.NewSink(nil), Options{FallbackCharset: "windows-1252"})
		require.NoError(t, err)
		assert.Equal(t, "é", root.TextContent())
	})

	t.Run("未知编码", func(t *testing.T) {
		sink := diag.NewSink(nil)
		_, err := Parse(bytes.NewReader([]byte(`<?xml version="1.0" encoding="no-such-charset"?><a/>`)), sink, Options{})
		require.Error(t, err)
		assert.True(t, sink.HasFatal())
	})
}

func TestDeclaredEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`<?xml version="1.0" encoding="UTF-8"?><a/>`, "UTF-8"},
		{`<?xml version='1.0' encoding = 'latin1' ?><a/>`, "latin1"},
		{`<?xml version="1.0"?><a/>`, ""},
		{`<a/>`, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, declaredEncoding([]byte(tt.in)), tt.in)
	}
}

func TestParseFragment(t *testing.T) {
	nodes, err := ParseFragment(`<p color="red"/>text<b>x</b>`, diag.NewSink(nil))
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, "p", nodes[0].(*dom.Element).Name)
	assert.Equal(t, &dom.Text{Value: "text"}, nodes[1])
}

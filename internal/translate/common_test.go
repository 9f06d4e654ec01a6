package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommonConsume(t *testing.T) {
	a := &Pending{Value: "center"}
	b := &Pending{Value: "2"}
	c := Common{"td": {"align": a}, "p": {"size": b}}

	pending, rest := c.consume("td")
	assert.Equal(t, map[string]*Pending{"align": a}, pending)
	assert.Equal(t, []string{"p.size"}, rest.Keys())
	// 原值不变
	assert.Equal(t, 2, c.Len())

	pending, rest = c.consume("table")
	assert.Nil(t, pending)
	assert.Equal(t, 2, rest.Len())
}

func TestCommonWithOverridesPerAttribute(t *testing.T) {
	a := &Pending{Value: "left"}
	b := &Pending{Value: "bold"}
	over := &Pending{Value: "right"}
	c := Common{"p": {"align": a, "font": b}}

	got := c.with(Common{"p": {"align": over}})
	p, _ := got.Get("p", "align")
	assert.Same(t, over, p)
	f, _ := got.Get("p", "font")
	assert.Same(t, b, f)

	orig, _ := c.Get("p", "align")
	assert.Same(t, a, orig)
}

func TestCommonRestore(t *testing.T) {
	used := &Pending{Value: "1"}
	unused := &Pending{Value: "2"}
	shadowed := &Pending{Value: "3"}
	outer := Common{
		"td": {"align": used},
		"p":  {"align": unused, "font": shadowed},
	}
	decls := Common{"p": {"font": &Pending{Value: "inner"}}}

	// 子树中 td.align 已被使用，p.font 的内层声明被使用
	final := Common{"p": {"align": unused}}

	got := restore(outer, decls, final)
	assert.Equal(t, []string{"p.align", "p.font"}, got.Keys())
	f, _ := got.Get("p", "font")
	assert.Same(t, shadowed, f)
}

package convert

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// EnumEntry 枚举的一个键值对
type EnumEntry struct {
	Key   string
	Value string
}

// Enum 枚举定义
// 输入按规范化后的键、值、别名依次查找，结果总是 Value
type Enum struct {
	Name    string
	Entries []EnumEntry
	// Aliases 别名 → 键
	Aliases map[string]string
}

// Keys 返回全部键（按声明顺序）
func (e *Enum) Keys() []string {
	keys := make([]string, len(e.Entries))
	for i, entry := range e.Entries {
		keys[i] = entry.Key
	}
	return keys
}

// AliasNames 返回排序后的别名
func (e *Enum) AliasNames() []string {
	names := make([]string, 0, len(e.Aliases))
	for name := range e.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeToken 去掉 ". _-" 并转为小写
func NormalizeToken(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch r {
		case '.', ' ', '_', '-':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

type enumTable struct {
	byKey   map[string]string
	byValue map[string]string
	byAlias map[string]string
}

// EnumCache 规范化查找表的缓存，以枚举对象的地址为键
// 生命周期为一次翻译运行，单线程使用
type EnumCache struct {
	tables map[*Enum]*enumTable
}

// NewEnumCache 创建空缓存
func NewEnumCache() *EnumCache {
	return &EnumCache{tables: make(map[*Enum]*enumTable)}
}

// Len 已缓存的枚举数量
func (c *EnumCache) Len() int {
	return len(c.tables)
}

func (c *EnumCache) table(e *Enum) *enumTable {
	if t, ok := c.tables[e]; ok {
		return t
	}
	t := &enumTable{
		byKey:   make(map[string]string, len(e.Entries)),
		byValue: make(map[string]string, len(e.Entries)),
		byAlias: make(map[string]string, len(e.Aliases)),
	}
	values := make(map[string]string, len(e.Entries))
	for _, entry := range e.Entries {
		values[entry.Key] = entry.Value
		t.byKey[NormalizeToken(entry.Key)] = entry.Value
		t.byValue[NormalizeToken(entry.Value)] = entry.Value
	}
	for alias, key := range e.Aliases {
		if v, ok := values[key]; ok {
			t.byAlias[NormalizeToken(alias)] = v
		}
	}
	c.tables[e] = t
	return t
}

// Lookup 静默形式的枚举查找
func (c *EnumCache) Lookup(e *Enum, s string) (string, bool) {
	t := c.table(e)
	n := NormalizeToken(s)
	if n == "" {
		return "", false
	}
	if v, ok := t.byKey[n]; ok {
		return v, true
	}
	if v, ok := t.byValue[n]; ok {
		return v, true
	}
	if v, ok := t.byAlias[n]; ok {
		return v, true
	}
	return "", false
}

// Enum 可恢复形式的枚举转换
// 未提供默认值时使用第一个条目的值
func (c *Converter) Enum(f Field, e *Enum, def ...string) string {
	if f.Present {
		if v, ok := c.enums.Lookup(e, f.Value); ok {
			return v
		}
	}
	candidates := append(e.Keys(), e.AliasNames()...)
	msg := "invalid value %q for %s, expected one of: %s"
	args := []interface{}{f.Value, e.Name, strings.Join(candidates, ", ")}
	if s := Suggest(f.Value, candidates); s != "" {
		msg += "; did you mean %q?"
		args = append(args, s)
	}
	c.invalid(f, msg, args...)

	fallback := ""
	if len(e.Entries) > 0 {
		fallback = e.Entries[0].Value
	}
	return pick(def, fallback)
}

// Suggest 在候选项中查找与 value 最接近的一个，找不到时返回空串
func Suggest(value string, candidates []string) string {
	value = strings.TrimSpace(value)
	if value == "" || len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindNormalizedFold(value, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Stable(ranks)
	return ranks[0].Target
}

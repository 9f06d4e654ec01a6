package convert

import (
	"math"
	"strconv"
	"strings"
)

// 库默认值
const (
	DefaultInt   = 0
	DefaultFloat = 0.0
	DefaultBool  = false
)

// ParseInt32 解析有符号 32 位整数
// 拒绝超出范围以及非规范写法（例如 "+1"、"01"）
func ParseInt32(s string) (int32, bool) {
	t := strings.TrimSpace(s)
	v, err := strconv.ParseInt(t, 10, 32)
	if err != nil || strconv.FormatInt(v, 10) != t {
		return 0, false
	}
	return int32(v), true
}

// ParseUint32 解析无符号 32 位整数
func ParseUint32(s string) (uint32, bool) {
	t := strings.TrimSpace(s)
	v, err := strconv.ParseUint(t, 10, 32)
	if err != nil || strconv.FormatUint(v, 10) != t {
		return 0, false
	}
	return uint32(v), true
}

// ParseFloat 解析任意有限浮点数
func ParseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseNonNegativeFloat 解析非负浮点数
func ParseNonNegativeFloat(s string) (float64, bool) {
	v, ok := ParseFloat(s)
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

// Int32 可恢复形式的有符号整数转换
func (c *Converter) Int32(f Field, def ...int32) int32 {
	if v, ok := ParseInt32(f.Value); ok && f.Present {
		return v
	}
	c.invalid(f, "invalid integer %q", f.Value)
	return pick(def, int32(DefaultInt))
}

// Uint32 可恢复形式的无符号整数转换
func (c *Converter) Uint32(f Field, def ...uint32) uint32 {
	if v, ok := ParseUint32(f.Value); ok && f.Present {
		return v
	}
	c.invalid(f, "invalid unsigned integer %q", f.Value)
	return pick(def, uint32(DefaultInt))
}

// Float 可恢复形式的浮点数转换
func (c *Converter) Float(f Field, def ...float64) float64 {
	if v, ok := ParseFloat(f.Value); ok && f.Present {
		return v
	}
	c.invalid(f, "invalid number %q", f.Value)
	return pick(def, DefaultFloat)
}

// NonNegativeFloat 可恢复形式的非负浮点数转换
func (c *Converter) NonNegativeFloat(f Field, def ...float64) float64 {
	if v, ok := ParseNonNegativeFloat(f.Value); ok && f.Present {
		return v
	}
	c.invalid(f, "invalid non-negative number %q", f.Value)
	return pick(def, DefaultFloat)
}

var (
	trueTokens  = map[string]bool{"true": true, "t": true, "yes": true, "y": true, "1": true, "on": true}
	falseTokens = map[string]bool{"false": true, "f": true, "no": true, "n": true, "0": true, "off": true}
)

// ParseBool 解析布尔值（不区分大小写）
func ParseBool(s string) (bool, bool) {
	t := strings.ToLower(strings.TrimSpace(s))
	if trueTokens[t] {
		return true, true
	}
	if falseTokens[t] {
		return false, true
	}
	return false, false
}

// Bool 可恢复形式的布尔值转换
func (c *Converter) Bool(f Field, def ...bool) bool {
	if v, ok := ParseBool(f.Value); ok && f.Present {
		return v
	}
	c.invalid(f, "invalid boolean %q, expected one of: true, false, yes, no, on, off, 1, 0", f.Value)
	return pick(def, DefaultBool)
}

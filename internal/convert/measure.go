package convert

import (
	"math"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// Subunit 输出单位，值为每点（pt）对应的子单位数
type Subunit float64

const (
	Points       Subunit = 1
	HalfPoints   Subunit = 2
	EighthPoints Subunit = 8
	Twips        Subunit = 20
	EMU          Subunit = 12700
)

// 库默认值
const (
	DefaultMeasure       = 0
	DefaultMeasureString = "0pt"
)

const (
	maxMagnitude      = 1e30
	maxFractionDigits = 40
)

// pointsPerUnit 每种输入单位对应的点数
var pointsPerUnit = map[string]float64{
	"pt": 1,
	"mm": 360.0 / 127.0,
	"cm": 3600.0 / 127.0,
	"in": 72,
	"pi": 12,
	"pc": 12,
	"px": 0.75,
}

// measurePattern 数字 + 单位，允许首尾空白
// 单位支持 mm cm in pt pi pc px，不区分大小写
var measurePattern = regexp2.MustCompile(
	`^\s*([+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:e[+-]?\d+)?)\s*(mm|cm|in|pt|pi|pc|px)\s*$`,
	regexp2.IgnoreCase)

// splitMeasure 拆分数值和单位
func splitMeasure(s string) (float64, string, bool) {
	m, err := measurePattern.FindStringMatch(s)
	if err != nil || m == nil {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(m.GroupByNumber(1).String(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > maxMagnitude {
		return 0, "", false
	}
	return v, strings.ToLower(m.GroupByNumber(2).String()), true
}

// ParsePoints 解析长度并返回点数
func ParsePoints(s string) (float64, bool) {
	v, unit, ok := splitMeasure(s)
	if !ok {
		return 0, false
	}
	return v * pointsPerUnit[unit], true
}

// ParseSubunits 解析长度并转换为整数子单位
// 非零值舍入为零时保留一个子单位并保持符号，结果必须落在 [min, max] 内
func ParseSubunits(s string, per Subunit, min, max int) (int, bool) {
	pts, ok := ParsePoints(s)
	if !ok {
		return 0, false
	}
	x := pts * float64(per)
	r := math.Round(x)
	if r == 0 && x != 0 {
		r = math.Copysign(1, x)
	}
	if r < float64(min) || r > float64(max) {
		return 0, false
	}
	return int(r), true
}

// ParseMeasureString 解析长度并返回规范化字符串
// 像素转换为点，其他单位保持不变
func ParseMeasureString(s string) (string, bool) {
	v, unit, ok := splitMeasure(s)
	if !ok {
		return "", false
	}
	if unit == "px" {
		v *= pointsPerUnit["px"]
		unit = "pt"
	}
	if v == 0 {
		v = 0 // -0 → 0
	}
	num := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(num, '.'); i >= 0 && len(num)-i-1 > maxFractionDigits {
		return "", false
	}
	return num + unit, true
}

// Subunits 可恢复形式的整数长度转换
func (c *Converter) Subunits(f Field, per Subunit, min, max int, def ...int) int {
	if f.Present {
		if v, ok := ParseSubunits(f.Value, per, min, max); ok {
			return v
		}
		if _, ok := ParsePoints(f.Value); ok {
			c.invalid(f, "measure %q out of range", f.Value)
			return pick(def, DefaultMeasure)
		}
	}
	c.invalid(f, "invalid measure %q, expected a number followed by one of: mm, cm, in, pt, pi, pc, px", f.Value)
	return pick(def, DefaultMeasure)
}

// MeasureString 可恢复形式的字符串长度转换
func (c *Converter) MeasureString(f Field, def ...string) string {
	if v, ok := ParseMeasureString(f.Value); ok && f.Present {
		return v
	}
	c.invalid(f, "invalid measure %q, expected a number followed by one of: mm, cm, in, pt, pi, pc, px", f.Value)
	return pick(def, DefaultMeasureString)
}

package translate

import (
	"github.com/kildom/xml2docx-sub000/pkg/docopt"
)

// SpaceMode 空白处理方式
type SpaceMode int

const (
	// SpaceTrim 折叠连续空白并去掉段落首尾的空白
	SpaceTrim SpaceMode = iota
	// SpacePreserve 原样保留
	SpacePreserve
	// SpaceIgnore 丢弃空白标记
	SpaceIgnore
)

func (m SpaceMode) String() string {
	switch m {
	case SpacePreserve:
		return "preserve"
	case SpaceIgnore:
		return "ignore"
	default:
		return "trim"
	}
}

func parseSpaceMode(v string) SpaceMode {
	switch v {
	case "preserve":
		return SpacePreserve
	case "ignore":
		return SpaceIgnore
	default:
		return SpaceTrim
	}
}

// State 翻译状态
// 按值传递，任何修改都产生新值；Common 中的 map 创建后不再修改
type State struct {
	// Run 和 Paragraph 是格式覆盖层
	Run       docopt.RunOptions
	Paragraph docopt.ParagraphOptions
	Common    Common
	// Table 当前表格的列簿记，只在该表格的子树中可见
	Table *TableData
	Space SpaceMode
}

// NewState 创建根状态
func NewState() State {
	return State{Common: Common{}}
}

// WithRun 合并字符格式覆盖层
func (s State) WithRun(over docopt.RunOptions) State {
	s.Run = s.Run.Merge(over)
	return s
}

// WithParagraph 合并段落格式覆盖层
func (s State) WithParagraph(over docopt.ParagraphOptions) State {
	s.Paragraph = s.Paragraph.Merge(over)
	return s
}

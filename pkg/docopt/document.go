package docopt

import "fmt"

// ItemKind 翻译器输出项的类别，决定它进入哪个集合
type ItemKind int

const (
	KindContent ItemKind = iota
	KindSection
	KindParagraphStyle
	KindCharacterStyle
)

func (k ItemKind) String() string {
	switch k {
	case KindContent:
		return "content"
	case KindSection:
		return "section"
	case KindParagraphStyle:
		return "paragraphStyle"
	case KindCharacterStyle:
		return "characterStyle"
	default:
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
}

// Item 带类别标记的输出对象
type Item struct {
	Kind  ItemKind
	Value Object
}

// Content 把普通内容包装为输出项
func Content(objs ...Object) []Item {
	out := make([]Item, len(objs))
	for i, o := range objs {
		out[i] = Item{Kind: KindContent, Value: o}
	}
	return out
}

// Properties 文档属性
type Properties struct {
	Title          string `json:"title,omitempty" yaml:"title,omitempty"`
	Subject        string `json:"subject,omitempty" yaml:"subject,omitempty"`
	Creator        string `json:"creator,omitempty" yaml:"creator,omitempty"`
	Keywords       string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	LastModifiedBy string `json:"lastModifiedBy,omitempty" yaml:"lastModifiedBy,omitempty"`
}

// Document 完整的翻译结果
type Document struct {
	Properties      Properties        `json:"properties" yaml:"properties"`
	Sections        []*Section        `json:"sections" yaml:"sections"`
	ParagraphStyles []*ParagraphStyle `json:"paragraphStyles,omitempty" yaml:"paragraphStyles,omitempty"`
	CharacterStyles []*CharacterStyle `json:"characterStyles,omitempty" yaml:"characterStyles,omitempty"`
}

// NewDocument 创建空文档
func NewDocument() *Document {
	return &Document{Sections: []*Section{}}
}

// Add 按类别路由输出项
// 普通内容进入当前（最后一个）节，没有节时创建一个默认节
func (d *Document) Add(items ...Item) error {
	for _, it := range items {
		switch it.Kind {
		case KindSection:
			s, ok := it.Value.(*Section)
			if !ok {
				return fmt.Errorf("section item holds %T", it.Value)
			}
			d.Sections = append(d.Sections, s)
		case KindParagraphStyle:
			s, ok := it.Value.(*ParagraphStyle)
			if !ok {
				return fmt.Errorf("paragraph style item holds %T", it.Value)
			}
			d.ParagraphStyles = append(d.ParagraphStyles, s)
		case KindCharacterStyle:
			s, ok := it.Value.(*CharacterStyle)
			if !ok {
				return fmt.Errorf("character style item holds %T", it.Value)
			}
			d.CharacterStyles = append(d.CharacterStyles, s)
		case KindContent:
			if len(d.Sections) == 0 {
				d.Sections = append(d.Sections, NewSection())
			}
			cur := d.Sections[len(d.Sections)-1]
			cur.Children = append(cur.Children, it.Value)
		default:
			return fmt.Errorf("unknown item kind %v", it.Kind)
		}
	}
	return nil
}

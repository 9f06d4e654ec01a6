package translate

import "github.com/kildom/xml2docx-sub000/internal/convert"

// 枚举取值与 docx 文档对象库一致

var alignmentEnum = &convert.Enum{
	Name: "alignment",
	Entries: []convert.EnumEntry{
		{Key: "START", Value: "start"},
		{Key: "CENTER", Value: "center"},
		{Key: "END", Value: "end"},
		{Key: "BOTH", Value: "both"},
		{Key: "LEFT", Value: "left"},
		{Key: "RIGHT", Value: "right"},
		{Key: "DISTRIBUTE", Value: "distribute"},
	},
	Aliases: map[string]string{
		"justify":   "BOTH",
		"justified": "BOTH",
		"middle":    "CENTER",
	},
}

var headingEnum = &convert.Enum{
	Name: "heading",
	Entries: []convert.EnumEntry{
		{Key: "HEADING_1", Value: "Heading1"},
		{Key: "HEADING_2", Value: "Heading2"},
		{Key: "HEADING_3", Value: "Heading3"},
		{Key: "HEADING_4", Value: "Heading4"},
		{Key: "HEADING_5", Value: "Heading5"},
		{Key: "HEADING_6", Value: "Heading6"},
		{Key: "TITLE", Value: "Title"},
	},
	Aliases: map[string]string{
		"h1": "HEADING_1",
		"h2": "HEADING_2",
		"h3": "HEADING_3",
		"h4": "HEADING_4",
		"h5": "HEADING_5",
		"h6": "HEADING_6",
	},
}

var underlineEnum = &convert.Enum{
	Name: "underline",
	Entries: []convert.EnumEntry{
		{Key: "SINGLE", Value: "single"},
		{Key: "WORDS", Value: "words"},
		{Key: "DOUBLE", Value: "double"},
		{Key: "THICK", Value: "thick"},
		{Key: "DOTTED", Value: "dotted"},
		{Key: "DOTTED_HEAVY", Value: "dottedHeavy"},
		{Key: "DASH", Value: "dash"},
		{Key: "DASH_LONG", Value: "dashLong"},
		{Key: "DOT_DASH", Value: "dotDash"},
		{Key: "DOT_DOT_DASH", Value: "dotDotDash"},
		{Key: "WAVE", Value: "wave"},
		{Key: "WAVY_DOUBLE", Value: "wavyDouble"},
		{Key: "NONE", Value: "none"},
	},
	Aliases: map[string]string{
		"dashed": "DASH",
		"wavy":   "WAVE",
	},
}

var borderStyleEnum = &convert.Enum{
	Name: "border style",
	Entries: []convert.EnumEntry{
		{Key: "SINGLE", Value: "single"},
		{Key: "DASH_DOT_STROKED", Value: "dashDotStroked"},
		{Key: "DASHED", Value: "dashed"},
		{Key: "DASH_SMALL_GAP", Value: "dashSmallGap"},
		{Key: "DOT_DASH", Value: "dotDash"},
		{Key: "DOT_DOT_DASH", Value: "dotDotDash"},
		{Key: "DOTTED", Value: "dotted"},
		{Key: "DOUBLE", Value: "double"},
		{Key: "DOUBLE_WAVE", Value: "doubleWave"},
		{Key: "INSET", Value: "inset"},
		{Key: "NIL", Value: "nil"},
		{Key: "NONE", Value: "none"},
		{Key: "OUTSET", Value: "outset"},
		{Key: "THICK", Value: "thick"},
		{Key: "TRIPLE", Value: "triple"},
		{Key: "WAVE", Value: "wave"},
	},
	Aliases: map[string]string{
		"solid": "SINGLE",
		"dash":  "DASHED",
		"dot":   "DOTTED",
	},
}

var verticalAlignEnum = &convert.Enum{
	Name: "vertical alignment",
	Entries: []convert.EnumEntry{
		{Key: "TOP", Value: "top"},
		{Key: "CENTER", Value: "center"},
		{Key: "BOTTOM", Value: "bottom"},
	},
	Aliases: map[string]string{"middle": "CENTER"},
}

var tableLayoutEnum = &convert.Enum{
	Name: "table layout",
	Entries: []convert.EnumEntry{
		{Key: "AUTOFIT", Value: "autofit"},
		{Key: "FIXED", Value: "fixed"},
	},
	Aliases: map[string]string{"auto": "AUTOFIT"},
}

var orientationEnum = &convert.Enum{
	Name: "page orientation",
	Entries: []convert.EnumEntry{
		{Key: "PORTRAIT", Value: "portrait"},
		{Key: "LANDSCAPE", Value: "landscape"},
	},
}

var sectionTypeEnum = &convert.Enum{
	Name: "section type",
	Entries: []convert.EnumEntry{
		{Key: "NEXT_PAGE", Value: "nextPage"},
		{Key: "NEXT_COLUMN", Value: "nextColumn"},
		{Key: "CONTINUOUS", Value: "continuous"},
		{Key: "EVEN_PAGE", Value: "evenPage"},
		{Key: "ODD_PAGE", Value: "oddPage"},
	},
}

var heightRuleEnum = &convert.Enum{
	Name: "height rule",
	Entries: []convert.EnumEntry{
		{Key: "AUTO", Value: "auto"},
		{Key: "ATLEAST", Value: "atLeast"},
		{Key: "EXACT", Value: "exact"},
	},
	Aliases: map[string]string{
		"min":     "ATLEAST",
		"minimum": "ATLEAST",
		"exactly": "EXACT",
	},
}

var highlightEnum = &convert.Enum{
	Name: "highlight color",
	Entries: []convert.EnumEntry{
		{Key: "BLACK", Value: "black"},
		{Key: "BLUE", Value: "blue"},
		{Key: "CYAN", Value: "cyan"},
		{Key: "DARK_BLUE", Value: "darkBlue"},
		{Key: "DARK_CYAN", Value: "darkCyan"},
		{Key: "DARK_GRAY", Value: "darkGray"},
		{Key: "DARK_GREEN", Value: "darkGreen"},
		{Key: "DARK_MAGENTA", Value: "darkMagenta"},
		{Key: "DARK_RED", Value: "darkRed"},
		{Key: "DARK_YELLOW", Value: "darkYellow"},
		{Key: "GREEN", Value: "green"},
		{Key: "LIGHT_GRAY", Value: "lightGray"},
		{Key: "MAGENTA", Value: "magenta"},
		{Key: "NONE", Value: "none"},
		{Key: "RED", Value: "red"},
		{Key: "WHITE", Value: "white"},
		{Key: "YELLOW", Value: "yellow"},
	},
	Aliases: map[string]string{
		"darkgrey":  "DARK_GRAY",
		"lightgrey": "LIGHT_GRAY",
	},
}

var textDirectionEnum = &convert.Enum{
	Name: "text direction",
	Entries: []convert.EnumEntry{
		{Key: "BOTTOM_TO_TOP_LEFT_TO_RIGHT", Value: "btLr"},
		{Key: "LEFT_TO_RIGHT_TOP_TO_BOTTOM", Value: "lrTb"},
		{Key: "TOP_TO_BOTTOM_RIGHT_TO_LEFT", Value: "tbRl"},
	},
	Aliases: map[string]string{
		"up":     "BOTTOM_TO_TOP_LEFT_TO_RIGHT",
		"normal": "LEFT_TO_RIGHT_TOP_TO_BOTTOM",
		"down":   "TOP_TO_BOTTOM_RIGHT_TO_LEFT",
	},
}

var spaceEnum = &convert.Enum{
	Name: "space",
	Entries: []convert.EnumEntry{
		{Key: "TRIM", Value: "trim"},
		{Key: "PRESERVE", Value: "preserve"},
		{Key: "IGNORE", Value: "ignore"},
	},
}

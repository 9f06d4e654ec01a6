package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// AliasEntry 别名库中的一个预定义别名
type AliasEntry struct {
	Name       string            `toml:"name"`
	Inherits   []string          `toml:"inherits"`
	Attributes map[string]string `toml:"attributes"`
	// XML 别名的内容片段
	XML string `toml:"xml"`
}

// DeclarationName 返回对应 DEF 元素的名称，如 DEF:Warning:Strong
func (e AliasEntry) DeclarationName() string {
	return strings.Join(append([]string{"DEF", e.Name}, e.Inherits...), ":")
}

// AliasLibrary 预定义别名库
type AliasLibrary struct {
	Aliases []AliasEntry `toml:"alias"`
}

// LoadAliasLibrary 加载 TOML 格式的别名库
func LoadAliasLibrary(path string) (*AliasLibrary, error) {
	// check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("alias library not found: %s", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias library: %w", err)
	}
	return ParseAliasLibrary(string(content))
}

// ParseAliasLibrary 解析别名库内容
func ParseAliasLibrary(content string) (*AliasLibrary, error) {
	lib := &AliasLibrary{}
	if _, err := toml.Decode(content, lib); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alias library: %w", err)
	}
	for i, a := range lib.Aliases {
		if strings.TrimSpace(a.Name) == "" {
			return nil, fmt.Errorf("alias library entry %d is missing name", i+1)
		}
		if strings.Contains(a.Name, ":") {
			return nil, fmt.Errorf("alias library entry %q: name cannot contain ':'", a.Name)
		}
	}
	return lib, nil
}

// Package render 把翻译得到的文档选项树输出为可读格式
package render

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/kildom/xml2docx-sub000/pkg/docopt"
)

// Format 输出格式名称
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatDump Format = "dump"
)

// Renderer 输出器
type Renderer interface {
	Render(w io.Writer, doc *docopt.Document) error
}

// RendererFunc 函数形式的输出器
type RendererFunc func(w io.Writer, doc *docopt.Document) error

// Render 实现 Renderer 接口
func (f RendererFunc) Render(w io.Writer, doc *docopt.Document) error {
	return f(w, doc)
}

// Registry 输出格式注册表
type Registry struct {
	mu         sync.RWMutex
	renderers  map[Format]Renderer
	extensions map[string]Format
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{
		renderers:  make(map[Format]Renderer),
		extensions: make(map[string]Format),
	}
}

// globalRegistry 全局注册表实例
var globalRegistry = NewRegistry()

// Register 注册输出器
func Register(format Format, r Renderer) error {
	return globalRegistry.Register(format, r)
}

// RegisterExtension 注册文件扩展名
func RegisterExtension(ext string, format Format) {
	globalRegistry.RegisterExtension(ext, format)
}

// Get 获取输出器
func Get(format Format) (Renderer, error) {
	return globalRegistry.Get(format)
}

// ForFile 根据文件扩展名获取输出格式
func ForFile(filename string) (Format, bool) {
	return globalRegistry.ForFile(filename)
}

// Formats 获取所有已注册的格式
func Formats() []Format {
	return globalRegistry.Formats()
}

// Register 注册输出器到注册表
func (r *Registry) Register(format Format, renderer Renderer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[format]; exists {
		return fmt.Errorf("format %s already registered", format)
	}
	r.renderers[format] = renderer
	return nil
}

// RegisterExtension 注册文件扩展名映射
func (r *Registry) RegisterExtension(ext string, format Format) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 标准化扩展名（去除点号，转小写）
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	r.extensions[ext] = format
}

// Get 获取指定格式的输出器
func (r *Registry) Get(format Format) (Renderer, error) {
	r.mu.RLock()
	renderer, exists := r.renderers[Format(strings.ToLower(string(format)))]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("no renderer registered for format: %s", format)
	}
	return renderer, nil
}

// ForFile 根据文件扩展名获取格式
func (r *Registry) ForFile(filename string) (Format, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	r.mu.RLock()
	defer r.mu.RUnlock()
	format, exists := r.extensions[ext]
	return format, exists
}

// Formats 获取所有已注册的格式（排序后）
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]Format, 0, len(r.renderers))
	for format := range r.renderers {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// init 注册内置输出器和扩展名
func init() {
	Register(FormatJSON, RendererFunc(renderJSON))
	Register(FormatYAML, RendererFunc(renderYAML))
	Register(FormatDump, RendererFunc(renderDump))

	RegisterExtension(".json", FormatJSON)
	RegisterExtension(".yaml", FormatYAML)
	RegisterExtension(".yml", FormatYAML)
	RegisterExtension(".txt", FormatDump)
	RegisterExtension(".dump", FormatDump)
}

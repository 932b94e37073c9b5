package style

import "fmt"

// DuplicateStyleError 表示同一个名字被注册了两次。
type DuplicateStyleError struct {
	Name string
}

func (e *DuplicateStyleError) Error() string {
	return fmt.Sprintf("样式 %s 已注册，不允许重复绑定", e.Name)
}

// UnknownStyleError 表示内容块引用了未注册的样式名。
// 没有默认样式兜底：静默使用错误样式比失败更糟。
type UnknownStyleError struct {
	Name string
}

func (e *UnknownStyleError) Error() string {
	return fmt.Sprintf("样式 %s 未注册", e.Name)
}

// Registry 保存一次生成过程中的全部命名样式。
// 启动时填充一次，之后只读；不支持并发注册，
// 并发的生成过程各自创建独立的 Registry。
type Registry struct {
	styles map[string]Style
}

// NewRegistry 创建空的样式注册表。
func NewRegistry() *Registry {
	return &Registry{styles: map[string]Style{}}
}

// Register 绑定一个命名样式，名字重复时返回 DuplicateStyleError。
func (r *Registry) Register(name string, s Style) error {
	if name == "" {
		return fmt.Errorf("样式名不能为空")
	}
	if _, ok := r.styles[name]; ok {
		return &DuplicateStyleError{Name: name}
	}
	r.styles[name] = s
	return nil
}

// MustRegister 与 Register 相同，失败时 panic，供启动期固定样式表使用。
func (r *Registry) MustRegister(name string, s Style) {
	if err := r.Register(name, s); err != nil {
		panic(err)
	}
}

// Resolve 按名字查找样式，缺失时返回 UnknownStyleError。
func (r *Registry) Resolve(name string) (Style, error) {
	s, ok := r.styles[name]
	if !ok {
		return Style{}, &UnknownStyleError{Name: name}
	}
	return s, nil
}

// Len 返回已注册样式的数量。
func (r *Registry) Len() int { return len(r.styles) }

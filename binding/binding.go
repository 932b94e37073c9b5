package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 占位符替换为 data 中的值。
// data 为 nil 或路径无法解析时保留原占位符，保证同一份 Deck
// 在没有绑定数据时也能原样渲染。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		val, ok := lookup(data, path)
		if !ok {
			return match
		}
		return fmt.Sprint(val)
	})
}

// lookup 沿 a.b[0].c 形式的路径在 JSON 风格数据中下钻。
func lookup(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := splitSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			m, isMap := current.(map[string]any)
			if !isMap {
				return nil, false
			}
			val, present := m[name]
			if !present {
				return nil, false
			}
			current = val
		}
		for _, idx := range indexes {
			arr, isArr := current.([]any)
			if !isArr || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}

// splitSegment 把 "items[2][0]" 拆成名字与下标序列。
func splitSegment(segment string) (string, []int, bool) {
	open := strings.IndexByte(segment, '[')
	if open == -1 {
		return segment, nil, true
	}
	name := segment[:open]
	rest := segment[open:]
	var indexes []int
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			return "", nil, false
		}
		idx, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = rest[end+1:]
	}
	return name, indexes, true
}

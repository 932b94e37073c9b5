package binding

import "testing"

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"user": map[string]any{"name": "Ada"},
		"items": []any{
			map[string]any{"title": "first"},
			map[string]any{"title": "second"},
		},
		"matrix": []any{
			[]any{"a", "b"},
		},
		"count": 3.0,
	}

	cases := []struct {
		in   string
		want string
	}{
		{"Hello, ${user.name}!", "Hello, Ada!"},
		{"${items[1].title}", "second"},
		{"${matrix[0][1]}", "b"},
		{"total: ${count}", "total: 3"},
		{"no placeholder", "no placeholder"},
		{"${missing.path}", "${missing.path}"},
		{"${items[9].title}", "${items[9].title}"},
		{"${}", "${}"},
	}
	for _, tc := range cases {
		if got := Interpolate(tc.in, data); got != tc.want {
			t.Fatalf("Interpolate(%q) = %q, 期望 %q", tc.in, got, tc.want)
		}
	}
}

// TestInterpolateNilData 验证无绑定数据时占位符原样保留。
func TestInterpolateNilData(t *testing.T) {
	in := "Hello, ${user.name}!"
	if got := Interpolate(in, nil); got != in {
		t.Fatalf("nil 数据时应原样返回，实际 %q", got)
	}
}

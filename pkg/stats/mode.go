package stats

import "fmt"

// ViewMode 统计口径
type ViewMode string

const (
	Pips       ViewMode = "pips"
	Currency   ViewMode = "currency"
	Percentage ViewMode = "percentage"
)

var modes = []ViewMode{Pips, Currency, Percentage}

// ParseViewMode 解析口径，空字符串视为 pips
func ParseViewMode(s string) (ViewMode, error) {
	if s == "" {
		return Pips, nil
	}
	for _, m := range modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown view mode: %q", s)
}

func (m ViewMode) Valid() bool {
	_, err := ParseViewMode(string(m))
	return err == nil && m != ""
}

// Next 循环切换：pips -> currency -> percentage -> pips
func (m ViewMode) Next() ViewMode {
	for i, v := range modes {
		if v == m {
			return modes[(i+1)%len(modes)]
		}
	}
	return Pips
}

func (m ViewMode) String() string {
	return string(m)
}

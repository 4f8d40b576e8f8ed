package stats

import "time"

// Filter 统计前的过滤条件，零值表示不过滤。时间窗口为 [From, To)
type Filter struct {
	From        *time.Time
	To          *time.Time
	Setup       string
	Emotion     string
	Session     string
	Pair        string
	AccountType string
}

func (f Filter) Match(e Entry) bool {
	if f.From != nil && e.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && !e.Date.Before(*f.To) {
		return false
	}
	if f.Setup != "" && keyOr(e.Setup, UnknownSetup) != f.Setup {
		return false
	}
	if f.Emotion != "" && keyOr(e.Emotion, NeutralEmotion) != f.Emotion {
		return false
	}
	if f.Session != "" && e.Session != f.Session {
		return false
	}
	if f.Pair != "" && e.Pair != f.Pair {
		return false
	}
	if f.AccountType != "" && e.AccountType != f.AccountType {
		return false
	}
	return true
}

func (f Filter) Apply(entries []Entry) []Entry {
	matched := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			matched = append(matched, e)
		}
	}
	return matched
}

// ParseBound 解析时间窗口边界，接受 RFC3339 或 yyyy-mm-dd；纯日期取 loc 当天零点
func ParseBound(s string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

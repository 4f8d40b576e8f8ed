package stats

import (
	"math"
	"sort"
)

const (
	UnknownSetup   = "Unknown"
	NeutralEmotion = "Neutral"
	UnknownKey     = "Unknown"
)

// Bucket 分组统计
type Bucket struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Wins    int     `json:"wins"`
	Value   float64 `json:"value"`
	WinRate float64 `json:"win_rate"`
}

// Process 情绪对应的执行质量
type Process string

const (
	ProcessGood      Process = "good_mindset"
	ProcessCaution   Process = "caution"
	ProcessObjective Process = "objective"
	ProcessBad       Process = "bad_process"
)

func ProcessOf(emotion string) Process {
	switch emotion {
	case "Confident":
		return ProcessGood
	case "Hesitant":
		return ProcessCaution
	case NeutralEmotion, "":
		return ProcessObjective
	default:
		return ProcessBad
	}
}

type EmotionBucket struct {
	Bucket
	Process Process `json:"process"`
	// Lucky 情绪不佳但仍然盈利
	Lucky bool `json:"lucky"`
}

func keyOr(key, fallback string) string {
	if key == "" {
		return fallback
	}
	return key
}

// GroupBy 按 key 分组，返回顺序与首次出现顺序一致
func GroupBy(entries []Entry, basis Basis, key func(Entry) string) []Bucket {
	index := make(map[string]int)
	var buckets []Bucket
	for _, e := range entries {
		k := key(e)
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, Bucket{Key: k})
		}
		v := basis.Value(e)
		buckets[i].Count++
		buckets[i].Value += v
		if v > 0 {
			buckets[i].Wins++
		}
	}
	for i := range buckets {
		buckets[i].WinRate = float64(buckets[i].Wins) / float64(buckets[i].Count) * 100
	}
	return buckets
}

func sortByCount(buckets []Bucket) {
	sort.SliceStable(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Key < buckets[j].Key
	})
}

// BySetup 按策略分组，交易数多的在前
func BySetup(entries []Entry, basis Basis) []Bucket {
	buckets := GroupBy(entries, basis, func(e Entry) string { return keyOr(e.Setup, UnknownSetup) })
	sortByCount(buckets)
	return buckets
}

func BySession(entries []Entry, basis Basis) []Bucket {
	buckets := GroupBy(entries, basis, func(e Entry) string { return keyOr(e.Session, UnknownKey) })
	sortByCount(buckets)
	return buckets
}

func ByPair(entries []Entry, basis Basis) []Bucket {
	buckets := GroupBy(entries, basis, func(e Entry) string { return keyOr(e.Pair, UnknownKey) })
	sortByCount(buckets)
	return buckets
}

// ByEmotion 按情绪分组，合计绝对值大的在前
func ByEmotion(entries []Entry, basis Basis) []EmotionBucket {
	buckets := GroupBy(entries, basis, func(e Entry) string { return keyOr(e.Emotion, NeutralEmotion) })
	sort.SliceStable(buckets, func(i, j int) bool {
		a, b := math.Abs(buckets[i].Value), math.Abs(buckets[j].Value)
		if a != b {
			return a > b
		}
		return buckets[i].Key < buckets[j].Key
	})

	result := make([]EmotionBucket, 0, len(buckets))
	for _, b := range buckets {
		p := ProcessOf(b.Key)
		result = append(result, EmotionBucket{
			Bucket:  b,
			Process: p,
			Lucky:   p == ProcessBad && b.Value > 0,
		})
	}
	return result
}

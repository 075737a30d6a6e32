package food

import (
	"fmt"

	"ayurveda-nutrition/internal/pkg/common"
)

// MatchKind 食材解析的命中方式
type MatchKind string

const (
	MatchNone    MatchKind = ""
	MatchID      MatchKind = "id"
	MatchName    MatchKind = "name"
	MatchPartial MatchKind = "partial"
)

// Store 唯讀的食材資料庫，附名稱索引
type Store struct {
	items  []Item
	byID   map[string]int
	byName map[string]int
	names  []string // 正規化後的名稱，與 items 同序，供子字串比對
}

// NewStore 驗證並建立食材資料庫；ID 重複視為資料錯誤
func NewStore(items []Item) (*Store, error) {
	s := &Store{
		items:  make([]Item, 0, len(items)),
		byID:   make(map[string]int, len(items)),
		byName: make(map[string]int, len(items)),
		names:  make([]string, 0, len(items)),
	}
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("food item %d (%q): %w", i, it.ID, err)
		}
		if _, dup := s.byID[it.ID]; dup {
			return nil, fmt.Errorf("food item %d: %w", i, common.NewFieldError("id", fmt.Sprintf("duplicate %q", it.ID)))
		}
		idx := len(s.items)
		folded := common.Fold(it.Name)
		s.byID[it.ID] = idx
		// 同名時保留第一筆
		if _, seen := s.byName[folded]; !seen {
			s.byName[folded] = idx
		}
		s.items = append(s.items, it.Clone())
		s.names = append(s.names, folded)
	}
	return s, nil
}

// Len 食材數量
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Get 以 ID 取得食材副本
func (s *Store) Get(id string) (Item, bool) {
	if s == nil {
		return Item{}, false
	}
	idx, ok := s.byID[id]
	if !ok {
		return Item{}, false
	}
	return s.items[idx].Clone(), true
}

// All 回傳所有食材副本
func (s *Store) All() []Item {
	if s == nil {
		return nil
	}
	out := make([]Item, len(s.items))
	for i, it := range s.items {
		out[i] = it.Clone()
	}
	return out
}

// Resolve 依序以 ID、名稱（不分大小寫）、子字串（雙向）解析食材，第一個命中即回傳。
// 回傳的指標指向內部資料，呼叫端不得修改。
func (s *Store) Resolve(in Ingredient) (*Item, MatchKind) {
	if s == nil {
		return nil, MatchNone
	}
	for _, key := range []string{in.ID, in.Name} {
		if key == "" {
			continue
		}
		if idx, ok := s.byID[key]; ok {
			return &s.items[idx], MatchID
		}
	}

	folded := common.Fold(in.Key())
	if folded == "" {
		return nil, MatchNone
	}
	if idx, ok := s.byName[folded]; ok {
		return &s.items[idx], MatchName
	}

	// 子字串比對刻意偏向召回率："rice" 也會命中 "apricot"
	for idx, name := range s.names {
		if common.ContainsEither(folded, name) {
			return &s.items[idx], MatchPartial
		}
	}
	return nil, MatchNone
}

package catalog

import (
	"fmt"
)

// Store 唯讀的分類目錄，保留載入順序
type Store struct {
	records []Record
	byAxis  map[Axis][]int
}

// NewStore 驗證並建立目錄；任何一筆資料不合法即整體失敗
func NewStore(records []Record) (*Store, error) {
	s := &Store{
		records: make([]Record, 0, len(records)),
		byAxis:  make(map[Axis][]int),
	}
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("category record %d (%q): %w", i, r.SubLabel, err)
		}
		s.byAxis[r.Axis] = append(s.byAxis[r.Axis], len(s.records))
		s.records = append(s.records, r.Clone())
	}
	return s, nil
}

// Len 分類數量
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// All 回傳所有分類的副本（依載入順序）
func (s *Store) All() []Record {
	if s == nil {
		return nil
	}
	out := make([]Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// ByAxis 回傳指定分類軸的分類副本
func (s *Store) ByAxis(axis Axis) []Record {
	if s == nil {
		return nil
	}
	idx := s.byAxis[axis]
	out := make([]Record, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.records[i].Clone())
	}
	return out
}

// Records 回傳內部切片供唯讀迭代，呼叫端不得修改
func (s *Store) Records() []Record {
	if s == nil {
		return nil
	}
	return s.records
}

// CountByAxis 各分類軸的數量
func (s *Store) CountByAxis() map[Axis]int {
	out := make(map[Axis]int, len(Axes))
	if s == nil {
		return out
	}
	for axis, idx := range s.byAxis {
		out[axis] = len(idx)
	}
	return out
}

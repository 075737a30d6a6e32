package common

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fold 將文字做 NFKC 正規化、去除控制字元、轉小寫並去除前後空白，供不分大小寫比對使用
func Fold(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
	return strings.ToLower(strings.TrimSpace(normed))
}

// FoldAll 對每個字串呼叫 Fold，並略過空字串
func FoldAll(texts []string) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if f := Fold(t); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ContainsEither 判斷兩段已正規化文字是否互為子字串；空字串永遠不匹配
func ContainsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// JoinList 將字串切片以逗號連接
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

package gateway

import (
	"regexp"
	"strings"
)

// htmlTagPattern は `<` から最初の `>` までをHTMLタグとみなすパターン。
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// Sanitize はHTMLタグをすべて取り除き、前後の空白を削除する。
// 冪等であり、2回適用しても結果は変わらない。
func Sanitize(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}

package translator

import (
	"context"
	"encoding/json"
)

// Translator は上流翻訳APIが提供する6つの操作を表す。
// テストでは上流への通信を行わない実装に差し替える。
type Translator interface {
	// Languages は言語コードから表示名へのマップを返す。
	Languages(ctx context.Context) (map[string]string, error)
	// Translate はテキストを翻訳し、最初の翻訳結果を返す。
	Translate(ctx context.Context, in TranslateInput) (string, error)
	// Transliterate はテキストを別の文字体系に翻字する。
	Transliterate(ctx context.Context, in TransliterateInput) (string, error)
	// Detect はテキストの言語コードを検出する。
	Detect(ctx context.Context, text string) (string, error)
	// BreakSentence はテキストを文に分割し、各文の長さを返す。
	BreakSentence(ctx context.Context, in BreakSentenceInput) ([]int, error)
	// LookupDictionary は辞書検索を行い、上流が返した訳語の一覧を加工せずに返す。
	LookupDictionary(ctx context.Context, in DictionaryLookupInput) ([]json.RawMessage, error)
}

// TranslateInput は翻訳操作の入力。
type TranslateInput struct {
	// Text は翻訳対象のテキスト。
	Text string
	// From は翻訳元の言語コード。
	From string
	// To は翻訳先の言語コード。
	To string
}

// TransliterateInput は翻字操作の入力。
type TransliterateInput struct {
	// Text は翻字対象のテキスト。
	Text string
	// Language はテキストの言語コード。
	Language string
	// FromScript は入力テキストの文字体系（例: "Jpan"）。
	FromScript string
	// ToScript は出力の文字体系（例: "Latn"）。
	ToScript string
}

// BreakSentenceInput は文分割操作の入力。
type BreakSentenceInput struct {
	// Text は分割対象のテキスト。
	Text string
	// Language はテキストの言語コード。
	Language string
}

// DictionaryLookupInput は辞書検索操作の入力。
type DictionaryLookupInput struct {
	// Text は検索する語句。
	Text string
	// Language は語句の言語コード。
	Language string
}

// DictionaryTarget は辞書検索の訳語側の言語コードを返す。
// 英語の場合はスペイン語、それ以外は入力と同じ言語を使う。
func DictionaryTarget(language string) string {
	if language == "en" {
		return "es"
	}
	return language
}

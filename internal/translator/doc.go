// Package translator は上流の翻訳API（Azure Translator v3）呼び出しをカプセル化する。
//
// 言語一覧・翻訳・翻字・言語検出・文分割・辞書検索の6操作を Translator
// インターフェースとして定義し、HTTP層はこのインターフェースにのみ依存する。
// Client はその実装で、固定ヘッダーの付与、上流レスポンスからの必要フィールドの
// 抽出、失敗時の UpstreamError への変換を担当する。
package translator

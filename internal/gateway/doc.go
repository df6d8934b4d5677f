// Package gateway は翻訳ゲートウェイのHTTP層を提供する。
//
// 6つの固定エンドポイントでクライアント入力を検証・サニタイズし、
// translator.Translator を通じて上流の翻訳APIを1回だけ呼び出して、
// 必要なフィールドだけを持つJSONに整形して返す。
// 未知のルートは既知のエンドポイントを案内する404を返す。
package gateway

// Package httpclient は外部APIとのJSON形式のHTTP通信を行うクライアントを提供する。
//
// 固定ヘッダー（認証キー等）、クエリパラメータ、タイムアウトをまとめて扱い、
// 2xx以外のレスポンスは StatusError として呼び出し元に返す。
// 翻訳ゲートウェイが上流の翻訳APIを呼び出す際の通信パターンを統一する。
package httpclient

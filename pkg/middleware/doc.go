// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// リクエストIDの採番、パニックリカバリ、CORS設定など、
// 翻訳ゲートウェイの全エンドポイントで共通して使用するミドルウェアを含む。
package middleware

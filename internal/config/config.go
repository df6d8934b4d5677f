// Package config はプロセス起動時に一度だけ読み込む設定値を提供する。
//
// 上流翻訳APIの認証情報・エンドポイント・タイムアウト、リッスンポート、
// CORS許可オリジンを環境変数（および .env ファイル）から読み込む。
// 読み込んだ Config は値として各コンポーネントに渡し、以降は変更しない。
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultPort はPORT未設定時のリッスンポート。
	DefaultPort = "3000"
	// DefaultUpstreamTimeout はUPSTREAM_TIMEOUT未設定時の上流API呼び出しタイムアウト。
	DefaultUpstreamTimeout = 10 * time.Second
)

// Upstream は上流翻訳APIへの接続設定。
type Upstream struct {
	// Key はサブスクリプションキー（TRANSLATOR_KEY）。
	Key string
	// Region はサブスクリプションのリージョン（TRANSLATOR_LOCATION）。
	Region string
	// Endpoint はAPIのベースURL（TRANSLATOR_ENDPOINT）。
	Endpoint string
	// Timeout は1回の上流呼び出しのタイムアウト（UPSTREAM_TIMEOUT）。
	Timeout time.Duration
}

// Config はゲートウェイ全体の設定。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string
	// Upstream は上流翻訳APIへの接続設定。
	Upstream Upstream
	// AllowedOrigins はCORSを許可するオリジン。空の場合CORSは無効。
	AllowedOrigins []string
}

// LoadDotEnv は指定された .env ファイルを環境変数に読み込む。
// パス未指定時はカレントディレクトリの .env を対象とし、ファイルが存在しない場合は何もしない。
// 既に設定済みの環境変数は上書きしない。
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf(".envファイルの読み込みに失敗: path=%s: %w", p, err)
		}
	}
	return nil
}

// Load は環境変数から設定を読み込む。
func Load() (Config, error) {
	return load(os.Getenv)
}

// load はgetenvを使って設定を読み込む。テストから環境変数を差し替えるために分離している。
func load(getenv func(string) string) (Config, error) {
	getEnvOr := func(key, defaultValue string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return defaultValue
	}

	cfg := Config{
		Port: getEnvOr("PORT", DefaultPort),
		Upstream: Upstream{
			Key:      getenv("TRANSLATOR_KEY"),
			Region:   getenv("TRANSLATOR_LOCATION"),
			Endpoint: strings.TrimRight(getEnvOr("TRANSLATOR_ENDPOINT", ""), "/"),
			Timeout:  DefaultUpstreamTimeout,
		},
		AllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.Upstream.Endpoint == "" {
		return Config{}, errors.New("TRANSLATOR_ENDPOINTが設定されていません")
	}

	if raw := getEnvOr("UPSTREAM_TIMEOUT", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("UPSTREAM_TIMEOUTの解析に失敗: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("UPSTREAM_TIMEOUTは正の値である必要があります: %s", raw)
		}
		cfg.Upstream.Timeout = d
	}

	return cfg, nil
}

// splitList はカンマ区切りの文字列を空要素を除いて分割する。
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

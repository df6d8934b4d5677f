package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout はタイムアウト未指定時に使用するリクエストタイムアウト。
const DefaultTimeout = 30 * time.Second

// headerKeyTraceID はリクエストIDを上流APIに伝播するためのHTTPヘッダーキー。
const headerKeyTraceID = "X-ClientTraceId"

// ErrInvalidResponse はレスポンスボディをJSONとして解釈できなかったことを表す。
var ErrInvalidResponse = errors.New("レスポンスボディのデシリアライズに失敗")

// StatusError は上流APIが2xx以外のステータスコードを返したことを表す。
type StatusError struct {
	// StatusCode はHTTPステータスコード。
	StatusCode int
	// Body はレスポンスボディ。
	Body []byte
}

// Error はエラーメッセージを返す。
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTPエラー: status=%d, body=%s", e.StatusCode, string(e.Body))
}

// Client は外部API通信用のHTTPクライアント。
// 全リクエストに付与する固定ヘッダーとタイムアウトの設定を持つ。
type Client struct {
	// http は内部で使用するrestyクライアント。
	http *resty.Client
	// baseURL は接続先APIのベースURL。
	baseURL string
	// timeout はリクエスト全体のタイムアウト。
	timeout time.Duration
	// headers は全リクエストに付与するヘッダー。
	headers http.Header
}

// Option はClientの設定を変更する関数。
type Option func(*Client)

// WithTimeout はリクエストタイムアウトを設定する。0以下の値は無視する。
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHeader は全リクエストに付与するヘッダーを追加する。
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// New は新しいHTTPクライアントを生成する。
// baseURLには接続先APIのベースURL（例: "https://api.cognitive.microsofttranslator.com"）を指定する。
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		timeout: DefaultTimeout,
		headers: make(http.Header),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(c.timeout).
		SetHeader("Content-Type", "application/json")
	for key := range c.headers {
		c.http.SetHeader(key, c.headers.Get(key))
	}
	return c
}

// PostJSON は指定パスにJSONボディでPOSTリクエストを送信する。
// レスポンスボディをresultにデシリアライズする。
func (c *Client) PostJSON(ctx context.Context, path string, query url.Values, body any, result any) error {
	return c.doJSON(ctx, http.MethodPost, path, query, body, result)
}

// GetJSON は指定パスにGETリクエストを送信する。
// レスポンスボディをresultにデシリアライズする。
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, result any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, result)
}

// doJSON はJSON形式のHTTPリクエストを実行する共通処理。
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, result any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("リクエストボディのシリアライズに失敗: %w", err)
		}
		req.SetBody(jsonBody)
	}
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	// コンテキストからリクエストIDを伝播する
	if traceID, ok := ctx.Value(contextKeyTraceID).(string); ok && traceID != "" {
		req.SetHeader(headerKeyTraceID, traceID)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return &StatusError{StatusCode: resp.StatusCode(), Body: resp.Body()}
	}

	if result != nil {
		if err := json.Unmarshal(resp.Body(), result); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
	}
	return nil
}

// contextKey はコンテキストキーの型。
type contextKey string

// contextKeyTraceID はコンテキストにリクエストIDを格納するためのキー。
const contextKeyTraceID contextKey = "trace_id"

// WithTraceID はコンテキストにリクエストIDを設定する。
// 設定されたIDは X-ClientTraceId ヘッダーとして上流APIに送られる。
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, contextKeyTraceID, traceID)
}

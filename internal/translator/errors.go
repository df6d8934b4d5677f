package translator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/nao1215/translator/pkg/httpclient"
)

// ErrUnexpectedResponse は上流のレスポンスに期待したフィールドが無かったことを表す。
var ErrUnexpectedResponse = errors.New("上流レスポンスの形式が想定と異なる")

// UpstreamError は上流翻訳APIの呼び出しに失敗したことを表す。
type UpstreamError struct {
	// Op は失敗した操作名（例: "translate"）。
	Op string
	// Message は呼び出し元に返すメッセージ。上流がエラーメッセージを返した場合はそれを使う。
	Message string
	// Err は元のエラー。
	Err error
}

// Error はエラーメッセージを返す。
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返す。
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// upstreamErrorBody は上流APIのエラーレスポンスの形式。
// codeはTranslator本体では数値、API Managementの認証エラーでは文字列になるため読まない。
type upstreamErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// newUpstreamError はerrをUpstreamErrorに変換する。
func newUpstreamError(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Message: describe(err), Err: err}
}

// describe は呼び出し元に返すメッセージを組み立てる。
func describe(err error) string {
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		var body upstreamErrorBody
		if json.Unmarshal(statusErr.Body, &body) == nil && body.Error.Message != "" {
			return body.Error.Message
		}
		return fmt.Sprintf("Request failed with status code %d", statusErr.StatusCode)
	}

	if errors.Is(err, httpclient.ErrInvalidResponse) || errors.Is(err, ErrUnexpectedResponse) {
		return "Unexpected response from translation service"
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "Translation service request timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "Translation request was canceled"
	}
	return "Failed to reach translation service"
}

// ErrorMessage はerrから呼び出し元に返すメッセージを取り出す。
// UpstreamError以外のエラーには汎用メッセージを返す。
func ErrorMessage(err error) string {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.Message != "" {
		return upstreamErr.Message
	}
	return "Translation service error"
}

package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/nao1215/translator/internal/config"
	"github.com/nao1215/translator/pkg/httpclient"
)

// apiVersion は上流APIのバージョン。全リクエストのクエリに付与する。
const apiVersion = "3.0"

// 上流APIの操作名。UpstreamError.Op とログに使う。
const (
	OpLanguages        = "languages"
	OpTranslate        = "translate"
	OpTransliterate    = "transliterate"
	OpDetect           = "detect"
	OpBreakSentence    = "breaksentence"
	OpDictionaryLookup = "dictionary lookup"
)

// Client はAzure Translator v3 REST APIを呼び出す Translator の実装。
type Client struct {
	// http は上流API用のHTTPクライアント。
	http *httpclient.Client
}

var _ Translator = (*Client)(nil)

// NewClient は上流設定からClientを生成する。
// サブスクリプションキーとリージョンは全リクエストのヘッダーに付与される。
func NewClient(cfg config.Upstream) *Client {
	return &Client{
		http: httpclient.New(cfg.Endpoint,
			httpclient.WithTimeout(cfg.Timeout),
			httpclient.WithHeader("Ocp-Apim-Subscription-Key", cfg.Key),
			httpclient.WithHeader("Ocp-Apim-Subscription-Region", cfg.Region),
		),
	}
}

// textItem は上流APIのリクエストボディ要素。
type textItem struct {
	Text string `json:"text"`
}

// textBody は単一テキストのリクエストボディを組み立てる。
func textBody(text string) []textItem {
	return []textItem{{Text: text}}
}

// query はapi-versionと追加パラメータを持つクエリを組み立てる。
// kvはキーと値を交互に並べる。
func query(kv ...string) url.Values {
	q := url.Values{"api-version": {apiVersion}}
	for i := 0; i+1 < len(kv); i += 2 {
		q.Set(kv[i], kv[i+1])
	}
	return q
}

// Languages は言語コードから表示名へのマップを返す。
func (c *Client) Languages(ctx context.Context) (map[string]string, error) {
	var resp struct {
		Translation map[string]struct {
			Name       string `json:"name"`
			NativeName string `json:"nativeName"`
			Dir        string `json:"dir"`
		} `json:"translation"`
	}
	if err := c.http.GetJSON(ctx, "/languages", query(), &resp); err != nil {
		return nil, newUpstreamError(OpLanguages, err)
	}
	if resp.Translation == nil {
		return nil, newUpstreamError(OpLanguages, fmt.Errorf("%w: translationが無い", ErrUnexpectedResponse))
	}

	languages := make(map[string]string, len(resp.Translation))
	for code, lang := range resp.Translation {
		languages[code] = lang.Name
	}
	return languages, nil
}

// Translate はテキストを翻訳し、最初の翻訳結果を返す。
func (c *Client) Translate(ctx context.Context, in TranslateInput) (string, error) {
	var resp []struct {
		Translations []struct {
			Text string `json:"text"`
			To   string `json:"to"`
		} `json:"translations"`
	}
	if err := c.http.PostJSON(ctx, "/translate", query("from", in.From, "to", in.To), textBody(in.Text), &resp); err != nil {
		return "", newUpstreamError(OpTranslate, err)
	}
	if len(resp) == 0 || len(resp[0].Translations) == 0 {
		return "", newUpstreamError(OpTranslate, fmt.Errorf("%w: 翻訳結果が無い", ErrUnexpectedResponse))
	}
	return resp[0].Translations[0].Text, nil
}

// Transliterate はテキストを別の文字体系に翻字する。
func (c *Client) Transliterate(ctx context.Context, in TransliterateInput) (string, error) {
	var resp []struct {
		Text   string `json:"text"`
		Script string `json:"script"`
	}
	q := query("language", in.Language, "fromScript", in.FromScript, "toScript", in.ToScript)
	if err := c.http.PostJSON(ctx, "/transliterate", q, textBody(in.Text), &resp); err != nil {
		return "", newUpstreamError(OpTransliterate, err)
	}
	if len(resp) == 0 {
		return "", newUpstreamError(OpTransliterate, fmt.Errorf("%w: 翻字結果が無い", ErrUnexpectedResponse))
	}
	return resp[0].Text, nil
}

// Detect はテキストの言語コードを検出する。
func (c *Client) Detect(ctx context.Context, text string) (string, error) {
	var resp []struct {
		Language string  `json:"language"`
		Score    float64 `json:"score"`
	}
	if err := c.http.PostJSON(ctx, "/detect", query(), textBody(text), &resp); err != nil {
		return "", newUpstreamError(OpDetect, err)
	}
	if len(resp) == 0 {
		return "", newUpstreamError(OpDetect, fmt.Errorf("%w: 検出結果が無い", ErrUnexpectedResponse))
	}
	return resp[0].Language, nil
}

// BreakSentence はテキストを文に分割し、各文の長さを返す。
// in.Language は上流に送らず、上流側の自動判定に任せる。
func (c *Client) BreakSentence(ctx context.Context, in BreakSentenceInput) ([]int, error) {
	var resp []struct {
		SentLen []int `json:"sentLen"`
	}
	if err := c.http.PostJSON(ctx, "/breaksentence", query(), textBody(in.Text), &resp); err != nil {
		return nil, newUpstreamError(OpBreakSentence, err)
	}
	if len(resp) == 0 {
		return nil, newUpstreamError(OpBreakSentence, fmt.Errorf("%w: 分割結果が無い", ErrUnexpectedResponse))
	}
	if resp[0].SentLen == nil {
		return []int{}, nil
	}
	return resp[0].SentLen, nil
}

// LookupDictionary は辞書検索を行い、訳語の一覧を返す。
// 訳語側の言語は DictionaryTarget で決める。各訳語は上流のJSONのまま返す。
func (c *Client) LookupDictionary(ctx context.Context, in DictionaryLookupInput) ([]json.RawMessage, error) {
	var resp []struct {
		NormalizedSource string            `json:"normalizedSource"`
		DisplaySource    string            `json:"displaySource"`
		Translations     []json.RawMessage `json:"translations"`
	}
	q := query("from", in.Language, "to", DictionaryTarget(in.Language))
	if err := c.http.PostJSON(ctx, "/dictionary/lookup", q, textBody(in.Text), &resp); err != nil {
		return nil, newUpstreamError(OpDictionaryLookup, err)
	}
	if len(resp) == 0 {
		return nil, newUpstreamError(OpDictionaryLookup, fmt.Errorf("%w: 検索結果が無い", ErrUnexpectedResponse))
	}
	if resp[0].Translations == nil {
		return []json.RawMessage{}, nil
	}
	return resp[0].Translations, nil
}

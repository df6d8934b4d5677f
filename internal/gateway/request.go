package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// defaultSourceLanguage はsourceLanguage省略時の翻訳元言語。
const defaultSourceLanguage = "en"

// translateRequest は翻訳リクエストのJSON構造。
type translateRequest struct {
	// Text は翻訳対象のテキスト。
	Text string `json:"text" binding:"required"`
	// TargetLanguage は翻訳先の言語コード。
	TargetLanguage string `json:"targetLanguage" binding:"required,alpha,min=2,max=5"`
	// SourceLanguage は翻訳元の言語コード。省略時は defaultSourceLanguage。
	// 空文字列の指定は省略とは区別して検証エラーにするためポインタで受ける。
	SourceLanguage *string `json:"sourceLanguage" binding:"omitempty,alpha,min=2,max=5"`
}

// transliterateRequest は翻字リクエストのJSON構造。
type transliterateRequest struct {
	// Text は翻字対象のテキスト。
	Text string `json:"text" binding:"required"`
	// Language はテキストの言語コード。
	Language string `json:"language" binding:"required,alpha,min=2,max=5"`
	// FromScript は入力テキストの文字体系。
	FromScript string `json:"fromScript" binding:"required"`
	// ToScript は出力の文字体系。
	ToScript string `json:"toScript" binding:"required"`
}

// detectRequest は言語検出リクエストのJSON構造。
type detectRequest struct {
	// Text は検出対象のテキスト。
	Text string `json:"text" binding:"required"`
}

// breakSentenceRequest は文分割リクエストのJSON構造。
type breakSentenceRequest struct {
	// Text は分割対象のテキスト。
	Text string `json:"text" binding:"required"`
	// Language はテキストの言語コード。
	Language string `json:"language" binding:"required,alpha,min=2,max=5"`
}

// dictionaryLookupRequest は辞書検索リクエストのJSON構造。
type dictionaryLookupRequest struct {
	// Text は検索する語句。
	Text string `json:"text" binding:"required"`
	// Language は語句の言語コード。
	Language string `json:"language" binding:"required,alpha,min=2,max=5"`
}

// fieldError は検証エラー1件のJSON構造。
type fieldError struct {
	// Type はエラーの種類。フィールド単位の違反は "field"、ボディ全体の違反は "body"。
	Type string `json:"type"`
	// Value は違反した値。
	Value any `json:"value,omitempty"`
	// Msg は人間向けのエラーメッセージ。
	Msg string `json:"msg"`
	// Path はJSONフィールド名。
	Path string `json:"path,omitempty"`
	// Location は値の場所。常に "body"。
	Location string `json:"location"`
}

// fieldRule はフィールドごとのエラーメッセージ定義。
type fieldRule struct {
	// field は構造体のフィールド名。
	field string
	// path はJSONフィールド名。
	path string
	// required は未指定・空・型違いのときのメッセージ。
	required string
	// invalid は文字種違反のときのメッセージ。
	invalid string
	// length は長さ違反のときのメッセージ。
	length string
	// typeMismatch は文字列以外が渡されたときのメッセージ。
	typeMismatch string
}

var fieldRules = []fieldRule{
	{
		field:        "Text",
		path:         "text",
		required:     "Text is required",
		typeMismatch: "Text must be a string",
	},
	{
		field:        "TargetLanguage",
		path:         "targetLanguage",
		required:     "Target language must be a valid language code",
		invalid:      "Target language must be a valid language code",
		length:       "Target language code length is invalid",
		typeMismatch: "Target language must be a valid language code",
	},
	{
		field:        "SourceLanguage",
		path:         "sourceLanguage",
		required:     "Source language must be a valid language code",
		invalid:      "Source language must be a valid language code",
		length:       "Source language code length is invalid",
		typeMismatch: "Source language must be a valid language code",
	},
	{
		field:        "Language",
		path:         "language",
		required:     "Language code must be valid",
		invalid:      "Language code must be valid",
		length:       "Language code length is invalid",
		typeMismatch: "Language code must be valid",
	},
	{
		field:        "FromScript",
		path:         "fromScript",
		required:     "Source script is required",
		typeMismatch: "Source script is required",
	},
	{
		field:        "ToScript",
		path:         "toScript",
		required:     "Target script is required",
		typeMismatch: "Target script is required",
	},
}

// lookupRule は構造体フィールド名またはJSONフィールド名からルールを探す。
func lookupRule(name string) (fieldRule, bool) {
	for _, r := range fieldRules {
		if r.field == name || r.path == name {
			return r, true
		}
	}
	return fieldRule{}, false
}

// message はvalidatorのタグに対応するメッセージを返す。
func (r fieldRule) message(tag string) string {
	switch tag {
	case "alpha":
		if r.invalid != "" {
			return r.invalid
		}
	case "min", "max":
		if r.length != "" {
			return r.length
		}
	}
	return r.required
}

// bindRequest はリクエストボディをreqにデコードして検証する。
// 違反がある場合はその一覧を返す。空のボディは {} として検証する。
func bindRequest(c *gin.Context, req any) []fieldError {
	err := c.ShouldBindBodyWithJSON(req)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err != nil {
		return toFieldErrors(err)
	}

	body, _ := c.Get(gin.BodyBytesKey)
	raw, _ := body.([]byte)
	return explicitNulls(raw, req)
}

// explicitNulls は省略可能なフィールドに明示的に null が指定されたものを違反として返す。
// 省略可能なフィールドはポインタで受けるため、null と省略はデコード後に区別できない。
func explicitNulls(body []byte, req any) []fieldError {
	var fields map[string]json.RawMessage
	if len(body) == 0 || json.Unmarshal(body, &fields) != nil {
		return nil
	}

	typ := reflect.TypeOf(req)
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var out []fieldError
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Type.Kind() != reflect.Pointer {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if v, ok := fields[name]; !ok || string(v) != "null" {
			continue
		}
		rule, ok := lookupRule(f.Name)
		if !ok {
			rule = fieldRule{path: name, required: fmt.Sprintf("%s is invalid", name)}
		}
		out = append(out, fieldError{
			Type:     "field",
			Msg:      rule.message("alpha"),
			Path:     name,
			Location: "body",
		})
	}
	return out
}

// toFieldErrors はデコード・検証エラーをレスポンス用のエラー一覧に変換する。
func toFieldErrors(err error) []fieldError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		out := make([]fieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			rule, ok := lookupRule(fe.StructField())
			if !ok {
				rule = fieldRule{path: fe.Field(), required: fmt.Sprintf("%s is invalid", fe.Field())}
			}
			out = append(out, fieldError{
				Type:     "field",
				Value:    fe.Value(),
				Msg:      rule.message(fe.Tag()),
				Path:     rule.path,
				Location: "body",
			})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		rule, ok := lookupRule(typeErr.Field)
		msg := fmt.Sprintf("%s has an invalid type", typeErr.Field)
		if ok {
			msg = rule.typeMismatch
		}
		return []fieldError{{
			Type:     "field",
			Value:    typeErr.Value,
			Msg:      msg,
			Path:     typeErr.Field,
			Location: "body",
		}}
	}

	return []fieldError{{
		Type:     "body",
		Msg:      "Request body must be a valid JSON object",
		Location: "body",
	}}
}

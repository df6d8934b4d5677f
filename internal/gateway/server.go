package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/translator/internal/config"
	"github.com/nao1215/translator/internal/translator"
	"github.com/nao1215/translator/pkg/httpclient"
	"github.com/nao1215/translator/pkg/middleware"
)

// invalidRouteMessage は未知のルートに対して返すエラーメッセージ。
const invalidRouteMessage = "Invalid route, Please use endpoints like (/languages), (/translate) .."

// Server は翻訳ゲートウェイのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// translator は上流翻訳APIの操作。
	translator translator.Translator
}

// NewServer は新しいゲートウェイサーバーを生成する。
// trには上流翻訳APIの実装（本番では translator.Client）を渡す。
func NewServer(cfg config.Config, tr translator.Translator) *Server {
	router := gin.New()
	// 完全一致のルート以外はすべて404にするため、末尾スラッシュ等の自動リダイレクトは無効にする
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(middleware.CORS(cfg.AllowedOrigins))
	}

	s := &Server{
		router:     router,
		port:       cfg.Port,
		translator: tr,
	}
	s.setupRoutes()

	return s
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	s.router.GET("/languages", s.handleLanguages())
	s.router.POST("/translate", s.handleTranslate())
	s.router.POST("/transliterate", s.handleTransliterate())
	s.router.POST("/detect", s.handleDetect())
	s.router.POST("/breaksentence", s.handleBreakSentence())
	s.router.POST("/dictionarylookup", s.handleDictionaryLookup())

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": invalidRouteMessage})
	})
}

// translateResponse は翻訳のJSONレスポンス構造。
type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// transliterateResponse は翻字のJSONレスポンス構造。
type transliterateResponse struct {
	TransliteratedText string `json:"transliteratedText"`
}

// detectResponse は言語検出のJSONレスポンス構造。
type detectResponse struct {
	DetectedLanguage string `json:"detectedLanguage"`
}

// breakSentenceResponse は文分割のJSONレスポンス構造。
type breakSentenceResponse struct {
	Sentences []int `json:"sentences"`
}

// dictionaryLookupResponse は辞書検索のJSONレスポンス構造。
type dictionaryLookupResponse struct {
	DictionaryEntries []json.RawMessage `json:"dictionaryEntries"`
}

// handleLanguages は対応言語の一覧を返すハンドラを返す。
func (s *Server) handleLanguages() gin.HandlerFunc {
	return func(c *gin.Context) {
		languages, err := s.translator.Languages(upstreamContext(c))
		if err != nil {
			respondUpstreamError(c, "言語一覧取得エラー", err)
			return
		}
		c.JSON(http.StatusOK, languages)
	}
}

// handleTranslate はテキストを翻訳するハンドラを返す。
// text、sourceLanguage、targetLanguage の3つをサニタイズしてから上流に送る。
func (s *Server) handleTranslate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req translateRequest
		if errs := bindRequest(c, &req); errs != nil {
			respondValidationErrors(c, errs)
			return
		}

		source := defaultSourceLanguage
		if req.SourceLanguage != nil {
			source = *req.SourceLanguage
		}

		text, err := s.translator.Translate(upstreamContext(c), translator.TranslateInput{
			Text: Sanitize(req.Text),
			From: Sanitize(source),
			To:   Sanitize(req.TargetLanguage),
		})
		if err != nil {
			respondUpstreamError(c, "翻訳エラー", err)
			return
		}
		c.JSON(http.StatusOK, translateResponse{TranslatedText: text})
	}
}

// handleTransliterate はテキストを翻字するハンドラを返す。
// 入力はサニタイズせずにそのまま上流に送る。
func (s *Server) handleTransliterate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req transliterateRequest
		if errs := bindRequest(c, &req); errs != nil {
			respondValidationErrors(c, errs)
			return
		}

		text, err := s.translator.Transliterate(upstreamContext(c), translator.TransliterateInput{
			Text:       req.Text,
			Language:   req.Language,
			FromScript: req.FromScript,
			ToScript:   req.ToScript,
		})
		if err != nil {
			respondUpstreamError(c, "翻字エラー", err)
			return
		}
		c.JSON(http.StatusOK, transliterateResponse{TransliteratedText: text})
	}
}

// handleDetect はテキストの言語を検出するハンドラを返す。
func (s *Server) handleDetect() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req detectRequest
		if errs := bindRequest(c, &req); errs != nil {
			respondValidationErrors(c, errs)
			return
		}

		language, err := s.translator.Detect(upstreamContext(c), Sanitize(req.Text))
		if err != nil {
			respondUpstreamError(c, "言語検出エラー", err)
			return
		}
		c.JSON(http.StatusOK, detectResponse{DetectedLanguage: language})
	}
}

// handleBreakSentence はテキストを文に分割するハンドラを返す。
func (s *Server) handleBreakSentence() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req breakSentenceRequest
		if errs := bindRequest(c, &req); errs != nil {
			respondValidationErrors(c, errs)
			return
		}

		sentences, err := s.translator.BreakSentence(upstreamContext(c), translator.BreakSentenceInput{
			Text:     req.Text,
			Language: req.Language,
		})
		if err != nil {
			respondUpstreamError(c, "文分割エラー", err)
			return
		}
		c.JSON(http.StatusOK, breakSentenceResponse{Sentences: sentences})
	}
}

// handleDictionaryLookup は辞書検索を行うハンドラを返す。
func (s *Server) handleDictionaryLookup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dictionaryLookupRequest
		if errs := bindRequest(c, &req); errs != nil {
			respondValidationErrors(c, errs)
			return
		}

		entries, err := s.translator.LookupDictionary(upstreamContext(c), translator.DictionaryLookupInput{
			Text:     req.Text,
			Language: req.Language,
		})
		if err != nil {
			respondUpstreamError(c, "辞書検索エラー", err)
			return
		}
		c.JSON(http.StatusOK, dictionaryLookupResponse{DictionaryEntries: entries})
	}
}

// upstreamContext は上流呼び出し用のコンテキストを返す。
// クライアントの切断で上流呼び出しも中断され、リクエストIDが上流に伝播する。
func upstreamContext(c *gin.Context) context.Context {
	return httpclient.WithTraceID(c.Request.Context(), middleware.GetRequestID(c))
}

// respondValidationErrors は検証エラーの一覧を400で返す。
func respondValidationErrors(c *gin.Context, errs []fieldError) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

// respondUpstreamError は上流呼び出しの失敗をログに出力し、500で返す。
// 元のエラーはログにのみ出力し、クライアントには UpstreamError のメッセージだけを返す。
func respondUpstreamError(c *gin.Context, label string, err error) {
	log.Printf("[%s] %s: %v", middleware.GetRequestID(c), label, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": translator.ErrorMessage(err)})
}

// 翻訳ゲートウェイのエントリポイント。
// クライアントからのリクエストを検証・サニタイズし、Azure Translator v3 へ中継する。
package main

import (
	"log"

	"github.com/nao1215/translator/internal/config"
	"github.com/nao1215/translator/internal/gateway"
	"github.com/nao1215/translator/internal/translator"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf(".envの読み込みに失敗: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	client := translator.NewClient(cfg.Upstream)
	server := gateway.NewServer(cfg, client)

	log.Printf("翻訳ゲートウェイを起動します: :%s (upstream=%s, timeout=%s)", cfg.Port, cfg.Upstream.Endpoint, cfg.Upstream.Timeout)
	if err := server.Run(); err != nil {
		log.Fatalf("翻訳ゲートウェイの起動に失敗: %v", err)
	}
}

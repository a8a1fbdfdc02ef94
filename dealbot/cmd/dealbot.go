// Command-line entrypoint: run one product query through the full
// pipeline without the web layer.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"dealbot/dealbot/agents/composer"
	"dealbot/dealbot/agents/configs"
	"dealbot/dealbot/agents/extractor"
	"dealbot/dealbot/config"
	"dealbot/dealbot/marketplace"
	"dealbot/dealbot/pipeline"
	"dealbot/dealbot/services/llm"
	"dealbot/dealbot/services/scraper"
	"dealbot/dealbot/utils/color"
	"dealbot/dealbot/utils/logging"
)

func main() {
	logging.InitLogger()

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Println(color.ColorWarning("usage: dealbot <product query>"))
		fmt.Println("  e.g. dealbot Wild Stone Edge EDP Premium Perfume for Men, 100 Ml")
		os.Exit(1)
	}
	userInput := strings.Join(args, " ")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Println(color.ColorError("config error: " + err.Error()))
		os.Exit(1)
	}

	scr, err := scraper.NewScraper()
	if err != nil {
		logging.ErrorLogger.Error("playwright init error", zap.Error(err))
		fmt.Println(color.ColorError("playwright init error: " + err.Error()))
		os.Exit(1)
	}
	defer scr.Close()

	llmClient := llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel)
	agentCfg := configs.LoadConfig()

	pipe := pipeline.New(
		extractor.New(llmClient, agentCfg),
		marketplace.NewAdapter(marketplace.AmazonSite(cfg.AmazonBaseURL), scr, llmClient, nil),
		marketplace.NewAdapter(marketplace.FlipkartSite(cfg.FlipkartBaseURL), scr, llmClient, nil),
		composer.New(llmClient, agentCfg),
	)

	fmt.Println(color.ColorPrompt("query> ") + userInput)
	fmt.Println(color.ColorInfo("searching Amazon and Flipkart..."))

	reply := pipe.Process(context.Background(), userInput)
	fmt.Println()
	fmt.Println(color.ColorReply(reply))
}

package configs

import (
	"os"

	"github.com/magiconair/properties"
	"go.uber.org/zap"

	"dealbot/dealbot/utils/logging"
)

// AgentConfig carries the role/goal/backstory texts for both LLM agents
// and the task instruction issued to the marketplace scrapers. Values can
// be overridden through dealbot.properties; the defaults are the shipped
// prompts.
type AgentConfig struct {
	ExtractorRole      string
	ExtractorGoal      string
	ExtractorBackstory string

	ComposerRole      string
	ComposerGoal      string
	ComposerBackstory string

	Temperature float64
}

const defaultPropertiesFile = "dealbot/agents/configs/dealbot.properties"

// propertiesFile resolves the override file. The default is relative to
// the module root; AGENT_PROPERTIES_FILE points anywhere else.
func propertiesFile() string {
	if path := os.Getenv("AGENT_PROPERTIES_FILE"); path != "" {
		return path
	}
	return defaultPropertiesFile
}

func LoadConfig() *AgentConfig {
	cfg := &AgentConfig{
		ExtractorRole:      "Product Parser",
		ExtractorGoal:      "Extract product details from user input",
		ExtractorBackstory: "You analyze user queries to identify product names, quantities, and filters.",
		ComposerRole:       "Response Generator",
		ComposerGoal:       "Create personalized, user-friendly responses",
		ComposerBackstory: "You transform technical product information into friendly, " +
			"helpful responses that highlight the most relevant information for the user.",
		Temperature: 0.7,
	}

	props, err := properties.LoadFile(propertiesFile(), properties.UTF8)
	if err != nil {
		if logging.AppLogger != nil {
			logging.AppLogger.Info("agent properties not found, using defaults", zap.Error(err))
		}
		return cfg
	}

	cfg.ExtractorRole = props.GetString("extractor_role", cfg.ExtractorRole)
	cfg.ExtractorGoal = props.GetString("extractor_goal", cfg.ExtractorGoal)
	cfg.ExtractorBackstory = props.GetString("extractor_backstory", cfg.ExtractorBackstory)
	cfg.ComposerRole = props.GetString("composer_role", cfg.ComposerRole)
	cfg.ComposerGoal = props.GetString("composer_goal", cfg.ComposerGoal)
	cfg.ComposerBackstory = props.GetString("composer_backstory", cfg.ComposerBackstory)
	cfg.Temperature = props.GetFloat64("temperature", cfg.Temperature)

	return cfg
}

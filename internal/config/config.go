package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort         = "8080"
	DefaultOpenAIModel  = "gpt-4.1-mini"
	DefaultFromAddress  = "Portfolio Contact <onboarding@resend.dev>"
	defaultGeminiModels = "gemini-2.5-flash,gemini-2.0-flash,gemini-1.5-flash"
	defaultOrigins      = "http://localhost:5173,http://localhost:3000"
)

// Server holds everything the HTTP server reads from the environment.
type Server struct {
	Port           string
	Mode           string
	LogLevel       string
	AllowedOrigins []string

	GeminiAPIKey    string
	GeminiModels    []string
	OpenAIAPIKey    string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	OllamaHost      string
	OllamaModel     string
	Provider        string

	ResendAPIKey string
	ContactTo    string
	ContactFrom  string

	PortfolioData string
}

// LoadServer reads an optional .env file and then the process environment.
// Values already present in the environment win over the file.
func LoadServer(envFiles ...string) Server {
	_ = godotenv.Load(envFiles...)

	cfg := Server{
		Port:            getenv("PORT", DefaultPort),
		Mode:            os.Getenv("GIN_MODE"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		AllowedOrigins:  splitList(getenv("ALLOWED_ORIGINS", defaultOrigins)),
		GeminiAPIKey:    firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY")),
		GeminiModels:    splitList(getenv("GEMINI_MODELS", defaultGeminiModels)),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getenv("OPENAI_MODEL", DefaultOpenAIModel),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  os.Getenv("ANTHROPIC_MODEL"),
		OllamaHost:      os.Getenv("OLLAMA_HOST"),
		OllamaModel:     os.Getenv("OLLAMA_MODEL"),
		Provider:        strings.ToLower(os.Getenv("CHAT_PROVIDER")),
		ResendAPIKey:    os.Getenv("RESEND_API_KEY"),
		ContactTo:       os.Getenv("CONTACT_TO_EMAIL"),
		ContactFrom:     getenv("CONTACT_FROM_EMAIL", DefaultFromAddress),
		PortfolioData:   os.Getenv("PORTFOLIO_DATA"),
	}
	return cfg
}

// Development reports whether detailed errors may be returned to callers.
func (c Server) Development() bool {
	return c.Mode != "release"
}

// MailConfigured reports whether the contact form can deliver mail.
func (c Server) MailConfigured() bool {
	return c.ResendAPIKey != "" && c.ContactTo != ""
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

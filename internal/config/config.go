// Package config provides configuration for the interviewer.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// WelcomeSource selects where the first transcript message comes from.
type WelcomeSource string

const (
	// WelcomeSourceService uses the service-provided initial message, falling back
	// to FallbackWelcome when the service omits one.
	WelcomeSourceService WelcomeSource = "service"
	// WelcomeSourceLocal always uses the locally configured welcome script.
	WelcomeSourceLocal WelcomeSource = "local"
)

// DefaultSentinelPhrase is the phrase the assessment service uses to end an interview.
const DefaultSentinelPhrase = "that concludes our interview"

// DefaultLocalWelcome is the welcome script used when WelcomeSource is local.
const DefaultLocalWelcome = `Hello and welcome!

My name is Alex, and I'll be your AI interviewer for this session. My purpose is to help assess your skills and understanding of Microsoft Excel.

I will ask you a series of questions that will progress in difficulty. Please take your time to think through your answers. There's no need to rush.

When you are ready to begin the interview, simply type "Start".`

// DefaultFallbackWelcome is used when the service does not send an initial message.
const DefaultFallbackWelcome = `Hello and welcome! When you are ready to begin the interview, simply type "Start".`

// Config holds the interviewer configuration.
type Config struct {
	// Assessment service client
	AssessmentURL  string
	RequestTimeout time.Duration

	// Session orchestration
	SentinelPhrases []string
	WelcomeSource   WelcomeSource
	LocalWelcome    string
	FallbackWelcome string
	PolicyFile      string

	// Gateway
	GatewayPort int

	// Assessor (stand-in assessment service)
	AssessorPort          int
	AssessorDatabaseURL   string
	AssessorQuestionCount int
	AssessorInterviewer   string

	// Logging
	LogLevel  string
	LogFormat string

	// Metrics
	OTelEnabled  bool
	OTelEndpoint string
	OTelInsecure bool
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		AssessmentURL:         getEnv("INTERVIEWER_ASSESSMENT_URL", "http://localhost:8080/api/v1"),
		RequestTimeout:        time.Duration(getEnvInt("INTERVIEWER_REQUEST_TIMEOUT_MS", 60000)) * time.Millisecond,
		SentinelPhrases:       getEnvList("INTERVIEWER_SENTINEL_PHRASES", []string{DefaultSentinelPhrase}),
		WelcomeSource:         WelcomeSource(getEnv("INTERVIEWER_WELCOME_SOURCE", string(WelcomeSourceService))),
		LocalWelcome:          getEnv("INTERVIEWER_LOCAL_WELCOME", DefaultLocalWelcome),
		FallbackWelcome:       getEnv("INTERVIEWER_FALLBACK_WELCOME", DefaultFallbackWelcome),
		PolicyFile:            getEnv("INTERVIEWER_POLICY_FILE", ""),
		GatewayPort:           getEnvInt("INTERVIEWER_GATEWAY_PORT", 8090),
		AssessorPort:          getEnvInt("ASSESSOR_PORT", 8080),
		AssessorDatabaseURL:   getEnv("ASSESSOR_DATABASE_URL", "file:assessor.db?cache=shared&mode=rwc"),
		AssessorQuestionCount: getEnvInt("ASSESSOR_QUESTION_COUNT", 4),
		AssessorInterviewer:   getEnv("ASSESSOR_INTERVIEWER", "scripted"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "text"),
		OTelEnabled:           getEnvBool("OTEL_ENABLED", false),
		OTelEndpoint:          getEnv("OTEL_ENDPOINT", ""),
		OTelInsecure:          getEnvBool("OTEL_INSECURE", false),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvList splits a comma separated variable, dropping blank entries.
func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

package config

import (
	"os"
	"strconv"
)

// Config collects everything the server reads from the environment.
// Model and vocabulary paths point at artifacts exported by the training
// process; they are loaded exactly once at startup.
type Config struct {
	Port      string
	ModelPath string
	VocabPath string

	// Optional ONNX runtime tuning. Empty values fall back to the
	// runtime defaults baked into the exported model.
	ORTLibraryPath  string
	ModelInputName  string
	ModelOutputName string

	// Optional report-collaborator infrastructure. Each one is enabled
	// only when its address/name is set.
	ValkeyAddr      string
	ValkeyPassword  string
	ValkeyTLS       bool
	KafkaBroker     string
	KafkaTopic      string
	ReportsTable    string
	NotifyThreshold int64
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func FromEnv() Config {
	threshold, err := strconv.ParseInt(getEnv("REPORT_NOTIFY_THRESHOLD", "1"), 10, 64)
	if err != nil || threshold < 0 {
		threshold = 1
	}

	return Config{
		Port:            getEnv("PORT", "8000"),
		ModelPath:       getEnv("MODEL_PATH", "artifacts/model_w2v_03.onnx"),
		VocabPath:       getEnv("VOCAB_PATH", "artifacts/tokenizer_word_index.json"),
		ORTLibraryPath:  os.Getenv("ORT_LIBRARY_PATH"),
		ModelInputName:  getEnv("MODEL_INPUT_NAME", "input"),
		ModelOutputName: getEnv("MODEL_OUTPUT_NAME", "output"),
		ValkeyAddr:      os.Getenv("VALKEY_INIT_ADDRESS"),
		ValkeyPassword:  os.Getenv("VALKEY_PASSWORD"),
		ValkeyTLS:       os.Getenv("VALKEY_TLS") == "true",
		KafkaBroker:     os.Getenv("KAFKA_BROKER"),
		KafkaTopic:      getEnv("KAFKA_REPORT_TOPIC", "sentiment-report-alerts"),
		ReportsTable:    os.Getenv("REPORTS_TABLE"),
		NotifyThreshold: threshold,
	}
}

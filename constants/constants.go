package constants

import "os"

func getEnvOr(key string, fallback string) string {
	val := os.Getenv(key)
	if val != "" {
		return val
	}
	return fallback
}

func GetLogLevel() string {
	return getEnvOr("LOG_LEVEL", "info")
}

func GetServeAddr() string {
	return getEnvOr("VEXVOICE_ADDR", ":8080")
}

// GetDynamoEndpoint returns "" when scores should be kept in memory.
func GetDynamoEndpoint() string {
	return os.Getenv("DYNAMODB_ENDPOINT")
}

func GetDynamoTable() string {
	return getEnvOr("DYNAMODB_TABLE", "vexvoice-scores")
}

func GetAWSRegion() string {
	return getEnvOr("AWS_REGION", "localhost")
}

const DefaultStaveWidth = 400

const DefaultStaveSpacing = 120

const DefaultBPM = 120

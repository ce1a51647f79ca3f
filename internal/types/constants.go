package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// AllowedOrigins is the CORS allow-list: the local web client by default,
// extended through CLIENT_URL and the comma-separated ALLOWED_ORIGINS.
var AllowedOrigins = allowedOrigins()

func allowedOrigins() []string {
	origins := []string{"http://localhost:8080"}

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}

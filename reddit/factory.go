package reddit

import (
	"fmt"

	"github.com/spf13/viper"
)

// NewFetcher selects the fetcher implementation based on configuration.
// Mode "api" uses the OAuth API, "public" the unauthenticated JSON endpoints
// and "mock" fabricated data. With no explicit mode, "api" is picked when
// credentials are configured, "public" otherwise.
func NewFetcher() (Fetcher, error) {
	mode := viper.GetString("reddit.mode")
	userAgent := viper.GetString("reddit.userAgent")

	if mode == "" {
		if viper.GetString("reddit.clientId") != "" {
			mode = "api"
		} else {
			mode = "public"
		}
	}

	switch mode {
	case "api":
		return NewAPIClient(
			viper.GetString("reddit.clientId"),
			viper.GetString("reddit.clientSecret"),
			viper.GetString("reddit.username"),
			viper.GetString("reddit.password"),
			userAgent,
		)
	case "public":
		return NewPublicClient(userAgent)
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown reddit.mode: %s (use 'api', 'public', or 'mock')", mode)
	}
}

package guybot

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	BotTokenEnv       = "DISCORD_TOKEN"
	LegacyBotTokenEnv = "BOT_TOKEN"
)

// LoadEnv adds variables from a .env file in the working directory,
// if there is one.
func LoadEnv() {
	// This will only add new environment variables,
	// and will NOT overwrite existing ones.
	if err := godotenv.Load( /*.env by default*/ ); err != nil {
		log.Debugf("No .env loaded: %v", err)
	}
}

// BotToken retrieves the bot's auth token from the environment.
func BotToken() (string, error) {
	for _, key := range []string{BotTokenEnv, LegacyBotTokenEnv} {
		token, found := os.LookupEnv(key)
		if !found {
			continue
		}
		if token == "" {
			log.Warnf("%s is the empty string", key)
			continue
		}
		return token, nil
	}
	return "", fmt.Errorf("%s not found in environment", BotTokenEnv)
}

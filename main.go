package main

import (
	"meme-bot/bot"
	"meme-bot/handlers"
)

func main() {
	bot.Run(handlers.Register)
}

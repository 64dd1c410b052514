package main

import (
	"github.com/joho/godotenv"

	"adminkit_backend/internal/app"
)

func main() {
	// .env опционален: в проде переменные приходят из окружения.
	_ = godotenv.Load()

	app.Run()
}

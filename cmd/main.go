package main

import (
	"github.com/joho/godotenv"

	"github.com/todoflow-labs/list-service/internal/app"
)

func main() {
	_ = godotenv.Load()
	app.Run()
}

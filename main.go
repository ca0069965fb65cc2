package main

import (
	"github.com/joho/godotenv"
	"github.com/ngyoon95/FSND-Multi-User-Blog/server"
)

func main() {
	// a local .env file is optional; real deployments set env vars directly
	_ = godotenv.Load()

	server.RunServer()
}

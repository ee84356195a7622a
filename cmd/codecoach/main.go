package main

import (
	"github.com/SaaiAravindhRaja/CodeCoach/internal/server"
)

func main() {
	server.StartGinServer()
}

package main

import (
	_ "github.com/triswaplabs/triswap-backend/docs" // swagger docs
	"github.com/triswaplabs/triswap-backend/internal/server"
)

// @title TriSwap Backend API
// @version 1.0
// @description Cross-chain atomic swap order lifecycle service
// @BasePath /api/v1
func main() {
	server.Init()
}

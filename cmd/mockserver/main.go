// mockserver runs the in-memory development backend on a local port so
// the client can be exercised without the real API.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/logger"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/mockapi"
)

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	secret := flag.String("jwt-secret", "dev-secret", "HS256 signing secret for issued tokens")
	flag.Parse()

	if err := logger.Init(&logger.Config{Level: "info", ServiceName: "mockserver", Development: true}); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(gin.ReleaseMode)
	server := mockapi.NewServer(*secret)
	router := mockapi.Router(server)

	addr := fmt.Sprintf(":%d", *port)
	logger.Get().Sugar().Infof("mock backend listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

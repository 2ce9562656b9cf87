package app

import (
	"fmt"
	"os"

	"go-hrms/internal/docstore"
	"go-hrms/internal/shared/connection"

	"github.com/gin-gonic/gin"
)

func BuildApp(router *gin.Engine) error {
	// 1. Setup Infrastructure
	store, err := buildStore()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	// Register Modules & Routes
	return registerModules(router, store, redisClient)
}

// buildStore selects the document store backend. "memory" is for local
// runs without a Datastore emulator; anything else means Cloud Datastore.
func buildStore() (docstore.Client, error) {
	if os.Getenv("DOCSTORE_BACKEND") == "memory" {
		return docstore.NewMemoryClient(), nil
	}

	projectID := os.Getenv("DATASTORE_PROJECT_ID")
	if projectID == "" {
		return nil, fmt.Errorf("DATASTORE_PROJECT_ID is required")
	}

	dsClient, err := connection.ConnectDatastoreWithRetry(projectID, 5)
	if err != nil {
		return nil, err
	}
	return docstore.NewDatastoreClient(dsClient), nil
}

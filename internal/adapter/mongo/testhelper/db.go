// Package testhelper provides a shared MongoDB test instance backed by
// testcontainers. Each test gets its own database so parallel tests never
// see each other's documents.
package testhelper

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/foodi-app/foodi-backend/internal/adapter/mongo"
	"github.com/foodi-app/foodi-backend/internal/config"
)

var (
	once      sync.Once
	sharedURI string
	initErr   error
)

// SetupTestMongo starts a shared MongoDB container (once for the entire test
// run) and returns a Client bound to a database unique to the test. The
// client is closed and the database dropped via t.Cleanup; the container
// lives until the process exits.
func SetupTestMongo(t *testing.T) *mongo.Client {
	t.Helper()

	once.Do(func() {
		sharedURI, initErr = startContainer()
	})
	if initErr != nil {
		t.Fatalf("testhelper: failed to setup test mongo: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbName := "testdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	client, err := mongo.NewClient(ctx, config.MongoConfig{
		URI:            sharedURI,
		Database:       dbName,
		ConnectTimeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("testhelper: failed to connect to test mongo: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Database().Drop(ctx)
		_ = client.Close(ctx)
	})

	return client
}

func startContainer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForLog("Waiting for connections").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	return fmt.Sprintf("mongodb://%s:%s", host, port.Port()), nil
}

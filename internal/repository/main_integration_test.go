//go:build integration

package repository

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"testing"

	"symbiomatch-backend/internal/testutils"
)

// TestMain ensures the shared Postgres container is removed even when the run is interrupted
func TestMain(m *testing.M) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Received interrupt signal, cleaning up Docker containers...")
		testutils.CleanupSharedContainer()
		os.Exit(1)
	}()

	code := m.Run()

	log.Println("Tests completed, cleaning up Docker containers...")
	testutils.CleanupSharedContainer()
	os.Exit(code)
}

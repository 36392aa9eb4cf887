package testutils

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"testing"
	"time"

	"symbiomatch-backend/internal/config"
	"symbiomatch-backend/internal/database"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for readiness ping
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ------------------------------
// Shared, process-wide resources
// ------------------------------
var (
	sharedOnce     sync.Once
	sharedInitErr  error
	sharedPool     *dockertest.Pool
	sharedResource *dockertest.Resource
	sharedDB       *gorm.DB
	sharedConfig   *config.Config
)

// Tables in child-first order, so plain deletes never trip a foreign key
var cleanupOrder = []string{
	"user_matches",
	"company_matches",
	"matches",
	"materials",
	"products",
	"users",
	"companies",
	"locations",
}

// ------------------------------
// Base suite types
// ------------------------------
type BaseTestSuite struct {
	suite.Suite
	DB       *gorm.DB
	Config   *config.Config
	pool     *dockertest.Pool
	resource *dockertest.Resource
}

// ------------------------------
// Public helpers
// ------------------------------

// SetupTestSuite initializes (once) the shared Postgres container and returns a per-suite wrapper.
// Call this in your tests before using the DB.
func SetupTestSuite(t *testing.T) *BaseTestSuite {
	sharedOnce.Do(func() { sharedInitErr = initSharedPGContainer() })
	if sharedInitErr != nil {
		t.Fatalf("failed to initialize shared test container: %v", sharedInitErr)
	}
	return &BaseTestSuite{
		DB:       sharedDB,
		Config:   sharedConfig,
		pool:     sharedPool,
		resource: sharedResource,
	}
}

// SetupSQLiteSuite returns a suite backed by a private in-memory SQLite database with
// foreign keys enforced and the schema migrated.
func SetupSQLiteSuite(t *testing.T) *BaseTestSuite {
	return &BaseTestSuite{
		DB: NewSQLiteDB(t),
		Config: &config.Config{
			Environment: "test",
			LogLevel:    "debug",
		},
	}
}

// NewSQLiteDB opens a fresh in-memory database. A single connection keeps the database
// alive for the whole test, so every statement of a transaction must run on that transaction.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), &database.Options{
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Hour,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CleanupSharedContainer tears down Docker resources when the whole test run ends.
// Called from TestMain of the integration suites
func CleanupSharedContainer() {
	if sharedPool == nil && sharedDB == nil {
		return
	}
	log.Println("Starting Docker container cleanup...")
	if sharedDB != nil {
		if sqlDB, err := sharedDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if sharedPool != nil && sharedResource != nil {
		log.Printf("Purging Docker container: %s", sharedResource.Container.Name)
		if err := sharedPool.Purge(sharedResource); err != nil {
			log.Printf("WARN: could not purge shared resource: %v", err)
		} else {
			log.Println("Successfully purged Docker container")
		}
		// Reset shared variables
		sharedResource = nil
		sharedPool = nil
		sharedDB = nil
	}
}

// ------------------------------
// Suite lifecycle hooks
// ------------------------------

func (s *BaseTestSuite) SetupTest()    { s.CleanTestDB() }
func (s *BaseTestSuite) TearDownTest() { s.CleanTestDB() }

// TeardownTestSuite is per *suite* (not process). We only clean DB here;
// Docker container persists across suites for speed.
func (s *BaseTestSuite) TeardownTestSuite() { s.CleanTestDB() }

// CleanTestDB empties every table of the schema
func (s *BaseTestSuite) CleanTestDB() {
	if s.DB == nil {
		return
	}
	m := s.DB.Migrator()

	if s.DB.Dialector.Name() == "postgres" {
		s.DB.Exec(`SET session_replication_role = replica;`)
		for _, t := range cleanupOrder {
			if m.HasTable(t) {
				s.DB.Exec(`TRUNCATE TABLE "` + t + `" RESTART IDENTITY CASCADE;`)
			}
		}
		s.DB.Exec(`SET session_replication_role = DEFAULT;`)
		return
	}

	for _, t := range cleanupOrder {
		if m.HasTable(t) {
			s.DB.Exec(`DELETE FROM "` + t + `";`)
		}
	}
}

// ------------------------------
// Shared Postgres container init
// ------------------------------

func initSharedPGContainer() error {
	cfg := &config.Config{
		Environment:      "test",
		LogLevel:         "debug",
		DatabaseHost:     "127.0.0.1",
		DatabaseUser:     "symbio",
		DatabasePassword: "symbio",
		DatabaseName:     "symbiomatch_test",
		DatabaseSSLMode:  "disable",
		DatabaseLogLevel: "silent",
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		return fmt.Errorf("could not connect to docker: %w", err)
	}
	pool.MaxWait = 2 * time.Minute
	sharedPool = pool

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=" + cfg.DatabaseUser,
			"POSTGRES_PASSWORD=" + cfg.DatabasePassword,
			"POSTGRES_DB=" + cfg.DatabaseName,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return fmt.Errorf("could not start postgres: %w", err)
	}
	sharedResource = resource
	_ = resource.Expire(600)

	cfg.DatabasePort = resource.GetPort("5432/tcp")
	cfg.DatabaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.DatabaseUser, cfg.DatabasePassword, cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseName, cfg.DatabaseSSLMode)

	// database/sql ping first; gorm only connects once the server accepts sessions
	if err := pool.Retry(func() error {
		std, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer std.Close()
		return std.Ping()
	}); err != nil {
		return fmt.Errorf("postgres never became ready: %w", err)
	}

	db, err := database.Initialize(cfg.DatabaseURL, &database.Options{
		LogLevel: database.ParseLogLevel(cfg.DatabaseLogLevel),
	})
	if err != nil {
		return fmt.Errorf("could not initialize test database: %w", err)
	}
	if err := verifySchema(db); err != nil {
		return err
	}

	sharedDB = db
	sharedConfig = cfg
	log.Printf("Shared Postgres ready on port %s", cfg.DatabasePort)
	return nil
}

// verifySchema fails when migration left any table of the model out
func verifySchema(db *gorm.DB) error {
	m := db.Migrator()
	for _, t := range cleanupOrder {
		if !m.HasTable(t) {
			return fmt.Errorf("table %s missing after migration", t)
		}
	}
	return nil
}

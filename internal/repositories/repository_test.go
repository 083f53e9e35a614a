package repositories

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupTestDB creates a mock database and a development logger
func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *zap.Logger) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	return db, mock, logger
}

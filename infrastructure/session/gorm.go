package session

import (
	"context"
	"time"

	"github.com/prasetyowira/qrgen/constant"
	appLogger "github.com/prasetyowira/qrgen/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// GormStore is a SQLite-backed session Store for deployments where the
// paid flag must survive process restarts.
type GormStore struct {
	db *gorm.DB
}

// SessionEntry is the GORM model for a single session value.
type SessionEntry struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"uniqueIndex:idx_session_name;not null"`
	Name      string `gorm:"uniqueIndex:idx_session_name;not null"`
	Value     string
	UpdatedAt time.Time
}

// GormLogger implements GORM's logger.Interface
type GormLogger struct{}

// LogMode implements the log.Interface method
func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return l
}

// Info logs info messages
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxInfo(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Warn logs warn messages
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxWarn(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Error logs error messages
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxError(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeSessionDBQuery,
			Message: msg,
			Type:    constant.ErrTypeDB,
		},
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Trace logs SQL operations
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil {
		appLogger.CtxError(ctx, "SQL error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeSessionDBQuery,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataElapsed: elapsed.String(),
				constant.DataRows:    rows,
				constant.DataSQL:     sql,
			},
		})
		return
	}

	appLogger.CtxDebug(ctx, "SQL query", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataElapsed: elapsed.String(),
			constant.DataRows:    rows,
			constant.DataSQL:     sql,
		},
	})
}

// NewGormStore opens (or creates) the session database at dbPath.
func NewGormStore(dbPath string) (*GormStore, error) {
	ctx := appLogger.NewRequestContext()

	appLogger.CtxDebug(ctx, "Opening session database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxSessionStore,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: &GormLogger{},
	})
	if err != nil {
		appLogger.CtxError(ctx, "Failed to open session database", appLogger.LoggerInfo{
			ContextFunction: constant.CtxSessionStore,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeSessionDBOpen,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataPath: dbPath,
			},
		})
		return nil, err
	}

	if err := db.AutoMigrate(&SessionEntry{}); err != nil {
		appLogger.CtxError(ctx, "Failed to migrate session schema", appLogger.LoggerInfo{
			ContextFunction: constant.CtxSessionStore,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeSessionDBMigrate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	return &GormStore{db: db}, nil
}

// Get retrieves a session value.
func (s *GormStore) Get(sessionID, key string) (string, bool) {
	var entry SessionEntry
	result := s.db.Raw(`SELECT id, session_id, name, value FROM session_entries WHERE session_id = ? AND name = ? LIMIT 1`,
		sessionID, key).Scan(&entry)
	if result.Error != nil || result.RowsAffected == 0 {
		return "", false
	}
	return entry.Value, true
}

// Set stores a session value, replacing any previous one.
func (s *GormStore) Set(sessionID, key, value string) {
	result := s.db.Exec(`INSERT INTO session_entries (session_id, name, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		sessionID, key, value, time.Now())

	if result.Error != nil {
		appLogger.Error("Failed to write session value", appLogger.LoggerInfo{
			ContextFunction: constant.CtxSessionStore,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeSessionDBWrite,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataSessionID: sessionID,
			},
		})
	}
}

// Delete removes a session value.
func (s *GormStore) Delete(sessionID, key string) {
	result := s.db.Exec(`DELETE FROM session_entries WHERE session_id = ? AND name = ?`, sessionID, key)

	if result.Error != nil {
		appLogger.Error("Failed to delete session value", appLogger.LoggerInfo{
			ContextFunction: constant.CtxSessionStore,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeSessionDBWrite,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataSessionID: sessionID,
			},
		})
	}
}

// Close closes the database connection.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

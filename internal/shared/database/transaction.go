package database

import (
	"context"
	"errors"

	"github.com/changhyeonkim/ambient-toolbox/internal/shared/logger"
	"gorm.io/gorm"
)

var ErrNilTransactionFunc = errors.New("database: transaction function is nil")

// WithTransaction runs fn in a transaction bound to ctx. fn returning an error
// rolls back, nil commits. tx already carries ctx, and audit.Saver reads the
// actor from the ctx passed alongside it.
//
//	err := database.WithTransaction(ctx, db, func(tx *gorm.DB) error {
//	    return saver.Save(ctx, tx, note, audit.SaveOptions{})
//	})
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(*gorm.DB) error) error {
	if fn == nil {
		return ErrNilTransactionFunc
	}
	if ctx == nil {
		ctx = context.Background()
	}

	err := db.WithContext(ctx).Transaction(fn)
	if err != nil {
		logger.FromContext(ctx).Debug("트랜잭션 롤백", "error", err)
	}
	return err
}

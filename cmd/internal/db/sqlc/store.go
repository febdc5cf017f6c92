package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Store предоставляет все функции для выполнения запросов и транзакций.
type Store interface {
	Querier
	ExecTx(ctx context.Context, fn func(*Queries) error) error
}

// SQLStore предоставляет все функции для выполнения SQL-запросов и транзакций.
type SQLStore struct {
	*Queries
	db *sql.DB
}

// NewStore создает новый Store поверх открытого соединения с базой.
func NewStore(db *sql.DB) Store {
	return &SQLStore{
		db:      db,
		Queries: New(db),
	}
}

// ExecTx выполняет функцию внутри одной транзакции базы данных.
// При ошибке транзакция откатывается целиком.
func (store *SQLStore) ExecTx(ctx context.Context, fn func(*Queries) error) error {
	tx, err := store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	q := New(tx)
	err = fn(q)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

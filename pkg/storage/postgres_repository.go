package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type PostgresRepository struct {
	db  *pgxpool.Pool
	loc *time.Location
}

func NewPostgresRepository(db *pgxpool.Pool, loc *time.Location) *PostgresRepository {
	return &PostgresRepository{db: db, loc: loc}
}

func (r *PostgresRepository) withTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		// The Rollback will be a no-op if the transaction was already committed
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Store(ctx context.Context, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	query := `INSERT INTO expense (
                     id,
                     user_id,
                     full_time,
                     day,
                     month,
                     year,
                     description,
                     category,
                     amount,
                     is_wasteful
				 ) VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	return r.withTransaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, row := range rows {
			batch.Queue(query,
				row.ID,
				row.UserId,
				row.FullTime,
				row.Day,
				row.Month,
				row.Year,
				row.Description,
				row.Category,
				row.Amount,
				row.IsWasteful,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			err := fmt.Errorf("could not store expenses: %w", err)
			log.Error(err)
			return err
		}
		return nil
	})
}

func (r *PostgresRepository) Delete(ctx context.Context, row Row) error {
	query := `DELETE FROM expense WHERE user_id = $1 AND id = $2::uuid`
	result, err := r.db.Exec(ctx, query, row.UserId, row.ID)
	if err != nil {
		err := fmt.Errorf("could not delete expense: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrRowNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, userId int, from, to time.Time) ([]Row, error) {
	query := `SELECT id::text, user_id, full_time, day, month, year, description, category, amount, is_wasteful
			  FROM expense
			  WHERE user_id = $1
			    AND full_time >= $2
			    AND full_time < $3
			  ORDER BY full_time, seq`

	dbRows, err := r.db.Query(ctx, query, userId, from, to)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer dbRows.Close()

	var rows []Row
	for dbRows.Next() {
		var row Row
		if err := dbRows.Scan(
			&row.ID,
			&row.UserId,
			&row.FullTime,
			&row.Day,
			&row.Month,
			&row.Year,
			&row.Description,
			&row.Category,
			&row.Amount,
			&row.IsWasteful,
		); err != nil {
			return nil, err
		}
		row.FullTime = row.FullTime.In(r.loc)
		rows = append(rows, row)
	}
	return rows, dbRows.Err()
}

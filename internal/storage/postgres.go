package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mosque/internal/models"
)

const selectMosques = `
	SELECT id, name, lat, lng, COALESCE(district, '')
	FROM mosques
	ORDER BY name, id`

// querier is the subset of *pgxpool.Pool the source needs.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads the collection from a mosques table.
type PostgresSource struct {
	db querier
}

func NewPostgresSource(db querier) *PostgresSource {
	return &PostgresSource{db: db}
}

// ConnectPostgres opens a pool for connString and checks it is reachable.
func ConnectPostgres(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	return pool, nil
}

func (p *PostgresSource) Load(ctx context.Context) ([]models.Mosque, error) {
	rows, err := p.db.Query(ctx, selectMosques)
	if err != nil {
		return nil, fmt.Errorf("error querying mosques: %w", err)
	}
	defer rows.Close()

	var mosques []models.Mosque
	for rows.Next() {
		var m models.Mosque
		if err := rows.Scan(&m.ID, &m.Name, &m.Lat, &m.Lng, &m.District); err != nil {
			return nil, fmt.Errorf("error scanning mosque: %w", err)
		}
		mosques = append(mosques, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mosques: %w", err)
	}

	log.Printf("Loaded %d mosques from postgres", len(mosques))
	return mosques, nil
}

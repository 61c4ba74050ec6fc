package patient

import (
	"context"
	"database/sql"
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// patientRepoSQLite is the embedded store used when no DATABASE_URL is
// configured. SQLite works best with a single connection; the caller
// configures that on the *sql.DB (see db.OpenSQLite).
type patientRepoSQLite struct{ db *sql.DB }

// NewRepoSQLite returns a SQLite-backed Repository, creating the patients
// table if it does not exist yet.
func NewRepoSQLite(db *sql.DB) (Repository, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS patients (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			city TEXT NOT NULL,
			age INTEGER NOT NULL,
			gender TEXT NOT NULL,
			height REAL NOT NULL,
			weight REAL NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return nil, err
	}
	return &patientRepoSQLite{db: db}, nil
}

func (r *patientRepoSQLite) Create(ctx context.Context, p *Patient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO patients (id, name, city, age, gender, height, weight)
		VALUES (?,?,?,?,?,?,?)`,
		p.ID, p.Name, p.City, p.Age, p.Gender, p.Height, p.Weight)
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return ErrDuplicateID
	}
	return err
}

func (r *patientRepoSQLite) Get(ctx context.Context, id string) (*Patient, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+patientCols+` FROM patients WHERE id = ?`, id)
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.City, &p.Age, &p.Gender, &p.Height, &p.Weight,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *patientRepoSQLite) Update(ctx context.Context, p *Patient) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE patients SET name=?, city=?, age=?, gender=?, height=?, weight=?, updated_at=CURRENT_TIMESTAMP
		WHERE id = ?`,
		p.Name, p.City, p.Age, p.Gender, p.Height, p.Weight, p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *patientRepoSQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *patientRepoSQLite) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+patientCols+` FROM patients ORDER BY rowid LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectPatientsSQL(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *patientRepoSQLite) ListAll(ctx context.Context) ([]*Patient, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+patientCols+` FROM patients ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPatientsSQL(rows)
}

func collectPatientsSQL(rows *sql.Rows) ([]*Patient, error) {
	var items []*Patient
	for rows.Next() {
		var p Patient
		err := rows.Scan(&p.ID, &p.Name, &p.City, &p.Age, &p.Gender, &p.Height, &p.Weight,
			&p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, &p)
	}
	return items, rows.Err()
}

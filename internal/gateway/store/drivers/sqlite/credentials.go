package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/vibespace/vibespace/internal/gateway/domain"
	"github.com/vibespace/vibespace/internal/gateway/store"
)

type credentialsRepo struct {
	q querier
}

const credentialColumns = `id, public_key, algorithm, counter, label, transports_json, created_at, last_used_at`

func (r *credentialsRepo) List(ctx context.Context) ([]domain.Credential, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+credentialColumns+` FROM passkey_credentials ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creds []domain.Credential
	for rows.Next() {
		cred, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		creds = append(creds, cred)
	}
	return creds, rows.Err()
}

func (r *credentialsRepo) GetByID(ctx context.Context, id string) (domain.Credential, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+credentialColumns+` FROM passkey_credentials WHERE id = ?`, id)

	cred, err := scanCredential(row)
	if err != nil {
		return domain.Credential{}, mapNotFound(err)
	}
	return cred, nil
}

func (r *credentialsRepo) Insert(ctx context.Context, c domain.Credential) error {
	transports, err := json.Marshal(c.Transports)
	if err != nil {
		return err
	}

	var lastUsed sql.NullTime
	if c.LastUsedAt != nil {
		lastUsed = sql.NullTime{Time: *c.LastUsedAt, Valid: true}
	}

	_, err = r.q.ExecContext(ctx,
		`INSERT INTO passkey_credentials
		 (id, public_key, algorithm, counter, label, transports_json, created_at, last_used_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.PublicKey,
		domain.NormalizeAlgorithm(c.Algorithm),
		int64(c.Counter),
		c.Label,
		string(transports),
		c.CreatedAt.UTC(),
		lastUsed,
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *credentialsRepo) UpdateUsage(ctx context.Context, id string, counter uint32, lastUsedAt time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE passkey_credentials SET counter = ?, last_used_at = ? WHERE id = ?`,
		int64(counter), lastUsedAt.UTC(), id)
	return err
}

func (r *credentialsRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM passkey_credentials WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCredential(s scanner) (domain.Credential, error) {
	var (
		cred           domain.Credential
		counter        int64
		transportsJSON string
		lastUsed       sql.NullTime
	)

	err := s.Scan(
		&cred.ID,
		&cred.PublicKey,
		&cred.Algorithm,
		&counter,
		&cred.Label,
		&transportsJSON,
		&cred.CreatedAt,
		&lastUsed,
	)
	if err != nil {
		return domain.Credential{}, err
	}

	cred.Algorithm = domain.NormalizeAlgorithm(cred.Algorithm)
	cred.Counter = uint32(counter)
	if lastUsed.Valid {
		t := lastUsed.Time
		cred.LastUsedAt = &t
	}

	// Corrupt transport lists degrade to empty rather than failing the row.
	var transports []string
	if err := json.Unmarshal([]byte(transportsJSON), &transports); err == nil {
		cred.Transports = transports
	}

	return cred, nil
}

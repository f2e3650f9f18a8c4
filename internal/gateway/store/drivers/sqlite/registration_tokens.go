package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibespace/vibespace/internal/gateway/domain"
)

type registrationTokensRepo struct {
	q querier
}

func (r *registrationTokensRepo) Create(ctx context.Context, t domain.RegistrationToken) error {
	var used sql.NullTime
	if t.UsedAt != nil {
		used = sql.NullTime{Time: *t.UsedAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO registration_tokens (token, expires_at, used_at) VALUES (?, ?, ?)`,
		t.Token, t.ExpiresAt.UTC(), used)
	return err
}

func (r *registrationTokensRepo) Get(ctx context.Context, token string) (domain.RegistrationToken, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT token, expires_at, used_at FROM registration_tokens WHERE token = ?`, token)

	var (
		t    domain.RegistrationToken
		used sql.NullTime
	)
	if err := row.Scan(&t.Token, &t.ExpiresAt, &used); err != nil {
		return domain.RegistrationToken{}, mapNotFound(err)
	}
	if used.Valid {
		u := used.Time
		t.UsedAt = &u
	}
	return t, nil
}

// Consume is the one-time-use boundary: a single conditional UPDATE so that
// out of any number of concurrent redeemers exactly one observes success.
func (r *registrationTokensRepo) Consume(ctx context.Context, token string, now time.Time) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE registration_tokens
		 SET used_at = ?
		 WHERE token = ? AND used_at IS NULL AND expires_at > ?`,
		now.UTC(), token, now.UTC())
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *registrationTokensRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM registration_tokens WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

package sqlite

import (
	"database/sql"

	"github.com/vibespace/vibespace/internal/gateway/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Credentials() store.Credentials { return &credentialsRepo{q: t.tx} }
func (t *txStore) RegistrationTokens() store.RegistrationTokens {
	return &registrationTokensRepo{q: t.tx}
}

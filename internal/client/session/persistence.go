package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/resumeroast/internal/client/models"
	"github.com/dmitrijs2005/resumeroast/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/resumeroast/internal/dbx"
)

// Keys under which the session lives in the metadata table.
const (
	tokenKey = "auth_token"
	userKey  = "auth_user"
)

// Persistence is the narrow storage collaborator of the Store, kept separate
// so session logic is testable without sqlite.
type Persistence interface {
	Load(ctx context.Context) (token string, user *models.UserProfile, err error)
	Save(ctx context.Context, token string, user *models.UserProfile) error
	Clear(ctx context.Context) error
}

// SQLitePersistence stores the session in the client's metadata table. Token
// and user are written in one transaction so they can never diverge.
type SQLitePersistence struct {
	db *sql.DB
}

func NewSQLitePersistence(db *sql.DB) *SQLitePersistence {
	return &SQLitePersistence{db: db}
}

func (p *SQLitePersistence) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (p *SQLitePersistence) Load(ctx context.Context) (string, *models.UserProfile, error) {
	repo := p.repo(p.db)

	rawToken, err := repo.Get(ctx, tokenKey)
	if err != nil {
		return "", nil, err
	}
	if len(rawToken) == 0 {
		return "", nil, nil
	}

	rawUser, err := repo.Get(ctx, userKey)
	if err != nil {
		return "", nil, err
	}

	var user *models.UserProfile
	if len(rawUser) > 0 {
		user = &models.UserProfile{}
		if err := json.Unmarshal(rawUser, user); err != nil {
			// Corrupt cached profile; keep the token, drop the user.
			user = nil
		}
	}

	return string(rawToken), user, nil
}

func (p *SQLitePersistence) Save(ctx context.Context, token string, user *models.UserProfile) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding session user: %w", err)
	}

	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := p.repo(tx)
		if err := repo.Set(ctx, tokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, userKey, rawUser)
	})
}

func (p *SQLitePersistence) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := p.repo(tx)
		if err := repo.Delete(ctx, tokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, userKey)
	})
}

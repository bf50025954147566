package postgres

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // postgresql driver
	authservice "github.com/safartours/safarserver/auth/service"
	"github.com/safartours/safarserver/auth/storage"
	"github.com/safartours/safarserver/auth/users"
	"github.com/safartours/safarserver/gen/auth/public/model"
	"github.com/safartours/safarserver/gen/auth/public/table"
	"github.com/sirupsen/logrus"
)

const uniqueViolation = "23505"

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var _ storage.AuthStorage = (*Storage)(nil)

func New(ctx context.Context, l *logrus.Logger, cfg authservice.Config) (*Storage, error) {
	log := l.WithFields(map[string]interface{}{
		"from": "auth-storage",
	})
	db, err := sql.Open("pgx", NewURLConnectionString(
		"postgres",
		cfg.Storage.Host+":"+strconv.Itoa(cfg.Storage.Port),
		cfg.Storage.DBName,
		cfg.Storage.Username,
		cfg.Storage.Password,
	))
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	log.Info("auth storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func NewURLConnectionString(scheme string, host string, dbName string, user string, password string) string {
	u := url.URL{
		Scheme: scheme,
		User:   url.UserPassword(user, password),
		Host:   host,
		Path:   dbName,
	}
	return u.String()
}

func (s *Storage) CreateUser(ctx context.Context, user users.User, passwordHash string) error {
	now := time.Now()
	dbUser := model.Users{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: passwordHash,
		Role:         string(user.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := table.Users.
		INSERT(table.Users.MutableColumns, table.Users.ID).
		MODEL(dbUser).
		ExecContext(ctx, s.db)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return storage.ErrUserExists
		}
		return err
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id uuid.UUID) (users.User, error) {
	return s.getUser(ctx, table.Users.ID.EQ(postgres.String(id.String())))
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (users.User, error) {
	return s.getUser(ctx, table.Users.Email.EQ(postgres.String(email)))
}

func (s *Storage) getUser(ctx context.Context, where postgres.BoolExpression) (users.User, error) {
	var dbUser model.Users
	err := table.Users.
		SELECT(table.Users.AllColumns.Except(table.Users.PasswordHash)).
		FROM(table.Users).
		WHERE(where.AND(table.Users.DeletedAt.IS_NULL())).
		QueryContext(ctx, s.db, &dbUser)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.User{}, sql.ErrNoRows
		}
		return users.User{}, err
	}
	return convertUserToDomain(dbUser)
}

func (s *Storage) GetUserSecret(ctx context.Context, email string) (string, error) {
	var dbUser model.Users
	err := table.Users.
		SELECT(table.Users.PasswordHash).
		FROM(table.Users).
		WHERE(table.Users.Email.EQ(postgres.String(email)).
			AND(table.Users.DeletedAt.IS_NULL())).
		QueryContext(ctx, s.db, &dbUser)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return "", sql.ErrNoRows
		}
		return "", err
	}
	return dbUser.PasswordHash, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]users.User, error) {
	var dbUsers []model.Users
	err := table.Users.
		SELECT(table.Users.AllColumns.Except(table.Users.PasswordHash)).
		FROM(table.Users).
		WHERE(table.Users.DeletedAt.IS_NULL()).
		ORDER_BY(table.Users.CreatedAt.DESC()).
		QueryContext(ctx, s.db, &dbUsers)
	if err != nil {
		return nil, err
	}
	converted := make([]users.User, 0, len(dbUsers))
	for i := range dbUsers {
		u, err := convertUserToDomain(dbUsers[i])
		if err != nil {
			return nil, err
		}
		converted = append(converted, u)
	}
	return converted, nil
}

func convertUserToDomain(user model.Users) (users.User, error) {
	id, err := uuid.Parse(user.ID)
	if err != nil {
		return users.User{}, err
	}
	return users.User{
		ID:           id,
		Username:     user.Username,
		Email:        user.Email,
		Role:         users.Role(user.Role),
		RegisteredAt: user.CreatedAt,
	}, nil
}

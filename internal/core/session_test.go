package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionCreate(t *testing.T) {
	db := &mockDB{}
	svc := NewSessionService(db)

	var insertArgs []any
	db.On("Exec", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { insertArgs = args.Get(2).([]any) }).
		Return(pgconn.NewCommandTag("INSERT 0 1"), nil)

	tenantID := "t-1"
	token, err := svc.Create(context.Background(), &tenantID, RoleOwner, time.Hour)
	require.NoError(t, err)

	assert.Len(t, token, 64)
	// Only the hash is persisted.
	hash := sha256.Sum256([]byte(token))
	require.Len(t, insertArgs, 5)
	assert.Equal(t, hex.EncodeToString(hash[:]), insertArgs[1])
	assert.Equal(t, &tenantID, insertArgs[2])
	assert.Equal(t, RoleOwner, insertArgs[3])
}

func TestSessionCreate_RoleConstraints(t *testing.T) {
	db := &mockDB{}
	svc := NewSessionService(db)
	tenantID := "t-1"

	_, err := svc.Create(context.Background(), nil, RoleOwner, time.Hour)
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), &tenantID, RoleSuperAdmin, time.Hour)
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), &tenantID, "bogus", time.Hour)
	assert.Error(t, err)

	db.AssertNotCalled(t, "Exec", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionRevoke_NotFound(t *testing.T) {
	db := &mockDB{}
	svc := NewSessionService(db)
	db.On("Exec", mock.Anything, mock.Anything, []any{"s-missing"}).
		Return(pgconn.NewCommandTag("DELETE 0"), nil)

	assert.Error(t, svc.Revoke(context.Background(), "s-missing"))
}

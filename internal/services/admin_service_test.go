package services

import (
	"context"
	"testing"
	"time"

	"github.com/pawcat-app/pawcat-backend/internal/models"
	"github.com/pawcat-app/pawcat-backend/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminService(t *testing.T) (*AdminService, *fakeUsers, *fakeAuditLogs, *worker.Pool) {
	t.Helper()
	users := newFakeUsers()
	audit := &fakeAuditLogs{}
	wp := worker.NewPool(1)
	return NewAdminService(users, audit, wp), users, audit, wp
}

func TestListUsersProjection(t *testing.T) {
	svc, users, _, wp := newAdminService(t)
	defer wp.Stop()
	seedUsers(t, users, "alice", "bob")

	out, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "alice", out[0].Username)
	assert.NotEmpty(t, out[0].Email)
}

func TestListInactiveUsers(t *testing.T) {
	svc, users, _, wp := newAdminService(t)
	defer wp.Stop()
	ids := seedUsers(t, users, "stale", "fresh", "never")

	old := time.Now().AddDate(0, -6, 0)
	u := users.users[ids["stale"]]
	u.LastLogin = &old
	users.users[u.ID] = u

	recent := time.Now().AddDate(0, -1, 0)
	u = users.users[ids["fresh"]]
	u.LastLogin = &recent
	users.users[u.ID] = u

	out, err := svc.ListInactiveUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "stale", out[0].Username)
}

func TestDeleteUser(t *testing.T) {
	svc, users, audit, wp := newAdminService(t)
	ids := seedUsers(t, users, "admin", "bob")

	u := users.users[ids["admin"]]
	u.Role = models.RoleAdmin
	users.users[u.ID] = u

	require.NoError(t, svc.DeleteUser(context.Background(), ids["admin"], ids["bob"]))
	_, err := users.GetByID(context.Background(), ids["bob"])
	assert.ErrorIs(t, err, ErrNotFound)

	wp.Stop() // flush the audit write
	require.Len(t, audit.rows, 1)
	assert.Equal(t, "user", audit.rows[0].EntityType)
	assert.Equal(t, "deleted", audit.rows[0].Action)
}

func TestDeleteAdminForbidden(t *testing.T) {
	svc, users, _, wp := newAdminService(t)
	defer wp.Stop()
	ids := seedUsers(t, users, "root", "other")

	for _, name := range []string{"root", "other"} {
		u := users.users[ids[name]]
		u.Role = models.RoleAdmin
		users.users[u.ID] = u
	}

	err := svc.DeleteUser(context.Background(), ids["root"], ids["other"])
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = users.GetByID(context.Background(), ids["other"])
	require.NoError(t, err)
}

func TestDeleteUnknownUser(t *testing.T) {
	svc, _, _, wp := newAdminService(t)
	defer wp.Stop()
	err := svc.DeleteUser(context.Background(), "actor", "no-such-user")
	assert.ErrorIs(t, err, ErrNotFound)
}

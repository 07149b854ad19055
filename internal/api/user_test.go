package api

import (
	"fmt"
	"net/http"
	"testing"

	"estate_invest/internal/domain"
	"estate_invest/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUsersAdminGated(t *testing.T) {
	r, db := newTestEnv(t)
	_, userToken := createUser(t, db, "user@example.com", domain.RoleUser)
	_, adminToken := createUser(t, db, "admin@example.com", domain.RoleAdmin)

	// Listing all accounts requires the admin role
	w := doRequest(t, r, http.MethodGet, "/api/v1/getUsers", nil, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/v1/getUsers", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	users := decodeList(t, w)
	assert.Len(t, users, 2)
	// Credentials are never serialized
	for _, u := range users {
		assert.NotContains(t, u, "passwordHash")
		assert.NotContains(t, u, "password")
	}
}

func TestUpdateUserEmailConflict(t *testing.T) {
	r, db := newTestEnv(t)
	alice, aliceToken := createUser(t, db, "alice@example.com", domain.RoleUser)
	createUser(t, db, "bob@example.com", domain.RoleUser)

	// Taking another account's email is rejected
	w := doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/updateUser/%d", alice.ID), map[string]any{
		"email": "bob@example.com",
	}, aliceToken)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email is already in use", decodeBody(t, w)["error"])
}

func TestUpdateUser(t *testing.T) {
	r, db := newTestEnv(t)
	alice, aliceToken := createUser(t, db, "alice@example.com", domain.RoleUser)

	w := doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/updateUser/%d", alice.ID), map[string]any{
		"name": "Alice Cooper",
	}, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.User
	require.NoError(t, db.First(&updated, alice.ID).Error)
	assert.Equal(t, "Alice Cooper", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
}

func TestUpdateUserOtherAccountForbidden(t *testing.T) {
	r, db := newTestEnv(t)
	_, malloryToken := createUser(t, db, "mallory@example.com", domain.RoleUser)
	admin, _ := createUser(t, db, "admin@example.com", domain.RoleAdmin)

	// A regular user cannot overwrite someone else's credential
	w := doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/updateUser/%d", admin.ID), map[string]any{
		"password": "owned-by-mallory",
	}, malloryToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The admin's credential is untouched
	var stored domain.User
	require.NoError(t, db.First(&stored, admin.ID).Error)
	assert.True(t, utils.CheckPassword("password123", stored.PasswordHash))
	assert.False(t, utils.CheckPassword("owned-by-mallory", stored.PasswordHash))
}

func TestUpdateUserAdminCanUpdateOthers(t *testing.T) {
	r, db := newTestEnv(t)
	user, _ := createUser(t, db, "user@example.com", domain.RoleUser)
	_, adminToken := createUser(t, db, "admin@example.com", domain.RoleAdmin)

	// The correction path stays open to admins
	w := doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/v1/updateUser/%d", user.ID), map[string]any{
		"name": "Renamed By Admin",
	}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	var updated domain.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, "Renamed By Admin", updated.Name)
}

func TestDeleteUserNotFound(t *testing.T) {
	r, db := newTestEnv(t)
	_, adminToken := createUser(t, db, "admin@example.com", domain.RoleAdmin)

	// Never a 500 for a missing id
	w := doRequest(t, r, http.MethodDelete, "/api/v1/deleteUser/9999", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignAdmin(t *testing.T) {
	r, db := newTestEnv(t)
	user, userToken := createUser(t, db, "user@example.com", domain.RoleUser)
	_, adminToken := createUser(t, db, "admin@example.com", domain.RoleAdmin)

	// Only admins can promote
	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/v1/assignAdmin/%d", user.ID), nil, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/v1/assignAdmin/%d", user.ID), nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	var promoted domain.User
	require.NoError(t, db.First(&promoted, user.ID).Error)
	assert.Equal(t, domain.RoleAdmin, promoted.Role)
}

func TestAssignAdminNotFound(t *testing.T) {
	r, db := newTestEnv(t)
	_, adminToken := createUser(t, db, "admin@example.com", domain.RoleAdmin)

	w := doRequest(t, r, http.MethodPost, "/api/v1/assignAdmin/9999", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfile(t *testing.T) {
	r, db := newTestEnv(t)
	user, token := createUser(t, db, "user@example.com", domain.RoleUser)
	property := domain.Property{Name: "Riverside", TargetInvestment: 10000}
	require.NoError(t, db.Create(&property).Error)
	require.NoError(t, db.Create(&domain.Investment{UserID: user.ID, PropertyID: property.ID, Amount: 500}).Error)

	w := doRequest(t, r, http.MethodGet, "/api/v1/profile", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "user@example.com", body["email"])
	assert.Len(t, body["investments"].([]any), 1)
	assert.NotContains(t, body, "passwordHash")
}

package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointment-booking-server/internal/handlers"
)

func TestGetUsersForbiddenForCustomer(t *testing.T) {
	store := &memStore{}
	customer := seedUser(t, store, "Customer_1", "customer1@example.com", "Password1", false, false)
	router := newServer(t, store)

	w, _ := doRequest(t, router, http.MethodGet, "/api/users", tokenFor(t, customer), nil)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetUsersPagedAndFiltered(t *testing.T) {
	store := &memStore{}
	employee := seedUser(t, store, "Employee_1", "employee@example.com", "Password1", false, true)
	seedUser(t, store, "Customer_1", "customer1@example.com", "Password1", false, false)
	seedUser(t, store, "Customer_2", "customer2@example.com", "Password1", false, false)
	router := newServer(t, store)

	w, env := doRequest(t, router, http.MethodGet, "/api/users?nameSearch=CUSTOMER", tokenFor(t, employee), nil)

	require.Equal(t, http.StatusOK, w.Code)

	var page userPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(2), page.Count)
	require.Len(t, page.Data, 2)
	// always ascending by username
	assert.Equal(t, "Customer_1", page.Data[0].UserName)
	assert.Equal(t, "Customer_2", page.Data[1].UserName)
}

func TestGetCurrentUserReturnsTokenAndProfile(t *testing.T) {
	store := &memStore{}
	user := seedUser(t, store, "Customer_1", "customer1@example.com", "Password1", false, false)
	router := newServer(t, store)

	w, env := doRequest(t, router, http.MethodGet, "/api/users/currentUser", tokenFor(t, user), nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, user.Email, resp.User.Email)
	assert.NotEmpty(t, resp.Token)
}

func TestRegister(t *testing.T) {
	store := &memStore{}
	router := newServer(t, store)

	body := handlers.RegisterRequest{
		UserName:        "Newcomer",
		Email:           "new@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		PhoneNumber:     "555-0100",
	}
	w, env := doRequest(t, router, http.MethodPost, "/api/users", "", body)

	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, env.Success)

	var resp handlers.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.NotEmpty(t, resp.Token)
	assert.False(t, resp.User.IsAdmin)
	assert.False(t, resp.User.IsEmployee)
	require.Len(t, store.users, 1)
}

func TestRegisterDuplicateEmailRejected(t *testing.T) {
	store := &memStore{}
	seedUser(t, store, "Customer_1", "taken@example.com", "Password1", false, false)
	router := newServer(t, store)

	body := handlers.RegisterRequest{
		UserName:        "Another",
		Email:           "taken@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		PhoneNumber:     "555-0100",
	}
	w, _ := doRequest(t, router, http.MethodPost, "/api/users", "", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, store.users, 1)
}

func TestRegisterPasswordMismatchRejected(t *testing.T) {
	store := &memStore{}
	router := newServer(t, store)

	body := handlers.RegisterRequest{
		UserName:        "Newcomer",
		Email:           "new@example.com",
		Password:        "secret1",
		ConfirmPassword: "different",
		PhoneNumber:     "555-0100",
	}
	w, _ := doRequest(t, router, http.MethodPost, "/api/users", "", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.users)
}

func TestGetUserRequiresPrivilege(t *testing.T) {
	store := &memStore{}
	customer := seedUser(t, store, "Customer_1", "customer1@example.com", "Password1", false, false)
	target := seedUser(t, store, "Customer_2", "customer2@example.com", "Password1", false, false)
	router := newServer(t, store)

	w, _ := doRequest(t, router, http.MethodGet, "/api/users/"+target.ID, tokenFor(t, customer), nil)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteUserAdminOnly(t *testing.T) {
	store := &memStore{}
	employee := seedUser(t, store, "Employee_1", "employee@example.com", "Password1", false, true)
	target := seedUser(t, store, "Customer_1", "customer1@example.com", "Password1", false, false)
	router := newServer(t, store)

	w, _ := doRequest(t, router, http.MethodDelete, "/api/users/"+target.ID, tokenFor(t, employee), nil)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Len(t, store.users, 2)
}

func TestDeleteUserAsAdmin(t *testing.T) {
	store := &memStore{}
	admin := seedUser(t, store, "Admin_1", "admin@example.com", "Password1", true, false)
	target := seedUser(t, store, "Customer_1", "customer1@example.com", "Password1", false, false)
	router := newServer(t, store)

	w, _ := doRequest(t, router, http.MethodDelete, "/api/users/"+target.ID, tokenFor(t, admin), nil)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, store.users, 1)
}

func TestUpdateEmailSelfOnly(t *testing.T) {
	store := &memStore{}
	user := seedUser(t, store, "Customer_1", "customer1@example.com", "Password1", false, false)
	other := seedUser(t, store, "Customer_2", "customer2@example.com", "Password1", false, false)
	router := newServer(t, store)

	body := map[string]string{"email": "changed@example.com"}

	// even an unsuspicious self change on somebody else's route id is forbidden
	w, _ := doRequest(t, router, http.MethodPatch, "/api/users/"+other.ID+"/updateemail", tokenFor(t, user), body)
	require.Equal(t, http.StatusForbidden, w.Code)

	w, env := doRequest(t, router, http.MethodPatch, "/api/users/"+user.ID+"/updateemail", tokenFor(t, user), body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "changed@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token, "email change must return a token carrying the new email")
}

func TestUpdatePhoneNumberSelf(t *testing.T) {
	store := &memStore{}
	user := seedUser(t, store, "Customer_1", "customer1@example.com", "Password1", false, false)
	router := newServer(t, store)

	body := map[string]string{"phoneNumber": "555-0199"}
	w, _ := doRequest(t, router, http.MethodPatch, "/api/users/"+user.ID+"/updatephonenumber", tokenFor(t, user), body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "555-0199", store.users[0].PhoneNumber)
}

func TestUpdatePasswordVerifiesCurrent(t *testing.T) {
	store := &memStore{}
	user := seedUser(t, store, "Customer_1", "customer1@example.com", "Password1", false, false)
	router := newServer(t, store)

	body := map[string]string{
		"currentPassword":    "wrong",
		"newPassword":        "secret2",
		"confirmNewPassword": "secret2",
	}
	w, _ := doRequest(t, router, http.MethodPatch, "/api/users/"+user.ID+"/updatepassword", tokenFor(t, user), body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body["currentPassword"] = "Password1"
	w, _ = doRequest(t, router, http.MethodPatch, "/api/users/"+user.ID+"/updatepassword", tokenFor(t, user), body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.users[0].CheckPassword("secret2"))
}

func TestGrantAdminRejectedWhenAlreadyAdmin(t *testing.T) {
	store := &memStore{}
	admin := seedUser(t, store, "Admin_1", "admin@example.com", "Password1", true, false)
	target := seedUser(t, store, "Admin_2", "admin2@example.com", "Password1", true, false)
	router := newServer(t, store)

	w, env := doRequest(t, router, http.MethodPatch, "/api/users/"+target.ID+"/grantadminpermission", tokenFor(t, admin), nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, env.Success)
	assert.Zero(t, store.completes)
}

func TestRevokeEmployeeRejectedWhenFlagAbsent(t *testing.T) {
	store := &memStore{}
	admin := seedUser(t, store, "Admin_1", "admin@example.com", "Password1", true, false)
	target := seedUser(t, store, "Customer_1", "customer1@example.com", "Password1", false, false)
	router := newServer(t, store)

	w, _ := doRequest(t, router, http.MethodPatch, "/api/users/"+target.ID+"/removeemployeepermission", tokenFor(t, admin), nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGrantAndRevokeEmployee(t *testing.T) {
	store := &memStore{}
	admin := seedUser(t, store, "Admin_1", "admin@example.com", "Password1", true, false)
	target := seedUser(t, store, "Customer_1", "customer1@example.com", "Password1", false, false)
	router := newServer(t, store)

	w, _ := doRequest(t, router, http.MethodPatch, "/api/users/"+target.ID+"/grantemployeepermission", tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.users[1].IsEmployee)

	w, _ = doRequest(t, router, http.MethodPatch, "/api/users/"+target.ID+"/removeemployeepermission", tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, store.users[1].IsEmployee)
}

func TestRoleChangeRequiresAdmin(t *testing.T) {
	store := &memStore{}
	employee := seedUser(t, store, "Employee_1", "employee@example.com", "Password1", false, true)
	target := seedUser(t, store, "Customer_1", "customer1@example.com", "Password1", false, false)
	router := newServer(t, store)

	w, _ := doRequest(t, router, http.MethodPatch, "/api/users/"+target.ID+"/grantadminpermission", tokenFor(t, employee), nil)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, store.users[1].IsAdmin)
}

func TestRoleChangeMissingTargetIs404(t *testing.T) {
	store := &memStore{}
	admin := seedUser(t, store, "Admin_1", "admin@example.com", "Password1", true, false)
	router := newServer(t, store)

	w, _ := doRequest(t, router, http.MethodPatch, "/api/users/missing/grantadminpermission", tokenFor(t, admin), nil)

	require.Equal(t, http.StatusNotFound, w.Code)
}

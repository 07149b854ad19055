package api

import (
	"fmt"
	"net/http"
	"testing"

	"estate_invest/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyPerformance(t *testing.T) {
	r, db := newTestEnv(t)
	user, _ := createUser(t, db, "user@example.com", domain.RoleUser)
	_, adminToken := createUser(t, db, "admin@example.com", domain.RoleAdmin)

	funded := domain.Property{Name: "Riverside", TargetInvestment: 10000}
	empty := domain.Property{Name: "Harbour View", TargetInvestment: 50000}
	require.NoError(t, db.Create(&funded).Error)
	require.NoError(t, db.Create(&empty).Error)
	require.NoError(t, db.Create(&domain.Investment{UserID: user.ID, PropertyID: funded.ID, Amount: 1000}).Error)
	require.NoError(t, db.Create(&domain.Investment{UserID: user.ID, PropertyID: funded.ID, Amount: 3000}).Error)

	w := doRequest(t, r, http.MethodGet, "/api/v1/admin/properties/performance", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	rows := decodeList(t, w)
	require.Len(t, rows, 2)
	byName := map[string]map[string]any{}
	for _, row := range rows {
		byName[row["propertyName"].(string)] = row
	}
	assert.EqualValues(t, 4000, byName["Riverside"]["totalInvestment"])
	assert.EqualValues(t, 2, byName["Riverside"]["numberOfInvestments"])
	assert.EqualValues(t, 2000, byName["Riverside"]["averageInvestment"])
	// A property without investments averages 0, not NaN
	assert.EqualValues(t, 0, byName["Harbour View"]["totalInvestment"])
	assert.EqualValues(t, 0, byName["Harbour View"]["averageInvestment"])
}

func TestPropertyPerformanceAdminOnly(t *testing.T) {
	r, db := newTestEnv(t)
	_, userToken := createUser(t, db, "user@example.com", domain.RoleUser)

	w := doRequest(t, r, http.MethodGet, "/api/v1/admin/properties/performance", nil, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPropertyDetails(t *testing.T) {
	r, db := newTestEnv(t)
	user, _ := createUser(t, db, "user@example.com", domain.RoleUser)
	property := domain.Property{Name: "Riverside", TargetInvestment: 10000}
	require.NoError(t, db.Create(&property).Error)
	require.NoError(t, db.Create(&domain.Investment{UserID: user.ID, PropertyID: property.ID, Amount: 2000}).Error)
	require.NoError(t, db.Create(&domain.Investment{UserID: user.ID, PropertyID: property.ID, Amount: 3000}).Error)

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/v1/getPropertyDetails/%d", property.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	details := decodeBody(t, w)["property"].(map[string]any)
	assert.EqualValues(t, 5000, details["totalInvestments"])
	// 5000 of a 10000 target
	assert.Equal(t, "50.00", details["roi"])
	history := details["investments"].([]any)
	assert.Len(t, history, 2)
	// The public history never names the investor
	for _, row := range history {
		entry := row.(map[string]any)
		assert.NotContains(t, entry, "userId")
		assert.NotContains(t, entry, "user")
		assert.Contains(t, entry, "amount")
	}
}

func TestPropertyDetailsNotFound(t *testing.T) {
	r, _ := newTestEnv(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/getPropertyDetails/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPortfolioSummary(t *testing.T) {
	r, db := newTestEnv(t)
	user, token := createUser(t, db, "user@example.com", domain.RoleUser)

	// Appraised at double the target: a 5000 stake of a 10000 target is
	// worth 10000, a 100% return
	property := domain.Property{Name: "Riverside", TargetInvestment: 10000, CurrentValue: 20000}
	require.NoError(t, db.Create(&property).Error)
	require.NoError(t, db.Create(&domain.Investment{UserID: user.ID, PropertyID: property.ID, Amount: 5000}).Error)

	w := doRequest(t, r, http.MethodGet, "/api/v1/portfolio/summary", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 5000, body["totalInvested"])
	assert.EqualValues(t, 1, body["propertyCount"])
	assert.EqualValues(t, 10000, body["currentValue"])
	assert.Equal(t, "100.00", body["roi"])
}

func TestPortfolioSummaryEmpty(t *testing.T) {
	r, db := newTestEnv(t)
	_, token := createUser(t, db, "user@example.com", domain.RoleUser)

	// Nothing invested: every figure is 0, never NaN or Inf
	w := doRequest(t, r, http.MethodGet, "/api/v1/portfolio/summary", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 0, body["totalInvested"])
	assert.EqualValues(t, 0, body["propertyCount"])
	assert.EqualValues(t, 0, body["currentValue"])
	assert.Equal(t, "0.00", body["roi"])
}

func TestPortfolioSummaryUnappraisedProperty(t *testing.T) {
	r, db := newTestEnv(t)
	user, token := createUser(t, db, "user@example.com", domain.RoleUser)

	// No appraised value: the holding contributes 0 to portfolio value
	property := domain.Property{Name: "Riverside", TargetInvestment: 10000}
	require.NoError(t, db.Create(&property).Error)
	require.NoError(t, db.Create(&domain.Investment{UserID: user.ID, PropertyID: property.ID, Amount: 5000}).Error)

	w := doRequest(t, r, http.MethodGet, "/api/v1/portfolio/summary", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, 5000, body["totalInvested"])
	assert.EqualValues(t, 0, body["currentValue"])
	// All value written off relative to the stake
	assert.Equal(t, "-100.00", body["roi"])
}

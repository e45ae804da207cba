package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type personListBody struct {
	Persons []map[string]any `json:"persons"`
}

func decodePersonList(t *testing.T, data []byte) personListBody {
	t.Helper()
	var body personListBody
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

func TestPersons_WritesRequireAdmin(t *testing.T) {
	ts := setupAPITestServer(t)
	adminToken, _ := ts.setupAdmin(t)
	memberToken, _ := ts.createMember(t, adminToken, "member@giapha.dev")

	payload := map[string]any{
		"full_name":  "Nguyễn Văn An",
		"generation": 1,
		"living":     false,
	}

	resp := ts.api.Post("/api/v1/persons", payload)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Post("/api/v1/persons",
		"Authorization: Bearer "+memberToken,
		payload,
	)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Post("/api/v1/persons",
		"Authorization: Bearer "+adminToken,
		payload,
	)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestPersons_TierVisibility(t *testing.T) {
	ts := setupAPITestServer(t)
	adminToken, _ := ts.setupAdmin(t)
	memberToken, _ := ts.createMember(t, adminToken, "member@giapha.dev")

	publicID := ts.createPerson(t, adminToken, map[string]any{
		"full_name":  "Nguyễn Văn An",
		"generation": 1,
		"living":     false,
		"biography":  "Thủy tổ dòng họ",
		"tier":       0,
	})
	membersID := ts.createPerson(t, adminToken, map[string]any{
		"full_name":  "Nguyễn Văn Bình",
		"generation": 2,
		"living":     true,
		"tier":       1,
	})
	privateID := ts.createPerson(t, adminToken, map[string]any{
		"full_name":  "Nguyễn Thị Cúc",
		"generation": 3,
		"living":     true,
		"tier":       2,
	})

	// Anonymous sees only the public person, with the public field set.
	resp := ts.api.Get("/api/v1/persons")
	require.Equal(t, http.StatusOK, resp.Code)
	list := decodePersonList(t, resp.Body.Bytes())
	require.Len(t, list.Persons, 1)
	assert.Equal(t, publicID, list.Persons[0]["id"])
	assert.NotContains(t, list.Persons[0], "biography")
	assert.NotContains(t, list.Persons[0], "notes")
	assert.NotContains(t, list.Persons[0], "contact")

	resp = ts.api.Get("/api/v1/persons/" + membersID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	resp = ts.api.Get("/api/v1/persons/" + privateID)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// A member sees public and members tiers with the full field set.
	resp = ts.api.Get("/api/v1/persons", "Authorization: Bearer "+memberToken)
	require.Equal(t, http.StatusOK, resp.Code)
	list = decodePersonList(t, resp.Body.Bytes())
	assert.Len(t, list.Persons, 2)

	resp = ts.api.Get("/api/v1/persons/"+publicID, "Authorization: Bearer "+memberToken)
	require.Equal(t, http.StatusOK, resp.Code)
	var person map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &person))
	assert.Equal(t, "Thủy tổ dòng họ", person["biography"])

	resp = ts.api.Get("/api/v1/persons/"+privateID, "Authorization: Bearer "+memberToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// The admin sees everything.
	resp = ts.api.Get("/api/v1/persons", "Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)
	list = decodePersonList(t, resp.Body.Bytes())
	assert.Len(t, list.Persons, 3)

	resp = ts.api.Get("/api/v1/persons/"+privateID, "Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestPersons_ContactWriteTightensTier(t *testing.T) {
	ts := setupAPITestServer(t)
	adminToken, _ := ts.setupAdmin(t)

	personID := ts.createPerson(t, adminToken, map[string]any{
		"full_name":  "Nguyễn Văn Dũng",
		"generation": 4,
		"living":     true,
		"tier":       0,
	})

	// Public while no contact data exists.
	resp := ts.api.Get("/api/v1/persons/" + personID)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Put("/api/v1/persons/"+personID+"/contact",
		"Authorization: Bearer "+adminToken,
		map[string]any{"phone": "+84 912 345 678"},
	)
	require.Equal(t, http.StatusOK, resp.Code, "Contact write failed: %s", resp.Body.String())

	// The same write tightened the tier, so the person is gone for anonymous.
	resp = ts.api.Get("/api/v1/persons/" + personID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestPersons_CreationWithContactNeverPublic(t *testing.T) {
	ts := setupAPITestServer(t)
	adminToken, _ := ts.setupAdmin(t)

	personID := ts.createPerson(t, adminToken, map[string]any{
		"full_name":  "Nguyễn Thị Em",
		"generation": 4,
		"living":     true,
		"contact":    map[string]any{"email": "em@example.com"},
		"tier":       0,
	})

	// The requested public tier is overridden at creation time because the
	// record carries contact data for a living person.

	resp := ts.api.Get("/api/v1/persons/" + personID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestPersons_SearchIgnoresDiacritics(t *testing.T) {
	ts := setupAPITestServer(t)
	adminToken, _ := ts.setupAdmin(t)

	ts.createPerson(t, adminToken, map[string]any{
		"full_name":  "Nguyễn Văn Bình",
		"generation": 2,
		"living":     false,
		"tier":       0,
	})
	ts.createPerson(t, adminToken, map[string]any{
		"full_name":  "Trần Thị Hoa",
		"generation": 2,
		"living":     false,
		"tier":       0,
	})

	resp := ts.api.Get("/api/v1/persons?q=nguyen+van+binh")
	require.Equal(t, http.StatusOK, resp.Code)
	list := decodePersonList(t, resp.Body.Bytes())
	require.Len(t, list.Persons, 1)
	assert.Equal(t, "Nguyễn Văn Bình", list.Persons[0]["full_name"])
}

func TestPersons_SetTier(t *testing.T) {
	ts := setupAPITestServer(t)
	adminToken, _ := ts.setupAdmin(t)

	personID := ts.createPerson(t, adminToken, map[string]any{
		"full_name":  "Nguyễn Văn Giang",
		"generation": 5,
		"living":     false,
		"tier":       0,
	})

	resp := ts.api.Get("/api/v1/persons/" + personID)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Put("/api/v1/persons/"+personID+"/tier",
		"Authorization: Bearer "+adminToken,
		map[string]any{"tier": 2},
	)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/persons/" + personID)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Put("/api/v1/persons/"+personID+"/tier",
		"Authorization: Bearer "+adminToken,
		map[string]any{"tier": 3},
	)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestPersons_DeleteLeavesNoTrace(t *testing.T) {
	ts := setupAPITestServer(t)
	adminToken, _ := ts.setupAdmin(t)

	personID := ts.createPerson(t, adminToken, map[string]any{
		"full_name":  "Nguyễn Văn Hải",
		"generation": 5,
		"living":     false,
	})

	resp := ts.api.Delete("/api/v1/persons/"+personID,
		"Authorization: Bearer "+adminToken)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/persons/"+personID, "Authorization: Bearer "+adminToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

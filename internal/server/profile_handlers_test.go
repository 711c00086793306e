package server

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProfile(t *testing.T, app *fiber.App, token string) map[string]any {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/profile", token, map[string]string{
		"status": "Developer",
		"skills": "Go, SQL, Docker",
		"bio":    "building things",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return decodeBody(t, resp)
}

func TestUpsertProfile(t *testing.T) {
	app, _, _ := setupTestApp(t)
	token := registerUser(t, app, "Dev One", "dev1@example.com")

	t.Run("create", func(t *testing.T) {
		profile := createProfile(t, app, token)

		assert.Equal(t, "Developer", profile["status"])
		assert.Equal(t, []any{"Go", "SQL", "Docker"}, profile["skills"])
		assert.Equal(t, "building things", profile["bio"])
	})

	t.Run("update keeps omitted fields", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/profile", token, map[string]string{
			"status": "Senior Developer",
			"skills": "Go",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		profile := decodeBody(t, resp)
		assert.Equal(t, "Senior Developer", profile["status"])
		assert.Equal(t, []any{"Go"}, profile["skills"])
		assert.Equal(t, "building things", profile["bio"], "omitted bio keeps value")
	})

	t.Run("missing status", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/profile", token, map[string]string{
			"skills": "Go",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("requires auth", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/profile", "", map[string]string{
			"status": "Developer",
			"skills": "Go",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestGetProfiles(t *testing.T) {
	app, _, _ := setupTestApp(t)
	token := registerUser(t, app, "Dev One", "dev1@example.com")

	t.Run("own profile before creation answers 400", func(t *testing.T) {
		resp := doJSON(t, app, "GET", "/api/profile/me", token, nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	profile := createProfile(t, app, token)
	userID := int(profile["user_id"].(float64))

	t.Run("own profile", func(t *testing.T) {
		resp := doJSON(t, app, "GET", "/api/profile/me", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Developer", body["status"])
	})

	t.Run("list is public", func(t *testing.T) {
		resp := doJSON(t, app, "GET", "/api/profile", "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("by user id is public", func(t *testing.T) {
		resp := doJSON(t, app, "GET", "/api/profile/user/"+itoa(userID), "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Developer", body["status"])
	})

	t.Run("unknown user answers 400", func(t *testing.T) {
		resp := doJSON(t, app, "GET", "/api/profile/user/99999", "", nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed user id answers 400", func(t *testing.T) {
		resp := doJSON(t, app, "GET", "/api/profile/user/abc", "", nil)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestExperienceLifecycle(t *testing.T) {
	app, _, _ := setupTestApp(t)
	token := registerUser(t, app, "Dev One", "dev1@example.com")
	createProfile(t, app, token)

	addExperience := func(title string) map[string]any {
		resp := doJSON(t, app, "POST", "/api/profile/experience", token, map[string]any{
			"title":     title,
			"company":   "Acme",
			"startdate": "2020-01-01",
			"current":   true,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		return decodeBody(t, resp)
	}

	t.Run("add inserts at the front", func(t *testing.T) {
		addExperience("First Role")
		profile := addExperience("Second Role")

		exp := profile["experience"].([]any)
		require.Len(t, exp, 2)
		assert.Equal(t, "Second Role", exp[0].(map[string]any)["title"])
		assert.Equal(t, "First Role", exp[1].(map[string]any)["title"])
	})

	t.Run("missing required field", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/profile/experience", token, map[string]any{
			"title": "No Company",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("update merges fields and keeps the id", func(t *testing.T) {
		resp := doJSON(t, app, "GET", "/api/profile/me", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		profile := decodeBody(t, resp)
		entry := profile["experience"].([]any)[0].(map[string]any)
		entryID := int(entry["id"].(float64))

		resp = doJSON(t, app, "PUT", "/api/profile/experience/"+itoa(entryID), token, map[string]any{
			"title":   "Renamed Role",
			"enddate": "2024-01-01",
			"current": false,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		updated := decodeBody(t, resp)
		found := findEntryByID(t, updated["experience"], entryID)
		assert.Equal(t, "Renamed Role", found["title"])
		assert.Equal(t, "Acme", found["company"], "omitted company keeps value")
		assert.Equal(t, "2024-01-01", found["enddate"])
		assert.Equal(t, false, found["current"])
	})

	t.Run("update of unknown entry answers 404", func(t *testing.T) {
		resp := doJSON(t, app, "PUT", "/api/profile/experience/99999", token, map[string]any{
			"title": "Ghost",
		})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("delete preserves remaining order", func(t *testing.T) {
		profileBody := addExperience("Third Role")
		exp := profileBody["experience"].([]any)
		require.Len(t, exp, 3)
		middleID := int(exp[1].(map[string]any)["id"].(float64))

		resp := doJSON(t, app, "DELETE", "/api/profile/experience/"+itoa(middleID), token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		remaining := decodeBody(t, resp)["experience"].([]any)
		require.Len(t, remaining, 2)
		assert.Equal(t, "Third Role", remaining[0].(map[string]any)["title"])
		assert.Equal(t, "First Role", remaining[1].(map[string]any)["title"])
	})
}

func TestEducationLifecycle(t *testing.T) {
	app, _, _ := setupTestApp(t)
	token := registerUser(t, app, "Dev One", "dev1@example.com")
	createProfile(t, app, token)

	t.Run("add with courses", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/profile/education", token, map[string]any{
			"school":       "MIT",
			"degree":       "BSc",
			"fieldofstudy": "CS",
			"startdate":    "2016-09-01",
			"courses":      "Algorithms, Databases",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		profile := decodeBody(t, resp)
		edu := profile["education"].([]any)[0].(map[string]any)
		assert.Equal(t, []any{"Algorithms", "Databases"}, edu["courses"])
	})

	t.Run("add without courses yields an empty list", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/profile/education", token, map[string]any{
			"school":       "Stanford",
			"degree":       "MSc",
			"fieldofstudy": "CS",
			"startdate":    "2020-09-01",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		profile := decodeBody(t, resp)
		edu := profile["education"].([]any)[0].(map[string]any)
		assert.Equal(t, "Stanford", edu["school"])
		assert.Equal(t, []any{}, edu["courses"])
	})

	t.Run("update without courses keeps the stored list", func(t *testing.T) {
		resp := doJSON(t, app, "GET", "/api/profile/me", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		profile := decodeBody(t, resp)
		// The MIT entry is now second, behind the Stanford one.
		entry := profile["education"].([]any)[1].(map[string]any)
		entryID := int(entry["id"].(float64))

		resp = doJSON(t, app, "PUT", "/api/profile/education/"+itoa(entryID), token, map[string]any{
			"degree": "MEng",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		updated := decodeBody(t, resp)
		found := findEntryByID(t, updated["education"], entryID)
		assert.Equal(t, "MEng", found["degree"])
		assert.Equal(t, []any{"Algorithms", "Databases"}, found["courses"])
	})

	t.Run("missing required field", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/profile/education", token, map[string]any{
			"school": "No Degree",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteAccount(t *testing.T) {
	app, _, db := setupTestApp(t)
	token := registerUser(t, app, "Dev One", "dev1@example.com")
	createProfile(t, app, token)

	// Entry rows reference the profile; deletion must clear them too instead
	// of tripping the foreign keys.
	resp := doJSON(t, app, "POST", "/api/profile/experience", token, map[string]any{
		"title":     "Engineer",
		"company":   "Acme",
		"startdate": "2020-01-01",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "DELETE", "/api/profile", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var entries int64
	require.NoError(t, db.Table("experiences").Count(&entries).Error)
	assert.Zero(t, entries)

	// The account is gone: the token no longer resolves to a user.
	resp = doJSON(t, app, "GET", "/api/auth", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// And the email is free for re-registration.
	resp = doJSON(t, app, "POST", "/api/users", "", map[string]string{
		"name":     "Dev Again",
		"email":    "dev1@example.com",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

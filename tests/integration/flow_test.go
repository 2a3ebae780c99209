//go:build integration
// +build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	baseURL = "http://localhost:8080/api/v1"
)

func registerAndLogin(t *testing.T, env *TestEnv, client *http.Client, email, name, role string) string {
	payload := map[string]string{
		"email":     email,
		"password":  "password123",
		"full_name": name,
		"role":      role,
	}
	body, _ := json.Marshal(payload)
	resp, err := client.Post(baseURL+"/auth/register", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	env.MarkEmailVerified(t, email)

	loginBody, _ := json.Marshal(map[string]string{"email": email, "password": "password123"})
	resp, err = client.Post(baseURL+"/auth/login", "application/json", bytes.NewBuffer(loginBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return result["access_token"].(string)
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, map[string]interface{}) {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, url, body)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	return resp, result
}

func TestDonationLifecycleFlow(t *testing.T) {
	// This test assumes the API server is running on localhost:8080.
	// You must run `docker-compose up` before running this test.

	env := SetupTestEnv(t)
	defer env.Teardown()

	client := &http.Client{}

	donorToken := registerAndLogin(t, env, client, "donor@example.com", "Priya Donor", "donor")
	volunteerA := registerAndLogin(t, env, client, "vola@example.com", "Asha Volunteer", "volunteer")
	volunteerB := registerAndLogin(t, env, client, "volb@example.com", "Ravi Volunteer", "volunteer")

	var donationID string

	t.Run("Incomplete Checklist Is Rejected", func(t *testing.T) {
		resp, _ := doJSON(t, client, "POST", baseURL+"/donations/", donorToken, map[string]interface{}{
			"title":    "Cooked rice, 5 plates",
			"quantity": "5 plates",
			"location": "12 Gandhi Road",
			"phone":    "+91 98765 43210",
			"safety":   map[string]bool{"covered": true, "fresh": true, "temp_safe": false},
		})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("Post Donation", func(t *testing.T) {
		resp, result := doJSON(t, client, "POST", baseURL+"/donations/", donorToken, map[string]interface{}{
			"title":    "Cooked rice, 5 plates",
			"quantity": "5 plates",
			"location": "12 Gandhi Road",
			"phone":    "+91 98765 43210",
			"safety":   map[string]bool{"covered": true, "fresh": true, "temp_safe": true},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		donationID = result["id"].(string)
		assert.Equal(t, "available", result["status"])
	})

	t.Run("Donation Appears In Available Listing", func(t *testing.T) {
		resp, result := doJSON(t, client, "GET", baseURL+"/donations/available", volunteerA, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		donations := result["donations"].([]interface{})
		require.Len(t, donations, 1)
	})

	t.Run("First Claim Wins", func(t *testing.T) {
		resp, result := doJSON(t, client, "POST", fmt.Sprintf("%s/donations/%s/claim", baseURL, donationID), volunteerA, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "claimed", result["status"])
	})

	t.Run("Second Claim Conflicts", func(t *testing.T) {
		resp, _ := doJSON(t, client, "POST", fmt.Sprintf("%s/donations/%s/claim", baseURL, donationID), volunteerB, nil)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Winner May Retry Claim", func(t *testing.T) {
		resp, result := doJSON(t, client, "POST", fmt.Sprintf("%s/donations/%s/claim", baseURL, donationID), volunteerA, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "claimed", result["status"])
	})

	t.Run("Stranger Cannot Complete", func(t *testing.T) {
		resp, _ := doJSON(t, client, "POST", fmt.Sprintf("%s/donations/%s/complete", baseURL, donationID), volunteerB, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Claimant Completes", func(t *testing.T) {
		resp, result := doJSON(t, client, "POST", fmt.Sprintf("%s/donations/%s/complete", baseURL, donationID), volunteerA, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "completed", result["status"])
		assert.NotNil(t, result["delivered_at"])
	})

	t.Run("Only The Deliverer Reviews", func(t *testing.T) {
		resp, _ := doJSON(t, client, "POST", fmt.Sprintf("%s/donations/%s/reviews", baseURL, donationID), volunteerB, map[string]interface{}{
			"rating": 1,
		})
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Review By Donation ID", func(t *testing.T) {
		resp, result := doJSON(t, client, "POST", fmt.Sprintf("%s/donations/%s/reviews", baseURL, donationID), volunteerA, map[string]interface{}{
			"rating":  5,
			"comment": "Smooth pickup, food was well packed",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, donationID, result["donation_id"])
	})

	t.Run("Second Review Conflicts", func(t *testing.T) {
		resp, _ := doJSON(t, client, "POST", fmt.Sprintf("%s/donations/%s/reviews", baseURL, donationID), volunteerA, map[string]interface{}{
			"rating": 4,
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("Volunteer Stats Count The Delivery", func(t *testing.T) {
		resp, result := doJSON(t, client, "GET", baseURL+"/profile/stats", volunteerA, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(1), result["delivered_count"])
		assert.Equal(t, false, result["certificate_unlocked"])
	})

	t.Run("Audit Trail Records Every Transition", func(t *testing.T) {
		resp, result := doJSON(t, client, "GET", fmt.Sprintf("%s/donations/%s/audit", baseURL, donationID), donorToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		entries := result["data"].([]interface{})
		assert.GreaterOrEqual(t, len(entries), 3)
	})
}

func TestReleaseFlow(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Teardown()

	client := &http.Client{}

	donorToken := registerAndLogin(t, env, client, "donor2@example.com", "Meera Donor", "donor")
	volunteerA := registerAndLogin(t, env, client, "vola2@example.com", "Asha Volunteer", "volunteer")
	volunteerB := registerAndLogin(t, env, client, "volb2@example.com", "Ravi Volunteer", "volunteer")

	var donationID string

	resp, result := doJSON(t, client, "POST", baseURL+"/donations/", donorToken, map[string]interface{}{
		"title":    "Bread loaves",
		"quantity": "12 loaves",
		"location": "4 MG Road",
		"phone":    "+91 91234 56789",
		"safety":   map[string]bool{"covered": true, "fresh": true, "temp_safe": true},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	donationID = result["id"].(string)

	t.Run("Claim Then Release", func(t *testing.T) {
		resp, _ := doJSON(t, client, "POST", fmt.Sprintf("%s/donations/%s/claim", baseURL, donationID), volunteerA, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, result := doJSON(t, client, "POST", fmt.Sprintf("%s/donations/%s/release", baseURL, donationID), volunteerA, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "available", result["status"])
		assert.Nil(t, result["volunteer_id"])
	})

	t.Run("Released Donation Claimable Again", func(t *testing.T) {
		resp, result := doJSON(t, client, "POST", fmt.Sprintf("%s/donations/%s/claim", baseURL, donationID), volunteerB, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "claimed", result["status"])
	})

	t.Run("Only Claimant Releases", func(t *testing.T) {
		resp, _ := doJSON(t, client, "POST", fmt.Sprintf("%s/donations/%s/release", baseURL, donationID), volunteerA, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

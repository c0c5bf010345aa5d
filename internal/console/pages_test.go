package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zvrva/flightops/internal/client"
	"github.com/zvrva/flightops/internal/domain"
)

func TestAirlinesPage_Update_SendsOnlyChangedFields(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/airlines":
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    []domain.Airline{{ID: 5, Name: "KLM", ContactInfo: "info@klm.example"}},
			})
		case r.Method == http.MethodPut && r.URL.Path == "/airlines/5":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Airline updated successfully"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	held := &heldSchedule{}
	page := newAirlinesPage(client.NewAPI(server.URL), withSchedule(held.schedule))
	assert.NoError(t, page.Refresh(context.Background()))

	err := page.Update(context.Background(), 5, map[string]any{
		"name":         "KLM",
		"contact_info": "ops@klm.example",
	})

	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"contact_info": "ops@klm.example"}, captured)
	assert.Equal(t, "Airline updated successfully", page.Success())
}

func TestAirlinesPage_Update_UnknownIDSendsFullEdit(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/airlines":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []domain.Airline{}})
		case r.Method == http.MethodPut && r.URL.Path == "/airlines/9":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Airline updated successfully"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	held := &heldSchedule{}
	page := newAirlinesPage(client.NewAPI(server.URL), withSchedule(held.schedule))
	assert.NoError(t, page.Refresh(context.Background()))

	err := page.Update(context.Background(), 9, map[string]any{"name": "Transavia"})

	assert.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Transavia"}, captured)
}

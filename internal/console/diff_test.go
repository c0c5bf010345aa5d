package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zvrva/flightops/internal/domain"
)

func TestDiff(t *testing.T) {
	current := map[string]any{"name": "KLM", "contact_info": "info@klm.example"}

	t.Run("only changed keys survive", func(t *testing.T) {
		changed := Diff(current, map[string]any{"name": "KLM", "contact_info": "ops@klm.example"})
		assert.Equal(t, map[string]any{"contact_info": "ops@klm.example"}, changed)
	})

	t.Run("identical edit yields empty payload", func(t *testing.T) {
		assert.Empty(t, Diff(current, map[string]any{"name": "KLM"}))
	})

	t.Run("new keys are always included", func(t *testing.T) {
		changed := Diff(current, map[string]any{"country": "NL"})
		assert.Equal(t, map[string]any{"country": "NL"}, changed)
	})

	t.Run("empty edit yields empty payload", func(t *testing.T) {
		assert.Empty(t, Diff(current, map[string]any{}))
	})

	t.Run("int64 edit matches float64 record value", func(t *testing.T) {
		decoded := map[string]any{"capacity": float64(180)}
		assert.Empty(t, Diff(decoded, map[string]any{"capacity": int64(180)}))
		assert.Equal(t, map[string]any{"capacity": int64(200)}, Diff(decoded, map[string]any{"capacity": int64(200)}))
	})
}

func TestTrimUnchanged(t *testing.T) {
	airlines := []domain.Airline{
		{ID: 5, Name: "KLM", ContactInfo: "info@klm.example"},
		{ID: 6, Name: "Lufthansa", ContactInfo: "info@lh.example"},
	}
	idOf := func(a domain.Airline) int64 { return a.ID }

	t.Run("drops fields equal to the cached record", func(t *testing.T) {
		partial := trimUnchanged(airlines, 5, idOf, map[string]any{
			"name":         "KLM",
			"contact_info": "ops@klm.example",
		})
		assert.Equal(t, map[string]any{"contact_info": "ops@klm.example"}, partial)
	})

	t.Run("unknown id leaves the edit untouched", func(t *testing.T) {
		partial := trimUnchanged(airlines, 99, idOf, map[string]any{"name": "KLM"})
		assert.Equal(t, map[string]any{"name": "KLM"}, partial)
	})
}

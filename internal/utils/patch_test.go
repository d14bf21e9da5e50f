package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleUpdate struct {
	ID     string   `json:"id"`
	Name   *string  `json:"name,omitempty"`
	Price  *float64 `json:"price,omitempty"`
	Status *string  `json:"status,omitempty"`
	Note   string   `json:"note"`
}

func TestBuildPatch(t *testing.T) {
	t.Run("only non-nil fields", func(t *testing.T) {
		status := "DELIVERED"
		patch := BuildPatch(&sampleUpdate{ID: "abc", Status: &status})

		assert.Equal(t, map[string]any{"status": "DELIVERED"}, patch)
	})

	t.Run("id never included", func(t *testing.T) {
		name := "Milk"
		price := 120.0
		patch := BuildPatch(&sampleUpdate{ID: "abc", Name: &name, Price: &price})

		assert.NotContains(t, patch, "id")
		assert.Equal(t, "Milk", patch["name"])
		assert.Equal(t, 120.0, patch["price"])
	})

	t.Run("non-pointer fields ignored", func(t *testing.T) {
		patch := BuildPatch(&sampleUpdate{ID: "abc", Note: "ignored"})
		assert.Empty(t, patch)
	})

	t.Run("zero pointee still included", func(t *testing.T) {
		price := 0.0
		patch := BuildPatch(&sampleUpdate{Price: &price})
		assert.Equal(t, map[string]any{"price": 0.0}, patch)
	})
}

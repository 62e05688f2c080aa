package ratelimiter

import (
	"testing"
)

// MockLimiter is a mock implementation of Limiter for testing.
type MockLimiter struct {
	Limiter // Embed interface to satisfy it, we only implement what we need
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	// Test Get on empty registry
	_, err := registry.Get("non-existent")
	if err == nil {
		t.Error("expected error for non-existent model, got nil")
	}

	// Test Set and Get
	mockLimiter := &MockLimiter{}
	modelName := "test-model"
	registry.Set(modelName, mockLimiter)

	retrieved, err := registry.Get(modelName)
	if err != nil {
		t.Errorf("unexpected error getting model: %v", err)
	}
	if retrieved != mockLimiter {
		t.Error("retrieved limiter does not match set limiter")
	}

	// Test Overwrite
	mockLimiter2 := &MockLimiter{}
	registry.Set(modelName, mockLimiter2)
	retrieved2, err := registry.Get(modelName)
	if err != nil {
		t.Errorf("unexpected error getting model: %v", err)
	}
	if retrieved2 != mockLimiter2 {
		t.Error("retrieved limiter does not match overwritten limiter")
	}
}

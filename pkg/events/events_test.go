package events

import (
	"context"
	"strings"
	"testing"

	"github.com/arnavshah/crewplan-api/pkg/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogPublisher(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p, err := New("", zap.New(core))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer p.Close()

	ev := NewAssignmentEvent(AssignmentCreated, models.Assignment{ID: 4, StaffID: 3, ProjectID: 7})
	if err := p.Publish(context.Background(), AssignmentCreated, ev); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["routing_key"] != AssignmentCreated {
		t.Errorf("Expected routing key %s, got %v", AssignmentCreated, fields["routing_key"])
	}
	body, _ := fields["body"].(string)
	if !strings.Contains(body, `"staff_id":3`) {
		t.Errorf("Expected body to carry the assignment, got %s", body)
	}
}

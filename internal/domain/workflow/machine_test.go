package workflow

import (
	"context"
	"errors"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected bool
	}{
		{"details", StateDetails, true},
		{"expenses", StateExpenses, true},
		{"unknown", State("review"), false},
		{"empty", State(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.expected {
				t.Errorf("State.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTriggerFor(t *testing.T) {
	if tr, ok := TriggerFor(StateDetails, StateExpenses); !ok || tr != TriggerContinue {
		t.Errorf("TriggerFor(details, expenses) = %v, %v", tr, ok)
	}
	if tr, ok := TriggerFor(StateExpenses, StateDetails); !ok || tr != TriggerBack {
		t.Errorf("TriggerFor(expenses, details) = %v, %v", tr, ok)
	}
	if _, ok := TriggerFor(StateDetails, StateDetails); ok {
		t.Error("TriggerFor(details, details) should not resolve")
	}
}

func TestMachine_Fire(t *testing.T) {
	ctx := context.Background()
	valid := false

	m := NewBuilder().
		PermitIf(StateDetails, TriggerContinue, StateExpenses, func(context.Context) bool { return valid }).
		Permit(StateExpenses, TriggerBack, StateDetails).
		Build(StateDetails)

	if err := m.Fire(ctx, TriggerContinue); !errors.Is(err, ErrGuardFailed) {
		t.Fatalf("Fire() error = %v, want ErrGuardFailed", err)
	}
	if m.State() != StateDetails {
		t.Fatalf("State() = %v after failed guard", m.State())
	}

	valid = true
	if err := m.Fire(ctx, TriggerContinue); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	if m.State() != StateExpenses {
		t.Fatalf("State() = %v, want expenses", m.State())
	}

	if err := m.Fire(ctx, TriggerContinue); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Fire() error = %v, want ErrInvalidTransition", err)
	}

	if err := m.Fire(ctx, TriggerBack); err != nil {
		t.Fatalf("Fire(back) error = %v", err)
	}
	if m.State() != StateDetails {
		t.Fatalf("State() = %v, want details", m.State())
	}
}

func TestMachine_CanFire(t *testing.T) {
	m := NewBuilder().Permit(StateExpenses, TriggerBack, StateDetails).Build(StateExpenses)

	if !m.CanFire(TriggerBack) {
		t.Error("CanFire(back) = false")
	}
	if m.CanFire(TriggerContinue) {
		t.Error("CanFire(continue) = true")
	}
}

func TestBuilder_BuildIsolated(t *testing.T) {
	b := NewBuilder()
	m := b.Build(StateDetails)
	b.Permit(StateDetails, TriggerContinue, StateExpenses)

	if m.CanFire(TriggerContinue) {
		t.Error("machine observed a transition added after Build")
	}
}

func TestBuilder_PanicsOnInvalidState(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid state")
		}
	}()
	NewBuilder().Permit(State("nope"), TriggerBack, StateDetails)
}

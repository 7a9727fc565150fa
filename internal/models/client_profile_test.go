package models

import "testing"

func TestEffectiveActivationStatusOverridesOnMissingTrainer(t *testing.T) {
	for _, stored := range []ActivationStatus{
		ActivationRegistered,
		ActivationUnassigned,
		ActivationPendingPayment,
		ActivationActive,
	} {
		profile := &ClientProfile{ActivationStatus: stored}
		if got := profile.EffectiveActivationStatus(); got != ActivationRegistered {
			t.Errorf("stored %q without trainer: expected registered, got %q", stored, got)
		}
	}
}

func TestEffectiveActivationStatusWithTrainer(t *testing.T) {
	trainerID := int64(5)

	profile := &ClientProfile{TrainerID: &trainerID, ActivationStatus: ActivationRegistered}
	if got := profile.EffectiveActivationStatus(); got != ActivationUnassigned {
		t.Errorf("stored registered with trainer: expected unassigned, got %q", got)
	}

	for _, stored := range []ActivationStatus{
		ActivationUnassigned,
		ActivationPendingPayment,
		ActivationActive,
	} {
		profile := &ClientProfile{TrainerID: &trainerID, ActivationStatus: stored}
		if got := profile.EffectiveActivationStatus(); got != stored {
			t.Errorf("stored %q with trainer: expected %q, got %q", stored, stored, got)
		}
	}
}

package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/graft/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildHooks_Merge(t *testing.T) {
	var calls []string
	a := domain.BuildHooks{
		OnWarning: func(_ context.Context, e *domain.WarningEvent) { calls = append(calls, "a:"+e.Warning.Message) },
	}
	b := domain.BuildHooks{
		OnWarning:     func(_ context.Context, e *domain.WarningEvent) { calls = append(calls, "b:"+e.Warning.Message) },
		OnBuildFinish: func(context.Context, *domain.BuildEvent) { calls = append(calls, "finish") },
	}

	merged := a.Merge(b)
	merged.OnWarning(context.Background(), &domain.WarningEvent{Warning: domain.Warning{Message: "w"}})
	merged.OnBuildFinish(context.Background(), &domain.BuildEvent{})
	assert.Nil(t, merged.OnActionStart)
	assert.Equal(t, []string{"a:w", "b:w", "finish"}, calls)
}

func TestActionError(t *testing.T) {
	cause := errors.New("boom")
	err := error(&domain.ActionError{Feature: "toggle Hat on Hat", Action: "apply", Err: cause})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "toggle Hat on Hat")

	var ae *domain.ActionError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, "apply", ae.Action)
}

package saga

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunAllSucceed(t *testing.T) {
	report := Run(context.Background(), zap.NewNop(), []Step{
		{Name: "create parent", Critical: true, Do: func(context.Context) error { return nil }},
		{Name: "create child 1", Do: func(context.Context) error { return nil }},
		{Name: "create child 2", Do: func(context.Context) error { return nil }},
	})

	assert.True(t, report.Ok())
	assert.NoError(t, report.Error())
	assert.Equal(t, 3, report.Succeeded)
}

func TestRunPartialFailureContinues(t *testing.T) {
	boom := errors.New("boom")
	var secondRan bool

	report := Run(context.Background(), zap.NewNop(), []Step{
		{Name: "create parent", Critical: true, Do: func(context.Context) error { return nil }},
		{Name: "create child 1", Do: func(context.Context) error { return boom }},
		{Name: "create child 2", Do: func(context.Context) error { secondRan = true; return nil }},
	})

	assert.True(t, secondRan, "non-critical failure must not stop siblings")
	assert.True(t, report.PartialFailure())
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 2, report.Succeeded)
	require.Error(t, report.Error())
	assert.Contains(t, report.Error().Error(), "1 of 3 steps failed")
}

func TestRunCriticalFailureAborts(t *testing.T) {
	boom := errors.New("boom")

	report := Run(context.Background(), zap.NewNop(), []Step{
		{Name: "create parent", Critical: true, Do: func(context.Context) error { return boom }},
		{Name: "create child 1", Do: func(context.Context) error { t.Fatal("must not run"); return nil }},
	})

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, StatusSkipped, report.Steps[1].Status)
	require.Error(t, report.Error())
	assert.ErrorIs(t, report.Error(), boom)
}

func TestRunHonoursContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	report := Run(ctx, zap.NewNop(), []Step{
		{Name: "first", Do: func(context.Context) error { cancel(); return nil }},
		{Name: "second", Do: func(context.Context) error { t.Fatal("must not run"); return nil }},
	})

	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Skipped)
}

package advice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/aretw0/termuxdev/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mockGenerator records every request so tests can inspect the attached configuration.
type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, req ports.GenerateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func TestGateway_Ask_ReturnsServiceTextVerbatim(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return("Run termux-change-repo.", nil)

	gw := New(gen)
	got := gw.Ask(context.Background(), "How do I fix Gradle 404 in Termux?")

	assert.Equal(t, "Run termux-change-repo.", got)
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestGateway_Ask_NoPostProcessing(t *testing.T) {
	raw := "  ```bash\npkg install openjdk-17 -y\n```\n<b>not escaped</b>\n\n"
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(raw, nil)

	got := New(gen).Ask(context.Background(), "java?")
	assert.Equal(t, raw, got)
}

func TestGateway_Ask_ConnectionErrorFallsBack(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).
		Return("", fmt.Errorf("%w: dial tcp: connection refused", ports.ErrExternalCall))

	got := New(gen, WithLogger(logger)).Ask(context.Background(), "How do I fix Gradle 404 in Termux?")

	assert.Equal(t, "I encountered an error trying to process your request. Please check your connection and try again.", got)
	assert.Contains(t, logs.String(), "Generation failed")
	assert.Contains(t, logs.String(), "connection refused")
	assert.NotContains(t, got, "connection refused")
}

func TestGateway_FallbackOnAnyFailure(t *testing.T) {
	tests := []struct {
		name string
		gen  ports.Generator
	}{
		{
			name: "Plain Error",
			gen: ports.GeneratorFunc(func(ctx context.Context, req ports.GenerateRequest) (string, error) {
				return "", errors.New("boom")
			}),
		},
		{
			name: "Deadline Exceeded",
			gen: ports.GeneratorFunc(func(ctx context.Context, req ports.GenerateRequest) (string, error) {
				return "", context.DeadlineExceeded
			}),
		},
		{
			name: "Partial Text With Error",
			gen: ports.GeneratorFunc(func(ctx context.Context, req ports.GenerateRequest) (string, error) {
				return "half an answ", errors.New("stream reset")
			}),
		},
		{
			name: "Panic",
			gen: ports.GeneratorFunc(func(ctx context.Context, req ports.GenerateRequest) (string, error) {
				panic("client exploded")
			}),
		},
		{
			name: "Nil Generator",
			gen:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := New(tt.gen)
			assert.NotPanics(t, func() {
				assert.Equal(t, AdviceFallback, gw.Ask(context.Background(), "q"))
				assert.Equal(t, WorkflowFallback, gw.GenerateWorkflow(context.Background(), "q"))
			})
		})
	}
}

func TestGateway_VariantConfiguration(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(req ports.GenerateRequest) bool {
		return req.Temperature == float32(0.7)
	})).Return("advice", nil).Once()
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(req ports.GenerateRequest) bool {
		return req.Temperature == float32(0.3)
	})).Return("name: CI", nil).Once()

	gw := New(gen)
	assert.Equal(t, "advice", gw.Ask(context.Background(), "Setup Gradle with Kotlin DSL"))
	assert.Equal(t, "name: CI", gw.GenerateWorkflow(context.Background(), "Kotlin, JDK 21"))

	gen.AssertExpectations(t)
	require.Len(t, gen.Calls, 2)

	adviceReq := gen.Calls[0].Arguments.Get(1).(ports.GenerateRequest)
	assert.Equal(t, DefaultModel, adviceReq.Model)
	assert.Equal(t, "Setup Gradle with Kotlin DSL", adviceReq.Contents)
	assert.Equal(t, AdviceSystemInstruction, adviceReq.SystemInstruction)
	assert.Contains(t, adviceReq.SystemInstruction, "expert Termux and Android developer")

	workflowReq := gen.Calls[1].Arguments.Get(1).(ports.GenerateRequest)
	assert.Equal(t, DefaultModel, workflowReq.Model)
	assert.Equal(t, "Generate a GitHub Action YAML file for this project: Kotlin, JDK 21", workflowReq.Contents)
	assert.Equal(t, WorkflowSystemInstruction, workflowReq.SystemInstruction)
	assert.Contains(t, workflowReq.SystemInstruction, "DevOps engineer")
}

func TestGateway_WithModel(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(req ports.GenerateRequest) bool {
		return req.Model == "gemini-custom"
	})).Return("ok", nil)

	gw := New(gen, WithModel("gemini-custom"))
	assert.Equal(t, "gemini-custom", gw.Model())
	assert.Equal(t, "ok", gw.Ask(context.Background(), "q"))

	// Empty model keeps the default.
	assert.Equal(t, DefaultModel, New(gen, WithModel("")).Model())
}

func TestGateway_Idempotent(t *testing.T) {
	gen := ports.GeneratorFunc(func(ctx context.Context, req ports.GenerateRequest) (string, error) {
		return "answer for " + req.Contents, nil
	})
	gw := New(gen)

	first := gw.Ask(context.Background(), "Termux backup script")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, gw.Ask(context.Background(), "Termux backup script"))
	}
}

func TestGateway_ConcurrentCalls(t *testing.T) {
	gen := ports.GeneratorFunc(func(ctx context.Context, req ports.GenerateRequest) (string, error) {
		if req.Contents == "fail" {
			return "", errors.New("nope")
		}
		return req.Contents, nil
	})
	gw := New(gen)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q := fmt.Sprintf("q-%d", i)
			if i%2 == 0 {
				assert.Equal(t, q, gw.Ask(context.Background(), q))
			} else {
				assert.Equal(t, AdviceFallback, gw.Ask(context.Background(), "fail"))
			}
		}(i)
	}
	wg.Wait()
}

func TestGateway_Hooks(t *testing.T) {
	var calls, results []*CallEvent
	hooks := Hooks{
		OnCall:   func(ctx context.Context, e *CallEvent) { calls = append(calls, e) },
		OnResult: func(ctx context.Context, e *CallEvent) { results = append(results, e) },
	}

	ok := ports.GeneratorFunc(func(ctx context.Context, req ports.GenerateRequest) (string, error) {
		return "fine", nil
	})
	bad := ports.GeneratorFunc(func(ctx context.Context, req ports.GenerateRequest) (string, error) {
		return "", errors.New("down")
	})

	New(ok, WithHooks(hooks)).Ask(context.Background(), "a")
	New(bad, WithHooks(hooks)).GenerateWorkflow(context.Background(), "b")

	require.Len(t, calls, 2)
	require.Len(t, results, 2)

	assert.Equal(t, KindAdvice, results[0].Kind)
	assert.Equal(t, OutcomeSuccess, results[0].Outcome)
	assert.NoError(t, results[0].Err)
	assert.NotEmpty(t, results[0].RequestID)

	assert.Equal(t, KindWorkflow, results[1].Kind)
	assert.Equal(t, OutcomeFallback, results[1].Outcome)
	assert.EqualError(t, results[1].Err, "down")
	assert.NotEqual(t, results[0].RequestID, results[1].RequestID)
}

func TestMergeHooks(t *testing.T) {
	var order []string
	a := Hooks{OnResult: func(ctx context.Context, e *CallEvent) { order = append(order, "a") }}
	b := Hooks{
		OnCall:   func(ctx context.Context, e *CallEvent) { order = append(order, "b-call") },
		OnResult: func(ctx context.Context, e *CallEvent) { order = append(order, "b") },
	}

	gen := ports.GeneratorFunc(func(ctx context.Context, req ports.GenerateRequest) (string, error) {
		return "x", nil
	})
	New(gen, WithHooks(MergeHooks(a, b))).Ask(context.Background(), "q")

	assert.Equal(t, []string{"b-call", "a", "b"}, order)
}

func TestFallback(t *testing.T) {
	assert.Equal(t, AdviceFallback, Fallback(KindAdvice))
	assert.Equal(t, WorkflowFallback, Fallback(KindWorkflow))
	assert.Equal(t, AdviceFallback, Fallback(Kind("unknown")))
}

package advice

import "github.com/aretw0/termuxdev/pkg/ports"

// DefaultModel is the model identifier sent with every request unless WithModel overrides it.
const DefaultModel = "gemini-3-flash-preview"

// Kind names a call variant. It is used as a metrics label and in logs.
type Kind string

const (
	KindAdvice   Kind = "advice"
	KindWorkflow Kind = "workflow"
)

const (
	AdviceSystemInstruction = "You are an expert Termux and Android developer. Help the user with Java, Gradle, package management, and GitHub Actions specifically for mobile development. Keep advice concise, practical, and shell-friendly."
	AdviceTemperature       = 0.7
	AdviceFallback          = "I encountered an error trying to process your request. Please check your connection and try again."

	WorkflowSystemInstruction = "You are a DevOps engineer. Generate valid GitHub Actions YAML specifically for Java Gradle projects. Return ONLY the YAML content without markdown blocks if possible, or clear markdown code blocks."
	WorkflowTemperature       = 0.3
	WorkflowFallback          = "Failed to generate workflow."
	WorkflowPromptPrefix      = "Generate a GitHub Action YAML file for this project: "
)

// variant bundles the fixed per-call configuration.
type variant struct {
	kind              Kind
	systemInstruction string
	temperature       float32
	fallback          string
	prompt            func(input string) string
}

var (
	adviceVariant = variant{
		kind:              KindAdvice,
		systemInstruction: AdviceSystemInstruction,
		temperature:       AdviceTemperature,
		fallback:          AdviceFallback,
		prompt:            func(input string) string { return input },
	}
	workflowVariant = variant{
		kind:              KindWorkflow,
		systemInstruction: WorkflowSystemInstruction,
		temperature:       WorkflowTemperature,
		fallback:          WorkflowFallback,
		prompt:            func(input string) string { return WorkflowPromptPrefix + input },
	}
)

func (v variant) request(model, input string) ports.GenerateRequest {
	return ports.GenerateRequest{
		Model:             model,
		Contents:          v.prompt(input),
		SystemInstruction: v.systemInstruction,
		Temperature:       v.temperature,
	}
}

// Fallback returns the fixed failure text for a variant kind.
func Fallback(kind Kind) string {
	switch kind {
	case KindWorkflow:
		return workflowVariant.fallback
	default:
		return adviceVariant.fallback
	}
}

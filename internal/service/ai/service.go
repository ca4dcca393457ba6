package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/agenticdoctor/backend/internal/config"
	"github.com/agenticdoctor/backend/internal/model/roster"
	"github.com/agenticdoctor/backend/internal/service/research"
	"github.com/agenticdoctor/backend/internal/service/transcript"
)

// Service dispatches prompts to the role-specialized agent/task pairs.
// Every pair runs through one compiled chain: a system/user prompt template
// followed by the configured chat model.
type Service struct {
	chatModel   model.ChatModel
	roster      roster.Store
	cfg         config.AIConfig
	chain       compose.Runnable[map[string]any, *schema.Message]
	research    *research.Client
	diagnostics *transcript.DiagnosticLog
}

// NewService creates the dispatcher with the configured model provider.
func NewService(ctx context.Context, rosterStore roster.Store, cfg config.AIConfig, researchClient *research.Client, diagnostics *transcript.DiagnosticLog) (*Service, error) {
	chatModel, err := newChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{task}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile dispatch chain: %w", err)
	}

	return &Service{
		chatModel:   chatModel,
		roster:      rosterStore,
		cfg:         cfg,
		chain:       runnable,
		research:    researchClient,
		diagnostics: diagnostics,
	}, nil
}

func newChatModel(ctx context.Context, cfg config.AIConfig) (model.ChatModel, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return newOpenAIChatModel(cfg)
	default:
		return newArkChatModel(ctx, cfg)
	}
}

func newArkChatModel(ctx context.Context, cfg config.AIConfig) (model.ChatModel, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: provide ARK_API_KEY + AI_MODEL or the AK/SK pair")
	}

	var temperature *float32
	if cfg.Temperature != nil {
		val := float32(*cfg.Temperature)
		temperature = &val
	}

	var topP *float32
	if cfg.TopP != nil {
		val := float32(*cfg.TopP)
		topP = &val
	}

	return ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:     cfg.ArkBaseURL,
		Region:      cfg.ArkRegion,
		APIKey:      cfg.ArkAPIKey,
		AccessKey:   cfg.ArkAccessKey,
		SecretKey:   cfg.ArkSecretKey,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	})
}

// StreamingEnabled reports whether SSE/WebSocket turns may stream chunks.
func (s *Service) StreamingEnabled() bool {
	return s.cfg.StreamResponse
}

// RunChatTurn invokes the single chat agent/task pair with an assembled
// prompt and returns display-ready text. Model failures never escape: they
// are converted into a user-facing explanation.
func (s *Service) RunChatTurn(ctx context.Context, assembledPrompt string) string {
	profile, ok := s.roster.FindByID("triage")
	if !ok {
		return FailureAdvice(fmt.Errorf("triage profile is not configured"))
	}

	msg, err := s.invokeProfile(ctx, profile, map[string]string{"patient_input": assembledPrompt})
	if err != nil {
		log.Printf("[ai] chat turn failed: %v", err)
		return FailureAdvice(err)
	}

	return SanitizeResponse(resultText(msg))
}

// StreamChatTurn streams the chat agent's reply chunk by chunk.
func (s *Service) StreamChatTurn(ctx context.Context, assembledPrompt string) (*schema.StreamReader[*schema.Message], error) {
	if !s.StreamingEnabled() {
		return nil, fmt.Errorf("streaming disabled in configuration")
	}

	profile, ok := s.roster.FindByID("triage")
	if !ok {
		return nil, fmt.Errorf("triage profile is not configured")
	}

	stream, err := s.chain.Stream(ctx, s.chainInput(profile, map[string]string{"patient_input": assembledPrompt}))
	if err != nil {
		return nil, fmt.Errorf("failed to stream chat turn: %w", err)
	}
	return stream, nil
}

// RunSingleTask invokes one named agent/task pair with caller-supplied
// keyword arguments. An unknown task type yields a reported error string,
// never a fault.
func (s *Service) RunSingleTask(ctx context.Context, taskType string, kwargs map[string]string) string {
	profile, ok := s.roster.FindByID(taskType)
	if !ok {
		return fmt.Sprintf("Error: Unknown task type '%s'", taskType)
	}

	msg, err := s.invokeProfile(ctx, profile, kwargs)
	if err != nil {
		log.Printf("[ai] %s task failed: %v", taskType, err)
		return fmt.Sprintf("Error executing %s task: %v", taskType, err)
	}

	return SanitizeResponse(resultText(msg))
}

func (s *Service) invokeProfile(ctx context.Context, profile roster.Profile, kwargs map[string]string) (*schema.Message, error) {
	return s.chain.Invoke(ctx, s.chainInput(profile, kwargs))
}

func (s *Service) chainInput(profile roster.Profile, kwargs map[string]string) map[string]any {
	return map[string]any{
		"system": systemPrompt(profile),
		"task":   renderTask(profile.Task, kwargs),
	}
}

// systemPrompt turns a roster profile into the system message for its chain.
func systemPrompt(p roster.Profile) string {
	var b strings.Builder
	b.WriteString("You are " + p.Role + ".")
	b.WriteString("\n\nGOAL:\n" + p.Goal)
	if p.Backstory != "" {
		b.WriteString("\n\nBACKGROUND:\n" + p.Backstory)
	}
	if p.ExpectedOutput != "" {
		b.WriteString("\n\nEXPECTED OUTPUT:\n" + p.ExpectedOutput)
	}
	return b.String()
}

// renderTask substitutes {key} placeholders in a task description with the
// supplied keyword arguments. Unknown placeholders are left untouched.
func renderTask(template string, kwargs map[string]string) string {
	out := template
	for key, value := range kwargs {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}

// FailureAdvice converts a model-call failure into the apologetic,
// remediation-oriented reply shown to the patient. Orchestration faults must
// never crash a conversation.
func FailureAdvice(err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I apologize, but I encountered an error: %v\n\n", err)
	b.WriteString("This might be due to:\n")
	b.WriteString("1. API quota exceeded - please check your provider billing\n")
	b.WriteString("2. Invalid API key - verify the credentials in your .env file\n")
	b.WriteString("3. Network issues - check your internet connection\n\n")
	b.WriteString("Please try again or contact support if the issue persists.")
	return b.String()
}

package usecase

import (
	"github.com/secmon-lab/doorman/pkg/domain/interfaces"
	"github.com/secmon-lab/doorman/pkg/domain/model"
	"github.com/secmon-lab/doorman/pkg/service/llm"
	slacksvc "github.com/secmon-lab/doorman/pkg/service/slack"
)

type UseCases struct {
	repo         interfaces.Repository
	slackService slacksvc.Service
	llmService   llm.Service
	responder    *model.Responder

	Event      *EventUseCase
	Onboarding *OnboardingUseCase
	Schedule   *ScheduleUseCase
}

type Option func(*UseCases)

// WithLLMService enables the language-model fallback for unmatched messages
func WithLLMService(svc llm.Service) Option {
	return func(uc *UseCases) {
		uc.llmService = svc
	}
}

// WithResponder overrides the default keyword responder
func WithResponder(r *model.Responder) Option {
	return func(uc *UseCases) {
		uc.responder = r
	}
}

func New(repo interfaces.Repository, slackService slacksvc.Service, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:         repo,
		slackService: slackService,
		responder:    model.NewResponder(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Onboarding = NewOnboardingUseCase(repo, slackService)
	uc.Event = NewEventUseCase(repo, slackService, uc.llmService, uc.responder, uc.Onboarding)
	uc.Schedule = NewScheduleUseCase(slackService)

	return uc
}

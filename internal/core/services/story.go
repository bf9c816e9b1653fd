package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driven"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driving"
	"github.com/season-labs/fifthseason-cli/internal/logger"
)

// Ensure StoryService implements the interface.
var _ driving.StoryService = (*StoryService)(nil)

// Seeds are drawn from [1, maxSeed] so every story records a non-zero,
// reproducible seed.
const maxSeed = 10000

// defaultStoryPrompt is the story creation template. Placeholders, in
// order: style, joined fragments, style, tone description, length guide.
const defaultStoryPrompt = `请根据以下记忆碎片创作一个%s的故事：

记忆碎片：%s

创作要求：
1. 故事风格：%s
2. 情感基调：%s
3. 故事长度：%s
4. 将这些记忆碎片自然地融入到一个连贯的故事中
5. 故事要有明确的情节线索，体现"回忆情节 重合明显 模糊了从前"的意境
6. 语言要优美流畅，富有画面感
7. 结尾要有一定的意境和回味

请开始创作：`

// defaultStorySystem is the system prompt for story generation.
const defaultStorySystem = `你是一位富有想象力的作家，擅长将零散的记忆碎片编织成动人的故事。
你的写作风格优美流畅，善于营造意境，能够准确把握情感基调。
请根据用户提供的记忆碎片和要求，创作出高质量的故事作品。`

// defaultEnhancePrompt is the enhancement template. Placeholders:
// original story text, enhancement instruction.
const defaultEnhancePrompt = `原始故事：
%s

增强要求：
%s

请在保持原故事核心内容和风格的基础上，按照要求进行增强改写：`

// defaultEnhanceSystem is the system prompt for story enhancement.
const defaultEnhanceSystem = `你是一位专业的文学编辑，擅长改进和完善故事内容，能够在保持原作风格的基础上进行有效的增强。`

// versionInstruction is appended per version during multi-version runs.
const versionInstruction = "这是第%d个版本，请在保持核心情节的基础上，尝试不同的叙述角度或细节描写。"

// nearDuplicateSimilarity is the Jaccard score above which a new
// version counts as a retelling of an earlier one.
const nearDuplicateSimilarity = 0.9

// StoryService builds prompts from memory fragments and drives the
// external text generator.
type StoryService struct {
	generator driven.TextGenerator
	prompts   driven.PromptStore
	limiter   *rate.Limiter
	seedFn    func() int
	now       func() time.Time
}

// NewStoryService creates a story service. The prompt store is optional;
// without one the embedded default templates are used.
func NewStoryService(generator driven.TextGenerator, prompts driven.PromptStore) *StoryService {
	return &StoryService{
		generator: generator,
		prompts:   prompts,
		// One request per second between versions, matching the
		// backend's free-tier expectations.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		seedFn:  func() int { return rand.Intn(maxSeed) + 1 },
		now:     time.Now,
	}
}

// SetPacing overrides the inter-version rate limit. Mainly for tests.
func (s *StoryService) SetPacing(limit rate.Limit) {
	s.limiter = rate.NewLimiter(limit, 1)
}

// BuildPrompt constructs the creation prompt for a request.
func (s *StoryService) BuildPrompt(req domain.StoryRequest) (string, error) {
	if err := req.Normalize(); err != nil {
		return "", err
	}

	template := s.loadPrompt(driven.PromptStory, defaultStoryPrompt)
	prompt := fmt.Sprintf(template,
		req.Style,
		strings.Join(req.Fragments, "、"),
		req.Style,
		domain.ToneDescription(req.Tone),
		req.Length.Guide(),
	)

	if req.CustomRequirements != "" {
		prompt += "\n\n额外要求：" + req.CustomRequirements
	}
	return prompt, nil
}

// Generate produces a single story for the request.
func (s *StoryService) Generate(ctx context.Context, req domain.StoryRequest) (*domain.Story, error) {
	if s.generator == nil {
		return nil, domain.ErrGeneratorUnavailable
	}
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	prompt, err := s.BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	seed := s.seedFn()
	logger.Debug("Generating story: style=%s tone=%s length=%s seed=%d",
		req.Style, req.Tone, req.Length, seed)

	text, err := s.generator.Generate(ctx, prompt, driven.GenerateOptions{
		System: s.loadPrompt(driven.PromptStorySystem, defaultStorySystem),
		Seed:   seed,
	})
	if err != nil {
		return nil, fmt.Errorf("generating story: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("generating story: %w", domain.ErrEmptyStory)
	}

	story := domain.NewStory(uuid.NewString(), text, s.generator.ModelName(), seed, req)
	story.GeneratedAt = s.now().UTC()
	return story, nil
}

// GenerateVersions produces up to n story versions sequentially. Calls
// after the first wait on the rate limiter; individual failures are
// logged and skipped.
func (s *StoryService) GenerateVersions(ctx context.Context, req domain.StoryRequest, n int) ([]*domain.Story, error) {
	if s.generator == nil {
		return nil, domain.ErrGeneratorUnavailable
	}
	if err := req.Normalize(); err != nil {
		return nil, err
	}
	if n < 1 {
		n = 1
	}

	var (
		versions []*domain.Story
		lastErr  error
	)
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := s.limiter.Wait(ctx); err != nil {
				return versions, fmt.Errorf("waiting between versions: %w", err)
			}
		}

		versionReq := req
		versionReq.CustomRequirements = joinRequirements(
			req.CustomRequirements, fmt.Sprintf(versionInstruction, i+1))

		story, err := s.Generate(ctx, versionReq)
		if err != nil {
			logger.Warn("Version %d failed: %v", i+1, err)
			lastErr = err
			continue
		}
		story.Version = i + 1
		for _, prev := range versions {
			if sim := domain.TextSimilarity(prev.Text, story.Text); sim >= nearDuplicateSimilarity {
				logger.Warn("Version %d is nearly identical to version %d (similarity %.2f)",
					story.Version, prev.Version, sim)
				break
			}
		}
		versions = append(versions, story)
	}

	if len(versions) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all %d versions failed: %w", n, lastErr)
	}
	return versions, nil
}

// Enhance rewrites an existing story according to the enhancement kind.
func (s *StoryService) Enhance(ctx context.Context, storyText string, kind domain.EnhancementKind) (*domain.Story, error) {
	if s.generator == nil {
		return nil, domain.ErrGeneratorUnavailable
	}
	storyText = strings.TrimSpace(storyText)
	if storyText == "" {
		return nil, domain.ErrEmptyStory
	}

	template := s.loadPrompt(driven.PromptEnhance, defaultEnhancePrompt)
	prompt := fmt.Sprintf(template, storyText, domain.EnhancementInstruction(kind))

	text, err := s.generator.Generate(ctx, prompt, driven.GenerateOptions{
		System: s.loadPrompt(driven.PromptEnhanceSystem, defaultEnhanceSystem),
	})
	if err != nil {
		return nil, fmt.Errorf("enhancing story: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("enhancing story: %w", domain.ErrEmptyStory)
	}

	story := domain.NewStory(uuid.NewString(), text, s.generator.ModelName(), 0, domain.StoryRequest{})
	story.GeneratedAt = s.now().UTC()
	return story, nil
}

// loadPrompt loads a template from the store, falling back to the
// embedded default if unavailable.
func (s *StoryService) loadPrompt(name, fallback string) string {
	if s.prompts == nil {
		return fallback
	}
	prompt, err := s.prompts.Load(name)
	if err != nil || prompt == "" {
		return fallback
	}
	return prompt
}

func joinRequirements(existing, extra string) string {
	if existing == "" {
		return extra
	}
	return existing + "\n" + extra
}

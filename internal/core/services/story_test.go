package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/season-labs/fifthseason-cli/internal/core/domain"
	"github.com/season-labs/fifthseason-cli/internal/core/ports/driven"
	"github.com/season-labs/fifthseason-cli/internal/logger"
)

// fakeGenerator records calls and returns scripted responses.
type fakeGenerator struct {
	responses []string
	errs      []error
	calls     int

	lastPrompt string
	lastOpts   driven.GenerateOptions
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	i := f.calls
	f.calls++
	f.lastPrompt = prompt
	f.lastOpts = opts

	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "生成的故事。", nil
}

func (f *fakeGenerator) ModelName() string { return "fake-model" }

func (f *fakeGenerator) Ping(context.Context) error { return nil }

func (f *fakeGenerator) Close() error { return nil }

// fakePromptStore serves templates from a map.
type fakePromptStore struct {
	prompts map[string]string
}

func (f *fakePromptStore) Load(name string) (string, error) {
	if p, ok := f.prompts[name]; ok {
		return p, nil
	}
	return "", errors.New("not found")
}

func (f *fakePromptStore) Reload() {}

func newStoryService(gen driven.TextGenerator) *StoryService {
	svc := NewStoryService(gen, nil)
	svc.SetPacing(rate.Inf)
	return svc
}

func TestStoryService_BuildPrompt(t *testing.T) {
	svc := newStoryService(&fakeGenerator{})

	prompt, err := svc.BuildPrompt(domain.StoryRequest{
		Fragments: []string{"老照片", "夏天的海边"},
	})

	require.NoError(t, err)
	assert.Contains(t, prompt, "老照片、夏天的海边")
	assert.Contains(t, prompt, "故事风格：小说风格")
	assert.Contains(t, prompt, "请开始创作：")
	assert.NotContains(t, prompt, "额外要求")
}

func TestStoryService_BuildPrompt_CustomRequirements(t *testing.T) {
	svc := newStoryService(&fakeGenerator{})

	prompt, err := svc.BuildPrompt(domain.StoryRequest{
		Fragments:          []string{"老照片"},
		CustomRequirements: "多写景物",
	})

	require.NoError(t, err)
	assert.Contains(t, prompt, "额外要求：多写景物")
}

func TestStoryService_BuildPrompt_NoFragments(t *testing.T) {
	svc := newStoryService(&fakeGenerator{})

	_, err := svc.BuildPrompt(domain.StoryRequest{})

	assert.ErrorIs(t, err, domain.ErrNoFragments)
}

func TestStoryService_BuildPrompt_CustomTemplate(t *testing.T) {
	svc := NewStoryService(&fakeGenerator{}, &fakePromptStore{prompts: map[string]string{
		driven.PromptStory: "风格%s 碎片%s 再%s 基调%s 长度%s",
	}})

	prompt, err := svc.BuildPrompt(domain.StoryRequest{Fragments: []string{"老照片"}})

	require.NoError(t, err)
	assert.Contains(t, prompt, "碎片老照片")
	assert.NotContains(t, prompt, "请开始创作")
}

func TestStoryService_Generate(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"  那是一个温暖的午后，我翻开了相册。\n"}}
	svc := newStoryService(gen)

	story, err := svc.Generate(context.Background(), domain.StoryRequest{
		Fragments: []string{"老照片"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, story.ID)
	assert.Equal(t, "那是一个温暖的午后，我翻开了相册。", story.Text)
	assert.Equal(t, []string{"老照片"}, story.Fragments)
	assert.Equal(t, domain.StyleNovel, story.Style)
	assert.Equal(t, domain.EmotionWarmth, story.Tone)
	assert.Equal(t, domain.LengthMedium, story.Length)
	assert.Equal(t, "fake-model", story.Model)
	assert.Greater(t, story.Seed, 0)
	assert.Positive(t, story.RuneCount)
	assert.False(t, story.GeneratedAt.IsZero())

	assert.Equal(t, gen.lastOpts.Seed, story.Seed)
	assert.NotEmpty(t, gen.lastOpts.System)
}

func TestStoryService_Generate_NilGenerator(t *testing.T) {
	svc := NewStoryService(nil, nil)

	_, err := svc.Generate(context.Background(), domain.StoryRequest{Fragments: []string{"a"}})

	assert.ErrorIs(t, err, domain.ErrGeneratorUnavailable)
}

func TestStoryService_Generate_BackendError(t *testing.T) {
	svc := newStoryService(&fakeGenerator{errs: []error{errors.New("boom")}})

	_, err := svc.Generate(context.Background(), domain.StoryRequest{Fragments: []string{"老照片"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "generating story")
}

func TestStoryService_Generate_EmptyResponse(t *testing.T) {
	svc := newStoryService(&fakeGenerator{responses: []string{"   \n"}})

	_, err := svc.Generate(context.Background(), domain.StoryRequest{Fragments: []string{"老照片"}})

	assert.ErrorIs(t, err, domain.ErrEmptyStory)
}

func TestStoryService_GenerateVersions(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"版本一。", "版本二。", "版本三。"}}
	svc := newStoryService(gen)

	versions, err := svc.GenerateVersions(context.Background(), domain.StoryRequest{
		Fragments: []string{"老照片"},
	}, 3)

	require.NoError(t, err)
	require.Len(t, versions, 3)
	for i, story := range versions {
		assert.Equal(t, i+1, story.Version)
	}
	assert.Contains(t, gen.lastPrompt, "这是第3个版本")
}

func TestStoryService_GenerateVersions_SkipsFailures(t *testing.T) {
	gen := &fakeGenerator{
		responses: []string{"版本一。", "", "版本三。"},
		errs:      []error{nil, errors.New("boom"), nil},
	}
	svc := newStoryService(gen)

	versions, err := svc.GenerateVersions(context.Background(), domain.StoryRequest{
		Fragments: []string{"老照片"},
	}, 3)

	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 1, versions[0].Version)
	assert.Equal(t, 3, versions[1].Version)
}

func TestStoryService_GenerateVersions_WarnsOnNearDuplicates(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	defer func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	}()

	gen := &fakeGenerator{
		responses: []string{"那是一个温暖的午后。", "那是一个温暖的午后。"},
	}
	svc := newStoryService(gen)

	versions, err := svc.GenerateVersions(context.Background(), domain.StoryRequest{
		Fragments: []string{"老照片"},
	}, 2)

	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Contains(t, buf.String(), "Version 2 is nearly identical to version 1")
}

func TestStoryService_GenerateVersions_DistinctVersionsNotFlagged(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)
	defer func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	}()

	gen := &fakeGenerator{
		responses: []string{"那是一个温暖的午后。", "海边的风带着咸味。"},
	}
	svc := newStoryService(gen)

	versions, err := svc.GenerateVersions(context.Background(), domain.StoryRequest{
		Fragments: []string{"老照片"},
	}, 2)

	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.NotContains(t, buf.String(), "nearly identical")
}

func TestStoryService_GenerateVersions_AllFail(t *testing.T) {
	boom := errors.New("boom")
	gen := &fakeGenerator{errs: []error{boom, boom}}
	svc := newStoryService(gen)

	_, err := svc.GenerateVersions(context.Background(), domain.StoryRequest{
		Fragments: []string{"老照片"},
	}, 2)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 versions failed")
}

func TestStoryService_GenerateVersions_ClampsCount(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newStoryService(gen)

	versions, err := svc.GenerateVersions(context.Background(), domain.StoryRequest{
		Fragments: []string{"老照片"},
	}, 0)

	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

func TestStoryService_Enhance(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"增强后的故事。"}}
	svc := newStoryService(gen)

	story, err := svc.Enhance(context.Background(), "原始故事文本。", domain.EnhanceDetail)

	require.NoError(t, err)
	assert.Equal(t, "增强后的故事。", story.Text)
	assert.NotEmpty(t, story.ID)
	assert.Contains(t, gen.lastPrompt, "原始故事文本。")
	assert.Contains(t, gen.lastPrompt, domain.EnhancementInstruction(domain.EnhanceDetail))
}

func TestStoryService_Enhance_EmptyText(t *testing.T) {
	svc := newStoryService(&fakeGenerator{})

	_, err := svc.Enhance(context.Background(), "   ", domain.EnhanceDetail)

	assert.ErrorIs(t, err, domain.ErrEmptyStory)
}

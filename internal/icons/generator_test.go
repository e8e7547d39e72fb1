package icons

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iconforge/internal/ai"
	"iconforge/internal/theme"
)

// fakeSource answers every prompt with a URL derived from the prompt.
type fakeSource struct {
	mu      sync.Mutex
	prompts []string
	reqs    []ai.ImageRequest

	failOn  string        // prompt substring that triggers err
	err     error
	empty   bool          // return zero images
	block   bool          // wait for the context to end
	delay   time.Duration // per-call latency
	slow    time.Duration // latency for prompts that do not match failOn
	calls   atomic.Int32
	inline  bool
	current atomic.Int32
	peak    atomic.Int32
}

func (f *fakeSource) GenerateImage(ctx context.Context, req ai.ImageRequest) ([]ai.Image, error) {
	f.calls.Add(1)
	n := f.current.Add(1)
	defer f.current.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	f.mu.Lock()
	f.prompts = append(f.prompts, req.Prompt)
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.slow > 0 && (f.failOn == "" || !strings.Contains(req.Prompt, f.failOn)) {
		time.Sleep(f.slow)
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.failOn != "" && strings.Contains(req.Prompt, f.failOn) {
		return nil, f.err
	}
	if f.empty {
		return nil, nil
	}
	if f.inline {
		return []ai.Image{{Data: []byte(req.Prompt), ContentType: "image/png"}}, nil
	}
	return []ai.Image{{URL: "https://img.example/" + strings.SplitN(req.Prompt, ",", 2)[0]}}, nil
}

// fakePublisher prefixes published images.
type fakePublisher struct{}

func (fakePublisher) Publish(ctx context.Context, img ai.Image) (string, error) {
	if img.Inline() {
		return "https://cdn.example/" + string(img.Data[:3]), nil
	}
	return img.URL, nil
}

func seeded() *theme.Selector {
	return theme.New(theme.WithRand(rand.New(rand.NewSource(1))))
}

func TestGenerateIconSet(t *testing.T) {
	src := &fakeSource{}
	g := New(src, nil, seeded(), time.Second)

	icons, err := g.GenerateIconSet(context.Background(), "toys", "flat", nil)
	require.NoError(t, err)
	require.Len(t, icons, theme.SubjectCount)

	pool := theme.Pool("toys")
	for i, icon := range icons {
		assert.Equal(t, i+1, icon.ID)
		assert.NotEmpty(t, icon.URL)
		assert.Contains(t, pool, icon.Prompt)
		assert.Equal(t, "https://img.example/"+icon.Prompt, icon.URL)
	}

	assert.Len(t, src.prompts, 4)
	for _, p := range src.prompts {
		assert.True(t, strings.HasSuffix(p, ", flat design, bold solid colors, geometric shapes, clean lines, vector art style, high contrast, white background, digital illustration"), p)
		assert.NotContains(t, p, " color, ")
	}
	for _, req := range src.reqs {
		assert.Equal(t, 1, req.NumOutputs)
		assert.Equal(t, "1:1", req.AspectRatio)
		assert.Equal(t, "png", req.OutputFormat)
		assert.Equal(t, 100, req.OutputQuality)
		assert.Equal(t, 4, req.NumInferenceSteps)
		assert.False(t, req.GoFast)
	}
}

func TestGenerateIconSetRunsConcurrently(t *testing.T) {
	src := &fakeSource{delay: 50 * time.Millisecond}
	g := New(src, nil, seeded(), time.Second)

	_, err := g.GenerateIconSet(context.Background(), "food", "flat", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(4), src.peak.Load(), "all four calls should be in flight together")
}

func TestGenerateIconSetWithColors(t *testing.T) {
	src := &fakeSource{}
	g := New(src, nil, seeded(), time.Second)

	_, err := g.GenerateIconSet(context.Background(), "toys", "pastels", []string{"#FF0000", "#FF0000"})
	require.NoError(t, err)

	for _, p := range src.prompts {
		assert.Contains(t, p, ", red color, rounded shapes, minimalist, white background, cute aesthetic, soft lighting, ")
		assert.NotContains(t, p, "red and red")
	}
}

func TestGenerateIconSetFallbackSubjects(t *testing.T) {
	src := &fakeSource{}
	g := New(src, nil, seeded(), time.Second)

	icons, err := g.GenerateIconSet(context.Background(), "zeppelins", "flat", nil)
	require.NoError(t, err)

	want := []string{"zeppelins object", "different zeppelins item", "another zeppelins thing", "unique zeppelins element"}
	for i, icon := range icons {
		assert.Equal(t, want[i], icon.Prompt)
	}
}

func TestGenerateIconSetAllOrNothing(t *testing.T) {
	src := &fakeSource{failOn: "different", err: errors.New("upstream 500")}
	g := New(src, nil, seeded(), time.Second)

	icons, err := g.GenerateIconSet(context.Background(), "zeppelins", "flat", nil)
	require.Error(t, err)
	assert.Nil(t, icons)
	assert.Contains(t, err.Error(), "upstream 500")
	assert.Contains(t, err.Error(), "icon 2")

	// The failure does not stop the siblings.
	assert.Eventually(t, func() bool { return src.calls.Load() == 4 }, time.Second, 5*time.Millisecond)
}

func TestGenerateIconSetFailsFast(t *testing.T) {
	src := &fakeSource{failOn: "zeppelins object", err: errors.New("upstream 500"), slow: time.Second}
	g := New(src, nil, seeded(), 5*time.Second)

	start := time.Now()
	icons, err := g.GenerateIconSet(context.Background(), "zeppelins", "flat", nil)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Nil(t, icons)
	assert.Contains(t, err.Error(), "upstream 500")
	assert.Contains(t, err.Error(), "icon 1")
	assert.Less(t, elapsed, 500*time.Millisecond, "error waited for the slow siblings")
}

func TestGenerateIconSetEmptyOutput(t *testing.T) {
	src := &fakeSource{empty: true}
	g := New(src, nil, seeded(), time.Second)

	_, err := g.GenerateIconSet(context.Background(), "toys", "flat", nil)
	assert.ErrorIs(t, err, ai.ErrNoOutput)
}

func TestGenerateIconSetTimeout(t *testing.T) {
	src := &fakeSource{block: true}
	g := New(src, nil, seeded(), 20*time.Millisecond)

	_, err := g.GenerateIconSet(context.Background(), "toys", "flat", nil)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestGenerateIconSetParentCancelled(t *testing.T) {
	src := &fakeSource{block: true}
	g := New(src, nil, seeded(), time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := g.GenerateIconSet(ctx, "toys", "flat", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestGenerateIconSetUnknownStyle(t *testing.T) {
	src := &fakeSource{}
	g := New(src, nil, seeded(), time.Second)

	_, err := g.GenerateIconSet(context.Background(), "toys", "neon", nil)
	assert.ErrorIs(t, err, ErrUnknownStyle)
	assert.Zero(t, src.calls.Load())
}

func TestGenerateIconSetPublishesInlineImages(t *testing.T) {
	src := &fakeSource{inline: true}
	g := New(src, fakePublisher{}, theme.New(), time.Second)

	icons, err := g.GenerateIconSet(context.Background(), "zeppelins", "flat", nil)
	require.NoError(t, err)
	for _, icon := range icons {
		assert.True(t, strings.HasPrefix(icon.URL, "https://cdn.example/"), icon.URL)
	}
}

func TestGenerateIconSetInlineWithoutPublisher(t *testing.T) {
	src := &fakeSource{inline: true}
	g := New(src, nil, theme.New(), time.Second)

	_, err := g.GenerateIconSet(context.Background(), "toys", "flat", nil)
	assert.ErrorIs(t, err, ai.ErrNoOutput)
}

func TestRegenerateIconWithColor(t *testing.T) {
	src := &fakeSource{}
	g := New(src, nil, seeded(), time.Second)

	icon, err := g.RegenerateIconWithColor(context.Background(), "teddy bear", "flat", "#0000FF", 2)
	require.NoError(t, err)

	assert.Equal(t, 3, icon.ID)
	assert.Equal(t, "teddy bear", icon.Prompt)
	require.Len(t, src.prompts, 1)
	assert.True(t, strings.HasPrefix(src.prompts[0], "teddy bear, blue color, "), src.prompts[0])
	assert.True(t, strings.HasSuffix(src.prompts[0], ", white background, digital illustration"))
}

func TestRegenerateIconWithColorUnknownStyle(t *testing.T) {
	g := New(&fakeSource{}, nil, seeded(), time.Second)

	_, err := g.RegenerateIconWithColor(context.Background(), "x", "nope", "#fff", 0)
	assert.ErrorIs(t, err, ErrUnknownStyle)
}

func TestNewDefaults(t *testing.T) {
	g := New(&fakeSource{}, nil, nil, 0)
	assert.Equal(t, DefaultTimeout, g.timeout)
	assert.NotNil(t, g.selector)
}

package classify

import (
	"testing"

	"github.com/jonathan/portfolio-evaluator/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestBuild_AllSignals(t *testing.T) {
	markup := `<html><body><div id="root"></div><script src="/static/js/React.production.min.js"></script></body></html>`
	links := []string{"https://github.com/jane", "https://foo.netlify.app"}

	result := Build(markup, links)
	assert.Equal(t, types.BuildReactSPA, result.BuildType)
	assert.Equal(t, 1.0, result.Confidence)
	assert.True(t, result.Heuristic)
}

func TestBuild_NoSignals(t *testing.T) {
	markup := `<html><body><main><h1>Jane Doe</h1><p>Backend engineer</p></main></body></html>`

	result := Build(markup, []string{"https://github.com/jane"})
	assert.Equal(t, types.BuildStaticHTML, result.BuildType)
	assert.Equal(t, 0.9, result.Confidence)
	assert.True(t, result.Heuristic)
}

func TestScore_Signals(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		links  []string
		score  int
	}{
		{"empty", "", nil, 0},
		{"root mount", `<div id="root"></div>`, nil, 2},
		{"app mount uppercase", `<DIV ID="APP"></DIV>`, nil, 2},
		{"react token only", `<p>I build things with react</p>`, nil, 2},
		{"static host only", `<p>hi</p>`, []string{"https://jane.vercel.app/"}, 1},
		{"mount and host", `<div id="app"></div>`, []string{"https://x.netlify.app"}, 3},
		{"mount and react", `<div id="root" data-framework="React"></div>`, nil, 4},
		{"react and host", `<p>ReactJS</p>`, []string{"https://x.netlify.app"}, 3},
		{"react-root id is not a mount marker", `<div id="react-root"></div>`, nil, 2},
		{"single quotes are not a mount marker", `<div id='root'></div>`, nil, 0},
		{"host inside path does not count", `<p>x</p>`, []string{"https://example.com/netlify.app"}, 0},
		{"many hosts count once", `<p>x</p>`, []string{"https://a.netlify.app", "https://b.vercel.app"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.score, Score(tt.markup, tt.links))
		})
	}
}

func TestFromScore_Thresholds(t *testing.T) {
	for score := 0; score <= 2; score++ {
		result := FromScore(score)
		assert.Equal(t, types.BuildStaticHTML, result.BuildType, "score %d", score)
		assert.Equal(t, 0.9, result.Confidence, "score %d", score)
	}

	expected := map[int]float64{3: 0.6, 4: 0.8, 5: 1.0}
	for score, confidence := range expected {
		result := FromScore(score)
		assert.Equal(t, types.BuildReactSPA, result.BuildType, "score %d", score)
		assert.InDelta(t, confidence, result.Confidence, 1e-9, "score %d", score)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	markup := `<div id="app"></div>`
	links := []string{"https://me.vercel.app"}

	first := Build(markup, links)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Build(markup, links))
	}
}

func TestDetectHost(t *testing.T) {
	tests := []struct {
		link     string
		expected Host
	}{
		{"https://foo.netlify.app", HostNetlify},
		{"https://FOO.Netlify.App/projects", HostNetlify},
		{"https://netlify.app", HostNetlify},
		{"https://my-site.vercel.app:443/", HostVercel},
		{"https://vercel.app.evil.com", HostUnknown},
		{"https://notnetlify.app", HostUnknown},
		{"https://github.com/jane", HostUnknown},
		{"mailto:jane@example.com", HostUnknown},
		{"", HostUnknown},
		{"://bad", HostUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectHost(tt.link))
		})
	}
}

func TestAnyStaticHost(t *testing.T) {
	assert.False(t, AnyStaticHost(nil))
	assert.False(t, AnyStaticHost([]string{"https://github.com"}))
	assert.True(t, AnyStaticHost([]string{"https://github.com", "https://a.vercel.app"}))
}

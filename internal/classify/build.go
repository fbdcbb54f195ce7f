// Package classify labels how a portfolio site was built from its markup and links.
//
// The classification is a heuristic. Its confidence values are fixed scores,
// not measured probabilities.
package classify

import (
	"math"
	"regexp"
	"strings"

	"github.com/jonathan/portfolio-evaluator/internal/types"
)

// Signal weights and thresholds.
const (
	RootMountWeight  = 2
	ReactTokenWeight = 2
	StaticHostWeight = 1
	MaxScore         = RootMountWeight + ReactTokenWeight + StaticHostWeight
	SPAThreshold     = 3
	StaticConfidence = 0.9
)

var rootMountPattern = regexp.MustCompile(`(?i)id="(root|app)"`)

// Score accumulates the SPA signals found in markup and links.
func Score(markup string, links []string) int {
	score := 0
	if rootMountPattern.MatchString(markup) {
		score += RootMountWeight
	}
	if strings.Contains(strings.ToLower(markup), "react") {
		score += ReactTokenWeight
	}
	if AnyStaticHost(links) {
		score += StaticHostWeight
	}
	return score
}

// Build classifies a rendered page. It is pure: identical input yields identical output.
func Build(markup string, links []string) types.BuildClassification {
	return FromScore(Score(markup, links))
}

// FromScore maps an accumulated score to a classification.
func FromScore(score int) types.BuildClassification {
	if score >= SPAThreshold {
		return types.BuildClassification{
			BuildType:  types.BuildReactSPA,
			Confidence: math.Min(float64(score)/MaxScore, 1.0),
			Heuristic:  true,
		}
	}
	return types.BuildClassification{
		BuildType:  types.BuildStaticHTML,
		Confidence: StaticConfidence,
		Heuristic:  true,
	}
}

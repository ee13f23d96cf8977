package analytics

import (
	"sort"

	"sintascope/internal/model"
)

// TopThresholdRank Top 10 门槛所在名次
const TopThresholdRank = 10

// RankAffiliations 按 ScoreOverall 降序排名，同分保持输入顺序
// 返回排序后的副本与第 10 名的分数（不足 10 个机构时为 nil，且所有 gap 为 nil）
func RankAffiliations(affiliations []model.Affiliation) ([]model.Affiliation, *float64) {
	ranked := make([]model.Affiliation, len(affiliations))
	copy(ranked, affiliations)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ScoreOverall > ranked[j].ScoreOverall
	})

	var threshold *float64
	if len(ranked) >= TopThresholdRank {
		threshold = floatPtr(ranked[TopThresholdRank-1].ScoreOverall)
	}

	for i := range ranked {
		ranked[i].RankOverall = i + 1
		ranked[i].GapToTop10 = nil
		if threshold == nil {
			continue
		}
		if ranked[i].RankOverall <= TopThresholdRank {
			ranked[i].GapToTop10 = floatPtr(0)
		} else {
			ranked[i].GapToTop10 = floatPtr(*threshold - ranked[i].ScoreOverall)
		}
	}

	return ranked, threshold
}

// TopAffiliations 取排名前 n 的机构（n<=0 或超过总数时返回全部）
func TopAffiliations(ranked []model.Affiliation, n int) []model.Affiliation {
	if n <= 0 || n > len(ranked) {
		n = len(ranked)
	}
	out := make([]model.Affiliation, n)
	copy(out, ranked[:n])
	return out
}

func floatPtr(v float64) *float64 {
	return &v
}

package journal

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SearchClosed 在已关闭条目的总结中模糊匹配，忽略大小写。
// 空查询返回全部已关闭条目，结果按匹配距离升序，距离相同按创建时间倒序。
func SearchClosed(entries []*Entry, query string) []*Entry {
	query = strings.TrimSpace(query)
	type hit struct {
		e    *Entry
		dist int
	}
	var hits []hit
	for _, e := range entries {
		if e == nil || e.Status != StatusClosed {
			continue
		}
		if query == "" {
			hits = append(hits, hit{e: e})
			continue
		}
		dist := fuzzy.RankMatchNormalizedFold(query, searchText(e))
		if dist < 0 {
			continue
		}
		hits = append(hits, hit{e: e, dist: dist})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].e.CreatedAt.After(hits[j].e.CreatedAt)
	})
	out := make([]*Entry, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.e)
	}
	return out
}

func searchText(e *Entry) string {
	parts := []string{e.Summary.Title, e.Summary.Summary}
	parts = append(parts, e.Summary.Tags...)
	parts = append(parts, e.Tags...)
	return strings.Join(parts, " ")
}

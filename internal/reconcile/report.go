package reconcile

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"plagrelay/internal/domain"
	"plagrelay/internal/payload"
)

// ShapeReport reshapes a native report payload into a ReconciledReport.
// Missing fields stay zero; an unfinished upstream report therefore comes
// back with an empty percent and no sources or chunks.
func ShapeReport(kind domain.CheckKind, backend domain.Backend, id string, body json.RawMessage) *domain.ReconciledReport {
	get := bodyGetter(body)
	report := &domain.ReconciledReport{
		CheckKind:  kind,
		Identifier: id,
		Backend:    backend,
		Raw:        body,
	}

	switch kind {
	case domain.CheckKindPlagiarism:
		report.Percent = floatAt(get, "report.percent", "percent", "report_data.percent")
		report.Sources = sources(get)
	case domain.CheckKindAIDetection:
		report.Percent = floatAt(get, "percent")
		report.Chunks = chunks(get)
		report.Comment = stringAt(get, "comment")
	}
	return report
}

// getter resolves a dotted path against one JSON value.
type getter func(path string) gjson.Result

func bodyGetter(body []byte) getter {
	return func(path string) gjson.Result { return payload.Get(body, path) }
}

func itemGetter(item gjson.Result) getter {
	return func(path string) gjson.Result { return payload.Lookup(item, path) }
}

func sources(get getter) []domain.MatchedSource {
	items := arrayAt(get, "report_data.sources", "sources", "report.sources")
	out := make([]domain.MatchedSource, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		at := itemGetter(item)
		out = append(out, domain.MatchedSource{
			Percent:     floatAt(at, "percent", "plagiarism"),
			ContentType: stringAt(at, "content_type", "type"),
			URL:         stringAt(at, "url", "source", "link"),
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func chunks(get getter) []domain.FlaggedChunk {
	items := arrayAt(get, "chunks")
	out := make([]domain.FlaggedChunk, 0, len(items))
	for _, item := range items {
		at := itemGetter(item)
		out = append(out, domain.FlaggedChunk{
			Reliability: floatAt(at, "reliability"),
			Position: domain.ChunkPosition{
				Start: intAt(at, "position.start", "start"),
				End:   intAt(at, "position.end", "end"),
			},
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func arrayAt(get getter, paths ...string) []gjson.Result {
	for _, p := range paths {
		if r := get(p); r.IsArray() {
			return r.Array()
		}
	}
	return nil
}

func floatAt(get getter, paths ...string) float64 {
	for _, p := range paths {
		if f, ok := payload.Float(get(p)); ok {
			return f
		}
	}
	return 0
}

func intAt(get getter, paths ...string) int {
	for _, p := range paths {
		if n, ok := payload.Int(get(p)); ok {
			return n
		}
	}
	return 0
}

func stringAt(get getter, paths ...string) string {
	for _, p := range paths {
		if s, ok := payload.String(get(p)); ok {
			return s
		}
	}
	return ""
}

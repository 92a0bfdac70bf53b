package domain

import (
	"encoding/json"
	"time"
)

// Profile times the stages of one request so slow dashboards can be
// diagnosed from the logs. Spans are sequential; starting a new span ends
// the previous one. Not safe for concurrent use, which is fine for a
// single request path.
type Profile struct {
	Spans   []*Span
	startTs time.Time
	TotalMs *int64
}

type Span struct {
	Name    string `json:"name"`
	Elapsed *int64 `json:"elapsed"`

	startTs time.Time
}

func NewProfile() (newProfile *Profile, endProfile func()) {
	newProfile = &Profile{
		Spans:   []*Span{},
		startTs: time.Now(),
	}
	return newProfile, newProfile.End
}

func (p *Profile) StartNewSpan(name string) {
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].end()
	}
	p.Spans = append(p.Spans, &Span{
		Name:    name,
		startTs: time.Now(),
	})
}

func (p *Profile) End() {
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].end()
	}
	t := time.Since(p.startTs).Milliseconds()
	if p.TotalMs == nil {
		p.TotalMs = &t
	}
}

func (s *Span) end() {
	if s.Elapsed == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.Elapsed = &t
	}
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	return json.Marshal(p.Spans)
}

package report

import (
	"time"

	"github.com/google/uuid"

	"lifewheel/internal/wheel"
)

var (
	now   = time.Now
	newID = uuid.NewString
)

// Document is the exported form of a finished wheel.
type Document struct {
	ID          string        `json:"id" toml:"id" yaml:"id"`
	Title       string        `json:"title" toml:"title" yaml:"title"`
	Quote       string        `json:"quote" toml:"quote" yaml:"quote"`
	CreatedAt   time.Time     `json:"created_at" toml:"created_at" yaml:"created_at"`
	MicroAction string        `json:"micro_action_policy" toml:"micro_action_policy" yaml:"micro_action_policy"`
	Summary     wheel.Summary `json:"summary" toml:"summary" yaml:"summary"`
}

func NewDocument(s wheel.State, policy wheel.MicroActionPolicy) Document {
	if policy == "" {
		policy = wheel.MicroActionStrict
	}
	return Document{
		ID:          newID(),
		Title:       wheel.SummaryTitle,
		Quote:       wheel.SummaryQuote,
		CreatedAt:   now().UTC().Truncate(time.Second),
		MicroAction: string(policy),
		Summary:     wheel.Summarize(s),
	}
}

// ShortID is the prefix used in file names.
func (d Document) ShortID() string {
	if len(d.ID) > 8 {
		return d.ID[:8]
	}
	return d.ID
}

package content

// ItemContent is one passage's worth of experiment material. It is supplied
// by a loader before a timeline is built and never modified afterwards.
type ItemContent struct {
	ItemID string `json:"item_id" yaml:"item_id" validate:"required,max=80"`
	Item   int    `json:"item" yaml:"item" validate:"min=0"`

	// Condition metadata
	Condition     string `json:"condition" yaml:"condition" validate:"max=80"`
	FirstMention  string `json:"first_mention" yaml:"first_mention" validate:"max=80"`
	RecentMention string `json:"recent_mention" yaml:"recent_mention" validate:"max=80"`
	KnowledgeCue  string `json:"knowledge_cue" yaml:"knowledge_cue" validate:"max=80"`
	Start         string `json:"start" yaml:"start" validate:"required,max=80"`
	End           string `json:"end" yaml:"end" validate:"required,max=80"`

	// Passage is trusted, researcher-authored HTML.
	Passage string `json:"passage" yaml:"passage" validate:"required"`

	// Critical question
	CriticalQuestion string `json:"critical_q" yaml:"critical_q" validate:"required"`
	CriticalAnswer   string `json:"critical_a" yaml:"critical_a" validate:"required"`

	// Attention checks
	AttnCheck1Question string `json:"attn_check_1_q" yaml:"attn_check_1_q" validate:"required"`
	AttnCheck1Answer   string `json:"attn_check_1_a" yaml:"attn_check_1_a" validate:"required"`
	AttnCheck2Question string `json:"attn_check_2_q" yaml:"attn_check_2_q" validate:"required"`
	AttnCheck2Answer   string `json:"attn_check_2_a" yaml:"attn_check_2_a" validate:"required"`
}

// Metadata returns the item fields recorded alongside every scored trial.
func (i ItemContent) Metadata() map[string]interface{} {
	return map[string]interface{}{
		"item":           i.Item,
		"item_id":        i.ItemID,
		"condition":      i.Condition,
		"first_mention":  i.FirstMention,
		"recent_mention": i.RecentMention,
		"knowledge_cue":  i.KnowledgeCue,
		"start":          i.Start,
		"end":            i.End,
	}
}

// Store is the read-only view of the item a session runs on.
type Store interface {
	Item() ItemContent
}

type staticStore struct {
	item ItemContent
}

// NewStore wraps item in a Store. The item is held by value, so later
// changes to the caller's copy are not observed.
func NewStore(item ItemContent) Store {
	return staticStore{item: item}
}

func (s staticStore) Item() ItemContent {
	return s.item
}

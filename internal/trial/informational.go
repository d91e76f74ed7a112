package trial

import (
	"html/template"

	"github.com/SAP-F-2025/comprehension-service/internal/content"
)

// Informational shows a screen and waits for one of Keys. Its result is
// never scored.
type Informational struct {
	Part     string
	Keys     []string
	Template *template.Template
	// View builds the template data from the item. When nil the item itself
	// is passed.
	View func(item content.ItemContent) interface{}
}

func (s *Informational) Kind() Kind {
	return KindInformational
}

func (s *Informational) RequiredInput() InputRequirement {
	keys := s.Keys
	if len(keys) == 0 {
		keys = []string{KeySpace}
	}
	return InputRequirement{Mode: InputKey, Keys: keys}
}

func (s *Informational) Render(store content.Store) (Markup, error) {
	item := store.Item()
	var data interface{} = item
	if s.View != nil {
		data = s.View(item)
	}

	html, err := execute(s.Template, data)
	if err != nil {
		return Markup{}, err
	}
	return Markup{Kind: s.Kind(), Part: s.Part, HTML: html, Input: s.RequiredInput()}, nil
}

func (s *Informational) Complete(in Input, _ content.Store) (Result, error) {
	return Result{
		Kind:      s.Kind(),
		TrialPart: s.Part,
		Key:       in.Key,
		Data:      map[string]interface{}{"trial_part": s.Part},
	}, nil
}

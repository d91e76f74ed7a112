package trial

import (
	"bytes"
	"fmt"
	"html/template"
)

var questionTemplate = template.Must(template.New("question").Parse(`<div class='trial'>
  <h3 class='header'>{{.Heading}}</h3>
  <div class='question-container {{.Role}}'>
    <p class='question'>{{.Question}}</p>
    <div class='response {{.Role}}'>
      <input type="text" name="{{.Field}}" id="{{.Field}}" class="critical-response" autocomplete="off" placeholder="" required />
    </div>
  </div>
</div>`))

var choiceTemplate = template.Must(template.New("choice").Parse(`<div class='trial'>
  <h3 class='header'>{{.Heading}}</h3>
  <div class='question-container {{.Role}}'>
    <p class='question'>{{.Question}}</p>
    <div class='response {{.Role}}'>
      {{- range $i, $opt := .Options}}
      <label><input type="radio" name="{{$.Field}}" value="{{$opt}}" required /> {{$opt}}</label>
      {{- end}}
    </div>
  </div>
</div>`))

type questionView struct {
	Heading  string
	Role     Role
	Question string
	Field    string
	Options  []string
}

func execute(tmpl *template.Template, data interface{}) (template.HTML, error) {
	if tmpl == nil {
		return "", fmt.Errorf("no template to render")
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", tmpl.Name(), err)
	}
	// Output of html/template is already escaped.
	return template.HTML(buf.String()), nil
}

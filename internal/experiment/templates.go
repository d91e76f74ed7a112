package experiment

import "html/template"

var instructionsTemplate = template.Must(template.New("instructions").Parse(`<div class='instructions-container'>
  <h2 class='instructions-header'>Passage Comprehension Task</h2>
  <p class='instructions'>
    In this experiment, you will first see a short story.
    Please read through the story once at your normal reading pace.
    Once you have read the story you will be asked to complete
    a sentence, which is a continuation of the story. Complete the
    sentence in the way that makes the most sense based on what you read
    in the story. Please use only a single word to complete the sentence.
    Finally you will be asked two questions about what happened in the
    story. Answer the questions with a single word.
  </p>
  <p class='instructions' id='continue'>
    <b>Press the spacebar to continue to the passage.</b>
  </p>
</div>`))

var passageTemplate = template.Must(template.New("passage").Parse(`<div class='trial'>
  <h2 class='header'>Passage</h2>
  <div class='passage'>
    {{.Passage}}
  </div>
  <p class='instructions' id='continue'>
    <b>Press the spacebar to continue to the questions.</b>
  </p>
</div>`))

var finishTemplate = template.Must(template.New("finish").Parse(`<div class='instructions-container'>
  <h2 class='instructions-header'>Section Complete</h2>
  <p class='instructions'>
    That concludes the comprehension question section of the experiment.
    Press the spacebar to continue.
  </p>
</div>`))

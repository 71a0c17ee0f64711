package assist

import (
	"bytes"
	"text/template"
)

var replyPrompt = template.Must(template.New("reply").Parse(`You are a helpful and professional communication assistant for a local job marketplace.
Suggest 3 or 4 short, relevant, professionally toned replies for the user called "You".

The user's role is: {{.Role}}. A poster usually asks about availability or qualifications; a worker usually confirms details or asks about next steps.
If the last message was a question, suggest answers. If it was a statement, suggest follow-ups or acknowledgements. Never repeat something already said.

Job title: {{.JobTitle}}
Job description: {{.JobDescription}}

Chat history:
{{range .History}}{{.}}
{{else}}(no messages yet)
{{end}}
Respond with JSON of the form {"suggestions": ["...", "..."]}.`))

var detailsPrompt = template.Must(template.New("details").Parse(`You write clear, concise job postings for a local services marketplace.
Expand the job title below into a friendly, professional description of 2 to 4 sentences and list the 1 to 3 most relevant skills.

Job title: {{.Title}}

Respond with JSON of the form {"description": "...", "skills": ["..."]}.`))

const replySchema = `{
  "type": "object",
  "required": ["suggestions"],
  "properties": {
    "suggestions": {
      "type": "array",
      "minItems": 3,
      "items": {"type": "string", "minLength": 1}
    }
  }
}`

const detailsSchema = `{
  "type": "object",
  "required": ["description", "skills"],
  "properties": {
    "description": {"type": "string", "minLength": 1},
    "skills": {
      "type": "array",
      "minItems": 1,
      "items": {"type": "string", "minLength": 1}
    }
  }
}`

func render(tpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

package notifications

import (
	"bytes"
	"html/template"
)

var (
	registrationTpl = template.Must(template.New("registration").Parse(`
<h1>Welcome to Quiz App!</h1>
<p>Hi there,</p>
<p>Thank you for registering with <strong>Quiz App</strong>. You can now take quizzes on various programming languages.</p>
<p>Happy learning!</p>
<p>The Quiz App Team</p>
`))

	resultTpl = template.Must(template.New("result").Parse(`
<h1>Quiz Results</h1>
<p>Here are your results for the {{.Language}} quiz:</p>
<ul>
  <li>Score: {{.Score}}/{{.Total}}</li>
  <li>Percentage: {{printf "%.1f" .Percentage}}%</li>
</ul>
{{if .Forced}}<p><strong>This attempt was submitted automatically after repeated tab switches.</strong></p>{{end}}
<p>Keep practicing to improve your skills!</p>
<p>The Quiz App Team</p>
`))

	blockedTpl = template.Must(template.New("blocked").Parse(`
<h1>Quiz attempt blocked</h1>
<p>Hi {{.Username}},</p>
<p>Your account is currently blocked, so the quiz you tried to start or submit was not accepted.</p>
<p>Please contact an administrator if you think this is a mistake.</p>
<p>The Quiz App Team</p>
`))

	passwordChangedTpl = template.Must(template.New("password").Parse(`
<h1>Your password was changed</h1>
<p>Hi {{.Username}},</p>
<p>The password for your Quiz App account was just changed. If this was not you, contact an administrator right away.</p>
<p>The Quiz App Team</p>
`))
)

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

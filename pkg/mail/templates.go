package mail

import (
	"bytes"
	_ "embed"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"
)

// BodyParams is the data rendered into the warm-up mail bodies.
type BodyParams struct {
	SentAt time.Time
	Day    int
}

var (
	htmlTemplate = htmltemplate.New("warmup")
	textTemplate = texttemplate.New("warmup")

	//go:embed templates/warmup.html
	htmlTemplateRaw string
	//go:embed templates/warmup.txt
	textTemplateRaw string
)

func init() {
	if _, err := htmlTemplate.Parse(htmlTemplateRaw); err != nil {
		panic(err)
	}
	if _, err := textTemplate.Parse(textTemplateRaw); err != nil {
		panic(err)
	}
}

func RenderHTML(p BodyParams) (string, error) {
	b := bytes.Buffer{}
	err := htmlTemplate.Execute(&b, p)
	return b.String(), err
}

func RenderText(p BodyParams) (string, error) {
	b := bytes.Buffer{}
	err := textTemplate.Execute(&b, p)
	return b.String(), err
}

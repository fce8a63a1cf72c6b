// Package blockpage renders the static page shown instead of a blocked
// submission.
package blockpage

import (
	"embed"
	"errors"
	"fmt"
	"html"
	"net/url"
	"os"
	"strings"
)

//go:embed templates/die_page.html
var templates embed.FS

const (
	defaultTemplate = "templates/die_page.html"

	MessageTitle = `<b style="color: #49C73B;">Clean</b><b style="color: #349ebf;">Talk.</b> Spam protection`
	BackScript   = `<script>setTimeout("history.back()", 5000);</script>`
)

var ErrTemplateUnavailable = errors.New("block page template unavailable")

//go:generate mockery --name=Renderer --dir=. --output=./mocks --filename=renderer_mock.go --case=underscore --with-expecter
type Renderer interface {
	Render(message, refererURL string) (string, error)
}

type renderer struct {
	templatePath string
}

// NewRenderer uses the embedded template when templatePath is empty.
func NewRenderer(templatePath string) Renderer {
	return &renderer{templatePath: templatePath}
}

func (r *renderer) Render(message, refererURL string) (string, error) {
	page, err := r.load()
	if err != nil {
		return "", err
	}
	// The verdict comment is inserted as sent; it may carry markup.
	replacer := strings.NewReplacer(
		"{MESSAGE_TITLE}", MessageTitle,
		"{MESSAGE}", message,
		"{BACK_LINK}", BackLink(refererURL),
		"{BACK_SCRIPT}", BackScript,
	)
	return replacer.Replace(page), nil
}

func (r *renderer) load() (string, error) {
	var (
		raw []byte
		err error
	)
	if r.templatePath != "" {
		raw, err = os.ReadFile(r.templatePath)
	} else {
		raw, err = templates.ReadFile(defaultTemplate)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateUnavailable, err)
	}
	return string(raw), nil
}

// BackLink returns an anchor to the referer, or "" unless it is an absolute http(s) URL.
func BackLink(refererURL string) string {
	refererURL = strings.TrimSpace(refererURL)
	if refererURL == "" {
		return ""
	}
	u, err := url.Parse(refererURL)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return `<a href="` + html.EscapeString(u.String()) + `">Back</a>`
}

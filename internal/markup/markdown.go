package markup

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// Markdown renders markup as Markdown for terminal previews. Scripts are
// dropped, so typeset math shows through its rendered frame. Relative
// links are resolved against baseURL when it is set.
func Markdown(markup, baseURL string) (string, error) {
	var opts []converter.ConvertOptionFunc
	if baseURL != "" {
		opts = append(opts, converter.WithDomain(baseURL))
	}
	md, err := mdConverter.ConvertString(markup, opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

// ContentMarkdown renders the content region as Markdown.
func (p *Page) ContentMarkdown(baseURL string) (string, error) {
	content, err := p.ContentHTML()
	if err != nil {
		return "", err
	}
	return Markdown(content, baseURL)
}

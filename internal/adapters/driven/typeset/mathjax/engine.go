package mathjax

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/stencil-cli/internal/converters/math"
	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/core/ports/driven"
	"github.com/custodia-labs/stencil-cli/internal/logger"
	"github.com/custodia-labs/stencil-cli/internal/markup"
)

// Ensure Engine implements the interface.
var _ driven.TypesettingEngine = (*Engine)(nil)

// Page contract names.
const (
	ElementIDPrefix = "MathJax-Element-"
	FrameSuffix     = "-Frame"
	PreviewClass    = "MathJax_Preview"
	FrameClass      = "MathJax"
	DisplayClass    = "MathJax_Display"
)

var versionPattern = regexp.MustCompile(`MathJax\.version\s*=\s*["']([^"']+)["']`)

var log = logger.For("mathjax")

// Engine typesets math scripts in a page region.
type Engine struct {
	mu        sync.Mutex
	config    domain.EngineConfig
	installed bool
	version   string
	next      int
}

// New creates an engine that has not been installed yet.
func New() *Engine {
	return &Engine{config: domain.DefaultEngineConfig("")}
}

// Configure sets the engine options. It must precede Install.
func (e *Engine) Configure(cfg domain.EngineConfig) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config = cfg
}

// Install takes the fetched engine script. The script must be non-empty;
// its declared version, if any, is recorded.
func (e *Engine) Install(script []byte) error {
	if len(bytes.TrimSpace(script)) == 0 {
		return errors.New("install engine: empty script")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if m := versionPattern.FindSubmatch(script); m != nil {
		e.version = string(m[1])
	}
	e.installed = true
	log.Debug("installed engine %q, font %s", e.version, e.config.PreferredFont)
	return nil
}

// Version returns the installed engine version, empty when unknown.
func (e *Engine) Version() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.version
}

// Typeset renders every math script under region.
func (e *Engine) Typeset(ctx context.Context, region *html.Node) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.installed {
		return domain.ErrEngineNotLoaded
	}

	for _, script := range markup.QueryAll(region, math.Selector) {
		if err := ctx.Err(); err != nil {
			return err
		}
		id := markup.Attr(script, "id")
		if !strings.HasPrefix(id, ElementIDPrefix) {
			e.next++
			id = ElementIDPrefix + strconv.Itoa(e.next)
			markup.SetAttr(script, "id", id)
		}

		frame := frameFor(script, id)
		if frame == nil {
			frame = e.insertFrame(script, id)
		}
		e.render(frame, script)
	}
	return nil
}

// frameFor returns the frame inserted for script by an earlier run.
func frameFor(script *html.Node, id string) *html.Node {
	prev := script.PrevSibling
	for prev != nil && prev.Type == html.TextNode && strings.TrimSpace(prev.Data) == "" {
		prev = prev.PrevSibling
	}
	if prev == nil || prev.Type != html.ElementNode || markup.Attr(prev, "id") != id+FrameSuffix {
		return nil
	}
	return prev
}

func (e *Engine) insertFrame(script *html.Node, id string) *html.Node {
	preview := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr:     []html.Attribute{{Key: "class", Val: PreviewClass}},
	}
	frame := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr: []html.Attribute{
			{Key: "class", Val: FrameClass},
			{Key: "id", Val: id + FrameSuffix},
			{Key: "role", Val: "presentation"},
		},
	}
	script.Parent.InsertBefore(preview, script)
	script.Parent.InsertBefore(frame, script)
	return frame
}

func (e *Engine) render(frame, script *html.Node) {
	class := FrameClass
	if strings.Contains(markup.Attr(script, "type"), "mode=display") {
		class = DisplayClass
	}
	markup.SetAttr(frame, "class", class)
	markup.SetAttr(frame, "data-font", e.config.PreferredFont)
	if e.config.ShowMathMenu {
		markup.SetAttr(frame, "tabindex", "0")
	} else {
		markup.RemoveAttr(frame, "tabindex")
	}
	markup.SetText(frame, markup.Text(script))
}

// String describes the engine state.
func (e *Engine) String() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fmt.Sprintf("mathjax(version=%q installed=%t)", e.version, e.installed)
}

package services

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/custodia-labs/stencil-cli/internal/core/domain"
	"github.com/custodia-labs/stencil-cli/internal/markup"
)

var addressMeta = markup.Compile(`head meta[itemprop="address"]`)

// AddressResolver derives a stencil Location from a page and its URL.
type AddressResolver struct {
	hostURL string
}

// NewAddressResolver creates a resolver. A non-empty hostURL replaces the
// protocol, host and port taken from the page URL.
func NewAddressResolver(hostURL string) *AddressResolver {
	return &AddressResolver{hostURL: hostURL}
}

// Resolve computes the Location of the page at pageURL.
// An address that cannot be determined is left empty; only an
// unparseable URL is an error.
func (r *AddressResolver) Resolve(doc *html.Node, pageURL string) (domain.Location, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return domain.Location{}, fmt.Errorf("%w: page url %q: %v", domain.ErrInvalidInput, pageURL, err)
	}

	loc := domain.Location{
		Protocol: u.Scheme + ":",
		Host:     u.Hostname(),
		Port:     u.Port(),
		Address:  addressFromMeta(doc),
	}
	if u.Scheme == "file" {
		loc.Host = domain.LocalFileHost
		loc.Port = ""
	}
	if loc.Address == "" {
		loc.Address = AddressFromPath(u.Path)
	}

	if r.hostURL != "" {
		if err := overrideHost(&loc, r.hostURL); err != nil {
			return domain.Location{}, err
		}
	}
	return loc, nil
}

func addressFromMeta(doc *html.Node) domain.DocumentAddress {
	if doc == nil {
		return ""
	}
	meta := markup.Query(doc, addressMeta)
	if meta == nil {
		return ""
	}
	return domain.DocumentAddress(markup.Attr(meta, "content"))
}

// AddressFromPath extracts the address from a URL path. The path is only
// an address when its final segment ends with the slug marker; that
// segment is a title and is dropped together with its separator.
func AddressFromPath(path string) domain.DocumentAddress {
	path = strings.TrimPrefix(path, "/")
	i := strings.LastIndex(path, "/")
	last := path
	if i >= 0 {
		last = path[i:]
	}
	if !strings.HasSuffix(last, domain.SlugMarker) {
		return ""
	}
	if i < 0 {
		return ""
	}
	return domain.DocumentAddress(path[:i])
}

func overrideHost(loc *domain.Location, hostURL string) error {
	u, err := url.Parse(hostURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: host url %q", domain.ErrInvalidInput, hostURL)
	}
	loc.Protocol = u.Scheme + ":"
	loc.Host = u.Hostname()
	loc.Port = u.Port()
	return nil
}

package mock

import (
	"github.com/wxclip/wxclip"
	"golang.org/x/net/html"
)

var _ wxclip.Converter = (*Converter)(nil)

// Converter is a mock implementation of wxclip.Converter.
type Converter struct {
	ConvertFn     func(pageHTML string) (string, error)
	ConvertNodeFn func(n *html.Node) (string, error)
}

func (c *Converter) Convert(pageHTML string) (string, error) {
	return c.ConvertFn(pageHTML)
}

func (c *Converter) ConvertNode(n *html.Node) (string, error) {
	return c.ConvertNodeFn(n)
}

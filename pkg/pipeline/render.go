package pipeline

import (
	"context"

	"github.com/matzehuels/depthplot/pkg/errors"
	"github.com/matzehuels/depthplot/pkg/render/sink"
)

// RenderFormat renders one artifact of a built result. It never touches the
// cache, so it is safe for plots whose selection state changed after build.
func RenderFormat(ctx context.Context, res *Result, format sink.Format, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case sink.FormatJSON:
		data, err = sink.RenderJSON(res.Plot)
	case sink.FormatSVG:
		data = sink.RenderSVG(res.Plot, sink.WithWidth(opts.Width))
	case sink.FormatHTML:
		data, err = sink.RenderHTML(res.Plot, sink.WithHTMLTitle(opts.Title))
	case sink.FormatPNG:
		data, err = sink.RenderPNG(res.Plot, sink.WithPNGTitle(opts.Title))
	case sink.FormatDOT:
		data = []byte(sink.ToDOT(res.Scene))
	case sink.FormatGraphviz:
		data, err = sink.RenderGraphviz(ctx, sink.ToDOT(res.Scene))
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
	}
	return data, nil
}

// Render renders every format in opts without the cache.
func Render(ctx context.Context, res *Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.formats))
	for _, f := range opts.formats {
		data, err := RenderFormat(ctx, res, f, opts)
		if err != nil {
			return nil, err
		}
		artifacts[string(f)] = data
	}
	return artifacts, nil
}

package client

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"path"

	"github.com/pkg/errors"
)

const ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Blob is a binary response: a spreadsheet export or a protected asset.
type Blob struct {
	Data        []byte
	ContentType string
	Filename    string
}

// GetBlob downloads a binary resource. A non-2xx status returns *APIError
// and no blob.
func (c *Client) GetBlob(ctx context.Context, p string, query url.Values) (*Blob, error) {
	req := c.rc.R().SetContext(ctx).SetHeader("Accept", "*/*")
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	resp, err := req.Get(p)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s", p)
	}
	if resp.IsError() {
		return nil, newAPIError(resp.StatusCode(), resp.Body())
	}

	ct := resp.Header().Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(resp.Body())
	}
	return &Blob{
		Data:        resp.Body(),
		ContentType: ct,
		Filename:    filename(resp.Header().Get("Content-Disposition"), p),
	}, nil
}

func filename(disposition, p string) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil && params["filename"] != "" {
			return params["filename"]
		}
	}
	if u, err := url.Parse(p); err == nil {
		return path.Base(u.Path)
	}
	return path.Base(p)
}

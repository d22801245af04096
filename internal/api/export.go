package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fintrack-dev/fintrack/internal/daterange"
)

// ExportQuery scopes a CSV export.
type ExportQuery struct {
	Range      daterange.Range
	CategoryID *int
}

func (q ExportQuery) values() url.Values {
	v := q.Range.Query()
	if q.CategoryID != nil {
		v.Set("category_id", strconv.Itoa(*q.CategoryID))
	}
	return v
}

// ExportCSV streams the CSV export into w and returns the byte count.
func (c *Client) ExportCSV(ctx context.Context, q ExportQuery, w io.Writer) (int64, error) {
	resp, err := c.send(ctx, http.MethodGet, "/api/export/csv", q.values(), nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &Error{
			Kind:    KindTransport,
			Method:  http.MethodGet,
			Path:    "/api/export/csv",
			Message: fmt.Sprintf("reading export: %v", err),
			Err:     err,
		}
	}
	return n, nil
}

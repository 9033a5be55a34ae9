package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/alumnihub/alumni-network/internal/core/ports"
)

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// formUpload opens the multipart file named field. It returns a nil upload when
// the request is not multipart or carries no such file. The returned close
// func is always safe to call.
func formUpload(c echo.Context, field string) (*ports.Upload, func(), error) {
	noop := func() {}
	if !isMultipart(c) {
		return nil, noop, nil
	}

	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, nil
		}
		return nil, noop, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("open upload %s: %w", field, err)
	}
	up := &ports.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}
	return up, func() { _ = f.Close() }, nil
}

// splitList flattens repeated and comma separated values into a trimmed list.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

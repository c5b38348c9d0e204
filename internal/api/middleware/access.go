package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

// maxCapturedBody bounds how much of a create response is kept for id extraction.
const maxCapturedBody = 1 << 20

// LogAccess records who touched which document once the handler has answered
// with a 2xx status. The id comes from the :id route param or, for creates,
// from "_id" or "data._id" in the JSON body. The client response is never
// altered or delayed; the record is handed to sink, which must not block.
func LogAccess(sink ports.AccessSink, resource domain.ResourceTag, action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var tee *teeWriter
			if action == domain.ActionCreate && c.Param("id") == "" {
				res := c.Response()
				tee = &teeWriter{ResponseWriter: res.Writer}
				res.Writer = tee
				defer func() { res.Writer = tee.ResponseWriter }()
			}

			if err := next(c); err != nil {
				return err
			}

			id := IdentityFrom(c)
			if id == nil || !succeeded(c.Response()) {
				return nil
			}
			resourceID := c.Param("id")
			if resourceID == "" && tee != nil {
				resourceID = payloadID(tee.buf.Bytes())
			}
			if resourceID == "" {
				return nil
			}

			sink.Record(domain.AccessRecord{
				User:       id.ID,
				Resource:   resource,
				ResourceID: resourceID,
				Action:     action,
			})
			return nil
		}
	}
}

// LogListAccess records a collection-level retrieve with the placeholder id.
func LogListAccess(sink ports.AccessSink, resource domain.ResourceTag) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				return err
			}
			if id := IdentityFrom(c); id != nil && succeeded(c.Response()) {
				sink.Record(domain.AccessRecord{
					User:       id.ID,
					Resource:   resource,
					ResourceID: domain.ListPlaceholderID,
					Action:     domain.ActionRetrieve,
				})
			}
			return nil
		}
	}
}

func succeeded(res *echo.Response) bool {
	return res.Committed && res.Status >= http.StatusOK && res.Status < http.StatusMultipleChoices
}

// payloadID extracts "_id", then "data._id", from a JSON object body.
func payloadID(body []byte) string {
	var payload map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return ""
	}
	if id := idString(payload["_id"]); id != "" {
		return id
	}
	if data, ok := payload["data"].(map[string]any); ok {
		return idString(data["_id"])
	}
	return ""
}

func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	}
	return ""
}

// teeWriter copies what the handler writes so the body can be inspected
// after it has been sent.
type teeWriter struct {
	http.ResponseWriter
	buf bytes.Buffer
}

func (w *teeWriter) Write(p []byte) (int, error) {
	if room := maxCapturedBody - w.buf.Len(); room > 0 {
		if len(p) < room {
			room = len(p)
		}
		w.buf.Write(p[:room])
	}
	return w.ResponseWriter.Write(p)
}

func (w *teeWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

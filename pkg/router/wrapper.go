package router

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kolstage/backend/pkg/errorx"
	"github.com/kolstage/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, httpReq *http.Request) {
		if httpReq.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		ctx := xcontext.WithHTTPRequest(r.baseCtx, httpReq)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithResponseHolder(ctx)

		func() {
			for _, before := range r.befores {
				newCtx, err := before(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			var req Request
			if err := bindRequest(httpReq, method, &req); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
				return
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}

			if resp != nil {
				xcontext.SetResponse(ctx, resp)
			}

			for _, after := range r.afters {
				newCtx, err := after(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}
		}()

		handleResponse(ctx, w)
		for _, closer := range r.closers {
			closer(&requestContext{Context: ctx})
		}
	}
}

func bindRequest(httpReq *http.Request, method string, req any) error {
	switch method {
	case http.MethodGet:
		return decodeQuery(httpReq.URL.Query(), req)

	case http.MethodPost:
		// Multipart bodies are read directly by the handler through the
		// http request in context.
		contentType := httpReq.Header.Get("Content-Type")
		if strings.HasPrefix(contentType, "multipart/form-data") {
			return nil
		}

		if httpReq.Body == nil || httpReq.ContentLength == 0 {
			return nil
		}

		return json.NewDecoder(httpReq.Body).Decode(req)
	}

	return nil
}

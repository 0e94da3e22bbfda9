package httpapi

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"chauffeur.local/gee"
	"chauffeur.local/internal/app/sharelink"
	"chauffeur.local/internal/platform/metrics"
	platformtrace "chauffeur.local/internal/platform/trace"
)

// MaxBatchURLs 一次批量请求最多改写的链接数
const MaxBatchURLs = 50

type RewriteResponse struct {
	URL      string `json:"url"`
	Lang     string `json:"lang"`
	Replaced bool   `json:"replaced"`
}

type BatchRewriteRequest struct {
	URLs []string `json:"urls"`
	Lang string   `json:"lang"`
}

type BatchRewriteResponse struct {
	Lang  string            `json:"lang"`
	Items []RewriteResponse `json:"items"`
}

type VariantResponse struct {
	Lang  string `json:"lang"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

type VariantsResponse struct {
	URL      string            `json:"url"`
	Variants []VariantResponse `json:"variants"`
}

// GET /links/lang?url=&lang=
func NewRewriteHandler() gee.HandlerFunc {
	return func(ctx *gee.Context) {
		raw := strings.TrimSpace(ctx.Query("url"))
		lang, ok := langParam(ctx, ctx.Query("lang"))
		if !ok {
			return
		}
		if err := sharelink.ValidateURL(raw); err != nil {
			ctx.AbortWithError(http.StatusBadRequest, err.Error())
			return
		}

		resp := rewrite(raw, lang)
		trace.SpanFromContext(ctx.Req.Context()).SetAttributes(
			attribute.String("sharelink.lang", lang),
			attribute.Bool("sharelink.replaced", resp.Replaced),
		)
		ctx.JSON(http.StatusOK, resp)
	}
}

// POST /links/lang {"urls":[...],"lang":"ua"}
func NewBatchRewriteHandler() gee.HandlerFunc {
	return func(ctx *gee.Context) {
		var req BatchRewriteRequest
		if err := ctx.BindJSON(&req); err != nil {
			return
		}
		lang, ok := langParam(ctx, req.Lang)
		if !ok {
			return
		}
		if len(req.URLs) == 0 {
			ctx.AbortWithError(http.StatusBadRequest, "urls is required")
			return
		}
		if len(req.URLs) > MaxBatchURLs {
			ctx.AbortWithError(http.StatusBadRequest, "too many urls")
			return
		}

		// 先全部校验，避免返回一半结果
		for _, raw := range req.URLs {
			if err := sharelink.ValidateURL(strings.TrimSpace(raw)); err != nil {
				ctx.AbortWithError(http.StatusBadRequest, err.Error()+": "+raw)
				return
			}
		}
		_, span := platformtrace.Tracer().Start(ctx.Req.Context(), "sharelink.batch_rewrite")
		items := make([]RewriteResponse, 0, len(req.URLs))
		for _, raw := range req.URLs {
			items = append(items, rewrite(strings.TrimSpace(raw), lang))
		}
		span.SetAttributes(
			attribute.String("sharelink.lang", lang),
			attribute.Int("sharelink.batch_size", len(items)),
		)
		span.End()

		ctx.JSON(http.StatusOK, BatchRewriteResponse{Lang: lang, Items: items})
	}
}

// GET /links/variants?url=&langs=ua,sk
func NewVariantsHandler() gee.HandlerFunc {
	return func(ctx *gee.Context) {
		raw := strings.TrimSpace(ctx.Query("url"))
		if err := sharelink.ValidateURL(raw); err != nil {
			ctx.AbortWithError(http.StatusBadRequest, err.Error())
			return
		}

		langs := sharelink.DefaultLanguages
		if list := ctx.Query("langs"); list != "" {
			langs = sharelink.ParseLanguages(list)
		}
		for _, l := range langs {
			if !validLang(l.Code) {
				ctx.AbortWithError(http.StatusBadRequest, "invalid lang: "+l.Code)
				return
			}
		}

		variants := sharelink.Variants(raw, langs)
		resp := VariantsResponse{URL: raw, Variants: make([]VariantResponse, 0, len(variants))}
		for _, v := range variants {
			resp.Variants = append(resp.Variants, VariantResponse{Lang: v.Code, Label: v.Label, URL: v.URL})
		}
		ctx.JSON(http.StatusOK, resp)
	}
}

func rewrite(raw, lang string) RewriteResponse {
	out, outcome := sharelink.RewriteOutcome(raw, lang)
	metrics.LinkRewritesTotal.WithLabelValues(string(outcome)).Inc()
	return RewriteResponse{URL: out, Lang: lang, Replaced: outcome == sharelink.OutcomeReplaced}
}

// langParam 规范化 lang 参数；不合法时已写入 400。
func langParam(ctx *gee.Context, raw string) (string, bool) {
	lang := strings.ToLower(strings.TrimSpace(raw))
	if lang == "" {
		ctx.AbortWithError(http.StatusBadRequest, "lang is required")
		return "", false
	}
	if !validLang(lang) {
		ctx.AbortWithError(http.StatusBadRequest, "invalid lang: "+lang)
		return "", false
	}
	return lang, true
}

// 接口层只接受 2-8 位小写字母，路径段里不能出现 /
func validLang(code string) bool {
	if len(code) < 2 || len(code) > 8 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'a' || code[i] > 'z' {
			return false
		}
	}
	return true
}

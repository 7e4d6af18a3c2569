package renderer

import (
	"context"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin/render"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-photoshare/internal/app/observability/metrics"
)

// HTMLTemplRenderer lets gin's c.HTML render templ components and falls back
// to another renderer for anything else.
type HTMLTemplRenderer struct {
	FallbackHtmlRenderer render.HTMLRender
}

var _ render.HTMLRender = (*HTMLTemplRenderer)(nil)

func (r *HTMLTemplRenderer) Instance(s string, d any) render.Render {
	component, ok := d.(templ.Component)
	if !ok {
		if r.FallbackHtmlRenderer != nil {
			return r.FallbackHtmlRenderer.Instance(s, d)
		}
	}
	return &Renderer{
		Ctx:       context.Background(),
		Status:    -1,
		Component: component,
		Name:      s,
	}
}

// Renderer renders one templ component as a gin response.
type Renderer struct {
	Ctx       context.Context
	Status    int
	Component templ.Component
	// Name labels the render duration metric.
	Name string
}

// New returns a Renderer bound to the request context.
func New(ctx context.Context, status int, name string, component templ.Component) *Renderer {
	return &Renderer{Ctx: ctx, Status: status, Component: component, Name: name}
}

func (t Renderer) Render(w http.ResponseWriter) error {
	t.WriteContentType(w)
	if t.Status != -1 {
		w.WriteHeader(t.Status)
	}
	if t.Component == nil {
		return nil
	}
	start := time.Now()
	err := t.Component.Render(t.Ctx, w)
	metrics.Get().TemplateRenderDuration.Record(t.Ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("template", t.Name)))
	return err
}

func (t Renderer) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

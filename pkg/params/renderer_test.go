package params

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zaptest"

	"github.com/goliatone/go-cotizador/pkg/form"
	"github.com/goliatone/go-cotizador/pkg/quote"
)

type fakeSource struct {
	services   map[string][]quote.Service
	params     map[string][]quote.Parameter
	err        error
	paramCalls []string
	gate       map[string]chan struct{}
}

func (f *fakeSource) ListServices(_ context.Context, categoryID string) ([]quote.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.services[categoryID], nil
}

func (f *fakeSource) ListServiceParameters(_ context.Context, serviceID string) ([]quote.Parameter, error) {
	f.paramCalls = append(f.paramCalls, serviceID)
	if ch, ok := f.gate[serviceID]; ok {
		<-ch
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.params[serviceID], nil
}

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(_ context.Context, msg string) error {
	r.messages = append(r.messages, msg)
	return nil
}

func categoryThree() *fakeSource {
	return &fakeSource{
		services: map[string][]quote.Service{
			"3": {
				{ID: 10, Name: "Instalación tablero", BasePrice: decimal.NewFromInt(85000), Parametrizable: true},
				{ID: 11, Name: "Visita técnica", BasePrice: decimal.NewFromInt(25000), Parametrizable: false},
			},
		},
		params: map[string][]quote.Parameter{
			"10": {
				{ID: 7, Name: "Voltaje", Type: quote.ParameterSelect, Options: []string{"220V", "380V"}, DefaultValue: "380V", Required: true},
				{ID: 8, Name: "Metros", Type: quote.ParameterNumber, DefaultValue: "10"},
				{ID: 9, Name: "Con canaleta", Type: quote.ParameterBoolean},
				{ID: 12, Name: "Notas", Type: "color"},
			},
		},
	}
}

func newServiceControls() (*form.Control, *form.Control, *Container) {
	sel := &form.Control{ID: "servicio-select", Kind: form.KindSelect}
	price := &form.Control{ID: "precio-servicio", Kind: form.KindNumber}
	return sel, price, NewContainer("parametros-servicio")
}

func TestLoadServices_PopulatesOptions(t *testing.T) {
	src := categoryThree()
	sel, _, container := newServiceControls()
	r := NewRenderer(src, WithLogger(zaptest.NewLogger(t)))

	if err := r.LoadServices(context.Background(), "3", sel, container); err != nil {
		t.Fatalf("load services: %v", err)
	}

	want := []form.Option{
		{Value: "", Label: PlaceholderLabel},
		{Value: "10", Label: "Instalación tablero", Attrs: map[string]string{AttrPrice: "85000", AttrParametrizable: "true"}},
		{Value: "11", Label: "Visita técnica", Attrs: map[string]string{AttrPrice: "25000", AttrParametrizable: "false"}},
	}
	if diff := cmp.Diff(want, sel.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if container.Visible() {
		t.Fatalf("container must be hidden after loading services")
	}
}

func TestLoadServices_EmptyCategoryOnlyResets(t *testing.T) {
	src := categoryThree()
	sel, _, container := newServiceControls()
	sel.Options = []form.Option{{Value: "99"}}
	sel.Value = "99"

	if err := NewRenderer(src).LoadServices(context.Background(), "", sel, container); err != nil {
		t.Fatalf("load services: %v", err)
	}
	if len(sel.Options) != 1 || sel.Options[0].Value != "" || sel.Value != "" {
		t.Fatalf("expected placeholder only, got %#v", sel.Options)
	}
}

func TestLoadServices_FailureAlerts(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	sel, _, container := newServiceControls()
	notifier := &recordingNotifier{}

	err := NewRenderer(src, WithNotifier(notifier)).LoadServices(context.Background(), "3", sel, container)
	if err == nil {
		t.Fatalf("expected error")
	}
	if diff := cmp.Diff([]string{MsgLoadServicesFailed}, notifier.messages); diff != "" {
		t.Fatalf("alerts mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectService_NonParametrizableLeavesContainerEmpty(t *testing.T) {
	src := categoryThree()
	sel, price, container := newServiceControls()
	r := NewRenderer(src)
	ctx := context.Background()

	if err := r.LoadServices(ctx, "3", sel, container); err != nil {
		t.Fatalf("load services: %v", err)
	}
	if err := r.SelectService(ctx, sel, "10", price, container); err != nil {
		t.Fatalf("select first: %v", err)
	}
	if !container.Visible() || len(container.Fields()) != 4 {
		t.Fatalf("expected parametrizable service to render controls")
	}

	if err := r.SelectService(ctx, sel, "11", price, container); err != nil {
		t.Fatalf("select second: %v", err)
	}
	if container.Visible() || len(container.Fields()) != 0 {
		t.Fatalf("expected empty hidden container, got visible=%v fields=%d", container.Visible(), len(container.Fields()))
	}
	if price.Value != "25000" {
		t.Fatalf("expected base price copied, got %q", price.Value)
	}
	if diff := cmp.Diff([]string{"10"}, src.paramCalls); diff != "" {
		t.Fatalf("parameter fetches mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectService_NilContainerCopiesPriceOnly(t *testing.T) {
	src := categoryThree()
	sel, price, _ := newServiceControls()
	r := NewRenderer(src)
	ctx := context.Background()

	if err := r.LoadServices(ctx, "3", sel, nil); err != nil {
		t.Fatalf("load services: %v", err)
	}
	for _, id := range []string{"11", "10"} {
		if err := r.SelectService(ctx, sel, id, price, nil); err != nil {
			t.Fatalf("select %s: %v", id, err)
		}
	}
	if price.Value != "85000" {
		t.Fatalf("expected base price copied, got %q", price.Value)
	}
	if len(src.paramCalls) != 0 {
		t.Fatalf("expected no parameter fetch without a container, got %v", src.paramCalls)
	}
}

func TestSelectService_RendersControlsPerType(t *testing.T) {
	src := categoryThree()
	sel, price, container := newServiceControls()
	r := NewRenderer(src)
	ctx := context.Background()
	_ = r.LoadServices(ctx, "3", sel, container)

	if err := r.SelectService(ctx, sel, "10", price, container); err != nil {
		t.Fatalf("select: %v", err)
	}

	type view struct {
		ID      string
		Label   string
		Kind    form.ControlKind
		Value   string
		Options int
	}
	var got []view
	for _, f := range container.Fields() {
		got = append(got, view{f.Control.ID, f.Label(), f.Control.Kind, f.Control.Value, len(f.Control.Options)})
	}
	want := []view{
		{"param-7", "Voltaje *", form.KindSelect, "380V", 2},
		{"param-8", "Metros", form.KindNumber, "10", 0},
		{"param-9", "Con canaleta", form.KindSelect, "true", 2},
		{"param-12", "Notas", form.KindText, "", 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	container.Set(9, "false")
	wantValues := map[string]string{"7": "380V", "8": "10", "9": "false", "12": ""}
	if diff := cmp.Diff(wantValues, container.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if price.Value != "85000" {
		t.Fatalf("expected price 85000, got %q", price.Value)
	}
}

func TestSelectService_EmptySchemaStaysHidden(t *testing.T) {
	src := categoryThree()
	src.params["10"] = nil
	sel, price, container := newServiceControls()
	r := NewRenderer(src)
	_ = r.LoadServices(context.Background(), "3", sel, container)

	if err := r.SelectService(context.Background(), sel, "10", price, container); err != nil {
		t.Fatalf("select: %v", err)
	}
	if container.Visible() {
		t.Fatalf("container must stay hidden without parameters")
	}
}

func TestSelectService_DropsStaleResult(t *testing.T) {
	src := categoryThree()
	src.gate = map[string]chan struct{}{"10": make(chan struct{})}
	sel, price, container := newServiceControls()
	r := NewRenderer(src)
	ctx := context.Background()
	_ = r.LoadServices(ctx, "3", sel, container)

	done := make(chan error, 1)
	go func() {
		done <- r.SelectService(ctx, sel, "10", price, container)
	}()

	// wait until the first fetch is in flight
	for {
		if _, ok := container.Control(7); ok {
			t.Fatalf("stale fields published early")
		}
		container.mu.Lock()
		gen := container.gen
		container.mu.Unlock()
		if gen >= 2 {
			break
		}
	}

	container.Clear()
	close(src.gate["10"])
	if err := <-done; err != nil {
		t.Fatalf("select: %v", err)
	}
	if container.Visible() || len(container.Fields()) != 0 {
		t.Fatalf("expected stale schema to be discarded")
	}
}

func TestSelectService_FetchFailureIsNotAlerted(t *testing.T) {
	src := categoryThree()
	sel, price, container := newServiceControls()
	notifier := &recordingNotifier{}
	r := NewRenderer(src, WithNotifier(notifier))
	_ = r.LoadServices(context.Background(), "3", sel, container)
	src.err = errors.New("timeout")

	if err := r.SelectService(context.Background(), sel, "10", price, container); err == nil {
		t.Fatalf("expected error")
	}
	if len(notifier.messages) != 0 {
		t.Fatalf("parameter failures must not alert, got %v", notifier.messages)
	}
	if container.Visible() {
		t.Fatalf("container must stay hidden")
	}
}

func TestSelectMaterial_CopiesPrice(t *testing.T) {
	sel := &form.Control{ID: "material-select", Kind: form.KindSelect, Options: []form.Option{
		{Value: ""},
		{Value: "4", Label: "Cable 2.5mm", Attrs: map[string]string{AttrPrice: "1290"}},
	}}
	price := &form.Control{ID: "precio-material"}

	if !SelectMaterial(sel, "4", price) {
		t.Fatalf("expected selection")
	}
	if price.Value != "1290" {
		t.Fatalf("expected price copied, got %q", price.Value)
	}
	if SelectMaterial(sel, "5", price) {
		t.Fatalf("unknown material must be rejected")
	}
}

func TestMarkup_RendersSanitizedFragment(t *testing.T) {
	src := categoryThree()
	src.params["10"][3].Name = `<script>alert(1)</script>Notas`
	sel, price, container := newServiceControls()
	r := NewRenderer(src)
	_ = r.LoadServices(context.Background(), "3", sel, container)
	_ = r.SelectService(context.Background(), sel, "10", price, container)

	markup, err := NewMarkup(nil)
	if err != nil {
		t.Fatalf("new markup: %v", err)
	}
	html, err := markup.Render(container)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"Parámetros del Servicio",
		`<label for="param-7">Voltaje *</label>`,
		`<select id="param-7" name="7">`,
		`<input type="number" id="param-8" name="8" value="10">`,
		`<option value="true"`,
		">Sí</option>",
		`<input type="text" id="param-12" name="12" value="">`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected markup to contain %q:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("markup must not contain script tags:\n%s", html)
	}

	container.Clear()
	empty, err := markup.Render(container)
	if err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if empty != "" {
		t.Fatalf("expected empty markup, got %q", empty)
	}
}
